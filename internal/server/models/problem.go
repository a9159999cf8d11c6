package models

import (
	"slices"
	"time"
)

// Status is the lifecycle state of a problem.
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusHalted Status = "halted"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusActive, StatusClosed, StatusHalted}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Categories is the fixed set of problem categories.
var Categories = []string{"Hardware", "Microsoft", "Smartschool", "Iddink", "Software"}

// ValidCategory reports whether c is one of Categories.
func ValidCategory(c string) bool {
	return slices.Contains(Categories, c)
}

// Problem is a support ticket.
type Problem struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Status      Status     `json:"status"`
	CreatorID   string     `json:"creatorId"`
	CreatedAt   time.Time  `json:"createdAt"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
}

// StatusCounts holds per-status totals plus the two daily figures that are
// computed in the same statement.
type StatusCounts struct {
	Active        int64 `json:"active"`
	Closed        int64 `json:"closed"`
	Halted        int64 `json:"halted"`
	CreatedToday  int64 `json:"-"`
	ResolvedToday int64 `json:"-"`
}

// Total is the number of problems across all statuses.
func (c StatusCounts) Total() int64 {
	return c.Active + c.Closed + c.Halted
}

// Dashboard is the aggregate view shown to administrators.
type Dashboard struct {
	ByStatus      StatusCounts     `json:"chartData"`
	CreatedToday  int64            `json:"problemsCreatedToday"`
	ResolvedToday int64            `json:"problemsResolvedToday"`
	ByCategory    map[string]int64 `json:"categoryCounts"`
}

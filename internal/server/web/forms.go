package web

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/server/models"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var errInvalidEmail = errors.New("invalid email")

// bindJSON decodes the body into form. An empty body leaves form zeroed so
// validation reports the missing fields.
func bindJSON(c *gin.Context, form any) error {
	if err := c.ShouldBindJSON(form); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f loginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required),
		validation.Field(&f.Password, validation.Required),
	)
}

type passwordForm struct {
	Password string `json:"password"`
}

func (f passwordForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Password, validation.Required),
	)
}

type registerForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate reports common.ErrMissingFields before looking at the email format.
func (f registerForm) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required),
		validation.Field(&f.Password, validation.Required),
	)
	if err != nil {
		return common.ErrMissingFields
	}
	if err := validation.Validate(f.Email, is.Email); err != nil {
		return errInvalidEmail
	}
	return nil
}

type inviteForm struct {
	Surname string `json:"surname"`
	Name    string `json:"name"`
}

func (f inviteForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Surname, validation.Required),
		validation.Field(&f.Name, validation.Required),
	)
}

type problemForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Validate reports common.ErrMissingFields or common.ErrInvalidCategory.
func (f problemForm) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Description, validation.Required),
		validation.Field(&f.Category, validation.Required),
	)
	if err != nil {
		return common.ErrMissingFields
	}
	if err := validation.Validate(f.Category, validation.In(categoryValues()...)); err != nil {
		return common.ErrInvalidCategory
	}
	return nil
}

type statusForm struct {
	ID     problemID     `json:"id"`
	Status models.Status `json:"status"`
}

// Validate checks presence only; the service decides whether the status is
// a known one.
func (f statusForm) Validate() error {
	if err := validation.Validate(int64(f.ID), validation.Required); err != nil {
		return common.ErrMissingProblemID
	}
	if err := validation.Validate(string(f.Status), validation.Required); err != nil {
		return common.ErrMissingStatus
	}
	return nil
}

// problemID accepts both 7 and "7".
type problemID int64

func (p *problemID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*p = problemID(n)
	return nil
}

func categoryValues() []any {
	out := make([]any, len(models.Categories))
	for i, c := range models.Categories {
		out[i] = c
	}
	return out
}

func trimmed(s string) string { return strings.TrimSpace(s) }

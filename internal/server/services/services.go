// Package services implements the helpdesk use cases on top of the
// repositories. Every multi-statement write runs in one transaction.
//
// Expected outcomes are reported with the sentinels of package common.
// Storage failures are wrapped with common.ErrUnavailable and keep the
// underlying error for logging.
package services

import (
	"fmt"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/dbx"
)

// withTx is a seam for tests that exercise services without a database.
var withTx = dbx.WithTx

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", common.ErrUnavailable, err)
}

package source

import (
	"context"
	"errors"
)

var (
	// ErrEnumeration wraps every failure to produce a work list, so callers can
	// tell "nothing to do" apart from "could not find out".
	ErrEnumeration = errors.New("enumeration failed")
	// ErrMissingColumns is returned when a manifest lacks a required column.
	ErrMissingColumns = errors.New("manifest missing required columns")
)

// Source produces the work items for one batch run. Order is not significant.
type Source interface {
	Enumerate(ctx context.Context) ([]WorkItem, error)
}

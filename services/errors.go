package services

import "errors"

var (
	// ErrTableNotFound means the table number has no ledger row.
	ErrTableNotFound = errors.New("table not found")
	// ErrOrderNotFound means no active order line has the given id.
	ErrOrderNotFound = errors.New("order line not found")
	// ErrUnknownMenu means the menu name is not in the catalog for the
	// requested context.
	ErrUnknownMenu = errors.New("unknown menu item")
	// ErrInvalidState means required fields are missing or empty.
	ErrInvalidState = errors.New("invalid input data")
)

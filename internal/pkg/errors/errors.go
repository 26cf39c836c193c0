package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedFormat rejects uploads whose extension is not csv/xlsx/xls.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrFileRead marks an uploaded file that could not be decoded at all.
	ErrFileRead = errors.New("file could not be read")
)

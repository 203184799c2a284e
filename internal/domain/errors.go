package domain

import "errors"

// Domain-specific errors shared by the converter and the file server.
var (
	// Converter errors
	ErrMissingInput   = errors.New("input file is required")
	ErrNotRegularFile = errors.New("not a regular file")
	ErrInvalidUTF8    = errors.New("file is not valid UTF-8")

	// File server errors
	ErrRootNotDirectory = errors.New("server root is not a directory")
	ErrInvalidPort      = errors.New("invalid port")
	ErrAddressInUse     = errors.New("address already in use")
)

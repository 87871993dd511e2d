package models

import "errors"

var (
	// ErrMalformedMeshReference is returned when a face or accessor refers
	// to a vertex or buffer that does not exist.
	ErrMalformedMeshReference = errors.New("malformed mesh reference")

	// ErrMalformedOBJ is returned for OBJ statements that cannot be parsed.
	ErrMalformedOBJ = errors.New("malformed obj")

	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
)

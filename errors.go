package dbscan

import "errors"

var (
	// ErrInvalidParameter is returned for out-of-domain configuration values
	// such as a non-positive Eps or MinPts.
	ErrInvalidParameter = errors.New("dbscan: invalid parameter")

	// ErrIndexOutOfRange is returned when a neighbor query names a point
	// that is not in the dataset.
	ErrIndexOutOfRange = errors.New("dbscan: index out of range")

	// ErrInvalidInput is returned for datasets that cannot be clustered:
	// ragged or zero-dimension points, or non-finite coordinates.
	ErrInvalidInput = errors.New("dbscan: invalid input")
)

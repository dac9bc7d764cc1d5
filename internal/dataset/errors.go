package dataset

import "errors"

// Sentinel kinds for pipeline I/O errors. Both are fatal to the run: no
// retries, no partial output.
var (
	// ErrSourceNotFound marks an input path that does not resolve to a
	// readable file.
	ErrSourceNotFound = errors.New("source not found")

	// ErrSinkUnwritable marks an output path that cannot be created or
	// written. The pipeline has already computed its result when this
	// surfaces.
	ErrSinkUnwritable = errors.New("sink unwritable")
)

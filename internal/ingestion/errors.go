package ingestion

import "errors"

var (
	// ErrEmptyDocument reports that a source yielded no usable text
	// after cleaning.
	ErrEmptyDocument = errors.New("document contains no text")

	// ErrUnsupportedSource reports a file format the ingester cannot
	// read as text.
	ErrUnsupportedSource = errors.New("unsupported source format")
)

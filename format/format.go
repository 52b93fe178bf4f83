/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package format

import (
	"io"

	"github.com/suparena/datakit/dataset"
)

// Codec encodes and decodes a whole record set to and from a byte stream.
type Codec interface {
	// Name returns the registered format name.
	Name() string

	// Extension returns the file name extension for this format, with dot.
	Extension() string

	// Encode writes the record set to w. It does not close w.
	Encode(w io.Writer, rs *dataset.RecordSet) error

	// Decode reads one encoded record set from r until EOF.
	Decode(r io.Reader) (*dataset.RecordSet, error)
}

/*
Package format implements the physical encodings DataKit reads and writes.

Three codecs are provided:

  - Delimited: delimiter-separated text with an optional header row, tab by
    default. All values decode as strings.
  - JSONLines: one JSON object per row. Integral numbers decode as int64,
    all others as float64.
  - Columnar: a binary column-oriented encoding with per-column snappy
    compression, suited to wide datasets read column-at-a-time.

Each codec is constructed from its own options struct and validates those
options at construction time, never at I/O time:

	codec, err := format.NewDelimited(format.DelimitedOptions{Delimiter: '\t', Header: true})
	if err != nil { ... }

Codecs encode and decode whole streams; compression of the stream itself
(gzip) is layered outside the codec by the caller.
*/
package format

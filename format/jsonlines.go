/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package format

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/suparena/datakit/dataset"
)

// JSONLinesOptions configures the line-delimited JSON codec.
type JSONLinesOptions struct {
	// MaxLineBytes bounds the size of a single encoded row on read.
	// Defaults to 16 MiB.
	MaxLineBytes int
}

const defaultMaxLineBytes = 16 << 20

// JSONLines reads and writes one JSON object per row. Numbers decode as int64
// when integral and float64 otherwise, so typed data survives a round-trip.
type JSONLines struct {
	opts JSONLinesOptions
}

// NewJSONLines validates the options and returns a JSON-lines codec.
func NewJSONLines(opts JSONLinesOptions) (*JSONLines, error) {
	if opts.MaxLineBytes == 0 {
		opts.MaxLineBytes = defaultMaxLineBytes
	}
	return &JSONLines{opts: opts}, nil
}

func (j *JSONLines) Name() string { return "jsonlines" }

func (j *JSONLines) Extension() string { return ".jsonl" }

func (j *JSONLines) Encode(w io.Writer, rs *dataset.RecordSet) error {
	enc := json.NewEncoder(w)
	for i, r := range rs.Records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding row %d: %w", i, err)
		}
	}
	return nil
}

func (j *JSONLines) Decode(r io.Reader) (*dataset.RecordSet, error) {
	rs := &dataset.RecordSet{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64<<10), j.opts.MaxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			return nil, fmt.Errorf("decoding line %d: %w", line, err)
		}

		rec := make(dataset.Record, len(obj))
		for k, v := range obj {
			rec[k] = fromJSON(v)
		}
		rs.Append(rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading jsonlines data: %w", err)
	}
	return rs, nil
}

// fromJSON maps decoded JSON values onto the dataset value kinds, keeping
// integral numbers as int64.
func fromJSON(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[k] = fromJSON(v)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = fromJSON(v)
		}
		return out
	}
	return v
}

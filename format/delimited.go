/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package format

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/suparena/datakit/dataset"
	"github.com/suparena/datakit/errors"
)

// DelimitedOptions configures the delimited-text codec.
type DelimitedOptions struct {
	// Delimiter separates fields within a row. Defaults to tab.
	Delimiter rune
	// Header controls whether the first row carries the column names.
	// Without a header, columns are named c0, c1, ... on read.
	Header bool
}

// Delimited reads and writes delimiter-separated text. Every value decodes as
// a string; typed round-trips are the domain of the JSONLines and Columnar
// codecs.
type Delimited struct {
	opts DelimitedOptions
}

// NewDelimited validates the options and returns a delimited-text codec.
func NewDelimited(opts DelimitedOptions) (*Delimited, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = '\t'
	}
	switch opts.Delimiter {
	case '\n', '\r', '"':
		return nil, errors.NewInvalidOptionsError("delimited",
			fmt.Sprintf("delimiter %q conflicts with the row framing", opts.Delimiter))
	}
	return &Delimited{opts: opts}, nil
}

func (d *Delimited) Name() string { return "delimited" }

func (d *Delimited) Extension() string {
	switch d.opts.Delimiter {
	case '\t':
		return ".tsv"
	case ',':
		return ".csv"
	}
	return ".txt"
}

func (d *Delimited) Encode(w io.Writer, rs *dataset.RecordSet) error {
	cw := csv.NewWriter(w)
	cw.Comma = d.opts.Delimiter

	if d.opts.Header {
		if err := cw.Write(rs.Columns); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	row := make([]string, len(rs.Columns))
	for _, r := range rs.Records {
		for i, c := range rs.Columns {
			row[i] = renderField(r[c])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func (d *Delimited) Decode(r io.Reader) (*dataset.RecordSet, error) {
	cr := csv.NewReader(r)
	cr.Comma = d.opts.Delimiter

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading delimited data: %w", err)
	}
	if len(rows) == 0 {
		return &dataset.RecordSet{}, nil
	}

	var columns []string
	if d.opts.Header {
		columns = rows[0]
		rows = rows[1:]
	} else {
		columns = make([]string, len(rows[0]))
		for i := range columns {
			columns[i] = "c" + strconv.Itoa(i)
		}
	}

	rs := dataset.New(columns...)
	for _, row := range rows {
		rec := make(dataset.Record, len(columns))
		for i, c := range columns {
			rec[c] = row[i]
		}
		rs.Records = append(rs.Records, rec)
	}
	return rs, nil
}

// renderField serializes a value for a delimited cell. Nil becomes the empty
// string, matching how the field reads back.
func renderField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}

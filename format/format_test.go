/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package format

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/datakit/dataset"
	"github.com/suparena/datakit/errors"
)

func sampleSet() *dataset.RecordSet {
	rs := dataset.New("name", "count", "ratio", "active")
	rs.Append(
		dataset.Record{"name": "alpha", "count": 1, "ratio": 0.25, "active": true},
		dataset.Record{"name": "beta", "count": 2, "ratio": 0.5, "active": false},
		dataset.Record{"name": "gamma", "count": 3, "ratio": 0.75, "active": true},
	)
	return rs
}

func TestDelimitedRoundTrip(t *testing.T) {
	codec, err := NewDelimited(DelimitedOptions{Header: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, sampleSet()))

	// Tab separated with a header row
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "name\tcount\tratio\tactive", lines[0])
	assert.Equal(t, "alpha\t1\t0.25\ttrue", lines[1])

	got, err := codec.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())

	// Delimited text decodes everything as strings
	assert.Equal(t, "alpha", got.Records[0]["name"])
	assert.Equal(t, "1", got.Records[0]["count"])
	assert.Equal(t, "true", got.Records[0]["active"])
}

func TestDelimitedWithoutHeaderSynthesizesColumns(t *testing.T) {
	codec, err := NewDelimited(DelimitedOptions{})
	require.NoError(t, err)

	rs := dataset.New("a", "b")
	rs.Append(dataset.Record{"a": "x", "b": "y"})

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, rs))

	got, err := codec.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"c0", "c1"}, got.Columns)
	assert.Equal(t, "x", got.Records[0]["c0"])
}

func TestDelimitedCustomDelimiter(t *testing.T) {
	codec, err := NewDelimited(DelimitedOptions{Delimiter: '|', Header: true})
	require.NoError(t, err)
	assert.Equal(t, ".txt", codec.Extension())

	rs := dataset.New("a", "b")
	rs.Append(dataset.Record{"a": "1", "b": "2"})

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, rs))
	assert.Equal(t, "a|b\n1|2\n", buf.String())
}

func TestDelimitedRejectsFramingDelimiters(t *testing.T) {
	for _, d := range []rune{'\n', '\r', '"'} {
		_, err := NewDelimited(DelimitedOptions{Delimiter: d})
		assert.True(t, errors.IsInvalidOptions(err), "delimiter %q should be rejected", d)
	}
}

func TestDelimitedNilRendersEmpty(t *testing.T) {
	codec, err := NewDelimited(DelimitedOptions{Header: true})
	require.NoError(t, err)

	rs := dataset.New("a", "b")
	rs.Append(dataset.Record{"a": nil, "b": "x"})

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, rs))
	assert.Equal(t, "a\tb\n\tx\n", buf.String())
}

func TestJSONLinesRoundTripPreservesTypes(t *testing.T) {
	codec, err := NewJSONLines(JSONLinesOptions{})
	require.NoError(t, err)

	want := sampleSet()
	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, want))

	got, err := codec.Decode(&buf)
	require.NoError(t, err)

	assert.True(t, want.Equal(got))
	assert.Equal(t, int64(1), got.Records[0]["count"])
	assert.Equal(t, 0.25, got.Records[0]["ratio"])
	assert.Equal(t, true, got.Records[0]["active"])
}

func TestJSONLinesNestedValues(t *testing.T) {
	codec, err := NewJSONLines(JSONLinesOptions{})
	require.NoError(t, err)

	rs := dataset.New("id", "meta")
	rs.Append(dataset.Record{"id": 7, "meta": map[string]any{"tags": []any{"a", "b"}}})

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, rs))

	got, err := codec.Decode(&buf)
	require.NoError(t, err)

	meta, ok := got.Records[0]["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, meta["tags"])
}

func TestJSONLinesSkipsBlankLines(t *testing.T) {
	codec, err := NewJSONLines(JSONLinesOptions{})
	require.NoError(t, err)

	got, err := codec.Decode(strings.NewReader("{\"a\":1}\n\n{\"a\":2}\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestJSONLinesRejectsMalformedLine(t *testing.T) {
	codec, err := NewJSONLines(JSONLinesOptions{})
	require.NoError(t, err)

	_, err = codec.Decode(strings.NewReader("{\"a\":1}\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestColumnarRoundTrip(t *testing.T) {
	for _, compression := range []ColumnarCompression{CompressionSnappy, CompressionNone} {
		t.Run(string(compression), func(t *testing.T) {
			codec, err := NewColumnar(ColumnarOptions{Compression: compression})
			require.NoError(t, err)

			want := sampleSet()
			want.Append(dataset.Record{"name": nil, "count": 4, "ratio": 1.0, "active": false})

			var buf bytes.Buffer
			require.NoError(t, codec.Encode(&buf, want))

			got, err := codec.Decode(&buf)
			require.NoError(t, err)
			assert.True(t, want.Equal(got))
		})
	}
}

func TestColumnarRejectsUnknownCompression(t *testing.T) {
	_, err := NewColumnar(ColumnarOptions{Compression: "zstd"})
	assert.True(t, errors.IsInvalidOptions(err))
}

func TestColumnarRejectsNestedValues(t *testing.T) {
	codec, err := NewColumnar(ColumnarOptions{})
	require.NoError(t, err)

	rs := dataset.New("meta")
	rs.Append(dataset.Record{"meta": map[string]any{"a": 1}})

	var buf bytes.Buffer
	require.Error(t, codec.Encode(&buf, rs))
}

func TestColumnarRejectsForeignData(t *testing.T) {
	codec, err := NewColumnar(ColumnarOptions{})
	require.NoError(t, err)

	_, err = codec.Decode(strings.NewReader("this is not a columnar file"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad magic")
}

func TestColumnarRejectsAbsurdRowCount(t *testing.T) {
	codec, err := NewColumnar(ColumnarOptions{Compression: CompressionNone})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, sampleSet()))

	// Rewrite the row count that follows the schema block.
	b := buf.Bytes()
	schemaLen := binary.BigEndian.Uint32(b[6:10])
	binary.BigEndian.PutUint64(b[10+schemaLen:], 1<<61)

	_, err = codec.Decode(bytes.NewReader(b))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row count")
}

func TestColumnarRejectsOversizedSchema(t *testing.T) {
	codec, err := NewColumnar(ColumnarOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	buf.Write(columnarMagic[:])
	buf.Write([]byte{columnarVersion, 0})
	binary.Write(&buf, binary.BigEndian, uint32(1<<30))

	_, err = codec.Decode(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema length")
}

func TestColumnarRejectsOversizedStringLength(t *testing.T) {
	codec, err := NewColumnar(ColumnarOptions{Compression: CompressionNone})
	require.NoError(t, err)

	schemaJSON, err := json.Marshal(dataset.Schema{
		Fields: []dataset.Field{{Name: "s", Type: dataset.TypeString}},
	})
	require.NoError(t, err)

	// One row whose string claims far more bytes than the block holds.
	var block bytes.Buffer
	block.WriteByte(tagString)
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], 1<<40)
	block.Write(scratch[:n])

	var buf bytes.Buffer
	buf.Write(columnarMagic[:])
	buf.Write([]byte{columnarVersion, 0})
	binary.Write(&buf, binary.BigEndian, uint32(len(schemaJSON)))
	buf.Write(schemaJSON)
	binary.Write(&buf, binary.BigEndian, uint64(1))
	binary.Write(&buf, binary.BigEndian, uint32(block.Len()))
	buf.Write(block.Bytes())

	_, err = codec.Decode(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "string length")
}

func TestColumnarEmptySet(t *testing.T) {
	codec, err := NewColumnar(ColumnarOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, dataset.New("a")))

	got, err := codec.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, []string{"a"}, got.Columns)
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package format

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/golang/snappy"

	"github.com/suparena/datakit/dataset"
	"github.com/suparena/datakit/errors"
)

// ColumnarCompression selects the per-column block compression.
type ColumnarCompression string

const (
	CompressionSnappy ColumnarCompression = "snappy"
	CompressionNone   ColumnarCompression = "none"
)

// ColumnarOptions configures the columnar binary codec.
type ColumnarOptions struct {
	// Compression applied to each column block. Defaults to snappy.
	Compression ColumnarCompression
}

// Columnar reads and writes a column-oriented binary encoding: a fixed header,
// a JSON schema block, then one length-prefixed value block per column.
// Scalar values only; nested objects and arrays are rejected at encode time.
type Columnar struct {
	opts ColumnarOptions
}

var columnarMagic = [4]byte{'D', 'K', 'C', '1'}

const (
	columnarVersion = 1

	tagNull   = 0
	tagString = 1
	tagInt    = 2
	tagFloat  = 3
	tagBool   = 4

	// Decode refuses schema and column blocks larger than these bounds so a
	// corrupt or hostile header cannot drive allocations.
	columnarMaxSchemaBytes = 1 << 20
	columnarMaxBlockBytes  = 1 << 30
)

// NewColumnar validates the options and returns a columnar codec.
func NewColumnar(opts ColumnarOptions) (*Columnar, error) {
	switch opts.Compression {
	case "":
		opts.Compression = CompressionSnappy
	case CompressionSnappy, CompressionNone:
	default:
		return nil, errors.NewInvalidOptionsError("columnar",
			fmt.Sprintf("unsupported compression %q", opts.Compression))
	}
	return &Columnar{opts: opts}, nil
}

func (c *Columnar) Name() string { return "columnar" }

func (c *Columnar) Extension() string { return ".dkc" }

func (c *Columnar) Encode(w io.Writer, rs *dataset.RecordSet) error {
	schema, err := dataset.Infer(rs)
	if err != nil {
		return fmt.Errorf("inferring schema: %w", err)
	}
	for _, f := range schema.Fields {
		if f.Type == dataset.TypeObject || f.Type == dataset.TypeArray {
			return fmt.Errorf("column %q: %s values are not supported by the columnar encoding", f.Name, f.Type)
		}
	}

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshaling schema: %w", err)
	}

	if _, err := w.Write(columnarMagic[:]); err != nil {
		return err
	}
	compressed := byte(0)
	if c.opts.Compression == CompressionSnappy {
		compressed = 1
	}
	if _, err := w.Write([]byte{columnarVersion, compressed}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(schemaJSON))); err != nil {
		return err
	}
	if _, err := w.Write(schemaJSON); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint64(rs.Len())); err != nil {
		return err
	}

	for _, f := range schema.Fields {
		block, err := encodeColumn(rs, f.Name)
		if err != nil {
			return fmt.Errorf("column %q: %w", f.Name, err)
		}
		if compressed == 1 {
			block = snappy.Encode(nil, block)
		}
		if err := binary.Write(w, binary.BigEndian, uint32(len(block))); err != nil {
			return err
		}
		if _, err := w.Write(block); err != nil {
			return err
		}
	}
	return nil
}

func (c *Columnar) Decode(r io.Reader) (*dataset.RecordSet, error) {
	var header [6]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading columnar header: %w", err)
	}
	if !bytes.Equal(header[:4], columnarMagic[:]) {
		return nil, fmt.Errorf("not a columnar file: bad magic %q", header[:4])
	}
	if header[4] != columnarVersion {
		return nil, fmt.Errorf("unsupported columnar version %d", header[4])
	}
	compressed := header[5] == 1

	var schemaLen uint32
	if err := binary.Read(r, binary.BigEndian, &schemaLen); err != nil {
		return nil, fmt.Errorf("reading schema length: %w", err)
	}
	if schemaLen > columnarMaxSchemaBytes {
		return nil, fmt.Errorf("schema length %d exceeds the %d byte limit", schemaLen, columnarMaxSchemaBytes)
	}
	schemaJSON := make([]byte, schemaLen)
	if _, err := io.ReadFull(r, schemaJSON); err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	var schema dataset.Schema
	if err := json.Unmarshal(schemaJSON, &schema); err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	var rows uint64
	if err := binary.Read(r, binary.BigEndian, &rows); err != nil {
		return nil, fmt.Errorf("reading row count: %w", err)
	}

	rs := dataset.New(schema.Columns()...)
	if len(schema.Fields) == 0 {
		if rows > columnarMaxSchemaBytes {
			return nil, fmt.Errorf("row count %d in a file with no columns exceeds the %d limit", rows, columnarMaxSchemaBytes)
		}
		rs.Records = make([]dataset.Record, rows)
		for i := range rs.Records {
			rs.Records[i] = make(dataset.Record)
		}
		return rs, nil
	}

	for ci, f := range schema.Fields {
		var blockLen uint32
		if err := binary.Read(r, binary.BigEndian, &blockLen); err != nil {
			return nil, fmt.Errorf("column %q: reading block length: %w", f.Name, err)
		}
		if blockLen > columnarMaxBlockBytes {
			return nil, fmt.Errorf("column %q: block length %d exceeds the %d byte limit", f.Name, blockLen, columnarMaxBlockBytes)
		}
		block := make([]byte, blockLen)
		if _, err := io.ReadFull(r, block); err != nil {
			return nil, fmt.Errorf("column %q: reading block: %w", f.Name, err)
		}
		if compressed {
			n, err := snappy.DecodedLen(block)
			if err != nil {
				return nil, fmt.Errorf("column %q: decompressing block: %w", f.Name, err)
			}
			if n > columnarMaxBlockBytes {
				return nil, fmt.Errorf("column %q: decompressed block length %d exceeds the %d byte limit", f.Name, n, columnarMaxBlockBytes)
			}
			block, err = snappy.Decode(nil, block)
			if err != nil {
				return nil, fmt.Errorf("column %q: decompressing block: %w", f.Name, err)
			}
		}
		if ci == 0 {
			// Every value occupies at least its tag byte, so the first
			// column's block bounds the plausible row count. Allocation
			// waits until that bound is established.
			if rows > uint64(len(block)) {
				return nil, fmt.Errorf("row count %d exceeds the %d bytes of column %q", rows, len(block), f.Name)
			}
			rs.Records = make([]dataset.Record, rows)
			for i := range rs.Records {
				rs.Records[i] = make(dataset.Record, len(schema.Fields))
			}
		}
		if err := decodeColumn(block, rs, f.Name); err != nil {
			return nil, fmt.Errorf("column %q: %w", f.Name, err)
		}
	}
	return rs, nil
}

func encodeColumn(rs *dataset.RecordSet, name string) ([]byte, error) {
	var buf bytes.Buffer
	var scratch [binary.MaxVarintLen64]byte

	for _, rec := range rs.Records {
		switch v := rec[name].(type) {
		case nil:
			buf.WriteByte(tagNull)
		case string:
			buf.WriteByte(tagString)
			n := binary.PutUvarint(scratch[:], uint64(len(v)))
			buf.Write(scratch[:n])
			buf.WriteString(v)
		case int64:
			buf.WriteByte(tagInt)
			n := binary.PutVarint(scratch[:], v)
			buf.Write(scratch[:n])
		case float64:
			buf.WriteByte(tagFloat)
			binary.BigEndian.PutUint64(scratch[:8], math.Float64bits(v))
			buf.Write(scratch[:8])
		case bool:
			buf.WriteByte(tagBool)
			if v {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
		default:
			return nil, fmt.Errorf("value of type %T is not supported by the columnar encoding", v)
		}
	}
	return buf.Bytes(), nil
}

func decodeColumn(block []byte, rs *dataset.RecordSet, name string) error {
	rd := bytes.NewReader(block)
	for i := range rs.Records {
		tag, err := rd.ReadByte()
		if err != nil {
			return fmt.Errorf("row %d: truncated block: %w", i, err)
		}
		switch tag {
		case tagNull:
			rs.Records[i][name] = nil
		case tagString:
			n, err := binary.ReadUvarint(rd)
			if err != nil {
				return fmt.Errorf("row %d: reading string length: %w", i, err)
			}
			if n > uint64(rd.Len()) {
				return fmt.Errorf("row %d: string length %d exceeds %d remaining block bytes", i, n, rd.Len())
			}
			s := make([]byte, n)
			if _, err := io.ReadFull(rd, s); err != nil {
				return fmt.Errorf("row %d: reading string: %w", i, err)
			}
			rs.Records[i][name] = string(s)
		case tagInt:
			v, err := binary.ReadVarint(rd)
			if err != nil {
				return fmt.Errorf("row %d: reading int: %w", i, err)
			}
			rs.Records[i][name] = v
		case tagFloat:
			var bits [8]byte
			if _, err := io.ReadFull(rd, bits[:]); err != nil {
				return fmt.Errorf("row %d: reading float: %w", i, err)
			}
			rs.Records[i][name] = math.Float64frombits(binary.BigEndian.Uint64(bits[:]))
		case tagBool:
			b, err := rd.ReadByte()
			if err != nil {
				return fmt.Errorf("row %d: reading bool: %w", i, err)
			}
			rs.Records[i][name] = b == 1
		default:
			return fmt.Errorf("row %d: unknown value tag %d", i, tag)
		}
	}
	if rd.Len() != 0 {
		return fmt.Errorf("%d trailing bytes after %d rows", rd.Len(), len(rs.Records))
	}
	return nil
}

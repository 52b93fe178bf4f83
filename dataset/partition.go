/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dataset

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/suparena/datakit/errors"
)

// PathTransformer maps a partition group to the physical path its file is
// written to. Implementations receive the dataset prefix, the partition column
// names, the group's values formatted as strings, and the file name.
type PathTransformer func(prefix string, partitions, values []string, suffix string) (string, error)

// HivePath is the default PathTransformer. It produces
// prefix/col1=val1/col2=val2/suffix, generating a unique file name when the
// suffix is empty.
//
// e.g. ("out", ["a","b"], ["1","2"], "part.tsv") -> "out/a=1/b=2/part.tsv"
func HivePath(prefix string, partitions, values []string, suffix string) (string, error) {
	if len(partitions) != len(values) {
		return "", errors.NewInvalidOptionsError("",
			fmt.Sprintf("partition columns and values must match: %d != %d", len(partitions), len(values)))
	}
	segments := make([]string, 0, len(partitions)+2)
	segments = append(segments, prefix)
	for i, p := range partitions {
		segments = append(segments, p+"="+values[i])
	}
	if suffix == "" {
		suffix = GenerateFileName("")
	}
	segments = append(segments, suffix)
	return path.Join(segments...), nil
}

// GenerateFileName returns a collision-free file name of the form
// <unix-nanos>-<uuid><ext>.
func GenerateFileName(ext string) string {
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String(), ext)
}

// PartitionGroup is the set of records sharing one combination of partition
// column values.
type PartitionGroup struct {
	Values []string
	Data   *RecordSet
}

// PartitionGroups splits a record set by the distinct value combinations of
// the given columns, preserving record order within each group and group order
// by first appearance. Records with a nil or missing partition value are
// rejected, as are nested values, since neither can name a file.
func PartitionGroups(rs *RecordSet, by []string) ([]PartitionGroup, error) {
	for _, c := range by {
		if !rs.hasColumn(c) {
			return nil, errors.NewInvalidOptionsError("",
				fmt.Sprintf("partition column %q not present in record set", c))
		}
	}

	var groups []PartitionGroup
	index := make(map[string]int)
	for _, r := range rs.Records {
		values := make([]string, len(by))
		for i, c := range by {
			v, ok := r[c]
			if !ok || v == nil {
				return nil, errors.NewInvalidOptionsError("",
					fmt.Sprintf("partition column %q has a nil value", c))
			}
			s, err := formatPartitionValue(v)
			if err != nil {
				return nil, fmt.Errorf("partition column %q: %w", c, err)
			}
			values[i] = s
		}

		key := strings.Join(values, "\x00")
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, PartitionGroup{
				Values: values,
				Data:   &RecordSet{Columns: append([]string(nil), rs.Columns...)},
			})
		}
		groups[i].Data.Records = append(groups[i].Data.Records, r)
	}
	return groups, nil
}

// SplitChunks distributes records round-robin across n chunks, in record
// order. Chunks may come out empty when there are fewer records than chunks.
func SplitChunks(rs *RecordSet, n int) []*RecordSet {
	chunks := make([]*RecordSet, n)
	for i := range chunks {
		chunks[i] = &RecordSet{Columns: append([]string(nil), rs.Columns...)}
	}
	for i, r := range rs.Records {
		c := chunks[i%n]
		c.Records = append(c.Records, r)
	}
	return chunks
}

func formatPartitionValue(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	}
	return "", fmt.Errorf("value of type %T cannot name a partition", v)
}

// valueString renders any scalar for ordering purposes.
func valueString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, err := formatPartitionValue(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

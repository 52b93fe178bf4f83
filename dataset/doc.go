/*
Package dataset defines the in-memory record model shared by all DataKit I/O.

A RecordSet is an ordered collection of rows, each row a mapping from column
name to a normalized scalar value (string, int64, float64, bool or nil; nested
objects and arrays are permitted for JSON-lines data). A Schema describes the
column names and unified value types of a RecordSet and is used to validate
consistency across the physical files of a partitioned dataset.

The package also implements the physical layout rules for partitioned writes:
hive-style path construction (prefix/col=value/file), first-seen-order grouping
by partition columns, and round-robin chunk splitting within a partition.
*/
package dataset

/*
Package datakit provides uniform dataset I/O over local and cloud object
storage, with pluggable encodings, transparent compression and hive-style
partitioning.

The library is organized around three layers:
  - filesystem: resolves logical locations to open byte streams, identically
    across backends (local disk, S3-compatible object stores, in-memory mock).
  - format: encodes and decodes record sets (delimited text, JSON lines,
    columnar binary), each codec validated at construction.
  - datakit.DataIO: groups rows into partitions and chunks, fans writes and
    reads out across the physical files involved, and enforces schema
    consistency on read.

Basic Usage:

	dio := datakit.NewDataIO()

	codec, _ := format.NewDelimited(format.DelimitedOptions{Header: true})

	rs := dataset.New("col1", "col2")
	rs.Append(dataset.Record{"col1": 1, "col2": "a"})

	// One physical file per distinct col1 value
	err := dio.Write(ctx, rs, "out/events", codec, datakit.WriteOptions{
	    PartitionBy: []string{"col1"},
	})

	// Reads every file under the prefix back into one record set
	back, err := dio.Read(ctx, "out/events", codec, datakit.ReadOptions{})

For S3-backed operation, construct the backend through the filesystem package
and hand it to NewDataIO via WithFileSystem.

For more information, see the documentation at https://github.com/suparena/datakit
*/
package datakit

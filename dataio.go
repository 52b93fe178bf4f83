/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datakit

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/suparena/datakit/dataset"
	"github.com/suparena/datakit/errors"
	"github.com/suparena/datakit/filesystem"
	"github.com/suparena/datakit/format"
	"github.com/suparena/datakit/jsonlog"
)

// DataIO reads and writes record sets through a FileSystem, one physical file
// per partition group or chunk.
type DataIO struct {
	fs          filesystem.FileSystem
	transform   dataset.PathTransformer
	log         *jsonlog.Logger
	parallelism int
}

// DataIOOption configures a DataIO.
type DataIOOption func(*DataIO)

// WithFileSystem selects the storage backend. Defaults to local disk.
func WithFileSystem(fs filesystem.FileSystem) DataIOOption {
	return func(d *DataIO) { d.fs = fs }
}

// WithPathTransformer overrides how partition groups map to physical paths.
// Defaults to dataset.HivePath.
func WithPathTransformer(fn dataset.PathTransformer) DataIOOption {
	return func(d *DataIO) { d.transform = fn }
}

// WithLogger attaches a logger; per-file operations are logged at debug level.
func WithLogger(l *jsonlog.Logger) DataIOOption {
	return func(d *DataIO) { d.log = l }
}

// WithParallelism bounds the number of physical files processed concurrently.
func WithParallelism(n int) DataIOOption {
	return func(d *DataIO) {
		if n > 0 {
			d.parallelism = n
		}
	}
}

// NewDataIO creates a DataIO. Without options it operates on the local disk
// with hive-style partition paths.
func NewDataIO(opts ...DataIOOption) *DataIO {
	d := &DataIO{
		fs:          filesystem.NewLocal(),
		transform:   dataset.HivePath,
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WriteOptions controls the physical layout of a write.
type WriteOptions struct {
	// Gzip compresses each file's stream, independent of the encoding.
	Gzip bool

	// PartitionBy groups rows into one file per distinct value combination
	// of these columns.
	PartitionBy []string

	// DropPartitions removes the partition columns from the written rows;
	// their values then live only in the file paths.
	DropPartitions bool

	// Suffix fixes the file name within each partition directory. When
	// empty, a unique name is generated per file.
	Suffix string

	// ChunkSuffixes splits every partition's rows round-robin across one
	// file per suffix.
	ChunkSuffixes []string
}

// ReadOptions controls how physical files are interpreted on read.
type ReadOptions struct {
	// Gzip decompresses each file's stream before decoding.
	Gzip bool
}

type fileJob struct {
	path string
	data *dataset.RecordSet
}

// Write encodes the record set under the given path. Without partitioning or
// chunking the path names the single output file; otherwise it is the dataset
// prefix under which partition directories and files are created.
func (d *DataIO) Write(ctx context.Context, rs *dataset.RecordSet, path string, codec format.Codec, opts WriteOptions) error {
	if err := validateWriteOptions(opts); err != nil {
		return err
	}

	jobs, err := d.planWrite(rs, path, codec, opts)
	if err != nil {
		return err
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(d.parallelism)
	for _, job := range jobs {
		job := job
		grp.Go(func() error {
			if err := d.writeFile(ctx, job, codec, opts.Gzip); err != nil {
				return fmt.Errorf("writing %s: %w", job.path, err)
			}
			d.log.Debug("file written", jsonlog.Fields{
				"path": job.path, "rows": job.data.Len(), "format": codec.Name(),
			})
			return nil
		})
	}
	return grp.Wait()
}

// Read decodes every physical file under the path prefix and concatenates the
// rows in lexical path order. The first file fixes the column set; a file
// disagreeing with it is a SchemaMismatchError. A prefix matching no file is
// a NotFoundError.
func (d *DataIO) Read(ctx context.Context, path string, codec format.Codec, opts ReadOptions) (*dataset.RecordSet, error) {
	paths, err := d.fs.Find(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("finding files under %s: %w", path, err)
	}
	if len(paths) == 0 {
		return nil, errors.NewNotFoundError("dataset", path)
	}
	sort.Strings(paths)

	parts := make([]*dataset.RecordSet, len(paths))
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(d.parallelism)
	for i, p := range paths {
		i, p := i, p
		grp.Go(func() error {
			rs, err := d.readFile(ctx, p, codec, opts.Gzip)
			if err != nil {
				return fmt.Errorf("reading %s: %w", p, err)
			}
			d.log.Debug("file read", jsonlog.Fields{
				"path": p, "rows": rs.Len(), "format": codec.Name(),
			})
			parts[i] = rs
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	if err := checkSchemas(paths, parts); err != nil {
		return nil, err
	}
	return dataset.Concat(parts...), nil
}

func validateWriteOptions(opts WriteOptions) error {
	if opts.Suffix != "" && len(opts.ChunkSuffixes) > 0 {
		return errors.NewInvalidOptionsError("", "suffix and chunk suffixes are mutually exclusive")
	}
	if opts.DropPartitions && len(opts.PartitionBy) == 0 {
		return errors.NewInvalidOptionsError("", "drop partitions requires partition columns")
	}
	seen := make(map[string]bool, len(opts.ChunkSuffixes))
	for _, s := range opts.ChunkSuffixes {
		if s == "" {
			return errors.NewInvalidOptionsError("", "chunk suffixes must not be empty")
		}
		if seen[s] {
			return errors.NewInvalidOptionsError("", fmt.Sprintf("duplicate chunk suffix %q", s))
		}
		seen[s] = true
	}
	return nil
}

// planWrite maps the record set onto the physical files to produce.
func (d *DataIO) planWrite(rs *dataset.RecordSet, path string, codec format.Codec, opts WriteOptions) ([]fileJob, error) {
	ext := codec.Extension()
	if opts.Gzip {
		ext += ".gz"
	}

	groups := []dataset.PartitionGroup{{Data: rs}}
	if len(opts.PartitionBy) > 0 {
		var err error
		groups, err = dataset.PartitionGroups(rs, opts.PartitionBy)
		if err != nil {
			return nil, err
		}
	}

	var jobs []fileJob
	for _, g := range groups {
		data := g.Data
		if opts.DropPartitions {
			data = data.DropColumns(opts.PartitionBy...)
		}

		switch {
		case len(opts.ChunkSuffixes) > 0:
			chunks := dataset.SplitChunks(data, len(opts.ChunkSuffixes))
			for i, suffix := range opts.ChunkSuffixes {
				p, err := d.transform(path, opts.PartitionBy, g.Values, suffix+ext)
				if err != nil {
					return nil, err
				}
				jobs = append(jobs, fileJob{path: p, data: chunks[i]})
			}
		case len(opts.PartitionBy) > 0 || opts.Suffix != "":
			suffix := opts.Suffix
			if suffix == "" {
				suffix = dataset.GenerateFileName(ext)
			}
			p, err := d.transform(path, opts.PartitionBy, g.Values, suffix)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, fileJob{path: p, data: data})
		default:
			// Plain single-file write: the path is the file
			jobs = append(jobs, fileJob{path: path, data: data})
		}
	}
	return jobs, nil
}

func (d *DataIO) writeFile(ctx context.Context, job fileJob, codec format.Codec, gzipped bool) (err error) {
	w, err := d.fs.Create(ctx, job.path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var target io.Writer = w
	var gz *gzip.Writer
	if gzipped {
		gz = gzip.NewWriter(w)
		target = gz
	}

	if err := codec.Encode(target, job.data); err != nil {
		return err
	}
	if gz != nil {
		return gz.Close()
	}
	return nil
}

func (d *DataIO) readFile(ctx context.Context, path string, codec format.Codec, gzipped bool) (*dataset.RecordSet, error) {
	r, err := d.fs.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var source io.Reader = r
	if gzipped {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		source = gz
	}
	return codec.Decode(source)
}

// checkSchemas validates that every non-empty file fits one unified schema:
// same column set, and per-column value types that unify (null yields to
// anything, int widens to float). A type conflict between files is a schema
// mismatch, not something to coerce.
func checkSchemas(paths []string, parts []*dataset.RecordSet) error {
	var base *dataset.Schema
	for i, part := range parts {
		if part.Len() == 0 && len(part.Columns) == 0 {
			continue
		}
		schema, err := dataset.Infer(part)
		if err != nil {
			return fmt.Errorf("inferring schema of %s: %w", paths[i], err)
		}
		if base == nil {
			s := schema
			base = &s
			continue
		}
		merged, err := base.Unify(schema)
		if err != nil {
			return errors.NewSchemaMismatchError(paths[i], base.Signature(), schema.Signature())
		}
		base = &merged
	}
	return nil
}

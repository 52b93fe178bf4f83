/*
Package errors provides semantic error types for the DataKit library.

The package defines common failure kinds with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrUnknownBackend = errors.New("unknown storage backend")
	    ErrUnknownFormat  = errors.New("unknown data format")
	    ErrNotFound       = errors.New("path not found")
	    ErrSchemaMismatch = errors.New("schema mismatch")
	    ErrInvalidOptions = errors.New("invalid options")
	)

Usage:

	// Check error kind
	rs, err := dio.Read(ctx, "data/events", codec, datakit.ReadOptions{})
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Nothing was ever written under this prefix
	        return nil, fmt.Errorf("dataset %s does not exist", "data/events")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("dataset", "data/events")
	err := errors.NewSchemaMismatchError(path, "a,b", "a,c")
	err := errors.NewInvalidOptionsError("delimited", "delimiter must not be a newline")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors

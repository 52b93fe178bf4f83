/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/datakit/errors"
	"github.com/suparena/datakit/format"
)

// CodecFactory builds a codec with its default options.
type CodecFactory func() (format.Codec, error)

var (
	mu            sync.RWMutex
	codecRegistry = make(map[string]CodecFactory)
)

// Register registers a codec factory under a format name.
// If a factory is already registered for the name, it panics to prevent accidental overrides.
func Register(name string, fn CodecFactory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := codecRegistry[name]; exists {
		panic(fmt.Sprintf("codec registry: format %q already registered", name))
	}
	codecRegistry[name] = fn
}

// New builds a codec for the given format name.
// If no factory is registered, it returns an UnknownFormatError.
func New(name string) (format.Codec, error) {
	mu.RLock()
	fn, ok := codecRegistry[name]
	mu.RUnlock()
	if !ok {
		return nil, errors.NewUnknownFormatError(name)
	}
	return fn()
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(codecRegistry))
	for name := range codecRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("delimited", func() (format.Codec, error) {
		return format.NewDelimited(format.DelimitedOptions{})
	})
	Register("tsv", func() (format.Codec, error) {
		return format.NewDelimited(format.DelimitedOptions{Delimiter: '\t', Header: true})
	})
	Register("csv", func() (format.Codec, error) {
		return format.NewDelimited(format.DelimitedOptions{Delimiter: ',', Header: true})
	})
	Register("jsonlines", func() (format.Codec, error) {
		return format.NewJSONLines(format.JSONLinesOptions{})
	})
	Register("columnar", func() (format.Codec, error) {
		return format.NewColumnar(format.ColumnarOptions{})
	})
}

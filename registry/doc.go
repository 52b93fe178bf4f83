/*
Package registry maps format names to codec factories.

The built-in formats ("delimited", "tsv", "csv", "jsonlines", "columnar") are
registered at init time with their default options. Callers needing
non-default options construct codecs directly from the format package;
the registry exists for code that selects a format by name, such as the
dkcat command.

	codec, err := registry.New("jsonlines")
	if err != nil { ... }
*/
package registry

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

// Diff is the engine façade: it detects each input's format, parses
// both into normalized trees, and runs the structural differ followed by
// the fixed ML analyzer pipeline. It is pure beyond reading the two files;
// no network I/O, no mutation, no retained state between calls.
func Diff(pathA, pathB string, opts Options) ([]DiffResult, error) {
	treeA, err := parseFile(pathA)
	if err != nil {
		return nil, err
	}
	treeB, err := parseFile(pathB)
	if err != nil {
		return nil, err
	}
	return DiffTrees(treeA, treeB, opts), nil
}

// DiffTrees runs the structural differ followed by the full analyzer
// pipeline over two already-parsed trees, in the contractual order:
// structural differences first, then analyzer outputs in the fixed
// analyzer order.
func DiffTrees(a, b Value, opts Options) []DiffResult {
	stream := structuralDiff(a, b, opts)
	return runAnalyzers(a, b, stream)
}

func parseFile(path string) (Value, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Value{}, err
	}
	return ParseFormat(format, path)
}

// ParseFormat dispatches to the parser for format, letting callers override
// format detection.
func ParseFormat(format Format, path string) (Value, error) {
	switch format {
	case FormatPyTorch:
		return ParsePyTorch(path)
	case FormatSafetensors:
		return ParseSafetensors(path)
	case FormatNumPy:
		return ParseNumPy(path)
	case FormatNumPyArchive:
		return ParseNumPyArchive(path)
	case FormatMatlab:
		return ParseMatlab(path)
	default:
		return Value{}, &UnsupportedFormatError{Path: path, Extension: string(format), Accepted: acceptedExtensions}
	}
}

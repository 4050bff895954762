// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import "os"

// ParseMatlab opens a MAT-file container and returns the deliberate
// skeleton: model_type, file_path, and an empty "arrays" object. The file
// is only opened as an existence/readability check; its variables are not
// enumerated, so "arrays" is always empty.
func ParseMatlab(path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return Value{}, &ParseError{Format: FormatMatlab, Path: path, Cause: err}
	}
	defer f.Close()

	return NewObject(map[string]Value{
		"model_type": NewString("matlab"),
		"file_path":  NewString(path),
		"arrays":     NewObject(map[string]Value{}),
	}), nil
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gocnn/gonpy"
)

const npyMagic = "\x93NUMPY"

// ParseNumPy returns the deliberate NumPy skeleton: model_type, file_path,
// and nothing else. Full array ingestion is out of scope; this
// function only validates the NPY magic bytes, turning a corrupt container
// into a typed ParseError rather than silently producing an empty tree.
func ParseNumPy(path string) (Value, error) {
	if err := validateNPYMagic(path); err != nil {
		return Value{}, &ParseError{Format: FormatNumPy, Path: path, Cause: err}
	}
	return NewObject(map[string]Value{
		"model_type": NewString("numpy"),
		"file_path":  NewString(path),
	}), nil
}

// ParseNumPyArchive returns the skeleton for an NPZ archive: model_type,
// file_path, and an "arrays" object whose keys are the archive's member
// names (read from the zip central directory via gonpy, never
// materialized). Array bodies are never decoded.
func ParseNumPyArchive(path string) (Value, error) {
	names, err := npzMemberNames(path)
	if err != nil {
		return Value{}, &ParseError{Format: FormatNumPyArchive, Path: path, Cause: err}
	}

	arrays := make(map[string]Value, len(names))
	for _, name := range names {
		arrays[name] = NewObject(map[string]Value{})
	}

	return NewObject(map[string]Value{
		"model_type": NewString("numpy_archive"),
		"file_path":  NewString(path),
		"arrays":     NewObject(arrays),
	}), nil
}

func validateNPYMagic(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, len(npyMagic))
	if _, err := bufio.NewReader(f).Read(buf); err != nil {
		return fmt.Errorf("read magic: %w", err)
	}
	if string(buf) != npyMagic {
		return fmt.Errorf("not an NPY file: missing %q magic", npyMagic)
	}
	return nil
}

// npzMemberNames lists the arrays in an NPZ zip archive without decoding
// any of them, using gonpy's archive reader purely for its zip directory
// walk.
func npzMemberNames(path string) ([]string, error) {
	n, err := gonpy.NewNpzTensors(path)
	if err != nil {
		return nil, err
	}
	return n.Names(), nil
}

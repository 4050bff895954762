// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"path/filepath"
	"strings"
)

// Format identifies the container type of a model artifact.
type Format string

const (
	FormatPyTorch     Format = "pytorch"
	FormatSafetensors Format = "safetensors"
	FormatNumPy       Format = "numpy"
	FormatNumPyArchive Format = "numpy_archive"
	FormatMatlab      Format = "matlab"
)

var extensionFormats = map[string]Format{
	"pt":          FormatPyTorch,
	"pth":         FormatPyTorch,
	"safetensors": FormatSafetensors,
	"npy":         FormatNumPy,
	"npz":         FormatNumPyArchive,
	"mat":         FormatMatlab,
}

var acceptedExtensions = []string{"pt", "pth", "safetensors", "npy", "npz", "mat"}

// DetectFormat maps a file path to a Format by its extension alone. It never
// inspects file contents; extensions are the sole signal (see
// UnsupportedFormatError for the accepted set).
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	f, ok := extensionFormats[ext]
	if !ok {
		return "", &UnsupportedFormatError{Path: path, Extension: ext, Accepted: acceptedExtensions}
	}
	return f, nil
}

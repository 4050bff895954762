// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"fmt"
	"os"

	"github.com/nlpodyssey/safetensors"
)

// ParseSafetensors reads a Safetensors container and returns the normalized
// tree: model_type="safetensors" and a "tensors" object keyed by tensor
// name, each value a tensor descriptor with shape, dtype and, for numeric
// dtypes other than F16/BF16, a single-pass data_summary. It reads
// raw tensors (undecoded bytes, see dtype) rather than the library's typed
// tensors, since computeTensorSummary needs the little-endian byte layout
// directly.
func ParseSafetensors(path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return Value{}, &ParseError{Format: FormatSafetensors, Path: path, Cause: err}
	}
	defer f.Close()

	st, err := safetensors.ReadAllRaw(f, 0)
	if err != nil {
		return Value{}, &ParseError{Format: FormatSafetensors, Path: path, Cause: err}
	}

	tensors := make(map[string]Value, len(st.Tensors))
	for _, rt := range st.Tensors {
		dt := dtypeTag(rt.DType())

		dims := rt.Shape()
		shape := make([]Value, len(dims))
		for i, d := range dims {
			shape[i] = NewNumber(float64(d))
		}

		desc := map[string]Value{
			"shape": NewArray(shape),
			"dtype": NewString(dt),
		}

		if summary, ok := computeTensorSummary(dt, rt.Data()); ok {
			desc["data_summary"] = summaryToValue(summary)
		}

		tensors[rt.Name()] = NewObject(desc)
	}

	return NewObject(map[string]Value{
		"model_type": NewString("safetensors"),
		"tensors":    NewObject(tensors),
	}), nil
}

// dtypeTag converts the library's DType to this package's dtype string tags.
func dtypeTag(dt fmt.Stringer) string {
	s := dt.String()
	if s == "BOOL" {
		return "Bool"
	}
	return s
}

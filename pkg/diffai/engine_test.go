// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"reflect"
	"testing"
)

// Determinism: repeated runs over the same trees and
// options produce the same stream.
func TestDiffTrees_Determinism(t *testing.T) {
	a := obj(map[string]Value{
		"model_type":    str("safetensors"),
		"layer1.weight": tensorDesc("F32", 10, 10),
		"loss_history":  arr(num(1.0), num(0.5), num(0.4)),
	})
	b := obj(map[string]Value{
		"model_type":    str("safetensors"),
		"layer1.weight": tensorDesc("F32", 10, 20),
		"loss_history":  arr(num(1.0), num(0.5), num(0.1)),
	})

	first := DiffTrees(a, b, Options{})
	second := DiffTrees(a, b, Options{})

	if len(first) != len(second) {
		t.Fatalf("nondeterministic record count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !reflect.DeepEqual(first[i], second[i]) {
			t.Errorf("record %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// Structural differences must precede analyzer output in the stream.
func TestDiffTrees_StructuralBeforeAnalyzer(t *testing.T) {
	a := obj(map[string]Value{
		"value":         num(1),
		"layer1.weight": tensorDesc("F32", 10, 10),
	})
	b := obj(map[string]Value{
		"value":         num(2),
		"layer1.weight": tensorDesc("F32", 10, 20),
	})

	stream := DiffTrees(a, b, Options{})
	if len(stream) == 0 {
		t.Fatal("expected a non-empty stream")
	}

	seenAnalyzer := false
	for _, r := range stream {
		isAnalyzer := r.Kind == ResultModelArchitectureChanged || r.Kind == ResultActivationFunctionChanged
		if isAnalyzer {
			seenAnalyzer = true
			continue
		}
		if seenAnalyzer {
			t.Errorf("structural record %+v appeared after an analyzer record", r)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"model.pt", FormatPyTorch, false},
		{"model.PTH", FormatPyTorch, false},
		{"model.safetensors", FormatSafetensors, false},
		{"model.npy", FormatNumPy, false},
		{"model.npz", FormatNumPyArchive, false},
		{"model.mat", FormatMatlab, false},
		{"model.gguf", "", true},
		{"model", "", true},
	}
	for _, c := range cases {
		got, err := DetectFormat(c.path)
		if c.wantErr {
			if err == nil {
				t.Errorf("DetectFormat(%q): expected error, got %v", c.path, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("DetectFormat(%q): unexpected error %v", c.path, err)
		}
		if got != c.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

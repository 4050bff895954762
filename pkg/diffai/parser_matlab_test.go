// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseMatlab_ReturnsSkeleton(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.mat")
	if err := os.WriteFile(path, []byte("MATLAB 5.0 MAT-file placeholder"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	v, err := ParseMatlab(path)
	if err != nil {
		t.Fatalf("ParseMatlab: %v", err)
	}
	if mt, _ := v.GetString("model_type"); mt != "matlab" {
		t.Errorf("model_type = %q, want matlab", mt)
	}
	arrays, ok := v.Get("arrays")
	if !ok || arrays.Kind != KindObject || len(arrays.Object) != 0 {
		t.Errorf("arrays = %+v, want an empty object", arrays)
	}
}

func TestParseMatlab_MissingFile(t *testing.T) {
	_, err := ParseMatlab(filepath.Join(t.TempDir(), "missing.mat"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

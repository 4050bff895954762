// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeSafetensorsFile assembles a minimal Safetensors container: an 8-byte
// little-endian header length, the JSON header itself, then the raw tensor
// bytes back to back in the order the header's data_offsets describe.
func writeSafetensorsFile(t *testing.T, path string, tensors map[string][]byte, shapes map[string][]int, dtypes map[string]string) {
	t.Helper()

	header := make(map[string]any, len(tensors))
	var payload []byte
	for name, data := range tensors {
		start := len(payload)
		payload = append(payload, data...)
		header[name] = map[string]any{
			"dtype":        dtypes[name],
			"shape":        shapes[name],
			"data_offsets": [2]int{start, len(payload)},
		}
	}

	jsonHeader, err := json.Marshal(header)
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}

	var lenBytes [8]byte
	binary.LittleEndian.PutUint64(lenBytes[:], uint64(len(jsonHeader)))

	full := append(append(lenBytes[:], jsonHeader...), payload...)
	if err := os.WriteFile(path, full, 0644); err != nil {
		t.Fatalf("write safetensors fixture: %v", err)
	}
}

func TestParseSafetensors_ShapeDtypeAndSummary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.safetensors")

	f32Bytes := []byte{
		0x00, 0x00, 0x80, 0x3f, // 1.0
		0x00, 0x00, 0x00, 0x40, // 2.0
	}
	writeSafetensorsFile(t, path,
		map[string][]byte{"layer.weight": f32Bytes},
		map[string][]int{"layer.weight": {2}},
		map[string]string{"layer.weight": "F32"},
	)

	v, err := ParseSafetensors(path)
	if err != nil {
		t.Fatalf("ParseSafetensors: %v", err)
	}

	if mt, _ := v.GetString("model_type"); mt != "safetensors" {
		t.Errorf("model_type = %q, want safetensors", mt)
	}

	tensorsObj, ok := v.Get("tensors")
	if !ok {
		t.Fatal("expected a tensors object")
	}
	desc, ok := tensorsObj.Get("layer.weight")
	if !ok {
		t.Fatal("expected layer.weight tensor descriptor")
	}
	if dtype, _ := desc.GetString("dtype"); dtype != "F32" {
		t.Errorf("dtype = %q, want F32", dtype)
	}
	shape, _ := desc.GetArray("shape")
	if len(shape) != 1 || shape[0].Number != 2 {
		t.Errorf("shape = %+v, want [2]", shape)
	}
	if _, ok := desc.Get("data_summary"); !ok {
		t.Error("expected a data_summary for an F32 tensor")
	}
}

func TestParseSafetensors_SkipsSummaryForHalfPrecision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "half.safetensors")

	writeSafetensorsFile(t, path,
		map[string][]byte{"w": {0x00, 0x3c}},
		map[string][]int{"w": {1}},
		map[string]string{"w": "F16"},
	)

	v, err := ParseSafetensors(path)
	if err != nil {
		t.Fatalf("ParseSafetensors: %v", err)
	}
	tensorsObj, _ := v.Get("tensors")
	desc, _ := tensorsObj.Get("w")
	if _, ok := desc.Get("data_summary"); ok {
		t.Error("F16 tensors should not carry a data_summary")
	}
}

func TestParseSafetensors_MissingFile(t *testing.T) {
	_, err := ParseSafetensors(filepath.Join(t.TempDir(), "missing.safetensors"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected a *ParseError, got %T: %v", err, err)
	}
}

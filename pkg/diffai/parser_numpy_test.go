// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writeMinimalNPY(t *testing.T, path string) {
	t.Helper()
	header := `{'descr': '<f4', 'fortran_order': False, 'shape': (2,), }`
	pad := (16 - (10+len(header))%16) % 16
	header += string(bytes.Repeat([]byte{' '}, pad)) + "\n"

	var buf bytes.Buffer
	buf.WriteString(npyMagic)
	buf.Write([]byte{1, 0})
	var lenBytes [2]byte
	binary.LittleEndian.PutUint16(lenBytes[:], uint16(len(header)))
	buf.Write(lenBytes[:])
	buf.WriteString(header)
	binary.Write(&buf, binary.LittleEndian, []float32{1, 2})

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write npy fixture: %v", err)
	}
}

func TestParseNumPy_ValidMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "array.npy")
	writeMinimalNPY(t, path)

	v, err := ParseNumPy(path)
	if err != nil {
		t.Fatalf("ParseNumPy: %v", err)
	}
	if mt, _ := v.GetString("model_type"); mt != "numpy" {
		t.Errorf("model_type = %q, want numpy", mt)
	}
}

func TestParseNumPy_RejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.npy")
	if err := os.WriteFile(path, []byte("not an npy file at all"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := ParseNumPy(path); err == nil {
		t.Fatal("expected an error for a bad magic header")
	}
}

func writeNPZArchive(t *testing.T, path string, members map[string][]byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create npz fixture: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, data := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
}

func TestParseNumPyArchive_ListsMemberNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.npz")

	var npyBuf bytes.Buffer
	header := `{'descr': '<f4', 'fortran_order': False, 'shape': (1,), }`
	pad := (16 - (10+len(header))%16) % 16
	header += string(bytes.Repeat([]byte{' '}, pad)) + "\n"
	npyBuf.WriteString(npyMagic)
	npyBuf.Write([]byte{1, 0})
	var lenBytes [2]byte
	binary.LittleEndian.PutUint16(lenBytes[:], uint16(len(header)))
	npyBuf.Write(lenBytes[:])
	npyBuf.WriteString(header)
	binary.Write(&npyBuf, binary.LittleEndian, []float32{1})

	writeNPZArchive(t, path, map[string][]byte{
		"weights.npy": npyBuf.Bytes(),
	})

	v, err := ParseNumPyArchive(path)
	if err != nil {
		t.Fatalf("ParseNumPyArchive: %v", err)
	}
	if mt, _ := v.GetString("model_type"); mt != "numpy_archive" {
		t.Errorf("model_type = %q, want numpy_archive", mt)
	}
	arrays, ok := v.Get("arrays")
	if !ok {
		t.Fatal("expected an arrays object")
	}
	if _, ok := arrays.Get("weights"); !ok {
		t.Errorf("expected member %q in arrays, got %+v", "weights", arrays)
	}
}

func TestParseNumPyArchive_MissingFile(t *testing.T) {
	_, err := ParseNumPyArchive(filepath.Join(t.TempDir(), "missing.npz"))
	if err == nil {
		t.Fatal("expected an error for a missing archive")
	}
}

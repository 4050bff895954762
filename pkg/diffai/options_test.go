// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"errors"
	"testing"
)

func TestNewOptions_CompilesIgnoreRegex(t *testing.T) {
	opts, err := NewOptions(nil, "", "^(epoch|step)$", "", "json")
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}
	if !opts.ignoresKey("epoch") || !opts.ignoresKey("step") {
		t.Error("expected epoch and step to be ignored")
	}
	if opts.ignoresKey("loss") {
		t.Error("loss should not match the ignore pattern")
	}
}

func TestNewOptions_MalformedRegex(t *testing.T) {
	_, err := NewOptions(nil, "", "(", "", "")
	if err == nil {
		t.Fatal("expected an error for an unclosed group")
	}
	var optErr *InvalidOptionError
	if !errors.As(err, &optErr) {
		t.Fatalf("expected an *InvalidOptionError, got %T: %v", err, err)
	}
	if optErr.Name != "ignore_keys_regex" {
		t.Errorf("option name = %q, want ignore_keys_regex", optErr.Name)
	}
}

func TestOptions_NumbersEqual(t *testing.T) {
	cases := []struct {
		name    string
		epsilon *float64
		a, b    float64
		want    bool
	}{
		{"exact match without epsilon", nil, 1.5, 1.5, true},
		{"mismatch without epsilon", nil, 1.5, 1.5000001, false},
		{"within epsilon", Float64Ptr(0.01), 1.0, 1.005, true},
		{"at epsilon boundary", Float64Ptr(0.005), 0.0, 0.005, true},
		{"beyond epsilon", Float64Ptr(0.001), 1.0, 1.005, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := Options{Epsilon: c.epsilon}
			if got := o.numbersEqual(c.a, c.b); got != c.want {
				t.Errorf("numbersEqual(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestUnsupportedFormatError_NamesExtension(t *testing.T) {
	_, err := DetectFormat("weights.ckpt")
	if err == nil {
		t.Fatal("expected an error")
	}
	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected an *UnsupportedFormatError, got %T", err)
	}
	if ufe.Extension != "ckpt" {
		t.Errorf("extension = %q, want ckpt", ufe.Extension)
	}
	if len(ufe.Accepted) == 0 {
		t.Error("expected the accepted extension set to be populated")
	}
}

func TestParseError_Unwrap(t *testing.T) {
	cause := errors.New("short read")
	err := &ParseError{Format: FormatSafetensors, Path: "x.safetensors", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("expected ParseError to unwrap to its cause")
	}
}

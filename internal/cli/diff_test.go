// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestDiffCmd_UnsupportedFormat(t *testing.T) {
	ro := &RootOpts{Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}}
	cmd := newRootCmd("test", ro)

	_, _, err := execute(cmd, "diff", "a.bogus", "b.bogus")
	if err == nil {
		t.Fatal("expected an error for unsupported extensions")
	}
}

func TestDiffCmd_InvalidIgnoreRegex(t *testing.T) {
	ro := &RootOpts{Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}}
	cmd := newRootCmd("test", ro)

	_, _, err := execute(cmd, "diff", "--ignore-keys-regex", "(", "a.safetensors", "b.safetensors")
	if err == nil {
		t.Fatal("expected an error for a malformed ignore-keys-regex")
	}
}

func TestDiffCmd_UnknownOutputFormat(t *testing.T) {
	// Exercises renderResults' default branch directly; parsing two
	// nonexistent safetensors files would fail before rendering is reached.
	if err := renderResults(&cobra.Command{}, "bogus", nil); err == nil {
		t.Fatal("expected an error for an unknown output format")
	}
}

func TestRunRoot_ExitCodes(t *testing.T) {
	t.Run("success maps to 0", func(t *testing.T) {
		cmd := &cobra.Command{RunE: func(*cobra.Command, []string) error { return nil }}
		code, err := runRoot(cmd)
		if err != nil || code != 0 {
			t.Errorf("got (%d, %v), want (0, nil)", code, err)
		}
	})

	t.Run("exitCodeError maps to its code", func(t *testing.T) {
		cmd := &cobra.Command{RunE: func(*cobra.Command, []string) error { return &exitCodeError{code: 1} }}
		code, err := runRoot(cmd)
		if err != nil || code != 1 {
			t.Errorf("got (%d, %v), want (1, nil)", code, err)
		}
	})

	t.Run("plain error maps to 2", func(t *testing.T) {
		cmd := &cobra.Command{RunE: func(*cobra.Command, []string) error { return errPlain("boom") }}
		code, err := runRoot(cmd)
		if err == nil || code != 2 {
			t.Errorf("got (%d, %v), want (2, non-nil)", code, err)
		}
	})
}

type errPlain string

func (e errPlain) Error() string { return string(e) }

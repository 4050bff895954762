// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

// Package cli is the thin command-line front end around pkg/diffai:
// argument parsing, exit-code mapping, and rendering live here, outside
// the core engine. It never interprets the difference stream itself; it
// only collects Options, parses both inputs (honoring any format
// override), calls diffai.DiffTrees, and hands the result to
// internal/render.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// RootOpts holds flags shared across the command tree, threaded into every
// newXxxCmd constructor.
type RootOpts struct {
	Quiet   bool
	Verbose bool
	Out     io.Writer
	ErrOut  io.Writer
}

// Execute builds the root command and runs it, returning the process exit
// code: 0 (no differences), 1 (differences found), 2 (error).
func Execute(version string) int {
	ro := &RootOpts{Out: os.Stdout, ErrOut: os.Stderr}
	root := newRootCmd(version, ro)
	code, err := runRoot(root)
	if err != nil {
		fmt.Fprintln(ro.ErrOut, "error:", err)
		return 2
	}
	return code
}

// exitCoder lets a subcommand report the 0/1 distinction (no differences
// vs. differences found) without os.Exit inside RunE, which would bypass
// cobra's usual error printing and make the command untestable.
type exitCoder interface {
	ExitCode() int
}

type exitCodeError struct{ code int }

func (e *exitCodeError) Error() string { return fmt.Sprintf("exit code %d", e.code) }
func (e *exitCodeError) ExitCode() int { return e.code }

func runRoot(root *cobra.Command) (int, error) {
	err := root.Execute()
	if err == nil {
		return 0, nil
	}
	if ec, ok := err.(exitCoder); ok {
		return ec.ExitCode(), nil
	}
	return 2, err
}

func newRootCmd(version string, ro *RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "diffai",
		Short:         "Semantic, numerically aware diffs for ML model artifacts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(ro.Out)
	cmd.SetErr(ro.ErrOut)
	cmd.PersistentFlags().BoolVarP(&ro.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.PersistentFlags().BoolVarP(&ro.Verbose, "verbose", "v", false, "print timing and progress detail")

	cmd.AddCommand(newDiffCmd(ro))
	return cmd
}

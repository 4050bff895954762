// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kako-jun/diffai-go/internal/render"
	"github.com/kako-jun/diffai-go/pkg/diffai"
)

func newDiffCmd(ro *RootOpts) *cobra.Command {
	var (
		epsilon         float64
		arrayIDKey      string
		ignoreKeysRegex string
		pathFilter      string
		outputFormat    string
		formatA         string
		formatB         string
	)

	cmd := &cobra.Command{
		Use:   "diff <pathA> <pathB>",
		Short: "Compare two ML model artifacts and report their differences",
		Long: `diff compares two model checkpoints, tensor archives, or training
snapshots (PyTorch, Safetensors, NumPy, NumPy archives, MATLAB) and prints a
structured, numerically aware report of their differences: structural
changes first, followed by architecture, memory, convergence, quantization,
and the rest of the fixed ML analyzer pipeline.

Examples:
  diffai diff model_v1.safetensors model_v2.safetensors
  diffai diff --epsilon 1e-4 old.pt new.pt
  diffai diff --array-id-key id --format json a.safetensors b.safetensors`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var epsPtr *float64
			if cmd.Flags().Changed("epsilon") {
				epsPtr = diffai.Float64Ptr(epsilon)
			}
			opts, err := diffai.NewOptions(epsPtr, arrayIDKey, ignoreKeysRegex, pathFilter, outputFormat)
			if err != nil {
				return err
			}

			pathA, pathB := args[0], args[1]
			start := time.Now()
			results, err := runDiff(pathA, pathB, formatA, formatB, opts)
			if err != nil {
				return err
			}
			if ro.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "compared %s and %s in %s (%d records)\n",
					pathA, pathB, time.Since(start).Round(time.Millisecond), len(results))
			}

			if !ro.Quiet {
				if err := renderResults(cmd, outputFormat, results); err != nil {
					return err
				}
			}
			if len(results) > 0 {
				return &exitCodeError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "absolute numeric tolerance for scalar and tensor-stat comparisons")
	cmd.Flags().StringVar(&arrayIDKey, "array-id-key", "", "enable identity-keyed array comparison on this field")
	cmd.Flags().StringVar(&ignoreKeysRegex, "ignore-keys-regex", "", "regex matched against leaf key names; matches are pruned from both trees")
	cmd.Flags().StringVar(&pathFilter, "path-filter", "", "only emit records whose path contains this substring")
	cmd.Flags().StringVar(&outputFormat, "format", "human", "output format: human, json, yaml, unified")
	cmd.Flags().StringVar(&formatA, "format-a", "", "override format detection for pathA (pytorch, safetensors, numpy, numpy_archive, matlab)")
	cmd.Flags().StringVar(&formatB, "format-b", "", "override format detection for pathB")

	return cmd
}

// runDiff parses both inputs (honoring any format override) and runs the
// engine façade, mirroring diffai.Diff but allowing the CLI's --format-a /
// --format-b flags to override format detection.
func runDiff(pathA, pathB, formatA, formatB string, opts diffai.Options) ([]diffai.DiffResult, error) {
	treeA, err := parseWithOverride(pathA, formatA)
	if err != nil {
		return nil, err
	}
	treeB, err := parseWithOverride(pathB, formatB)
	if err != nil {
		return nil, err
	}
	return diffai.DiffTrees(treeA, treeB, opts), nil
}

func parseWithOverride(path, formatOverride string) (diffai.Value, error) {
	if formatOverride == "" {
		format, err := diffai.DetectFormat(path)
		if err != nil {
			return diffai.Value{}, err
		}
		return diffai.ParseFormat(format, path)
	}
	return diffai.ParseFormat(diffai.Format(formatOverride), path)
}

func renderResults(cmd *cobra.Command, outputFormat string, results []diffai.DiffResult) error {
	w := cmd.OutOrStdout()
	switch outputFormat {
	case "", "human":
		return render.RenderHuman(w, results)
	case "json":
		return render.RenderJSON(w, results)
	case "yaml":
		return render.RenderYAML(w, results)
	case "unified":
		return render.RenderUnified(w, results)
	default:
		return fmt.Errorf("unknown output format %q: want human, json, yaml, or unified", outputFormat)
	}
}

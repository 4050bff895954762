// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

// Package render turns a diffai difference stream into one of the four
// supported output forms: human-readable text, a JSON array, a YAML
// list, and a unified-diff-style text rendering. None of these formats is
// consumed by the core engine; OutputFormat is purely a hint the CLI front
// end resolves into a call to one of these functions.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kako-jun/diffai-go/pkg/diffai"
)

// record is the flat, tag-friendly shape every DiffResult is projected into
// before being handed to encoding/json or yaml.v3, neither of which
// understands diffai.DiffResult's sparse Kind-discriminated fields.
type record struct {
	Kind     string `json:"kind" yaml:"kind"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Value    any    `json:"value,omitempty" yaml:"value,omitempty"`
	Old      any    `json:"old,omitempty" yaml:"old,omitempty"`
	New      any    `json:"new,omitempty" yaml:"new,omitempty"`
	OldKind  string `json:"old_kind,omitempty" yaml:"old_kind,omitempty"`
	NewKind  string `json:"new_kind,omitempty" yaml:"new_kind,omitempty"`
	OldShape []int  `json:"old_shape,omitempty" yaml:"old_shape,omitempty"`
	NewShape []int  `json:"new_shape,omitempty" yaml:"new_shape,omitempty"`
	OldStats *stats `json:"old_stats,omitempty" yaml:"old_stats,omitempty"`
	NewStats *stats `json:"new_stats,omitempty" yaml:"new_stats,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	OldSummary string `json:"old_summary,omitempty" yaml:"old_summary,omitempty"`
	NewSummary string `json:"new_summary,omitempty" yaml:"new_summary,omitempty"`
	Key      string `json:"key,omitempty" yaml:"key,omitempty"`
	OldValue string `json:"old_value,omitempty" yaml:"old_value,omitempty"`
	NewValue string `json:"new_value,omitempty" yaml:"new_value,omitempty"`
}

type stats struct {
	Mean float64 `json:"mean" yaml:"mean"`
	Std  float64 `json:"std" yaml:"std"`
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
}

func toRecord(r diffai.DiffResult) record {
	out := record{
		Kind: string(r.Kind),
		Path: r.Path.String(),
	}
	switch r.Kind {
	case diffai.ResultAdded:
		out.Value = r.Value.Interface()
	case diffai.ResultRemoved:
		out.Value = r.Value.Interface()
	case diffai.ResultModified:
		out.Old = r.Old.Interface()
		out.New = r.New.Interface()
	case diffai.ResultTypeChanged:
		out.Old = r.Old.Interface()
		out.New = r.New.Interface()
		out.OldKind = r.OldKind.String()
		out.NewKind = r.NewKind.String()
	case diffai.ResultTensorShapeChanged:
		out.OldShape = shapeInts(r.OldShape)
		out.NewShape = shapeInts(r.NewShape)
	case diffai.ResultTensorStatsChanged:
		out.OldStats = &stats{Mean: r.OldStats.Mean, Std: r.OldStats.Std, Min: r.OldStats.Min, Max: r.OldStats.Max}
		out.NewStats = &stats{Mean: r.NewStats.Mean, Std: r.NewStats.Std, Min: r.NewStats.Min, Max: r.NewStats.Max}
	case diffai.ResultModelArchitectureChanged:
		out.Category = r.Category
		out.OldSummary = r.OldSummary
		out.NewSummary = r.NewSummary
	case diffai.ResultActivationFunctionChanged:
		out.Key = r.Key
		out.OldValue = r.OldValue
		out.NewValue = r.NewValue
	}
	return out
}

func shapeInts(dims []diffai.Value) []int {
	if dims == nil {
		return nil
	}
	out := make([]int, len(dims))
	for i, d := range dims {
		out[i] = int(d.Number)
	}
	return out
}

// RenderJSON encodes results as a JSON array, one object per record.
func RenderJSON(w io.Writer, results []diffai.DiffResult) error {
	records := make([]record, len(results))
	for i, r := range results {
		records[i] = toRecord(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// RenderYAML encodes results as a YAML sequence, one document-level list
// entry per record.
func RenderYAML(w io.Writer, results []diffai.DiffResult) error {
	records := make([]record, len(results))
	for i, r := range results {
		records[i] = toRecord(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(records)
}

// RenderHuman writes one line per record in a terse, diff-tool-like form.
func RenderHuman(w io.Writer, results []diffai.DiffResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "no differences")
		return err
	}
	for _, r := range results {
		line, err := humanLine(r)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func humanLine(r diffai.DiffResult) (string, error) {
	switch r.Kind {
	case diffai.ResultAdded:
		return fmt.Sprintf("+ %s: %v", r.Path, r.Value.Interface()), nil
	case diffai.ResultRemoved:
		return fmt.Sprintf("- %s: %v", r.Path, r.Value.Interface()), nil
	case diffai.ResultModified:
		return fmt.Sprintf("~ %s: %v -> %v", r.Path, r.Old.Interface(), r.New.Interface()), nil
	case diffai.ResultTypeChanged:
		return fmt.Sprintf("! %s: %s -> %s", r.Path, r.OldKind, r.NewKind), nil
	case diffai.ResultTensorShapeChanged:
		return fmt.Sprintf("~ %s: shape %v -> %v", r.Path, shapeInts(r.OldShape), shapeInts(r.NewShape)), nil
	case diffai.ResultTensorStatsChanged:
		return fmt.Sprintf("~ %s: stats mean %.6g -> %.6g, std %.6g -> %.6g", r.Path,
			r.OldStats.Mean, r.NewStats.Mean, r.OldStats.Std, r.NewStats.Std), nil
	case diffai.ResultModelArchitectureChanged:
		return fmt.Sprintf("* %s: %s -> %s", r.Category, r.OldSummary, r.NewSummary), nil
	case diffai.ResultActivationFunctionChanged:
		return fmt.Sprintf("* %s: %s -> %s", r.Key, r.OldValue, r.NewValue), nil
	default:
		return "", fmt.Errorf("render: unknown result kind %q", r.Kind)
	}
}

// RenderUnified writes a unified-diff-style rendering: one "@@ path @@"
// hunk per record with -old/+new lines, the closest analogue a stream of
// path-addressed records has to a textual unified diff.
func RenderUnified(w io.Writer, results []diffai.DiffResult) error {
	for _, r := range results {
		header := r.Path.String()
		if header == "" {
			header = string(r.Kind)
		}
		if _, err := fmt.Fprintf(w, "@@ %s @@\n", header); err != nil {
			return err
		}
		switch r.Kind {
		case diffai.ResultAdded:
			fmt.Fprintf(w, "+%v\n", r.Value.Interface())
		case diffai.ResultRemoved:
			fmt.Fprintf(w, "-%v\n", r.Value.Interface())
		case diffai.ResultModified, diffai.ResultTypeChanged:
			fmt.Fprintf(w, "-%v\n+%v\n", r.Old.Interface(), r.New.Interface())
		case diffai.ResultTensorShapeChanged:
			fmt.Fprintf(w, "-shape %v\n+shape %v\n", shapeInts(r.OldShape), shapeInts(r.NewShape))
		case diffai.ResultTensorStatsChanged:
			fmt.Fprintf(w, "-mean %.6g std %.6g min %.6g max %.6g\n", r.OldStats.Mean, r.OldStats.Std, r.OldStats.Min, r.OldStats.Max)
			fmt.Fprintf(w, "+mean %.6g std %.6g min %.6g max %.6g\n", r.NewStats.Mean, r.NewStats.Std, r.NewStats.Min, r.NewStats.Max)
		case diffai.ResultModelArchitectureChanged:
			fmt.Fprintf(w, "-%s\n+%s\n", r.OldSummary, r.NewSummary)
		case diffai.ResultActivationFunctionChanged:
			fmt.Fprintf(w, "-%s\n+%s\n", r.OldValue, r.NewValue)
		}
	}
	return nil
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

// ResultKind tags the variant carried by a DiffResult. Go has no sum type,
// so DiffResult follows the same Kind-discriminated, sparse-field shape the
// teacher uses for RepoInfo's per-type pointer fields.
type ResultKind string

const (
	ResultAdded                    ResultKind = "added"
	ResultRemoved                  ResultKind = "removed"
	ResultModified                 ResultKind = "modified"
	ResultTypeChanged              ResultKind = "type_changed"
	ResultTensorShapeChanged       ResultKind = "tensor_shape_changed"
	ResultTensorStatsChanged       ResultKind = "tensor_stats_changed"
	ResultModelArchitectureChanged ResultKind = "model_architecture_changed"
	ResultActivationFunctionChanged ResultKind = "activation_function_changed"
)

// DiffResult is one element of the difference stream: either a primitive
// structural difference or a typed analyzer observation.
type DiffResult struct {
	Kind ResultKind
	Path Path

	// Added / Removed
	Value Value

	// Modified / TypeChanged
	Old Value
	New Value

	// TypeChanged
	OldKind Kind
	NewKind Kind

	// TensorShapeChanged
	OldShape []Value
	NewShape []Value

	// TensorStatsChanged
	OldStats tensorSummary
	NewStats tensorSummary

	// ModelArchitectureChanged
	Category   string
	OldSummary string
	NewSummary string

	// ActivationFunctionChanged
	Key      string
	OldValue string
	NewValue string
}

func added(path Path, v Value) DiffResult {
	return DiffResult{Kind: ResultAdded, Path: path, Value: v}
}

func removed(path Path, v Value) DiffResult {
	return DiffResult{Kind: ResultRemoved, Path: path, Value: v}
}

func modified(path Path, old, new Value) DiffResult {
	return DiffResult{Kind: ResultModified, Path: path, Old: old, New: new}
}

func typeChanged(path Path, old, new Value) DiffResult {
	return DiffResult{Kind: ResultTypeChanged, Path: path, Old: old, New: new, OldKind: old.Kind, NewKind: new.Kind}
}

func tensorShapeChanged(path Path, oldShape, newShape []Value) DiffResult {
	return DiffResult{Kind: ResultTensorShapeChanged, Path: path, OldShape: oldShape, NewShape: newShape}
}

func tensorStatsChanged(path Path, oldStats, newStats tensorSummary) DiffResult {
	return DiffResult{Kind: ResultTensorStatsChanged, Path: path, OldStats: oldStats, NewStats: newStats}
}

// modelArchitectureChanged constructs the general-purpose analyzer record.
// category identifies which analyzer produced it, so renderers and
// callers can attribute the observation without a per-analyzer type.
func modelArchitectureChanged(category, oldSummary, newSummary string) DiffResult {
	return DiffResult{Kind: ResultModelArchitectureChanged, Category: category, OldSummary: oldSummary, NewSummary: newSummary}
}

func activationFunctionChanged(key, old, new string) DiffResult {
	return DiffResult{Kind: ResultActivationFunctionChanged, Key: key, OldValue: old, NewValue: new}
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

// Package diffai compares two machine-learning model artifacts (PyTorch
// checkpoints, Safetensors containers, NumPy arrays, and MATLAB files) and
// produces a structured, numerically aware stream of differences enriched
// with ML-specific observations (architecture drift, convergence signals,
// quantization regime, memory footprint).
//
// The package is pure and synchronous: parsing, diffing, and analysis never
// perform network I/O, never mutate their inputs, and never retain state
// between calls.
//
// Example usage:
//
//	result, err := diffai.Diff("checkpoint-a.safetensors", "checkpoint-b.safetensors", diffai.Options{
//	    Epsilon: diffai.Float64Ptr(1e-4),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range result {
//	    fmt.Println(r.Path, r.Kind)
//	}
package diffai

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a short lowercase tag for the kind, used in TypeChanged
// records and rendering.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the recursive tagged union produced by every parser: V ::= Null |
// Bool | Number | String | Array[V] | Object[String->V]. Only the field
// matching Kind is meaningful; the others are zero.
type Value struct {
	Kind Kind

	Bool   bool
	Number float64
	String string
	Array  []Value
	Object map[string]Value
}

// Null is the shared representation of a Null value.
var Null = Value{Kind: KindNull}

// NewBool wraps a bool in a Value.
func NewBool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NewNumber wraps a float64 in a Value. Integers are represented losslessly
// up to 2^53 by float64 and are expected to stay within 64-bit range per the
// data model; callers needing exact 64-bit integers beyond that should keep
// the source integer alongside rather than relying on Value.Number.
func NewNumber(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// NewString wraps a string in a Value.
func NewString(s string) Value { return Value{Kind: KindString, String: s} }

// NewArray wraps a slice of Values in a Value.
func NewArray(a []Value) Value { return Value{Kind: KindArray, Array: a} }

// NewObject wraps a map of Values in a Value.
func NewObject(o map[string]Value) Value { return Value{Kind: KindObject, Object: o} }

// Get returns the value at key and whether it was present. It only makes
// sense for Object-kind values; any other kind returns (Null, false).
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Null, false
	}
	child, ok := v.Object[key]
	return child, ok
}

// GetString returns the string at key if present and string-kinded.
func (v Value) GetString(key string) (string, bool) {
	child, ok := v.Get(key)
	if !ok || child.Kind != KindString {
		return "", false
	}
	return child.String, true
}

// GetNumber returns the number at key if present and number-kinded.
func (v Value) GetNumber(key string) (float64, bool) {
	child, ok := v.Get(key)
	if !ok || child.Kind != KindNumber {
		return 0, false
	}
	return child.Number, true
}

// GetArray returns the array at key if present and array-kinded.
func (v Value) GetArray(key string) ([]Value, bool) {
	child, ok := v.Get(key)
	if !ok || child.Kind != KindArray {
		return nil, false
	}
	return child.Array, true
}

// IsTensorDescriptor reports whether v looks like a tensor descriptor: an
// Object carrying at least a "shape" array and a "dtype" string.
func (v Value) IsTensorDescriptor() bool {
	if v.Kind != KindObject {
		return false
	}
	_, hasShape := v.GetArray("shape")
	_, hasDtype := v.GetString("dtype")
	return hasShape && hasDtype
}

// Float64Ptr is a small helper for constructing Options.Epsilon instead of
// an inline address-of-literal trick at call sites.
func Float64Ptr(f float64) *float64 { return &f }

// Interface converts v into plain Go values (nil, bool, float64, string,
// []any, map[string]any) suitable for encoding/json or gopkg.in/yaml.v3,
// which neither understands Value's tagged-union shape directly. Renderers
// are the only consumers; the core package itself never calls this.
func (v Value) Interface() any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Number
	case KindString:
		return v.String
	case KindArray:
		out := make([]any, len(v.Array))
		for i, child := range v.Array {
			out[i] = child.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.Object))
		for k, child := range v.Object {
			out[k] = child.Interface()
		}
		return out
	default:
		return nil
	}
}

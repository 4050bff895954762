// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"sort"
	"strconv"
)

// structuralDiff walks two normalized Value trees in parallel and emits
// primitive difference records (Added/Removed/Modified/TypeChanged plus the
// tensor-aware shortcuts), subject to opts. It never mutates its inputs.
func structuralDiff(a, b Value, opts Options) []DiffResult {
	d := &differ{opts: opts}
	d.walk(Root, a, b)
	return d.out
}

type differ struct {
	opts Options
	out  []DiffResult
}

func (d *differ) emit(r DiffResult) {
	if !r.Path.Contains(d.opts.PathFilter) {
		return
	}
	d.out = append(d.out, r)
}

func (d *differ) walk(path Path, a, b Value) {
	if a.IsTensorDescriptor() && b.IsTensorDescriptor() {
		if d.walkTensor(path, a, b) {
			return
		}
	}

	if a.Kind != b.Kind {
		d.emit(typeChanged(path, a, b))
		return
	}

	switch a.Kind {
	case KindObject:
		d.walkObject(path, a, b)
	case KindArray:
		d.walkArray(path, a, b)
	case KindNumber:
		if !d.opts.numbersEqual(a.Number, b.Number) {
			d.emit(modified(path, a, b))
		}
	case KindString:
		if a.String != b.String {
			d.emit(modified(path, a, b))
		}
	case KindBool:
		if a.Bool != b.Bool {
			d.emit(modified(path, a, b))
		}
	case KindNull:
		// both null: equal, nothing to emit
	}
}

// walkTensor applies the tensor-aware shortcut: a shape mismatch
// yields TensorShapeChanged and suppresses any TensorStatsChanged for the
// same path; identical shape with differing data_summary
// yields TensorStatsChanged. It returns true when it fully handled the pair.
func (d *differ) walkTensor(path Path, a, b Value) bool {
	aShape, _ := a.GetArray("shape")
	bShape, _ := b.GetArray("shape")
	if !shapesEqual(aShape, bShape) {
		d.emit(tensorShapeChanged(path, aShape, bShape))
		return true
	}

	aSummary, aHas := a.Get("data_summary")
	bSummary, bHas := b.Get("data_summary")
	if !aHas || !bHas {
		return true
	}
	as := valueToSummary(aSummary)
	bs := valueToSummary(bSummary)
	if !d.opts.numbersEqual(as.Mean, bs.Mean) ||
		!d.opts.numbersEqual(as.Std, bs.Std) ||
		!d.opts.numbersEqual(as.Min, bs.Min) ||
		!d.opts.numbersEqual(as.Max, bs.Max) {
		d.emit(tensorStatsChanged(path, as, bs))
	}
	return true
}

func valueToSummary(v Value) tensorSummary {
	mean, _ := v.GetNumber("mean")
	std, _ := v.GetNumber("std")
	min, _ := v.GetNumber("min")
	max, _ := v.GetNumber("max")
	return tensorSummary{Mean: mean, Std: std, Min: min, Max: max}
}

func shapesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Number != b[i].Number {
			return false
		}
	}
	return true
}

func (d *differ) walkObject(path Path, a, b Value) {
	keys := make(map[string]bool)
	for k := range a.Object {
		keys[k] = true
	}
	for k := range b.Object {
		keys[k] = true
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	for _, k := range sorted {
		if d.opts.ignoresKey(k) {
			continue
		}
		childPath := path.Child(k)
		av, aOK := a.Object[k]
		bv, bOK := b.Object[k]
		switch {
		case aOK && bOK:
			d.walk(childPath, av, bv)
		case aOK:
			d.emit(removed(childPath, av))
		case bOK:
			d.emit(added(childPath, bv))
		}
	}
}

func (d *differ) walkArray(path Path, a, b Value) {
	if d.opts.ArrayIDKey != "" {
		d.walkArrayByID(path, a.Array, b.Array)
		return
	}
	d.walkArrayPositional(path, a.Array, b.Array)
}

func (d *differ) walkArrayPositional(path Path, a, b []Value) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		childPath := path.Index(i)
		switch {
		case i < len(a) && i < len(b):
			d.walk(childPath, a[i], b[i])
		case i < len(a):
			d.emit(removed(childPath, a[i]))
		default:
			d.emit(added(childPath, b[i]))
		}
	}
}

// walkArrayByID treats arrays of objects as sets keyed by opts.ArrayIDKey.
// Elements missing the key fall back to positional comparison against the
// other side's elements that also lack the key, in original order;
// elements with an unmatched id are reported as Removed/Added.
func (d *differ) walkArrayByID(path Path, a, b []Value) {
	key := d.opts.ArrayIDKey

	aByID := make(map[string]Value)
	var aPositional []Value
	for _, v := range a {
		if id, ok := elementID(v, key); ok {
			aByID[id] = v
		} else {
			aPositional = append(aPositional, v)
		}
	}

	bByID := make(map[string]Value)
	var bPositional []Value
	matchedIDs := make(map[string]bool)
	var bIDOrder []string
	for _, v := range b {
		if id, ok := elementID(v, key); ok {
			bByID[id] = v
			bIDOrder = append(bIDOrder, id)
		} else {
			bPositional = append(bPositional, v)
		}
	}

	ids := make([]string, 0, len(aByID))
	for id := range aByID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		av := aByID[id]
		if bv, ok := bByID[id]; ok {
			d.walk(path.IdentityIndex(id), av, bv)
			matchedIDs[id] = true
		} else {
			d.emit(removed(path.IdentityIndex(id), av))
		}
	}
	for _, id := range bIDOrder {
		if !matchedIDs[id] {
			d.emit(added(path.IdentityIndex(id), bByID[id]))
		}
	}

	d.walkArrayPositional(path, aPositional, bPositional)
}

// elementID extracts the string form of v's key field, if present.
func elementID(v Value, key string) (string, bool) {
	child, ok := v.Get(key)
	if !ok {
		return "", false
	}
	switch child.Kind {
	case KindString:
		return child.String, true
	case KindNumber:
		return formatID(child.Number), true
	default:
		return "", false
	}
}

func formatID(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"fmt"
	"sort"
	"strings"
)

const memoryBreakdownThresholdBytes = 1024

// analyzeMemory computes a byte estimate per tree (sum of shape products
// times dtype width) and emits memory_analysis with before/after
// bytes, plus a memory_breakdown record when the delta exceeds 1024 bytes.
func analyzeMemory(a, b Value, stream []DiffResult) []DiffResult {
	oldBytes := totalTensorBytes(a)
	newBytes := totalTensorBytes(b)
	if oldBytes == newBytes {
		return stream
	}

	stream = append(stream, modelArchitectureChanged(
		"memory_analysis",
		fmt.Sprintf("memory_usage: %d bytes", oldBytes),
		fmt.Sprintf("memory_usage: %d bytes", newBytes),
	))

	delta := newBytes - oldBytes
	if delta < 0 {
		delta = -delta
	}
	if delta > memoryBreakdownThresholdBytes {
		if breakdown := memoryBreakdown(a, b); breakdown != "" {
			stream = append(stream, modelArchitectureChanged("memory_breakdown", "previous", breakdown))
		}
	}
	return stream
}

func totalTensorBytes(tree Value) int64 {
	var total int64
	walkTensorKeys(tree, weightOrBiasKey, func(_ Path, _ string, v Value) {
		total += tensorByteSize(v)
	})
	return total
}

// memoryBreakdown reports per-key byte deltas for tensors whose size
// changed, using this package's byte-estimate model.
func memoryBreakdown(a, b Value) string {
	oldSizes := make(map[string]int64)
	walkTensorKeys(a, weightOrBiasKey, func(path Path, _ string, v Value) {
		oldSizes[path.String()] = tensorByteSize(v)
	})
	newSizes := make(map[string]int64)
	walkTensorKeys(b, weightOrBiasKey, func(path Path, _ string, v Value) {
		newSizes[path.String()] = tensorByteSize(v)
	})

	keys := make(map[string]bool)
	for k := range oldSizes {
		keys[k] = true
	}
	for k := range newSizes {
		keys[k] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var parts []string
	for _, k := range sorted {
		oldSize, newSize := oldSizes[k], newSizes[k]
		if oldSize != newSize {
			parts = append(parts, fmt.Sprintf("%s: %+d bytes (%d -> %d)", k, newSize-oldSize, oldSize, newSize))
		}
	}
	return strings.Join(parts, ", ")
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"fmt"
	"sort"
	"strings"
)

// analyzeArchitecture summarizes {layer count, total parameters, sorted set
// of layer-type tags} by scanning keys matching *.weight / *.bias, emitting
// one ModelArchitectureChanged("model", old, new) iff the summaries differ
//.
func analyzeArchitecture(a, b Value, stream []DiffResult) []DiffResult {
	oldSummary := architectureSummary(a)
	newSummary := architectureSummary(b)
	if oldSummary != newSummary {
		stream = append(stream, modelArchitectureChanged("model", oldSummary, newSummary))
	}
	return stream
}

func architectureSummary(tree Value) string {
	layerCount := 0
	totalParams := int64(0)
	types := make(map[string]bool)

	walkTensorKeys(tree, weightOrBiasKey, func(_ Path, key string, v Value) {
		layerCount++
		if t, ok := extractLayerType(key); ok {
			types[t] = true
		}
		if shape, ok := v.GetArray("shape"); ok {
			totalParams += shapeElementCount(shape)
		}
	})

	parts := []string{
		fmt.Sprintf("layers: %d", layerCount),
		fmt.Sprintf("parameters: %d", totalParams),
	}
	if len(types) > 0 {
		sorted := make([]string, 0, len(types))
		for t := range types {
			sorted = append(sorted, t)
		}
		sort.Strings(sorted)
		parts = append(parts, fmt.Sprintf("types: [%s]", strings.Join(sorted, ", ")))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

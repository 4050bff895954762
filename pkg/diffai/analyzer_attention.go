// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

// analyzeAttention is a reserved pipeline stage for attention-head analysis
// (multi-head pattern drift, head pruning, attention-score statistics). It
// currently contributes nothing to the stream; it stays in the fixed
// pipeline order so a future implementation slots in without reordering
// the other analyzers.
func analyzeAttention(a, b Value, stream []DiffResult) []DiffResult {
	return stream
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

// analyzeEnsemble is a reserved pipeline stage for ensemble-model analysis
// (member-count drift, voting-weight changes). It currently contributes
// nothing to the stream; it stays in the fixed pipeline order so a future
// implementation slots in without reordering the other analyzers.
func analyzeEnsemble(a, b Value, stream []DiffResult) []DiffResult {
	return stream
}

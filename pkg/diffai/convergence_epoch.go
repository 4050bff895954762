// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import "fmt"

// extractEpochInfo reads a numeric "epoch" field, if present.
func extractEpochInfo(tree Value) (float64, bool) {
	return tree.GetNumber("epoch")
}

// analyzeEpochProgression reports forward epoch movement only; a flat or
// regressed epoch count produces no observation.
func analyzeEpochProgression(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldEpoch, oldHas := extractEpochInfo(a)
	newEpoch, newHas := extractEpochInfo(b)
	if !oldHas || !newHas || newEpoch <= oldEpoch {
		return "", "", false
	}

	epochDiff := newEpoch - oldEpoch
	var rate string
	switch {
	case epochDiff == 1.0:
		rate = "normal"
	case epochDiff < 1.0:
		rate = "fractional"
	default:
		rate = "skipped_epochs"
	}

	oldSummary = fmt.Sprintf("epoch: %g", oldEpoch)
	newSummary = fmt.Sprintf("epoch: %g, progression: %s (%+.1f)", newEpoch, rate, epochDiff)
	return oldSummary, newSummary, true
}

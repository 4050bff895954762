// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import "fmt"

const learningRateRelativeThreshold = 0.10

// learningRateKeys are checked in order; the first key present on both
// sides wins.
var learningRateKeys = []string{"lr", "learning_rate", "current_lr"}

// analyzeLearningRate reports changes in lr / learning_rate / current_lr
// exceeding 10% relative to the old value.
func analyzeLearningRate(a, b Value, stream []DiffResult) []DiffResult {
	for _, key := range learningRateKeys {
		oldLR, oldOK := a.GetNumber(key)
		newLR, newOK := b.GetNumber(key)
		if !oldOK || !newOK || oldLR == 0 {
			continue
		}
		relative := (newLR - oldLR) / oldLR
		if relative < 0 {
			relative = -relative
		}
		// The small tolerance keeps a change of exactly 10% (e.g. 0.01 -> 0.009,
		// which computes to 0.10000000000000009) from counting as exceeding it.
		if relative > learningRateRelativeThreshold+1e-12 {
			stream = append(stream, modelArchitectureChanged(
				"learning_rate_analysis",
				fmt.Sprintf("%s: %g", key, oldLR),
				fmt.Sprintf("%s: %g", key, newLR),
			))
		}
		return stream
	}
	return stream
}

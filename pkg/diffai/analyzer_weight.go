// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import "fmt"

const (
	weightStatsThreshold   = 0.001
	weightSparsityThreshold = 0.01
)

// analyzeWeightDistribution reports mean/std drift, init-method string
// change, and sparsity change.
func analyzeWeightDistribution(a, b Value, stream []DiffResult) []DiffResult {
	if oldSummary, newSummary, ok := weightDistributionStats(a, b); ok {
		stream = append(stream, modelArchitectureChanged("weight_distributions", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := weightInitialization(a, b); ok {
		stream = append(stream, modelArchitectureChanged("weight_initialization", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := weightSparsity(a, b); ok {
		stream = append(stream, modelArchitectureChanged("weight_sparsity", oldSummary, newSummary))
	}
	return stream
}

func weightMeanStd(tree Value) (mean, std float64) {
	mean, _ = tree.GetNumber("weight_mean")
	if std, ok := tree.GetNumber("weight_std"); ok {
		return mean, std
	}
	return mean, 1.0
}

func weightDistributionStats(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldMean, oldStd := weightMeanStd(a)
	newMean, newStd := weightMeanStd(b)
	if abs(oldMean-newMean) <= weightStatsThreshold && abs(oldStd-newStd) <= weightStatsThreshold {
		return "", "", false
	}
	return fmt.Sprintf("weight_stats: mean=%.4f, std=%.4f", oldMean, oldStd),
		fmt.Sprintf("weight_stats: mean=%.4f, std=%.4f", newMean, newStd), true
}

func weightInitMethod(tree Value) string {
	if s, ok := tree.GetString("weight_init"); ok {
		return s
	}
	return "unknown"
}

func weightInitialization(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldInit := weightInitMethod(a)
	newInit := weightInitMethod(b)
	if oldInit == newInit {
		return "", "", false
	}
	return fmt.Sprintf("weight_init: %s", oldInit), fmt.Sprintf("weight_init: %s", newInit), true
}

func weightSparsity(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldSparsity, _ := a.GetNumber("weight_sparsity")
	newSparsity, _ := b.GetNumber("weight_sparsity")
	if abs(oldSparsity-newSparsity) <= weightSparsityThreshold {
		return "", "", false
	}
	return fmt.Sprintf("sparsity: %.1f%%", oldSparsity*100.0), fmt.Sprintf("sparsity: %.1f%%", newSparsity*100.0), true
}

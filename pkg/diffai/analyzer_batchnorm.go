// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"fmt"
	"strings"
)

const batchNormStatsThreshold = 0.01

// analyzeBatchNorm reports layer count, (momentum, eps), and
// (running_mean, running_var) changes.
func analyzeBatchNorm(a, b Value, stream []DiffResult) []DiffResult {
	if oldSummary, newSummary, ok := batchNormLayers(a, b); ok {
		stream = append(stream, modelArchitectureChanged("batch_normalization_layers", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := batchNormParameters(a, b); ok {
		stream = append(stream, modelArchitectureChanged("batch_normalization_parameters", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := batchNormStatistics(a, b); ok {
		stream = append(stream, modelArchitectureChanged("batch_normalization_statistics", oldSummary, newSummary))
	}
	return stream
}

func countBatchNormLayers(tree Value) int {
	if tree.Kind != KindObject {
		return 0
	}
	count := 0
	for key := range tree.Object {
		if strings.Contains(key, "batch_norm") || strings.Contains(key, "bn") || strings.Contains(key, "BatchNorm") {
			count++
		}
	}
	return count
}

func batchNormLayers(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldCount := countBatchNormLayers(a)
	newCount := countBatchNormLayers(b)
	if oldCount == newCount {
		return "", "", false
	}
	return fmt.Sprintf("batch_norm_layers: %d", oldCount), fmt.Sprintf("batch_norm_layers: %d", newCount), true
}

func batchNormMomentumEps(tree Value) (momentum, eps float64) {
	momentum = 0.1
	eps = 1e-5
	if v, ok := tree.GetNumber("momentum"); ok {
		momentum = v
	}
	if v, ok := tree.GetNumber("eps"); ok {
		eps = v
	}
	return
}

func batchNormParameters(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldMomentum, oldEps := batchNormMomentumEps(a)
	newMomentum, newEps := batchNormMomentumEps(b)
	if oldMomentum == newMomentum && oldEps == newEps {
		return "", "", false
	}
	return fmt.Sprintf("bn_params: momentum=%.3f, eps=%.6f", oldMomentum, oldEps),
		fmt.Sprintf("bn_params: momentum=%.3f, eps=%.6f", newMomentum, newEps), true
}

func batchNormRunningStats(tree Value) (mean, variance float64) {
	mean = 0.0
	variance = 1.0
	if v, ok := tree.GetNumber("running_mean"); ok {
		mean = v
	}
	if v, ok := tree.GetNumber("running_var"); ok {
		variance = v
	}
	return
}

func batchNormStatistics(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldMean, oldVar := batchNormRunningStats(a)
	newMean, newVar := batchNormRunningStats(b)
	if abs(oldMean-newMean) <= batchNormStatsThreshold && abs(oldVar-newVar) <= batchNormStatsThreshold {
		return "", "", false
	}
	return fmt.Sprintf("bn_stats: running_mean=%.3f, running_var=%.3f", oldMean, oldVar),
		fmt.Sprintf("bn_stats: running_mean=%.3f, running_var=%.3f", newMean, newVar), true
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"fmt"
	"strings"
)

const sparsityChangeThreshold = 0.01

// gradientDistributions compares sparsity (fraction of near-zero gradients)
// and outlier count between two gradientStatistics.
func gradientDistributions(oldStats, newStats *gradientStatistics) (oldSummary, newSummary string, ok bool) {
	significant := false
	var sparsityChange *float64
	var outlierChange *int

	if oldStats.sparsity != nil && newStats.sparsity != nil {
		change := *newStats.sparsity - *oldStats.sparsity
		sparsityChange = &change
		if abs(change) >= sparsityChangeThreshold {
			significant = true
		}
	}
	if oldStats.outlierCount != nil && newStats.outlierCount != nil {
		change := *newStats.outlierCount - *oldStats.outlierCount
		outlierChange = &change
		if change != 0 {
			significant = true
		}
	}

	if !significant {
		return "", "", false
	}

	oldSummary = fmt.Sprintf("sparsity: %.1f%%, outliers: %d",
		derefOr(oldStats.sparsity, 0)*100.0, derefOrInt(oldStats.outlierCount, 0))

	var newParts []string
	if newStats.sparsity != nil && sparsityChange != nil {
		trend := "stable"
		if *sparsityChange > sparsityChangeThreshold {
			trend = "more_sparse"
		} else if *sparsityChange < -sparsityChangeThreshold {
			trend = "less_sparse"
		}
		newParts = append(newParts, fmt.Sprintf("sparsity: %.1f%% (%+.1f%%, %s)", *newStats.sparsity*100.0, *sparsityChange*100.0, trend))
	}
	if newStats.outlierCount != nil && outlierChange != nil {
		newParts = append(newParts, fmt.Sprintf("outliers: %d (%+d)", *newStats.outlierCount, *outlierChange))
	}
	if len(newParts) == 0 {
		return "", "", false
	}
	return oldSummary, strings.Join(newParts, ", "), true
}

func derefOrInt(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

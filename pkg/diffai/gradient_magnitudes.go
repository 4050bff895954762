// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"fmt"
	"strings"
)

// gradientMagnitudes compares total norm, max gradient, and variance
// between two gradientStatistics, returning ok=false when nothing
// comparable is present.
func gradientMagnitudes(oldStats, newStats *gradientStatistics) (oldSummary, newSummary string, ok bool) {
	var parts []string

	if oldStats.totalNorm != nil && newStats.totalNorm != nil && *oldStats.totalNorm != 0 {
		change := (*newStats.totalNorm / *oldStats.totalNorm - 1.0) * 100.0
		trend := "stable"
		if change > 5.0 {
			trend = "increasing"
		} else if change < -5.0 {
			trend = "decreasing"
		}
		parts = append(parts, fmt.Sprintf("total_norm: %.6f (%+.1f%%, %s)", *newStats.totalNorm, change, trend))
	}

	if oldStats.maxGradient != nil && newStats.maxGradient != nil && *oldStats.maxGradient != 0 {
		change := (*newStats.maxGradient / *oldStats.maxGradient - 1.0) * 100.0
		parts = append(parts, fmt.Sprintf("max_gradient: %.6f (%+.1f%%)", *newStats.maxGradient, change))
	}

	if oldStats.variance != nil && newStats.variance != nil && *oldStats.variance != 0 {
		change := (*newStats.variance / *oldStats.variance - 1.0) * 100.0
		parts = append(parts, fmt.Sprintf("variance: %.6f (%+.1f%%)", *newStats.variance, change))
	}

	if len(parts) == 0 {
		return "", "", false
	}

	oldSummary = fmt.Sprintf("norm: %.6f, max: %.6f, var: %.6f",
		derefOr(oldStats.totalNorm, 0), derefOr(oldStats.maxGradient, 0), derefOr(oldStats.variance, 0))
	newSummary = strings.Join(parts, ", ")
	return oldSummary, newSummary, true
}

func derefOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

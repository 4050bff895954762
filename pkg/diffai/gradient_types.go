// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

// gradientStatistics holds aggregate signals extracted from an optional
// "gradient_stats" object on the model tree. All fields are optional;
// analyzers degrade gracefully when a field is absent on either side.
type gradientStatistics struct {
	totalNorm    *float64
	maxGradient  *float64
	variance     *float64
	sparsity     *float64 // fraction of near-zero gradients
	outlierCount *int
}

// extractGradientStatistics reads a "gradient_stats" object off tree, if
// present, or falls back to a bare top-level "grad_norm" scalar for
// totalNorm only. Returns nil when neither is present (gradient
// analysis needs statistics on both sides).
func extractGradientStatistics(tree Value) *gradientStatistics {
	if stats, ok := tree.Get("gradient_stats"); ok && stats.Kind == KindObject {
		g := &gradientStatistics{}
		if v, ok := stats.GetNumber("total_norm"); ok {
			g.totalNorm = &v
		}
		if v, ok := stats.GetNumber("max_gradient"); ok {
			g.maxGradient = &v
		}
		if v, ok := stats.GetNumber("variance"); ok {
			g.variance = &v
		}
		if v, ok := stats.GetNumber("sparsity"); ok {
			g.sparsity = &v
		}
		if v, ok := stats.GetNumber("outlier_count"); ok {
			n := int(v)
			g.outlierCount = &n
		}
		if g.totalNorm == nil && g.maxGradient == nil && g.variance == nil && g.sparsity == nil && g.outlierCount == nil {
			return nil
		}
		return g
	}

	if v, ok := tree.GetNumber("grad_norm"); ok {
		return &gradientStatistics{totalNorm: &v}
	}
	return nil
}

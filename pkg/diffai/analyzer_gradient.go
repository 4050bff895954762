// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

// analyzeGradient reports magnitude, distribution, and flow observations.
// Magnitude and distribution require gradient statistics on both trees;
// flow is computed from layer_gradient_norms whether or not statistics
// are present.
func analyzeGradient(a, b Value, stream []DiffResult) []DiffResult {
	oldStats := extractGradientStatistics(a)
	newStats := extractGradientStatistics(b)

	if oldStats != nil && newStats != nil {
		if oldSummary, newSummary, ok := gradientMagnitudes(oldStats, newStats); ok {
			stream = append(stream, modelArchitectureChanged("gradient_magnitude_analysis", oldSummary, newSummary))
		}
		if oldSummary, newSummary, ok := gradientDistributions(oldStats, newStats); ok {
			stream = append(stream, modelArchitectureChanged("gradient_distribution_analysis", oldSummary, newSummary))
		}
	}

	if oldSummary, newSummary, ok := gradientFlow(a, b); ok {
		stream = append(stream, modelArchitectureChanged("gradient_flow_analysis", oldSummary, newSummary))
	}

	return stream
}

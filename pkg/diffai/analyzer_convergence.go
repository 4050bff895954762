// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

// analyzeConvergence runs the training-convergence sub-analyses in a fixed
// order: learning curves, pattern detection, loss convergence, detailed
// stability, epoch progression, statistical stability, optimization
// trajectory, and plateau detection.
func analyzeConvergence(a, b Value, stream []DiffResult) []DiffResult {
	if oldSummary, newSummary, ok := analyzeLearningCurves(a, b); ok {
		stream = append(stream, modelArchitectureChanged("learning_curve_analysis", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := analyzeConvergencePatternsAdvanced(a, b); ok {
		stream = append(stream, modelArchitectureChanged("convergence_patterns", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := analyzeLossConvergence(a, b); ok {
		stream = append(stream, modelArchitectureChanged("loss_convergence", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := analyzeTrainingStability(a, b); ok {
		stream = append(stream, modelArchitectureChanged("training_stability_detailed", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := analyzeEpochProgression(a, b); ok {
		stream = append(stream, modelArchitectureChanged("epoch_progression", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := analyzeTrainingStabilityStatistical(a, b); ok {
		stream = append(stream, modelArchitectureChanged("training_stability", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := analyzeOptimizationTrajectory(a, b); ok {
		stream = append(stream, modelArchitectureChanged("optimization_trajectory", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := analyzePlateauDetection(a, b); ok {
		stream = append(stream, modelArchitectureChanged("plateau_detection", oldSummary, newSummary))
	}
	return stream
}

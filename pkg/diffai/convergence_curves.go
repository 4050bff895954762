// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import "fmt"

// calculateConvergenceRate computes the average relative decrease in loss
// per recorded step, used by the pattern/optimization
// analyses to classify convergence speed.
func calculateConvergenceRate(trajectory []float64) float64 {
	if len(trajectory) < 2 {
		return 0.0
	}
	first := trajectory[0]
	last := trajectory[len(trajectory)-1]
	steps := float64(len(trajectory) - 1)
	denom := abs(first)
	if denom < 1e-8 {
		denom = 1e-8
	}
	return (first - last) / denom / steps
}

// analyzeLearningCurves reports the overall convergence rate of two
// trajectories when the rates differ by more than 0.001; no estimate of
// remaining steps to a plateau is made.
func analyzeLearningCurves(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldTrajectory, oldHas := extractLossTrajectory(a)
	newTrajectory, newHas := extractLossTrajectory(b)
	if !oldHas || !newHas || len(oldTrajectory) < 2 || len(newTrajectory) < 2 {
		return "", "", false
	}

	oldRate := calculateConvergenceRate(oldTrajectory)
	newRate := calculateConvergenceRate(newTrajectory)
	if abs(oldRate-newRate) <= 0.001 {
		return "", "", false
	}

	oldSummary = fmt.Sprintf("convergence_rate: %.4f", oldRate)
	newSummary = fmt.Sprintf("convergence_rate: %.4f", newRate)
	return oldSummary, newSummary, true
}

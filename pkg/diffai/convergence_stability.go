// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"fmt"
	"strings"
)

type trainingStabilityMetrics struct {
	gradientVariance *float64
	lossOscillation  float64
	parameterDrift   float64
	overallScore     float64
}

var gradientNormReadKeys = []string{"grad_norm", "gradient_norm", "total_grad_norm"}

func extractGradientNorm(tree Value) (float64, bool) {
	for _, key := range gradientNormReadKeys {
		if v, ok := tree.GetNumber(key); ok {
			return v, true
		}
	}
	return 0, false
}

// extractGradientVariance is a placeholder; no source field for it has
// ever been populated.
func extractGradientVariance(Value) (float64, bool) { return 0, false }

// calculateParameterDrift is a placeholder that always returns a fixed
// estimate.
func calculateParameterDrift(Value) float64 { return 0.1 }

func calculateOscillationMetric(trajectory []float64) float64 {
	if len(trajectory) < 3 {
		return 0.0
	}
	oscillations := 0
	for i := 1; i < len(trajectory)-1; i++ {
		prevDiff := trajectory[i] - trajectory[i-1]
		currDiff := trajectory[i+1] - trajectory[i]
		if prevDiff*currDiff < 0.0 {
			oscillations++
		}
	}
	return float64(oscillations) / float64(len(trajectory)-2)
}

func calculateTrainingStabilityMetrics(tree Value) (*trainingStabilityMetrics, bool) {
	trajectory, ok := extractLossTrajectory(tree)
	if !ok {
		return nil, false
	}
	lossOscillation := 0.0
	if len(trajectory) > 2 {
		lossOscillation = calculateOscillationMetric(trajectory)
	}

	var gradientVariance *float64
	if v, has := extractGradientVariance(tree); has {
		gradientVariance = &v
	}

	parameterDrift := calculateParameterDrift(tree)

	baseScore := 1.0 - minFloat(lossOscillation, 1.0)
	gradientPenalty := 0.0
	if gradientVariance != nil {
		gradientPenalty = minFloat(*gradientVariance*0.1, 0.3)
	}
	driftPenalty := minFloat(parameterDrift*0.2, 0.3)
	overallScore := baseScore - gradientPenalty - driftPenalty
	if overallScore < 0.0 {
		overallScore = 0.0
	}

	return &trainingStabilityMetrics{
		gradientVariance: gradientVariance,
		lossOscillation:  lossOscillation,
		parameterDrift:   parameterDrift,
		overallScore:     overallScore,
	}, true
}

// analyzeTrainingStabilityStatistical compares gradient variance, loss
// oscillation, and overall stability score between two checkpoints
//.
func analyzeTrainingStabilityStatistical(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldStability, oldHas := calculateTrainingStabilityMetrics(a)
	newStability, newHas := calculateTrainingStabilityMetrics(b)
	if !oldHas || !newHas {
		return "", "", false
	}

	var changes []string
	if oldStability.gradientVariance != nil && newStability.gradientVariance != nil {
		oldVar := *oldStability.gradientVariance
		newVar := *newStability.gradientVariance
		varianceChange := (newVar - oldVar) / maxFloat(abs(oldVar), 1e-8)
		if abs(varianceChange) > 0.1 {
			changes = append(changes, fmt.Sprintf("gradient_variance: %+.2f%%", varianceChange*100.0))
		}
	}
	if abs(oldStability.lossOscillation-newStability.lossOscillation) > 0.05 {
		changes = append(changes, fmt.Sprintf("loss_oscillation: %+.3f", newStability.lossOscillation-oldStability.lossOscillation))
	}
	if abs(oldStability.overallScore-newStability.overallScore) > 0.05 {
		changes = append(changes, fmt.Sprintf("stability_score: %+.3f", newStability.overallScore-oldStability.overallScore))
	}
	if len(changes) == 0 {
		return "", "", false
	}

	oldSummary = fmt.Sprintf("oscillation: %.3f, score: %.3f", oldStability.lossOscillation, oldStability.overallScore)
	newSummary = strings.Join(changes, ", ")
	return oldSummary, newSummary, true
}

// estimateParameterMagnitude averages the absolute value of any
// number-kinded top-level field whose key contains "weight" or "bias".
func estimateParameterMagnitude(tree Value) (float64, bool) {
	if tree.Kind != KindObject {
		return 0, false
	}
	var total float64
	count := 0
	for key, v := range tree.Object {
		if !strings.Contains(key, "weight") && !strings.Contains(key, "bias") {
			continue
		}
		if v.Kind != KindNumber {
			continue
		}
		total += abs(v.Number)
		count++
	}
	if count == 0 {
		return 0, false
	}
	return total / float64(count), true
}

// analyzeTrainingStability reports coarse stability/decreasing/increasing
// labels for gradient norm, learning rate, and parameter magnitude.
func analyzeTrainingStability(a, b Value) (oldSummary, newSummary string, ok bool) {
	var factors []string

	if oldGrad, oldHas := extractGradientNorm(a); oldHas {
		if newGrad, newHas := extractGradientNorm(b); newHas {
			gradChange := (newGrad/oldGrad - 1.0) * 100.0
			label := "stable"
			switch {
			case abs(gradChange) >= 50.0:
				label = "high_variation"
			case abs(gradChange) >= 10.0:
				label = "moderate_variation"
			}
			factors = append(factors, fmt.Sprintf("gradient_norm: %s", label))
		}
	}

	if oldLR, oldHas := extractCurrentLearningRate(a); oldHas {
		if newLR, newHas := extractCurrentLearningRate(b); newHas {
			ratio := newLR / oldLR
			label := "stable"
			switch {
			case abs(ratio-1.0) >= 0.1 && ratio < 1.0:
				label = "decreasing"
			case abs(ratio-1.0) >= 0.1:
				label = "increasing"
			}
			factors = append(factors, fmt.Sprintf("learning_rate: %s", label))
		}
	}

	if oldMag, oldHas := estimateParameterMagnitude(a); oldHas {
		if newMag, newHas := estimateParameterMagnitude(b); newHas {
			change := abs((newMag/oldMag - 1.0) * 100.0)
			label := "stable"
			switch {
			case change >= 5.0:
				label = "significant_change"
			case change >= 1.0:
				label = "mild_change"
			}
			factors = append(factors, fmt.Sprintf("parameters: %s", label))
		}
	}

	if len(factors) == 0 {
		return "", "", false
	}
	return "evaluating", strings.Join(factors, ", "), true
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"fmt"
	"strings"
)

type plateauAnalysis struct {
	plateauLength       int
	plateauStartEpoch   *float64
	plateauThreshold    float64
	recoveryProbability float64
	recommendedAction   string
}

const plateauChangeThreshold = 0.01

// calculatePlateauLength counts the trailing run of steps whose relative
// change stays under threshold, resetting on any larger change.
func calculatePlateauLength(trajectory []float64) int {
	if len(trajectory) < 3 {
		return 0
	}
	count := 0
	for i := 1; i < len(trajectory); i++ {
		denom := maxFloat(abs(trajectory[i-1]), 1e-8)
		changeRatio := abs(trajectory[i]-trajectory[i-1]) / denom
		if changeRatio < plateauChangeThreshold {
			count++
		} else {
			count = 0
		}
	}
	return count
}

func findPlateauStart(trajectory []float64) (float64, bool) {
	length := calculatePlateauLength(trajectory)
	if length > 0 && len(trajectory) > length {
		return float64(len(trajectory) - length), true
	}
	return 0, false
}

func calculateRecoveryProbability(trajectory []float64) float64 {
	length := calculatePlateauLength(trajectory)
	if length == 0 {
		return 1.0
	}
	return maxFloat(1.0/(1.0+float64(length)*0.1), 0.1)
}

// generatePlateauRecommendation maps plateau length to an action tier:
// under 5 steps training just continues, 5 to 10 warrants closer
// monitoring, beyond 10 a learning-rate reduction is worth considering.
func generatePlateauRecommendation(trajectory []float64) string {
	length := calculatePlateauLength(trajectory)
	switch {
	case length > 10:
		return "consider_lr_reduction"
	case length >= 5:
		return "monitor_closely"
	default:
		return "continue_training"
	}
}

func extractPlateauAnalysis(tree Value) (*plateauAnalysis, bool) {
	trajectory, ok := extractLossTrajectory(tree)
	if !ok {
		return nil, false
	}
	startEpoch, hasStart := findPlateauStart(trajectory)
	analysis := &plateauAnalysis{
		plateauLength:       calculatePlateauLength(trajectory),
		plateauThreshold:    plateauChangeThreshold,
		recoveryProbability: calculateRecoveryProbability(trajectory),
		recommendedAction:   generatePlateauRecommendation(trajectory),
	}
	if hasStart {
		analysis.plateauStartEpoch = &startEpoch
	}
	return analysis, true
}

// analyzePlateauDetection reports plateau-length, recovery-probability, and
// recommended-action changes between two checkpoints.
func analyzePlateauDetection(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldPlateau, oldHas := extractPlateauAnalysis(a)
	newPlateau, newHas := extractPlateauAnalysis(b)
	if !oldHas || !newHas {
		return "", "", false
	}

	var changes []string
	if oldPlateau.plateauLength != newPlateau.plateauLength {
		lengthChange := newPlateau.plateauLength - oldPlateau.plateauLength
		changes = append(changes, fmt.Sprintf("plateau_length: %d (%+d)", newPlateau.plateauLength, lengthChange))
	}
	if abs(oldPlateau.recoveryProbability-newPlateau.recoveryProbability) > 0.1 {
		changes = append(changes, fmt.Sprintf("recovery_probability: %+.2f", newPlateau.recoveryProbability-oldPlateau.recoveryProbability))
	}
	if oldPlateau.recommendedAction != newPlateau.recommendedAction {
		changes = append(changes, fmt.Sprintf("action: %s", newPlateau.recommendedAction))
	}
	if len(changes) == 0 {
		return "", "", false
	}

	oldSummary = fmt.Sprintf("length: %d, recovery_prob: %.2f", oldPlateau.plateauLength, oldPlateau.recoveryProbability)
	newSummary = strings.Join(changes, ", ")
	return oldSummary, newSummary, true
}

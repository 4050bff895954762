// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"fmt"
	"strings"
)

var lossKeys = []string{
	"loss", "train_loss", "training_loss", "val_loss", "validation_loss",
	"total_loss", "current_loss", "best_loss",
}

var lossHistoryKeys = []string{"loss_history", "train_losses", "validation_losses", "loss_curve"}

// extractLossValue tries a fixed set of common loss field names, at the top
// level and then under a nested "metrics" object.
func extractLossValue(tree Value) (float64, bool) {
	for _, key := range lossKeys {
		if v, ok := tree.GetNumber(key); ok {
			return v, true
		}
	}
	if metrics, ok := tree.Get("metrics"); ok {
		for _, key := range lossKeys {
			if v, ok := metrics.GetNumber(key); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// extractLossHistory reads the first present array-valued history key.
func extractLossHistory(tree Value) ([]float64, bool) {
	for _, key := range lossHistoryKeys {
		arr, ok := tree.GetArray(key)
		if !ok {
			continue
		}
		var losses []float64
		for _, item := range arr {
			if item.Kind == KindNumber {
				losses = append(losses, item.Number)
			}
		}
		if len(losses) > 0 {
			return losses, true
		}
	}
	return nil, false
}

// extractLossTrajectory is the general-purpose fallback other convergence
// analyses build on: any key containing both "loss" and "history", else a
// single-value trajectory from extractLossValue.
func extractLossTrajectory(tree Value) ([]float64, bool) {
	if tree.Kind == KindObject {
		for key, child := range tree.Object {
			if !containsAll(key, "loss", "history") || child.Kind != KindArray {
				continue
			}
			var trajectory []float64
			for _, item := range child.Array {
				if item.Kind == KindNumber {
					trajectory = append(trajectory, item.Number)
				}
			}
			if len(trajectory) > 0 {
				return trajectory, true
			}
		}
	}
	if v, ok := extractLossValue(tree); ok {
		return []float64{v}, true
	}
	return nil, false
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// calculateTrendSlope fits a simple linear regression over index vs. value
// and returns its slope.
func calculateTrendSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0.0
	}
	var xSum, ySum, xySum, xSqSum float64
	for i, y := range values {
		x := float64(i)
		xSum += x
		ySum += y
		xySum += x * y
		xSqSum += x * x
	}
	nf := float64(n)
	denominator := nf*xSqSum - xSum*xSum
	if abs(denominator) < 1e-10 {
		return 0.0
	}
	return (nf*xySum - xSum*ySum) / denominator
}

// analyzeLossTrend compares the slope of the last five points of each
// trajectory.
func analyzeLossTrend(oldHistory, newHistory []float64) string {
	if len(oldHistory) == 0 || len(newHistory) == 0 {
		return "insufficient_data"
	}
	oldTrend := calculateTrendSlope(lastN(oldHistory, 5))
	newTrend := calculateTrendSlope(lastN(newHistory, 5))
	trendChange := newTrend - oldTrend

	switch {
	case trendChange < -0.01:
		return "accelerating_improvement"
	case trendChange > 0.01:
		return "slowing_improvement"
	case newTrend < -0.001:
		return "steady_improvement"
	case newTrend > 0.001:
		return "deteriorating"
	default:
		return "plateauing"
	}
}

func lastN(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

// analyzeLossConvergence compares the most recent loss value and its local
// trend between two checkpoints.
func analyzeLossConvergence(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldHistory, oldHas := extractLossHistory(a)
	if !oldHas {
		if v, has := extractLossValue(a); has {
			oldHistory, oldHas = []float64{v}, true
		}
	}
	newHistory, newHas := extractLossHistory(b)
	if !newHas {
		if v, has := extractLossValue(b); has {
			newHistory, newHas = []float64{v}, true
		}
	}
	if !oldHas || !newHas || len(oldHistory) == 0 || len(newHistory) == 0 {
		return "", "", false
	}

	trend := analyzeLossTrend(oldHistory, newHistory)
	oldSlope := calculateTrendSlope(oldHistory)
	newSlope := calculateTrendSlope(newHistory)

	oldLoss := oldHistory[len(oldHistory)-1]
	newLoss := newHistory[len(newHistory)-1]
	lossChange := newLoss - oldLoss
	lossChangePercent := 0.0
	if oldLoss != 0.0 {
		lossChangePercent = (lossChange / oldLoss) * 100.0
	}

	status := "stable"
	switch {
	case lossChange < -0.001:
		status = "improving"
	case lossChange > 0.001:
		status = "diverging"
	}

	oldSummary = fmt.Sprintf("loss: %.6f, slope: %.6f", oldLoss, oldSlope)
	newSummary = fmt.Sprintf("loss: %.6f (%+.2f%%), slope: %.6f, trend: %s, status: %s",
		newLoss, lossChangePercent, newSlope, trend, status)
	return oldSummary, newSummary, true
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import "fmt"

const (
	dropoutThreshold    = 0.001
	weightDecayThreshold = 1e-6
	lRegThreshold       = 1e-6
)

// analyzeRegularization reports dropout, weight decay, and L1/L2 changes
//.
func analyzeRegularization(a, b Value, stream []DiffResult) []DiffResult {
	if oldSummary, newSummary, ok := dropoutPatterns(a, b); ok {
		stream = append(stream, modelArchitectureChanged("dropout_regularization", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := weightDecayImpact(a, b); ok {
		stream = append(stream, modelArchitectureChanged("weight_decay_impact", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := lRegularization(a, b); ok {
		stream = append(stream, modelArchitectureChanged("l_regularization", oldSummary, newSummary))
	}
	return stream
}

func dropoutRate(tree Value) float64 {
	for _, key := range []string{"dropout", "dropout_rate", "p"} {
		if v, ok := tree.GetNumber(key); ok {
			return v
		}
	}
	return 0.0
}

func dropoutPatterns(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldRate := dropoutRate(a)
	newRate := dropoutRate(b)
	if abs(oldRate-newRate) <= dropoutThreshold {
		return "", "", false
	}
	return fmt.Sprintf("dropout_rate: %.3f", oldRate), fmt.Sprintf("dropout_rate: %.3f", newRate), true
}

func weightDecay(tree Value) float64 {
	if v, ok := tree.GetNumber("weight_decay"); ok {
		return v
	}
	if v, ok := tree.GetNumber("l2_reg"); ok {
		return v
	}
	return 0.0
}

func weightDecayImpact(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldDecay := weightDecay(a)
	newDecay := weightDecay(b)
	if abs(oldDecay-newDecay) <= weightDecayThreshold {
		return "", "", false
	}
	return fmt.Sprintf("weight_decay: %.6f", oldDecay), fmt.Sprintf("weight_decay: %.6f", newDecay), true
}

func lRegularization(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldL1, _ := a.GetNumber("l1_reg")
	newL1, _ := b.GetNumber("l1_reg")
	oldL2, _ := a.GetNumber("l2_reg")
	newL2, _ := b.GetNumber("l2_reg")
	if abs(oldL1-newL1) <= lRegThreshold && abs(oldL2-newL2) <= lRegThreshold {
		return "", "", false
	}
	return fmt.Sprintf("l_reg: L1=%.6f, L2=%.6f", oldL1, oldL2), fmt.Sprintf("l_reg: L1=%.6f, L2=%.6f", newL1, newL2), true
}

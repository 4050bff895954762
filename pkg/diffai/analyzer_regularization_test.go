// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import "testing"

func TestAnalyzeRegularization_Dropout(t *testing.T) {
	a := obj(map[string]Value{"dropout": num(0.5)})
	b := obj(map[string]Value{"dropout": num(0.3)})

	out := analyzeRegularization(a, b, nil)
	if !hasCategory(out, "dropout_regularization") {
		t.Fatalf("expected a dropout_regularization record, got %+v", out)
	}

	c := obj(map[string]Value{"dropout": num(0.5005)})
	out = analyzeRegularization(a, c, nil)
	if hasCategory(out, "dropout_regularization") {
		t.Fatalf("a 5e-4 dropout change is under the 1e-3 threshold: %+v", out)
	}
}

func TestAnalyzeRegularization_WeightDecay(t *testing.T) {
	a := obj(map[string]Value{"weight_decay": num(1e-4)})
	b := obj(map[string]Value{"weight_decay": num(1e-2)})

	out := analyzeRegularization(a, b, nil)
	if !hasCategory(out, "weight_decay_impact") {
		t.Fatalf("expected a weight_decay_impact record, got %+v", out)
	}
}

func TestAnalyzeRegularization_L1L2(t *testing.T) {
	a := obj(map[string]Value{"l1_reg": num(0.0), "l2_reg": num(1e-4)})
	b := obj(map[string]Value{"l1_reg": num(1e-3), "l2_reg": num(1e-4)})

	out := analyzeRegularization(a, b, nil)
	if !hasCategory(out, "l_regularization") {
		t.Fatalf("expected an l_regularization record, got %+v", out)
	}
}

func TestAnalyzeRegularization_AbsentFieldsSilent(t *testing.T) {
	a := obj(map[string]Value{"epoch": num(1)})
	if out := analyzeRegularization(a, a, nil); len(out) != 0 {
		t.Fatalf("expected no records when no regularization fields exist, got %+v", out)
	}
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import "testing"

func TestAnalyzeGradient_MagnitudeChange(t *testing.T) {
	a := obj(map[string]Value{
		"gradient_stats": obj(map[string]Value{
			"total_norm":   num(1.0),
			"max_gradient": num(0.5),
		}),
	})
	b := obj(map[string]Value{
		"gradient_stats": obj(map[string]Value{
			"total_norm":   num(2.0),
			"max_gradient": num(0.5),
		}),
	})

	out := analyzeGradient(a, b, nil)
	if !hasCategory(out, "gradient_magnitude_analysis") {
		t.Fatalf("expected a gradient_magnitude_analysis record, got %+v", out)
	}
}

func TestAnalyzeGradient_DistributionChange(t *testing.T) {
	a := obj(map[string]Value{
		"gradient_stats": obj(map[string]Value{"sparsity": num(0.10), "outlier_count": num(2)}),
	})
	b := obj(map[string]Value{
		"gradient_stats": obj(map[string]Value{"sparsity": num(0.30), "outlier_count": num(5)}),
	})

	out := analyzeGradient(a, b, nil)
	if !hasCategory(out, "gradient_distribution_analysis") {
		t.Fatalf("expected a gradient_distribution_analysis record, got %+v", out)
	}
}

func TestAnalyzeGradient_FlowExtremes(t *testing.T) {
	a := obj(map[string]Value{
		"layer_gradient_norms": arr(num(0.5), num(0.4), num(0.3)),
	})
	b := obj(map[string]Value{
		"layer_gradient_norms": arr(num(1e-9), num(0.4), num(1e3)),
	})

	out := analyzeGradient(a, b, nil)
	if !hasCategory(out, "gradient_flow_analysis") {
		t.Fatalf("expected a gradient_flow_analysis record, got %+v", out)
	}
}

func TestAnalyzeGradient_RequiresStatsOnBothSides(t *testing.T) {
	a := obj(map[string]Value{
		"gradient_stats": obj(map[string]Value{"total_norm": num(1.0)}),
	})
	b := obj(map[string]Value{"epoch": num(2)})

	if out := analyzeGradient(a, b, nil); len(out) != 0 {
		t.Fatalf("expected no records when stats are one-sided, got %+v", out)
	}
}

func TestExtractGradientStatistics_GradNormFallback(t *testing.T) {
	tree := obj(map[string]Value{"grad_norm": num(0.7)})
	stats := extractGradientStatistics(tree)
	if stats == nil || stats.totalNorm == nil || *stats.totalNorm != 0.7 {
		t.Fatalf("expected grad_norm fallback, got %+v", stats)
	}

	if extractGradientStatistics(obj(map[string]Value{})) != nil {
		t.Error("expected nil for a tree with no gradient signals")
	}
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"fmt"
	"sort"
	"strings"
)

// quantizationMethod describes the inferred quantization configuration of a
// tree. Detection scans every top-level key of the tree for
// quantization-related substrings rather than looking inside a single
// "quantization" sub-object.
type quantizationMethod struct {
	Strategy             string
	CalibrationMethod    string
	Symmetric            bool
	PerChannel           bool
	AdvancedTechniques   []string
	HardwareCompat       []string
	OptimizationLevel    string
	CalibrationDatasetSz float64
	HasCalibrationSz     bool
}

func inferQuantizationMethod(tree Value) quantizationMethod {
	if tree.Kind != KindObject {
		return quantizationMethod{}
	}

	m := quantizationMethod{
		Strategy:          "post_training",
		CalibrationMethod: "minmax",
		Symmetric:         true,
		OptimizationLevel: "basic",
	}

	var techniques, hw []string
	for key, v := range tree.Object {
		related := strings.Contains(key, "quant") || strings.Contains(key, "precision") ||
			strings.Contains(key, "optim") || strings.Contains(key, "compress")
		if !related {
			continue
		}

		switch {
		case strings.Contains(key, "strategy") || strings.Contains(key, "method"):
			if v.Kind == KindString {
				m.Strategy = v.String
			}
		case strings.Contains(key, "calibration"):
			if v.Kind == KindString {
				m.CalibrationMethod = v.String
			}
		case strings.Contains(key, "symmetric"):
			if v.Kind == KindBool {
				m.Symmetric = v.Bool
			}
		case strings.Contains(key, "per_channel") || strings.Contains(key, "channel_wise"):
			if v.Kind == KindBool {
				m.PerChannel = v.Bool
			} else {
				m.PerChannel = true
			}
		}

		switch {
		case strings.Contains(key, "pruning") || strings.Contains(key, "sparsity"):
			techniques = append(techniques, "structured_pruning")
		case strings.Contains(key, "distillation") || strings.Contains(key, "teacher"):
			techniques = append(techniques, "knowledge_distillation")
		case strings.Contains(key, "smoothquant") || strings.Contains(key, "smooth"):
			techniques = append(techniques, "smoothquant")
		case strings.Contains(key, "gptq") || strings.Contains(key, "group_wise"):
			techniques = append(techniques, "gptq")
		case strings.Contains(key, "awq") || strings.Contains(key, "activation_aware"):
			techniques = append(techniques, "awq")
		case strings.Contains(key, "bnb") || strings.Contains(key, "bitsandbytes"):
			techniques = append(techniques, "bitsandbytes")
		}

		switch {
		case strings.Contains(key, "cuda") || strings.Contains(key, "gpu"):
			hw = append(hw, "cuda")
		case strings.Contains(key, "tensorrt") || strings.Contains(key, "trt"):
			hw = append(hw, "tensorrt")
		case strings.Contains(key, "onnx"):
			hw = append(hw, "onnx")
		case strings.Contains(key, "openvino"):
			hw = append(hw, "openvino")
		case strings.Contains(key, "coreml"):
			hw = append(hw, "coreml")
		}

		if strings.Contains(key, "calibration") && strings.Contains(key, "size") && v.Kind == KindNumber {
			m.CalibrationDatasetSz = v.Number
			m.HasCalibrationSz = true
		}
	}

	sort.Strings(techniques)
	techniques = dedupStrings(techniques)
	m.AdvancedTechniques = techniques

	sort.Strings(hw)
	hw = dedupStrings(hw)
	m.HardwareCompat = hw

	switch {
	case has(tree, "quantization_aware_training") || has(tree, "qat"):
		m.Strategy = "quantization_aware_training"
		m.OptimizationLevel = "advanced"
	case has(tree, "dynamic_quantization"):
		m.Strategy = "dynamic"
		m.OptimizationLevel = "intermediate"
	case has(tree, "static_quantization"):
		m.Strategy = "static"
		m.OptimizationLevel = "intermediate"
	case len(techniques) > 0:
		m.OptimizationLevel = "expert"
	}

	switch {
	case has(tree, "entropy_calibration") || has(tree, "kl_divergence"):
		m.CalibrationMethod = "entropy"
	case has(tree, "percentile_calibration"):
		m.CalibrationMethod = "percentile"
	case has(tree, "mse_calibration"):
		m.CalibrationMethod = "mse"
	case has(tree, "sqnr_calibration"):
		m.CalibrationMethod = "sqnr"
	}

	return m
}

func has(tree Value, key string) bool {
	_, ok := tree.Get(key)
	return ok
}

func dedupStrings(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := in[:1]
	for _, s := range in[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

func (m quantizationMethod) summary() string {
	parts := []string{
		fmt.Sprintf("strategy: %s", m.Strategy),
	}
	if m.CalibrationMethod != "" {
		parts = append(parts, fmt.Sprintf("calibration: %s", m.CalibrationMethod))
	}
	parts = append(parts,
		fmt.Sprintf("symmetric: %t", m.Symmetric),
		fmt.Sprintf("per_channel: %t", m.PerChannel),
	)
	if len(m.AdvancedTechniques) > 0 {
		parts = append(parts, fmt.Sprintf("techniques: [%s]", strings.Join(m.AdvancedTechniques, ", ")))
	}
	if len(m.HardwareCompat) > 0 {
		parts = append(parts, fmt.Sprintf("hardware: [%s]", strings.Join(m.HardwareCompat, ", ")))
	}
	parts = append(parts, fmt.Sprintf("optimization_level: %s", m.OptimizationLevel))
	if m.HasCalibrationSz {
		parts = append(parts, fmt.Sprintf("calibration_dataset_size: %d", int(m.CalibrationDatasetSz)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// quantizationPrecisionBucket classifies a dtype into one of
// {fp32, fp16, int8, int4, custom}.
func quantizationPrecisionBucket(dtype string) string {
	switch dtype {
	case "F32", "F64":
		return "fp32"
	case "F16", "BF16":
		return "fp16"
	case "I8", "U8":
		return "int8"
	case "I4", "U4":
		return "int4"
	default:
		up := strings.ToUpper(dtype)
		if strings.Contains(up, "INT4") || strings.Contains(up, "4BIT") {
			return "int4"
		}
		return "custom"
	}
}

func precisionDistribution(tree Value) map[string]int {
	buckets := map[string]int{"fp32": 0, "fp16": 0, "int8": 0, "int4": 0, "custom": 0}
	walkTensorKeys(tree, weightOrBiasKey, func(_ Path, _ string, v Value) {
		dtype, _ := v.GetString("dtype")
		buckets[quantizationPrecisionBucket(dtype)]++
	})
	return buckets
}

func precisionDistributionSummary(buckets map[string]int) string {
	parts := make([]string, 0, 5)
	for _, bucket := range []string{"fp32", "fp16", "int8", "int4", "custom"} {
		if n := buckets[bucket]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", bucket, n))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// quantizationImpact computes before/after ratios over the byte-estimate
// model shared with the memory analyzer, since no inference or
// execution happens in this engine to measure these figures directly.
type quantizationImpact struct {
	SizeReduction        float64
	AccuracyImpact       float64
	SpeedImprovement     float64
	MemoryEfficiency     float64
	BandwidthSavings     float64
	EnergyEfficiencyGain float64
	CompressionRatio     float64
	QualityDegradation   float64
}

func computeQuantizationImpact(a, b Value) (quantizationImpact, bool) {
	oldBytes := totalTensorBytes(a)
	newBytes := totalTensorBytes(b)
	if oldBytes == 0 || oldBytes == newBytes {
		return quantizationImpact{}, false
	}

	sizeReduction := 1 - float64(newBytes)/float64(oldBytes)
	compressionRatio := float64(oldBytes) / float64(newBytes)

	oldBuckets := precisionDistribution(a)
	newBuckets := precisionDistribution(b)
	oldLowPrecision := oldBuckets["int8"] + oldBuckets["int4"]
	newLowPrecision := newBuckets["int8"] + newBuckets["int4"]
	oldTotal := oldBuckets["fp32"] + oldBuckets["fp16"] + oldLowPrecision + oldBuckets["custom"]
	degradationRisk := 0.0
	if oldTotal > 0 && newLowPrecision > oldLowPrecision {
		degradationRisk = float64(newLowPrecision-oldLowPrecision) / float64(oldTotal)
	}

	return quantizationImpact{
		SizeReduction:        sizeReduction,
		AccuracyImpact:       -degradationRisk * 0.1,
		SpeedImprovement:     compressionRatio - 1,
		MemoryEfficiency:     sizeReduction,
		BandwidthSavings:     sizeReduction,
		EnergyEfficiencyGain: sizeReduction * 0.5,
		CompressionRatio:     compressionRatio,
		QualityDegradation:   degradationRisk,
	}, true
}

func (im quantizationImpact) summary() string {
	return fmt.Sprintf(
		"{size_reduction: %.3f, accuracy_impact: %.3f, speed_improvement: %.3f, memory_efficiency: %.3f, bandwidth_savings: %.3f, energy_efficiency_gain: %.3f, compression_ratio: %.3f, quality_degradation_risk: %.3f}",
		im.SizeReduction, im.AccuracyImpact, im.SpeedImprovement, im.MemoryEfficiency,
		im.BandwidthSavings, im.EnergyEfficiencyGain, im.CompressionRatio, im.QualityDegradation,
	)
}

// analyzeQuantization reports the inferred quantization method, the
// per-layer precision distribution, and the derived impact ratios.
func analyzeQuantization(a, b Value, stream []DiffResult) []DiffResult {
	oldMethod := inferQuantizationMethod(a)
	newMethod := inferQuantizationMethod(b)
	if oldMethod.summary() != newMethod.summary() {
		stream = append(stream, modelArchitectureChanged("quantization_method", oldMethod.summary(), newMethod.summary()))
	}

	oldDist := precisionDistributionSummary(precisionDistribution(a))
	newDist := precisionDistributionSummary(precisionDistribution(b))
	if oldDist != "" && newDist != "" && oldDist != newDist {
		stream = append(stream, modelArchitectureChanged("precision_distribution", oldDist, newDist))
	}

	if impact, ok := computeQuantizationImpact(a, b); ok {
		stream = append(stream, modelArchitectureChanged("quantization_impact", "baseline", impact.summary()))
	}

	return stream
}

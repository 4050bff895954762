// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import (
	"fmt"
	"hash/fnv"
	"os"
	"strings"
	"unicode"
)

// architectureSignatures is checked in order; the first keyword present in
// the lowercased buffer wins. Centralized as a data table rather than scattered
// conditionals.
var architectureSignatures = []struct {
	keyword string
	name    string
}{
	{"resnet", "ResNet"},
	{"vgg", "VGG"},
	{"densenet", "DenseNet"},
	{"mobilenet", "MobileNet"},
	{"efficientnet", "EfficientNet"},
	{"transformer", "Transformer"},
	{"bert", "BERT"},
	{"gpt", "GPT"},
}

// ParsePyTorch does NOT interpret pickle opcodes. It reads the whole file
// into memory and performs substring scans over the byte buffer interpreted
// as text. The scan is deliberately
// lossy: the parser never claims to reconstruct the tensor graph, and
// downstream analyzers treat PyTorch trees as shallow summaries.
func ParsePyTorch(path string) (Value, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Value{}, &ParseError{Format: FormatPyTorch, Path: path, Cause: err}
	}

	content := string(raw)
	lower := strings.ToLower(content)

	fields := map[string]Value{
		"model_type":  NewString("pytorch"),
		"file_size":   NewNumber(float64(len(raw))),
		"format":      NewString("pickle"),
		"binary_size": NewNumber(float64(len(raw))),
	}

	weightCount := strings.Count(content, "weight")
	biasCount := strings.Count(content, "bias")
	convCount := strings.Count(content, "conv")
	linearCount := strings.Count(content, "linear") + strings.Count(content, "fc.")
	bnCount := strings.Count(content, "bn") + strings.Count(content, "batch_norm")

	var components []string
	if convCount > 0 {
		components = append(components, fmt.Sprintf("convolution: %d", convCount))
	}
	if linearCount > 0 {
		components = append(components, fmt.Sprintf("linear: %d", linearCount))
	}
	if bnCount > 0 {
		components = append(components, fmt.Sprintf("batch_norm: %d", bnCount))
	}
	if weightCount > 0 {
		components = append(components, fmt.Sprintf("weight_params: %d", weightCount))
	}
	if biasCount > 0 {
		components = append(components, fmt.Sprintf("bias_params: %d", biasCount))
	}
	if len(components) > 0 {
		fields["detected_components"] = NewString(strings.Join(components, ", "))
	}

	estimatedLayers := weightCount
	if biasCount/2 > estimatedLayers {
		estimatedLayers = biasCount / 2
	}
	if estimatedLayers > 0 {
		fields["estimated_layers"] = NewNumber(float64(estimatedLayers))
	}

	for _, sig := range architectureSignatures {
		if strings.Contains(lower, sig.keyword) {
			fields["detected_architecture"] = NewString(sig.name)
			break
		}
	}

	if strings.Contains(content, "optimizer") {
		fields["has_optimizer_state"] = NewBool(true)
	}
	if strings.Contains(content, "epoch") {
		fields["has_training_metadata"] = NewBool(true)
	}
	if strings.Contains(content, "lr") || strings.Contains(content, "learning_rate") {
		fields["has_learning_rate"] = NewBool(true)
	}

	if len(raw) > 2 && raw[1] <= 5 {
		fields["pickle_protocol"] = NewNumber(float64(raw[1]))
	}

	fields["structure_fingerprint"] = NewString(structureFingerprint(content))

	return NewObject(fields), nil
}

// structureFingerprint hashes the first 1,000 alphanumeric-or-dot
// characters of content with FNV-64a, rendered as hexadecimal: a coarse
// change signal, not a content digest.
func structureFingerprint(content string) string {
	h := fnv.New64a()
	n := 0
	for _, r := range content {
		if n >= 1000 {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' {
			h.Write([]byte(string(r)))
			n++
		}
	}
	return fmt.Sprintf("%x", h.Sum64())
}

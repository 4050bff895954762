// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import "strings"

// runAnalyzers runs the fixed ML analyzer pipeline over the two
// trees, in order, appending each analyzer's observations to stream. Order
// is part of the contract and MUST NOT be reordered.
func runAnalyzers(a, b Value, stream []DiffResult) []DiffResult {
	stream = analyzeArchitecture(a, b, stream)
	stream = analyzeMemory(a, b, stream)
	stream = analyzeLearningRate(a, b, stream)
	stream = analyzeConvergence(a, b, stream)
	stream = analyzeGradient(a, b, stream)
	stream = analyzeWeightDistribution(a, b, stream)
	stream = analyzeActivation(a, b, stream)
	stream = analyzeBatchNorm(a, b, stream)
	stream = analyzeRegularization(a, b, stream)
	stream = analyzeAttention(a, b, stream)
	stream = analyzeEnsemble(a, b, stream)
	stream = analyzeQuantization(a, b, stream)
	stream = analyzeComplexity(a, b, stream)
	return stream
}

// weightOrBiasKey reports whether key should be treated as carrying a
// tensor for parameter-scanning analyzers (architecture, memory): any key
// whose name contains "weight" or "bias".
func weightOrBiasKey(key string) bool {
	return strings.Contains(key, "weight") || strings.Contains(key, "bias")
}

// walkTensorKeys recursively visits every Object in tree, invoking fn for
// each (path, key, value) pair whose key satisfies match. It does not
// descend into tensor descriptors themselves, since their fields ("shape",
// "dtype", ...) are not themselves tensors.
func walkTensorKeys(tree Value, match func(key string) bool, fn func(path Path, key string, v Value)) {
	var walk func(p Path, v Value)
	walk = func(p Path, v Value) {
		if v.Kind != KindObject {
			return
		}
		for key, child := range v.Object {
			childPath := p.Child(key)
			if match(key) {
				fn(childPath, key, child)
			}
			if !child.IsTensorDescriptor() {
				walk(childPath, child)
			}
		}
	}
	walk(Root, tree)
}

// extractLayerType infers a coarse layer category from a parameter key,
// with precedence conv > linear/fc/classifier > norm/bn > attention/attn >
// embedding/embed > first dotted segment.
func extractLayerType(key string) (string, bool) {
	switch {
	case strings.Contains(key, "conv"):
		return "conv", true
	case strings.Contains(key, "linear") || strings.Contains(key, "fc") || strings.Contains(key, "classifier"):
		return "linear", true
	case strings.Contains(key, "norm") || strings.Contains(key, "bn"):
		return "norm", true
	case strings.Contains(key, "attention") || strings.Contains(key, "attn"):
		return "attention", true
	case strings.Contains(key, "embedding") || strings.Contains(key, "embed"):
		return "embedding", true
	default:
		if i := strings.IndexByte(key, '.'); i > 0 {
			return key[:i], true
		}
		return "", false
	}
}

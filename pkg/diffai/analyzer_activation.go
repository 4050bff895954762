// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import "fmt"

const activationSaturationThreshold = 0.01

var activationKeys = []string{
	"activation",
	"activation_fn",
	"activation_function",
	"act_fn",
	"nonlinearity",
	"hidden_act",
	"output_activation",
}

var activationNestedContainers = []string{"model_config", "config", "network", "variables"}

// analyzeActivation reports activation-function string changes, saturation
// drift, and dead-neuron count changes.
func analyzeActivation(a, b Value, stream []DiffResult) []DiffResult {
	for _, change := range activationFunctionChanges(a, b) {
		stream = append(stream, activationFunctionChanged(change.path, change.oldFn, change.newFn))
	}
	if oldSummary, newSummary, ok := activationSaturation(a, b); ok {
		stream = append(stream, modelArchitectureChanged("activation_saturation", oldSummary, newSummary))
	}
	if oldSummary, newSummary, ok := deadNeurons(a, b); ok {
		stream = append(stream, modelArchitectureChanged("dead_neurons", oldSummary, newSummary))
	}
	return stream
}

type activationChange struct {
	path  string
	oldFn string
	newFn string
}

// activationFunctionChanges scans the top level plus the conventional nested
// containers (and, for MATLAB-shaped trees, variables.network) for any of
// activationKeys, returning one entry per differing key.
func activationFunctionChanges(a, b Value) []activationChange {
	var changes []activationChange

	scan := func(prefix string, oldContainer, newContainer Value) {
		for _, key := range activationKeys {
			oldFn, oldHas := oldContainer.GetString(key)
			newFn, newHas := newContainer.GetString(key)
			if !oldHas && !newHas {
				continue
			}
			if oldFn == newFn {
				continue
			}
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			changes = append(changes, activationChange{path: path, oldFn: oldFn, newFn: newFn})
		}
	}

	scan("", a, b)

	for _, nested := range activationNestedContainers {
		oldChild, oldHas := a.Get(nested)
		newChild, newHas := b.Get(nested)
		if !oldHas && !newHas {
			continue
		}
		scan(nested, oldChild, newChild)
	}

	if oldNetwork, oldHas := a.Get("variables"); oldHas {
		if oldNetwork, oldHas = oldNetwork.Get("network"); oldHas {
			newNetwork, newHas := b.Get("variables")
			if newHas {
				newNetwork, newHas = newNetwork.Get("network")
			}
			if newHas {
				scan("variables.network", oldNetwork, newNetwork)
			}
		}
	}

	return changes
}

func activationSaturationValue(tree Value) (float64, bool) {
	stats, ok := tree.Get("activation_stats")
	if !ok {
		return 0, false
	}
	return stats.GetNumber("saturation")
}

func activationSaturation(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldSat, oldHas := activationSaturationValue(a)
	newSat, newHas := activationSaturationValue(b)
	if !oldHas || !newHas {
		return "", "", false
	}
	if abs(oldSat-newSat) <= activationSaturationThreshold {
		return "", "", false
	}
	return fmt.Sprintf("saturation: %.3f", oldSat), fmt.Sprintf("saturation: %.3f", newSat), true
}

func deadNeurons(a, b Value) (oldSummary, newSummary string, ok bool) {
	oldCount, oldHas := a.GetNumber("dead_neurons")
	newCount, newHas := b.GetNumber("dead_neurons")
	if !oldHas || !newHas || oldCount == newCount {
		return "", "", false
	}
	return fmt.Sprintf("dead_neurons: %d", int(oldCount)), fmt.Sprintf("dead_neurons: %d", int(newCount)), true
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package diffai

import "regexp"

// Options configures the structural differ and, where applicable, the
// analyzer pipeline. The zero value compares with no tolerance, positional
// arrays, and no filtering.
type Options struct {
	// Epsilon is the absolute numeric tolerance applied to scalar and
	// tensor-summary comparisons. Nil disables tolerance (exact equality).
	Epsilon *float64

	// ArrayIDKey, when non-empty, enables identity-keyed array comparison:
	// arrays of objects are treated as sets keyed by this field.
	ArrayIDKey string

	// IgnoreKeysRegex, when non-nil, prunes any key whose final path
	// segment matches from both trees prior to comparison.
	IgnoreKeysRegex *regexp.Regexp

	// PathFilter, when non-empty, suppresses any emitted record whose path
	// does not contain this substring.
	PathFilter string

	// OutputFormat is a hint for the renderer; the core never consumes it.
	OutputFormat string
}

// NewOptions builds an Options from the string forms a CLI front end
// collects, compiling IgnoreKeysRegex and returning an InvalidOptionError on
// a malformed pattern.
func NewOptions(epsilon *float64, arrayIDKey, ignoreKeysRegex, pathFilter, outputFormat string) (Options, error) {
	opts := Options{
		Epsilon:      epsilon,
		ArrayIDKey:   arrayIDKey,
		PathFilter:   pathFilter,
		OutputFormat: outputFormat,
	}
	if ignoreKeysRegex != "" {
		re, err := regexp.Compile(ignoreKeysRegex)
		if err != nil {
			return Options{}, &InvalidOptionError{Name: "ignore_keys_regex", Reason: err.Error()}
		}
		opts.IgnoreKeysRegex = re
	}
	return opts, nil
}

// numbersEqual applies the epsilon tolerance rule: |a-b| <= epsilon is
// equal; NaN is never equal to anything, including itself.
func (o Options) numbersEqual(a, b float64) bool {
	if a != a || b != b { // NaN check
		return false
	}
	if a == b {
		return true
	}
	if o.Epsilon == nil {
		return false
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= *o.Epsilon
}

func (o Options) ignoresKey(lastSegment string) bool {
	return o.IgnoreKeysRegex != nil && o.IgnoreKeysRegex.MatchString(lastSegment)
}

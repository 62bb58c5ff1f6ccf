// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
)

// =============================================================================
// PREFIXES
// =============================================================================

// Prefix marks the start of an argument, e.g. "n/".
type Prefix string

const (
	PrefixNric         Prefix = "n/"
	PrefixName         Prefix = "nm/"
	PrefixPhone        Prefix = "p/"
	PrefixEmail        Prefix = "e/"
	PrefixAddress      Prefix = "a/"
	PrefixAllergy      Prefix = "al/"
	PrefixIllness      Prefix = "ill/"
	PrefixSurgery      Prefix = "sur/"
	PrefixImmunization Prefix = "imm/"
	PrefixMedicineName Prefix = "mn/"
	PrefixDosage       Prefix = "dos/"
	PrefixStartDate    Prefix = "sd/"
	PrefixEndDate      Prefix = "ed/"
)

func (p Prefix) String() string {
	return string(p)
}

// =============================================================================
// ARGUMENT MULTIMAP
// =============================================================================

// ArgumentMultimap holds the values given for each prefix, in input order,
// plus the preamble before the first prefix.
type ArgumentMultimap struct {
	preamble string
	values   map[Prefix][]string
}

// Preamble is the trimmed text before the first recognized prefix.
func (a ArgumentMultimap) Preamble() string {
	return a.preamble
}

// Value returns the last value given for p.
func (a ArgumentMultimap) Value(p Prefix) (string, bool) {
	vs := a.values[p]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// ValueOr returns the last value given for p, or def when p is absent.
func (a ArgumentMultimap) ValueOr(p Prefix, def string) string {
	if v, ok := a.Value(p); ok {
		return v
	}
	return def
}

// AllValues returns every value given for p.
func (a ArgumentMultimap) AllValues(p Prefix) []string {
	return append([]string(nil), a.values[p]...)
}

// Has reports whether every prefix was given at least once.
func (a ArgumentMultimap) Has(prefixes ...Prefix) bool {
	for _, p := range prefixes {
		if len(a.values[p]) == 0 {
			return false
		}
	}
	return true
}

// VerifyNoDuplicatePrefixesFor fails if any of prefixes was given more than
// once. The message lists each offending prefix once.
func (a ArgumentMultimap) VerifyNoDuplicatePrefixesFor(prefixes ...Prefix) error {
	var dups []string
	seen := make(map[Prefix]bool)
	for _, p := range prefixes {
		if seen[p] {
			continue
		}
		seen[p] = true
		if len(a.values[p]) > 1 {
			dups = append(dups, p.String())
		}
	}
	if len(dups) == 0 {
		return nil
	}
	return &ParseError{
		Kind:    ErrDuplicatePrefix,
		Message: MessageDuplicateFields + strings.Join(dups, " "),
	}
}

// =============================================================================
// TOKENIZER
// =============================================================================

type prefixPosition struct {
	prefix Prefix
	start  int // index of the prefix in the padded input
}

// Tokenize splits args on prefixes. A prefix only counts when preceded by
// whitespace, so "mn/Aspirin" is not mistaken for "n/".
func Tokenize(args string, prefixes ...Prefix) ArgumentMultimap {
	padded := " " + args
	positions := findPrefixPositions(padded, prefixes)

	result := ArgumentMultimap{values: make(map[Prefix][]string)}
	if len(positions) == 0 {
		result.preamble = strings.TrimSpace(padded)
		return result
	}

	result.preamble = strings.TrimSpace(padded[:positions[0].start])
	for i, pos := range positions {
		end := len(padded)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		value := strings.TrimSpace(padded[pos.start+len(pos.prefix) : end])
		result.values[pos.prefix] = append(result.values[pos.prefix], value)
	}
	return result
}

func findPrefixPositions(s string, prefixes []Prefix) []prefixPosition {
	var positions []prefixPosition
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		from := 0
		for {
			i := strings.Index(s[from:], string(p))
			if i < 0 {
				break
			}
			start := from + i
			if start > 0 && isSpace(s[start-1]) {
				positions = append(positions, prefixPosition{prefix: p, start: start})
			}
			from = start + 1
		}
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].start < positions[j].start
	})
	return positions
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

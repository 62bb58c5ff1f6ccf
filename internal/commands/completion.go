// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
	"unicode"
)

// =============================================================================
// COMPLETION
// =============================================================================

// Completion is a single completion candidate.
type Completion struct {
	// Value replaces the token being completed.
	Value string

	// Display is shown in completion menus.
	Display string

	// Description is shown next to Display.
	Description string

	// Score orders candidates, higher first.
	Score int
}

// =============================================================================
// COMPLETER
// =============================================================================

// Completer completes command words, argument prefixes and NRICs.
type Completer struct {
	registry *Registry

	// NricsFn returns the NRICs of recorded patients. Optional.
	NricsFn func() []string
}

// NewCompleter creates a completer over registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns candidates for the token under the cursor.
func (c *Completer) Complete(input string, cursorPos int) []Completion {
	if cursorPos >= 0 && cursorPos < len(input) {
		input = input[:cursorPos]
	}
	input = strings.TrimLeftFunc(input, unicode.IsSpace)

	word, args := SplitCommandWord(input)
	if args == "" && !strings.HasSuffix(input, " ") {
		return c.completeWords(word)
	}

	spec := c.registry.Get(word)
	if spec == nil {
		return nil
	}

	partial := lastToken(input)
	if strings.HasPrefix(partial, PrefixNric.String()) && c.NricsFn != nil {
		return c.completeNrics(strings.TrimPrefix(partial, PrefixNric.String()))
	}
	return c.completePrefixes(spec, Tokenize(args, spec.Prefixes...), partial)
}

// CompleteLine returns whole-line completions, the shape liner expects.
func (c *Completer) CompleteLine(line string) []string {
	completions := c.Complete(line, len(line))
	if len(completions) == 0 {
		return nil
	}
	head := line[:len(line)-len(lastToken(line))]
	lines := make([]string, 0, len(completions))
	for _, comp := range completions {
		lines = append(lines, head+comp.Value)
	}
	return lines
}

func (c *Completer) completeWords(partial string) []Completion {
	var completions []Completion
	partial = strings.ToLower(partial)

	for _, spec := range c.registry.All() {
		if strings.HasPrefix(spec.Word, partial) {
			completions = append(completions, Completion{
				Value:       spec.Word,
				Display:     spec.Word,
				Description: spec.Summary,
				Score:       calculateScore(spec.Word, partial),
			})
		}
		for _, alias := range spec.Aliases {
			if partial != "" && strings.HasPrefix(alias, partial) {
				completions = append(completions, Completion{
					Value:       alias,
					Display:     alias + " -> " + spec.Word,
					Description: spec.Summary,
					Score:       calculateScore(alias, partial) - 10,
				})
			}
		}
	}

	sortCompletions(completions)
	return completions
}

// completePrefixes offers the prefixes spec accepts that have not been
// given yet.
func (c *Completer) completePrefixes(spec *Spec, given ArgumentMultimap, partial string) []Completion {
	var completions []Completion
	for _, p := range spec.Prefixes {
		if given.Has(p) || !strings.HasPrefix(p.String(), partial) {
			continue
		}
		completions = append(completions, Completion{
			Value:       p.String(),
			Display:     p.String(),
			Description: prefixDescriptions[p],
			Score:       calculateScore(p.String(), partial),
		})
	}
	sortCompletions(completions)
	return completions
}

func (c *Completer) completeNrics(partial string) []Completion {
	var completions []Completion
	partial = strings.ToUpper(partial)
	for _, nric := range c.NricsFn() {
		if strings.HasPrefix(nric, partial) {
			completions = append(completions, Completion{
				Value:   PrefixNric.String() + nric,
				Display: nric,
				Score:   calculateScore(nric, partial),
			})
		}
	}
	sortCompletions(completions)
	return completions
}

var prefixDescriptions = map[Prefix]string{
	PrefixNric:         "NRIC",
	PrefixName:         "name",
	PrefixPhone:        "phone",
	PrefixEmail:        "email",
	PrefixAddress:      "address",
	PrefixAllergy:      "allergy",
	PrefixIllness:      "illness",
	PrefixSurgery:      "surgery",
	PrefixImmunization: "immunization",
	PrefixMedicineName: "medicine name",
	PrefixDosage:       "dosage",
	PrefixStartDate:    "start date (YYYY-MM-DD)",
	PrefixEndDate:      "end date (YYYY-MM-DD)",
}

// =============================================================================
// HELPERS
// =============================================================================

// lastToken returns the text after the last space, or "" if input ends in one.
func lastToken(input string) string {
	i := strings.LastIndexFunc(input, unicode.IsSpace)
	return input[i+1:]
}

func calculateScore(value, partial string) int {
	value = strings.ToLower(value)
	partial = strings.ToLower(partial)

	score := 100

	if value == partial {
		return score + 100
	}

	if strings.HasPrefix(value, partial) {
		score += 50
		score += 20 - len(value)
	}

	score -= len(value) / 2
	return score
}

// sortCompletions sorts by score (descending), then alphabetically.
func sortCompletions(completions []Completion) {
	sort.Slice(completions, func(i, j int) bool {
		if completions[i].Score != completions[j].Score {
			return completions[i].Score > completions[j].Score
		}
		return completions[i].Value < completions[j].Value
	})
}

// =============================================================================
// COMPLETION STATE
// =============================================================================

// CompletionState tracks a completion menu being cycled with Tab.
type CompletionState struct {
	// OriginalInput is the input before completion started.
	OriginalInput string

	Completions []Completion

	// Selected index (-1 for none).
	Selected int

	Visible bool
}

// NewCompletionState creates an empty completion state.
func NewCompletionState() *CompletionState {
	return &CompletionState{Selected: -1}
}

// Update replaces the candidates and selects the first one.
func (cs *CompletionState) Update(input string, completions []Completion) {
	cs.OriginalInput = input
	cs.Completions = completions
	cs.Selected = 0
	cs.Visible = len(completions) > 0
}

// Next moves to the next candidate, wrapping around.
func (cs *CompletionState) Next() {
	if len(cs.Completions) == 0 {
		return
	}
	cs.Selected = (cs.Selected + 1) % len(cs.Completions)
}

// Prev moves to the previous candidate, wrapping around.
func (cs *CompletionState) Prev() {
	if len(cs.Completions) == 0 {
		return
	}
	cs.Selected--
	if cs.Selected < 0 {
		cs.Selected = len(cs.Completions) - 1
	}
}

// Accept returns the input with the selected candidate applied.
func (cs *CompletionState) Accept() string {
	sel := cs.GetSelected()
	if sel == nil {
		if len(cs.Completions) == 0 {
			return cs.OriginalInput
		}
		sel = &cs.Completions[0]
	}
	head := cs.OriginalInput[:len(cs.OriginalInput)-len(lastToken(cs.OriginalInput))]
	return head + sel.Value
}

// Clear resets the state.
func (cs *CompletionState) Clear() {
	cs.OriginalInput = ""
	cs.Completions = nil
	cs.Selected = -1
	cs.Visible = false
}

// GetSelected returns the selected candidate, or nil.
func (cs *CompletionState) GetSelected() *Completion {
	if cs.Selected < 0 || cs.Selected >= len(cs.Completions) {
		return nil
	}
	return &cs.Completions[cs.Selected]
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"unicode"
)

// =============================================================================
// COMMAND SPEC
// =============================================================================

// Spec describes one command word: how it is written, documented and parsed.
type Spec struct {
	// Word is the primary command word (e.g. "clearmu").
	Word string

	// Aliases are alternative words (e.g. "ls" for "list").
	Aliases []string

	// Summary is the one-line description shown in help and completion.
	Summary string

	// Usage is the full usage text quoted in format errors.
	Usage string

	// Category groups commands in help output.
	Category string

	// Prefixes are the argument prefixes the command accepts, for completion.
	Prefixes []Prefix

	// TakesIndex marks commands that accept a displayed index as preamble.
	TakesIndex bool

	// Parse turns the text after the command word into a Command.
	Parse func(args string) (Command, error)
}

// Categories, in help display order.
const (
	CategoryPatients = "Patients"
	CategoryReports  = "Medical reports"
	CategoryUsages   = "Medicine usages"
	CategoryGeneral  = "General"
)

var categoryOrder = []string{CategoryPatients, CategoryReports, CategoryUsages, CategoryGeneral}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds every known command word.
type Registry struct {
	specs   map[string]*Spec
	aliases map[string]*Spec
	order   []*Spec
}

// NewRegistry creates a registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		specs:   make(map[string]*Spec),
		aliases: make(map[string]*Spec),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command, replacing any earlier spec with the same word.
func (r *Registry) Register(spec *Spec) {
	if _, exists := r.specs[spec.Word]; !exists {
		r.order = append(r.order, spec)
	} else {
		for i, s := range r.order {
			if s.Word == spec.Word {
				r.order[i] = spec
			}
		}
	}
	r.specs[spec.Word] = spec
	for _, alias := range spec.Aliases {
		r.aliases[alias] = spec
	}
}

// Get retrieves a spec by word or alias. Lookup is case-insensitive.
func (r *Registry) Get(word string) *Spec {
	word = strings.ToLower(word)
	if spec, ok := r.specs[word]; ok {
		return spec
	}
	if spec, ok := r.aliases[word]; ok {
		return spec
	}
	return nil
}

// All returns every spec in registration order.
func (r *Registry) All() []*Spec {
	return append([]*Spec(nil), r.order...)
}

// ByCategory returns specs grouped by category.
func (r *Registry) ByCategory() map[string][]*Spec {
	result := make(map[string][]*Spec)
	for _, spec := range r.order {
		category := spec.Category
		if category == "" {
			category = CategoryGeneral
		}
		result[category] = append(result[category], spec)
	}
	return result
}

// Categories returns the category names in display order, followed by any
// custom categories in registration order.
func (r *Registry) Categories() []string {
	grouped := r.ByCategory()
	var names []string
	seen := make(map[string]bool)
	for _, c := range categoryOrder {
		if len(grouped[c]) > 0 {
			names = append(names, c)
			seen[c] = true
		}
	}
	for _, spec := range r.order {
		c := spec.Category
		if c != "" && !seen[c] {
			names = append(names, c)
			seen[c] = true
		}
	}
	return names
}

func (r *Registry) registerBuiltins() {
	r.Register(addSpec())
	r.Register(deleteSpec())
	r.Register(listSpec())
	r.Register(findSpec())
	r.Register(clearSpec())
	r.Register(addReportSpec())
	r.Register(viewReportSpec())
	r.Register(deleteReportSpec())
	r.Register(addUsageSpec())
	r.Register(clearUsageSpec())
	r.Register(helpSpec())
	r.Register(exitSpec())
}

// =============================================================================
// PARSER
// =============================================================================

// Parser turns input lines into commands using a registry.
type Parser struct {
	registry *Registry
}

// NewParser creates a parser over registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Registry returns the registry the parser resolves words against.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// Parse splits off the command word and hands the rest to the command's
// parse function. An empty line is a format error quoting the help usage.
func (p *Parser) Parse(line string) (Command, error) {
	word, args := SplitCommandWord(line)
	if word == "" {
		return nil, invalidFormat(HelpUsage)
	}

	spec := p.registry.Get(word)
	if spec == nil {
		return nil, &ParseError{Kind: ErrUnknownCommand, Message: MessageUnknownCommand}
	}
	return spec.Parse(args)
}

// SplitCommandWord returns the lower-cased first word of line and the
// untrimmed remainder.
func SplitCommandWord(line string) (word, args string) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	end := strings.IndexFunc(line, unicode.IsSpace)
	if end == -1 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:end]), line[end:]
}

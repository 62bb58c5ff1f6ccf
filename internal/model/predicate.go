// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// Predicate selects the patients shown in the displayed list.
type Predicate func(*Patient) bool

// ShowAll matches every patient.
func ShowAll(*Patient) bool { return true }

// NameContainsKeywords matches patients whose name contains any keyword as a
// whole word, ignoring case.
func NameContainsKeywords(keywords []string) Predicate {
	fold := cases.Fold()
	wanted := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k != "" {
			wanted[fold.String(k)] = struct{}{}
		}
	}

	return func(p *Patient) bool {
		for _, word := range strings.Fields(string(p.Name)) {
			if _, ok := wanted[fold.String(word)]; ok {
				return true
			}
		}
		return false
	}
}

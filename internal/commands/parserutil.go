// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strconv"
	"strings"

	"github.com/jeranaias/medrec/internal/model"
)

// =============================================================================
// VALUE PARSERS
// =============================================================================

func parseNric(s string) (model.Nric, error) {
	nric, err := model.ParseNric(s)
	if err != nil {
		return model.Nric{}, invalidValue(err)
	}
	return nric, nil
}

// parseIndex accepts a non-zero unsigned integer. Signs are rejected.
func parseIndex(s string) (model.Index, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 31)
	if err != nil || n == 0 {
		return model.Index{}, &ParseError{Kind: ErrInvalidValue, Message: MessageInvalidIndex}
	}
	return model.IndexFromOneBased(int(n)), nil
}

// parseTarget reads either n/NRIC with an empty preamble, or an index as the
// whole preamble. Anything else is a format error carrying usage.
func parseTarget(args ArgumentMultimap, usage string) (Target, error) {
	if err := args.VerifyNoDuplicatePrefixesFor(PrefixNric); err != nil {
		return nil, err
	}

	raw, hasNric := args.Value(PrefixNric)
	preamble := args.Preamble()

	switch {
	case hasNric && preamble != "":
		return nil, invalidFormat(usage)
	case hasNric:
		nric, err := parseNric(raw)
		if err != nil {
			return nil, err
		}
		return ByNric(nric), nil
	case preamble == "":
		return nil, invalidFormat(usage)
	default:
		index, err := parseIndex(preamble)
		if err != nil {
			return nil, invalidFormat(usage)
		}
		return ByIndex(index), nil
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "fmt"

// Index is a position in the displayed patient list. It is a view reference,
// not a stable identifier: it goes stale whenever the displayed list changes.
type Index struct {
	zeroBased int
}

// IndexFromOneBased builds an Index from a one-based position.
// It panics if n < 1.
func IndexFromOneBased(n int) Index {
	if n < 1 {
		panic(fmt.Sprintf("model: one-based index must be positive, got %d", n))
	}
	return Index{zeroBased: n - 1}
}

// IndexFromZeroBased builds an Index from a zero-based position.
// It panics if n < 0.
func IndexFromZeroBased(n int) Index {
	if n < 0 {
		panic(fmt.Sprintf("model: zero-based index must not be negative, got %d", n))
	}
	return Index{zeroBased: n}
}

// ZeroBased returns the position for slice access.
func (i Index) ZeroBased() int {
	return i.zeroBased
}

// OneBased returns the position as shown to the user.
func (i Index) OneBased() int {
	return i.zeroBased + 1
}

func (i Index) String() string {
	return fmt.Sprintf("%d", i.OneBased())
}

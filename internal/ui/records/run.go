// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package records

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/medrec/internal/session"
)

// Run shows the records screen until the user exits or ctx is cancelled.
// The caller owns mgr and closes it afterwards.
func Run(ctx context.Context, mgr *session.Manager, opts Options) error {
	p := tea.NewProgram(
		New(ctx, mgr, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("records screen: %w", err)
	}
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package insights

import (
	"context"

	"github.com/asoscope/asoscope-tui/internal/chat"
	"github.com/asoscope/asoscope-tui/internal/format"
	"github.com/asoscope/asoscope-tui/internal/model"
)

// Generator adapts the client to the chat engine's generator contract.
// filters may be nil; the dashboard context is then omitted from requests.
func (c *Client) Generator(filters func() model.FilterContext) chat.Generator {
	return func(ctx context.Context, question string) (string, error) {
		var summary string
		if filters != nil {
			if fc := filters(); !fc.IsZero() {
				summary = format.FilterSummary(fc)
			}
		}

		resp, err := c.Ask(ctx, question, summary)
		if err != nil {
			return "", err
		}
		return resp.Answer, nil
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme(t *testing.T) {
	th := NewTheme()
	if th == nil {
		t.Fatal("NewTheme returned nil")
	}

	// Styles must render without panicking.
	out := th.HeaderTitle.Render("Insights")
	if !strings.Contains(out, "Insights") {
		t.Errorf("HeaderTitle.Render dropped content: %q", out)
	}
}

func TestFreshnessBadge(t *testing.T) {
	th := NewTheme()

	cases := []string{"fresh", "aging", "stale", "unknown"}
	for _, label := range cases {
		out := th.FreshnessBadge(label).Render(label)
		if !strings.Contains(out, label) {
			t.Errorf("FreshnessBadge(%q) dropped content: %q", label, out)
		}
	}
}

func TestRenderError(t *testing.T) {
	out := RenderError("request failed")
	if !strings.Contains(out, "[X]") || !strings.Contains(out, "request failed") {
		t.Errorf("RenderError missing indicator or message: %q", out)
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asoscope/asoscope-tui/internal/chat"
	"github.com/asoscope/asoscope-tui/internal/ui/styles"
)

// =============================================================================
// CHAT INPUT
// =============================================================================

// Input row bounds. The area grows with content between these limits.
const (
	inputMinRows = 2
	inputMaxRows = 6
)

// ChatInput is the multi-line question entry box at the bottom of the
// sidebar. Enter is reserved for submission by the parent model; the
// textarea itself inserts newlines only on shift+enter (or ctrl+j on
// terminals that do not report modified enter).
type ChatInput struct {
	theme *styles.Theme
	area  textarea.Model
	spin  spinner.Model

	width    int
	disabled bool
	notice   string
}

// NewChatInput creates a focused chat input bounded to the question limit.
func NewChatInput(theme *styles.Theme) ChatInput {
	ta := textarea.New()
	ta.Placeholder = "Ask about your metrics..."
	ta.Prompt = ""
	ta.CharLimit = chat.MaxQuestionLen
	ta.ShowLineNumbers = false
	ta.SetHeight(inputMinRows)
	ta.KeyMap.InsertNewline = key.NewBinding(
		key.WithKeys("shift+enter", "ctrl+j"),
		key.WithHelp("S-Enter", "newline"),
	)
	ta.FocusedStyle.Placeholder = theme.InputPlaceholder
	ta.BlurredStyle.Placeholder = theme.InputPlaceholder
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	return ChatInput{
		theme: theme,
		area:  ta,
		spin:  sp,
	}
}

// Focus focuses the textarea and returns the cursor blink command.
func (c *ChatInput) Focus() tea.Cmd {
	return c.area.Focus()
}

// Blur removes focus from the textarea.
func (c *ChatInput) Blur() {
	c.area.Blur()
}

// Focused reports whether the textarea has focus.
func (c *ChatInput) Focused() bool {
	return c.area.Focused()
}

// Value returns the current input text.
func (c *ChatInput) Value() string {
	return c.area.Value()
}

// SetValue replaces the input text, moving the cursor to the end.
func (c *ChatInput) SetValue(s string) {
	c.area.SetValue(s)
	c.autoGrow()
}

// Reset clears the input text.
func (c *ChatInput) Reset() {
	c.area.Reset()
	c.area.SetHeight(inputMinRows)
}

// Empty reports whether the input holds only whitespace.
func (c *ChatInput) Empty() bool {
	return strings.TrimSpace(c.area.Value()) == ""
}

// SetWidth resizes the textarea. The border and padding consume four cells.
func (c *ChatInput) SetWidth(width int) {
	c.width = width
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	c.area.SetWidth(inner)
}

// SetDisabled toggles the sending state. While disabled the textarea is
// blurred, typed keys are dropped, and the send hint is replaced by the
// spinner. Returns the spinner tick command when entering the disabled
// state.
func (c *ChatInput) SetDisabled(disabled bool) tea.Cmd {
	if c.disabled == disabled {
		return nil
	}
	c.disabled = disabled
	if disabled {
		c.area.Blur()
		return c.spin.Tick
	}
	return c.area.Focus()
}

// SetNotice replaces the spinner footer with a static message while the
// input is disabled. Used when the input is off for the session rather
// than for an in-flight question.
func (c *ChatInput) SetNotice(notice string) {
	c.notice = notice
}

// Disabled reports whether the input is in the sending state.
func (c *ChatInput) Disabled() bool {
	return c.disabled
}

// Update forwards messages to the textarea and spinner.
func (c ChatInput) Update(msg tea.Msg) (ChatInput, tea.Cmd) {
	if c.disabled {
		if tick, ok := msg.(spinner.TickMsg); ok {
			var cmd tea.Cmd
			c.spin, cmd = c.spin.Update(tick)
			return c, cmd
		}
		// Keystrokes while sending are dropped.
		if _, ok := msg.(tea.KeyMsg); ok {
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.area, cmd = c.area.Update(msg)
	c.autoGrow()
	return c, cmd
}

// autoGrow tracks the content height between the row bounds.
func (c *ChatInput) autoGrow() {
	rows := c.area.LineCount()
	if rows < inputMinRows {
		rows = inputMinRows
	}
	if rows > inputMaxRows {
		rows = inputMaxRows
	}
	c.area.SetHeight(rows)
}

// View renders the bordered input area with the send hint and character
// counter footer.
func (c ChatInput) View() string {
	container := c.theme.InputContainer
	if !c.area.Focused() && !c.disabled {
		container = c.theme.InputBlurred
	}
	if c.width > 0 {
		container = container.Width(c.width - 2)
	}

	body := c.area.View()
	footer := c.renderFooter()

	return container.Render(body + "\n" + footer)
}

// renderFooter builds the send affordance on the left and the character
// counter on the right, padded to the inner width.
func (c ChatInput) renderFooter() string {
	var left string
	if c.disabled && c.notice != "" {
		left = c.theme.ThinkingText.Render(styles.StatusIndicators.Warning + " " + c.notice)
	} else if c.disabled {
		left = c.spin.View() + " " + c.theme.ThinkingText.Render("Thinking...")
	} else {
		left = c.theme.SendHint.Render("Enter") +
			c.theme.ShortcutDesc.Render(" send ") +
			c.theme.SendHint.Render("S-Enter") +
			c.theme.ShortcutDesc.Render(" newline")
	}

	right := c.renderCharCount()

	gap := c.width - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderCharCount colors the counter by how close the text is to the limit.
func (c ChatInput) renderCharCount() string {
	count := len([]rune(c.area.Value()))
	limit := chat.MaxQuestionLen
	text := fmt.Sprintf("%d/%d", count, limit)

	pct := count * 100 / limit
	switch {
	case pct >= 90:
		return c.theme.CharCountDanger.Render(text + " " + styles.StatusIndicators.Warning)
	case pct >= 75:
		return c.theme.CharCountWarning.Render(text + " [~]")
	case pct >= 50:
		return c.theme.CharCountNotice.Render(text)
	default:
		return c.theme.CharCount.Render(text)
	}
}

// Height returns the rendered height in rows, border included.
func (c ChatInput) Height() int {
	return lipgloss.Height(c.View())
}

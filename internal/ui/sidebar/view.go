// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/asoscope/asoscope-tui/internal/format"
	"github.com/asoscope/asoscope-tui/internal/model"
	"github.com/asoscope/asoscope-tui/internal/panel"
	"github.com/asoscope/asoscope-tui/internal/ui/components"
)

// View renders the dashboard pane with the sidebar docked on the right.
// A rendering panic collapses the panel instead of crashing the program.
func (m Model) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sidebar: render panic recovered: %v", r)
			m.machine.Collapse()
			out = m.renderDashboard(m.width)
		}
	}()

	if !m.ready {
		return "loading..."
	}

	cols := m.panelCols()
	switch {
	case m.machine.State() == panel.StateFullscreen:
		return m.renderPanel(m.width)
	case cols == 0:
		rail := m.renderRail()
		railW := lipgloss.Width(rail)
		dash := m.renderDashboard(m.width - railW)
		return lipgloss.JoinHorizontal(lipgloss.Top, dash, rail)
	default:
		dash := m.renderDashboard(m.width - cols)
		return lipgloss.JoinHorizontal(lipgloss.Top, dash, m.renderPanel(cols))
	}
}

// =============================================================================
// PANEL
// =============================================================================

func (m Model) renderPanel(cols int) string {
	inner := cols - 2

	var sections []string
	sections = append(sections, m.renderHeader(inner))

	if m.history.Visible() {
		sections = append(sections, m.history.View())
	} else {
		sections = append(sections, m.viewport.View())
	}

	if m.completion.Visible {
		sections = append(sections, m.renderCompletions(inner))
	}

	if m.flash != "" {
		sections = append(sections, m.renderFlash(inner))
	}

	sections = append(sections, m.input.View())
	sections = append(sections, m.statusBar.View())

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	style := m.theme.Panel.Width(inner)
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	if m.machine.Dragging() {
		style = style.BorderForeground(m.theme.DragHandleActive.GetForeground())
	}
	return style.Render(body)
}

func (m Model) renderHeader(inner int) string {
	title := m.theme.HeaderTitle.Render("Insights")
	badge := components.FreshnessBadge(m.theme, m.summary, time.Now())

	gap := inner - 2 - lipgloss.Width(title) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	return m.theme.Header.Width(inner).Render(title + strings.Repeat(" ", gap) + badge)
}

func (m Model) renderFlash(inner int) string {
	if m.flashErr {
		return m.theme.ErrorMessage.Width(inner).Render(m.flash)
	}
	return m.theme.MessageMeta.Width(inner).Render(m.flash)
}

// renderCompletions draws the command completion popup above the input.
func (m Model) renderCompletions(inner int) string {
	const maxRows = 6

	var rows []string
	for i, comp := range m.completion.Completions {
		if i >= maxRows {
			rows = append(rows, m.theme.HistoryMeta.Render(
				fmt.Sprintf("  +%d more", len(m.completion.Completions)-maxRows)))
			break
		}
		line := comp.Display
		if comp.Description != "" {
			line += "  " + comp.Description
		}
		if i == m.completion.Selected {
			rows = append(rows, m.theme.CompletionSelected.Render("> "+line))
		} else {
			rows = append(rows, m.theme.CompletionItem.Render("  "+line))
		}
	}

	return m.theme.CompletionPopup.Width(inner - 2).Render(strings.Join(rows, "\n"))
}

// =============================================================================
// MESSAGES
// =============================================================================

// refreshViewport rebuilds the transcript content.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderMessages(m.viewport.Width))
}

func (m *Model) renderMessages(width int) string {
	if width < 10 {
		width = 10
	}
	bubbleWidth := width - 2

	conv := m.engine.Active()
	now := time.Now()

	var blocks []string
	if conv != nil {
		for _, msg := range conv.Messages {
			blocks = append(blocks, m.renderMessage(msg, bubbleWidth, now))
		}
	}

	if len(blocks) == 0 {
		return m.theme.MessageMeta.Width(width).Render(
			"Ask a question about your store performance, or type /help for commands.")
	}

	return strings.Join(blocks, "\n\n")
}

func (m *Model) renderMessage(msg *model.Message, bubbleWidth int, now time.Time) string {
	age := format.RelativeAge(msg.Timestamp, now)

	if msg.Role == model.RoleUser {
		meta := m.theme.MessageMeta.Render("You " + age)
		body := m.theme.UserBubble.Width(bubbleWidth).Render(msg.Content)
		return meta + "\n" + body
	}

	meta := m.theme.MessageMeta.Render("Insights " + age)
	body := msg.Content
	if r := m.markdownRenderer(bubbleWidth - 2); r != nil {
		if rendered, err := r.Render(msg.Content); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	return meta + "\n" + m.theme.AssistantBubble.Width(bubbleWidth).Render(body)
}

// =============================================================================
// DASHBOARD PANE
// =============================================================================

// renderDashboard draws the metrics overview that fills the space left of
// the sidebar.
func (m Model) renderDashboard(width int) string {
	if width <= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.HeaderTitle.Render("asoscope"))
	b.WriteString("\n")

	var fc model.FilterContext
	if m.filters != nil {
		fc = m.filters()
	}
	b.WriteString(m.theme.HeaderSubtitle.Render(format.FilterSummary(fc)))
	b.WriteString("\n\n")

	if m.summary == nil {
		b.WriteString(m.theme.MessageMeta.Render("No metrics recorded yet."))
	} else {
		rows := [][2]string{
			{"Impressions", fmt.Sprintf("%d", m.summary.Impressions)},
			{"Downloads", fmt.Sprintf("%d", m.summary.Downloads)},
			{"Conversion", fmt.Sprintf("%.1f%%", m.summary.Conversion()*100)},
			{"Days", fmt.Sprintf("%d", m.summary.Days)},
		}
		for _, row := range rows {
			b.WriteString(m.theme.HeaderSubtitle.Render(row[0]+": ") + row[1])
			b.WriteString("\n")
		}
	}

	style := m.theme.Container.Width(width)
	if m.height > 0 {
		style = style.Height(m.height)
	}
	return style.Render(b.String())
}

// renderRail draws the slim affordance shown while the panel is collapsed.
func (m Model) renderRail() string {
	lines := []string{
		m.theme.HeaderTitle.Render("AI"),
		m.theme.ShortcutKey.Render("C-\\"),
	}
	rail := m.theme.Rail
	if m.height > 0 {
		rail = rail.Height(m.height)
	}
	return rail.Render(strings.Join(lines, "\n"))
}

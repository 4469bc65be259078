package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"pathlink"
)

const (
	colAccent  = "#88c0d0"
	colMuted   = "#616e88"
	colText    = "#d8dee9"
	colError   = "#bf616a"
	colLink    = "#a3be8c"
	colHover   = "#ebcb8b"
	colHeader  = "#81a1c1"
	colLineNum = "#4c566a"
)

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	header := m.renderHeader()
	line := m.renderLine()
	variants := m.renderVariants()
	result := m.renderResult()
	preview := m.renderPreview()
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, line, variants, result, preview, footer)
}

func (m model) renderHeader() string {
	inputStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colText)).Padding(0, 1)
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colMuted))

	status := fmt.Sprintf("nav %s | root %s", m.cfg.Nav, m.cfg.Root)
	if m.resolving {
		status += " | resolving"
	}
	if m.status != "" {
		status += " | " + m.status
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		inputStyle.Render(m.input.View()),
		statusStyle.Render(truncateText(status, m.width)),
	)
}

// renderLine shows the captured line with the hovered word emphasized and
// the resolved hyperlink range underlined.
func (m model) renderLine() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colHeader)).Bold(true)
	if m.line == "" || len(m.words) == 0 {
		return labelStyle.Render("line") + "\n"
	}

	plain := lipgloss.NewStyle().Foreground(lipgloss.Color(colText))
	hover := lipgloss.NewStyle().Foreground(lipgloss.Color(colHover)).Bold(true)
	link := lipgloss.NewStyle().Foreground(lipgloss.Color(colLink)).Underline(true)

	hoverRange := m.words[m.hover]
	linkRange := pathlink.Range{}
	if m.target != nil {
		linkRange = m.target.HyperlinkRange()
	}

	var b strings.Builder
	for i := 0; i < len(m.line); {
		j := i + 1
		for j < len(m.line) && segmentKind(i, hoverRange, linkRange) == segmentKind(j, hoverRange, linkRange) {
			j++
		}
		style := plain
		switch segmentKind(i, hoverRange, linkRange) {
		case 1:
			style = hover
		case 2:
			style = link
		case 3:
			style = hover.Underline(true)
		}
		b.WriteString(style.Render(m.line[i:j]))
		i = j
	}

	return labelStyle.Render("line") + "\n  " + truncatePlainWidth(b.String(), m.width-2)
}

// segmentKind classifies a byte offset: 0 plain, 1 hovered, 2 linked, 3 both.
func segmentKind(i int, hover, link pathlink.Range) int {
	kind := 0
	if hover.Contains(i) {
		kind |= 1
	}
	if link.Len() > 0 && link.Contains(i) {
		kind |= 2
	}
	return kind
}

func (m model) renderVariants() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colHeader)).Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colMuted))

	lines := []string{labelStyle.Render("candidates")}
	if m.heuristic != nil {
		lines = append(lines, "  heuristic: "+truncateText(m.heuristic.Word, m.width-13))
	}
	for _, text := range m.variants {
		lines = append(lines, itemStyle.Render("  "+truncateText(text, m.width-2)))
	}
	if len(lines) == 1 {
		lines = append(lines, itemStyle.Render("  none"))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderResult() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colHeader)).Bold(true)

	switch {
	case m.resolving:
		return labelStyle.Render("target") + "\n  " +
			lipgloss.NewStyle().Foreground(lipgloss.Color(colMuted)).Render("...")
	case m.target == nil:
		return labelStyle.Render("target") + "\n  " +
			lipgloss.NewStyle().Foreground(lipgloss.Color(colMuted)).Render("no match")
	default:
		return labelStyle.Render("target") + "\n  " +
			lipgloss.NewStyle().Foreground(lipgloss.Color(colLink)).Render(truncateText(formatTarget(m.target), m.width-2))
	}
}

func (m model) renderPreview() string {
	height := m.previewHeight()
	if height <= 0 {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colHeader)).Bold(true)
	numStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colLineNum))
	markStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colHover)).Bold(true)

	lines := make([]string, 0, height+1)
	lines = append(lines, labelStyle.Render(truncateText("preview  "+m.preview.Path, m.width)))

	if m.preview.Err != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colError))
		lines = append(lines, "  "+errStyle.Render(truncateText(m.preview.Err, m.width-2)))
	}
	for i := 0; i < len(m.preview.Lines) && i < height; i++ {
		lineNo := m.preview.StartLine + i
		mark := "  "
		if lineNo == m.preview.Selected {
			mark = markStyle.Render("> ")
		}
		prefix := numStyle.Render(fmt.Sprintf("%5d ", lineNo))
		lines = append(lines, mark+prefix+truncatePlainWidth(m.preview.Lines[i], m.width-8))
	}
	for len(lines) < height+1 {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func (m model) renderFooter() string {
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colMuted))
	text := "tab/shift+tab move hover  enter open  ctrl+y copy  esc quit"
	return footerStyle.Render(truncateText(text, m.width))
}

// previewHeight is whatever the fixed panes leave over.
func (m model) previewHeight() int {
	fixed := 2 + 2 + len(m.variants) + 2 + 2 + 1 + 1
	if m.heuristic != nil {
		fixed++
	}
	return max(0, m.height-fixed)
}

func truncateText(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", "    ")

	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// truncatePlainWidth cuts an already-styled string by display width,
// stepping over its ANSI sequences.
func truncatePlainWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "")
}

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/number-classifier/internal/model"
)

// RenderRecord formats a classification record for the terminal. An empty
// funFact omits the fact line.
func RenderRecord(record model.ClassificationRecord, funFact string) string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(LabelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Prime", yesNo(record.IsPrime))
	row("Perfect", yesNo(record.IsPerfect))
	row("Armstrong", yesNo(record.IsArmstrong))
	row("Parity", string(record.Parity))
	row("Digit sum", fmt.Sprintf("%d", record.DigitSum))
	row("Properties", strings.Join(record.PropertyStrings(), ", "))
	if funFact != "" {
		row("Fun fact", SubtleStyle.Render(funFact))
	}

	return RenderBox(NumberIcon+" "+record.Number.String(), strings.TrimRight(b.String(), "\n"))
}

// RenderTable formats scan results as a table of number, properties and digit sum.
func RenderTable(records []model.ClassificationRecord) string {
	headers := []string{"Number", "Properties", "Digit sum"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Number.String(),
			strings.Join(r.PropertyStrings(), ", "),
			fmt.Sprintf("%d", r.DigitSum),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	render := func(style lipgloss.Style, cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = TableCellStyle.Inherit(style).Width(widths[i] + 2).Render(cell)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, render(TableHeaderStyle, headers))
	for _, row := range rows {
		lines = append(lines, render(lipgloss.NewStyle(), row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func yesNo(v bool) string {
	if v {
		return SuccessStyle.Render(SuccessIcon + " yes")
	}
	return SubtleStyle.Render(ErrorIcon + " no")
}

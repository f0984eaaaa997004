// Package terminal renders headers, progress bars and tables for console
// output.
package terminal

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	barLength      = 20
	percentage     = 100
	thresholdGood  = 0.8
	thresholdFair  = 0.6
	barFilledRune  = "█"
	barEmptyRune   = "░"
	statusGood     = "good"
	statusFair     = "fair"
	statusPoor     = "poor"
	headerTemplate = "=== %s ==="
)

// Style renders console text, with or without ANSI colours.
type Style struct {
	colored bool
}

// New returns a Style. Pass false when writing to a file or a pipe.
func New(colored bool) Style {
	return Style{colored: colored}
}

func (s Style) paint(text string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if s.colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c.Sprint(text)
}

// Header renders a section title.
func (s Style) Header(title string) string {
	return s.paint(fmt.Sprintf(headerTemplate, strings.ToUpper(title)), color.Bold)
}

// Muted renders secondary text.
func (s Style) Muted(text string) string {
	return s.paint(text, color.Faint)
}

// Rating classifies a 0..1 ratio.
func Rating(ratio float64) string {
	switch {
	case ratio >= thresholdGood:
		return statusGood
	case ratio >= thresholdFair:
		return statusFair
	default:
		return statusPoor
	}
}

// Bar renders "label: [████░░░░] 53.3% poor". Ratios outside 0..1 are
// clamped for the bar but printed as given.
func (s Style) Bar(label string, ratio float64) string {
	filled := int(min(max(ratio, 0), 1) * barLength)
	bar := strings.Repeat(barFilledRune, filled) + strings.Repeat(barEmptyRune, barLength-filled)

	rating := Rating(ratio)

	var attr color.Attribute

	switch rating {
	case statusGood:
		attr = color.FgGreen
	case statusFair:
		attr = color.FgYellow
	default:
		attr = color.FgRed
	}

	return fmt.Sprintf("%s: [%s] %.1f%% %s", label, s.paint(bar, attr), ratio*percentage, s.paint(rating, attr))
}

// Table returns a borderless table writer.
func (s Style) Table() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = true

	return tbl
}

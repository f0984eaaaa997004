package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/opts"
)

// DataZoom defaults.
const dataZoomEndPercent = 100

// Chart dimensions.
const (
	ChartWidth  = "100%"
	ChartHeight = "420px"
)

// ChartOpts provides themed chart options based on the current theme.
type ChartOpts struct {
	theme   ThemeConfig
	palette Palette
}

// NewChartOpts creates a new ChartOpts with the given theme.
func NewChartOpts(theme Theme) *ChartOpts {
	return &ChartOpts{theme: GetThemeConfig(theme), palette: DefaultPalette()}
}

// DefaultChartOpts returns chart options for the default dark theme.
func DefaultChartOpts() *ChartOpts {
	return NewChartOpts(ThemeDark)
}

// Palette returns the series colors.
func (c *ChartOpts) Palette() Palette {
	return c.palette
}

// Init returns initialization options with themed background.
func (c *ChartOpts) Init(width, height string) opts.Initialization {
	return opts.Initialization{
		Width:           width,
		Height:          height,
		BackgroundColor: c.theme.ChartBackground,
	}
}

// Title returns title options with themed text colors.
func (c *ChartOpts) Title(title, subtitle string) opts.Title {
	return opts.Title{
		Title:         title,
		Subtitle:      subtitle,
		Left:          "center",
		TitleStyle:    &opts.TextStyle{Color: c.theme.ChartText},
		SubtitleStyle: &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

// Legend returns legend options with themed text color.
func (c *ChartOpts) Legend() opts.Legend {
	return opts.Legend{
		Show:      opts.Bool(true),
		Type:      "scroll",
		Top:       "0",
		Left:      "left",
		TextStyle: &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

// XAxis returns x-axis options with themed colors.
func (c *ChartOpts) XAxis(name string) opts.XAxis {
	return opts.XAxis{
		Name:      name,
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
	}
}

// ValueXAxis returns a value-typed x-axis, used by horizontal bar charts.
func (c *ChartOpts) ValueXAxis(name string, maxValue int) opts.XAxis {
	axis := c.XAxis(name)
	axis.Type = "value"
	axis.Max = maxValue
	axis.SplitLine = &opts.SplitLine{
		Show:      opts.Bool(true),
		LineStyle: &opts.LineStyle{Color: c.theme.ChartGrid},
	}

	return axis
}

// YAxis returns y-axis options with themed colors.
func (c *ChartOpts) YAxis(name string) opts.YAxis {
	return opts.YAxis{
		Name:      name,
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
		SplitLine: &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: c.theme.ChartGrid},
		},
	}
}

// SecondaryYAxis returns a right-hand y-axis without grid lines.
func (c *ChartOpts) SecondaryYAxis(name string) opts.YAxis {
	return opts.YAxis{
		Name:      name,
		Position:  "right",
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted},
		AxisLine:  &opts.AxisLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
		SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
	}
}

// Grid returns grid options with standard margins.
func (c *ChartOpts) Grid() opts.Grid {
	return opts.Grid{
		Top:          "15%",
		Bottom:       "15%",
		Left:         "5%",
		Right:        "5%",
		ContainLabel: opts.Bool(true),
	}
}

// DataZoom returns standard data zoom options.
func (c *ChartOpts) DataZoom() []opts.DataZoom {
	return []opts.DataZoom{
		{Type: "slider", Start: 0, End: dataZoomEndPercent},
		{Type: "inside"},
	}
}

// Tooltip returns tooltip options.
func (c *ChartOpts) Tooltip(trigger string) opts.Tooltip {
	return opts.Tooltip{Show: opts.Bool(true), Trigger: trigger}
}

// TextColor returns the primary chart text color.
func (c *ChartOpts) TextColor() string {
	return c.theme.ChartText
}

// TextMutedColor returns the muted chart text color.
func (c *ChartOpts) TextMutedColor() string {
	return c.theme.ChartTextMuted
}

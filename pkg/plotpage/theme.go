package plotpage

// Theme represents a color theme for visualizations.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ThemeConfig holds the theme-specific page and chart colors.
type ThemeConfig struct {
	Background string
	Surface    string
	Border     string

	TextPrimary string
	TextMuted   string
	Accent      string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string
}

// Palette assigns a fixed color to every series the tracker charts draw.
// Colors stay the same across themes so screenshots remain comparable.
type Palette struct {
	Minerals      string
	Gas           string
	Larvae        string
	SupplyBlocked string

	DronesActual string
	DronesTarget string
	Upgrade      string

	Injected string
	Idle     string
	NoQueen  string

	TrendPoints  string
	TrendOverall string
	TrendRecent  string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	switch theme {
	case ThemeDark:
		return darkTheme
	case ThemeLight:
		return lightTheme
	default:
		return lightTheme
	}
}

// DefaultPalette returns the series colors.
func DefaultPalette() Palette {
	return palette
}

var palette = Palette{
	Minerals:      "#75bbfd", // sky blue.
	Gas:           "#a9f971", // spring green.
	Larvae:        "#d62728", // red.
	SupplyBlocked: "rgba(239, 68, 68, 0.25)",

	DronesActual: "#d62728",
	DronesTarget: "#1f77b4", // blue.
	Upgrade:      "#a8a29e",

	Injected: "#2ca02c", // green.
	Idle:     "#ef4444",
	NoQueen:  "#7f7f7f", // grey.

	TrendPoints:  "#fbbf24",
	TrendOverall: "#38bdf8",
	TrendRecent:  "#f472b6",
}

var lightTheme = ThemeConfig{
	Background: "#fafaf9", // stone-50.
	Surface:    "#ffffff",
	Border:     "#e7e5e4", // stone-200.

	TextPrimary: "#1c1917", // stone-900.
	TextMuted:   "#78716c", // stone-500.
	Accent:      "#7c3aed", // violet-600.

	ChartBackground: "transparent",
	ChartGrid:       "#e7e5e4",
	ChartAxis:       "#a8a29e", // stone-400.
	ChartText:       "#44403c", // stone-700.
	ChartTextMuted:  "#78716c",
}

var darkTheme = ThemeConfig{
	Background: "#0c0a09", // stone-950.
	Surface:    "#1c1917", // stone-900.
	Border:     "#44403c", // stone-700.

	TextPrimary: "#fafaf9",
	TextMuted:   "#a8a29e",
	Accent:      "#a78bfa", // violet-400.

	ChartBackground: "transparent",
	ChartGrid:       "#44403c",
	ChartAxis:       "#57534e", // stone-600.
	ChartText:       "#d6d3d1", // stone-300.
	ChartTextMuted:  "#a8a29e",
}

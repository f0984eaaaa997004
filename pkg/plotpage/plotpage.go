// Package plotpage assembles go-echarts charts into a single themed HTML page.
package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const styleTagLen = 8 // len("</style>")

// Hint contains interpretive guidance for a chart section.
type Hint struct {
	Title string
	Items []string
}

// Section represents a chart section within a page.
type Section struct {
	// Group starts a new heading above this section when it differs from
	// the previous section's group (one group per player).
	Group    string
	Title    string
	Subtitle string
	Hint     Hint
	Chart    Renderable
}

// Page represents a complete visualization page.
type Page struct {
	Title           string
	Description     string
	ProjectName     string
	ProjectSubtitle string
	Theme           Theme
	Sections        []Section
}

// NewPage creates a new visualization page.
func NewPage(title, description string) *Page {
	return &Page{
		Title:           title,
		Description:     description,
		ProjectName:     "SC2 Skill Tracker",
		ProjectSubtitle: "Macro Mechanics",
		Theme:           ThemeDark,
	}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return HTMLRenderer{}.Render(w, p)
}

// Renderable is the interface for chart components.
type Renderable interface {
	Render(w io.Writer) error
}

// HTMLRenderer renders pages as HTML.
type HTMLRenderer struct {
	ExtraCSS string
}

// Render writes the page as HTML to the writer.
func (r HTMLRenderer) Render(w io.Writer, page *Page) error {
	header, err := renderTemplate("header.html", headerData{
		ProjectName: page.ProjectName,
		Subtitle:    page.ProjectSubtitle,
		Title:       page.Title,
		Description: page.Description,
	})
	if err != nil {
		return fmt.Errorf("render header: %w", err)
	}

	var content bytes.Buffer

	group := ""

	for _, section := range page.Sections {
		if section.Group != "" && section.Group != group {
			group = section.Group

			heading, groupErr := renderTemplate("group.html", group)
			if groupErr != nil {
				return fmt.Errorf("render group: %w", groupErr)
			}

			content.WriteString(string(heading))
		}

		sectionHTML, sectionErr := r.renderSection(section)
		if sectionErr != nil {
			return fmt.Errorf("render section: %w", sectionErr)
		}

		content.WriteString(string(sectionHTML))
	}

	darkClass := ""
	if page.Theme == ThemeDark {
		darkClass = "dark"
	}

	html, err := renderTemplate("page.html", pageData{
		Title:        page.Title,
		DarkClass:    darkClass,
		EChartsAsset: EChartsAsset,
		Theme:        GetThemeConfig(page.Theme),
		ExtraCSS:     template.CSS(r.ExtraCSS),         //nolint:gosec // caller-controlled stylesheet
		Header:       header,
		Content:      template.HTML(content.String()), //nolint:gosec // rendered sections
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = io.WriteString(w, string(html))
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func (r HTMLRenderer) renderSection(section Section) (template.HTML, error) {
	chartHTML, err := renderChart(section.Chart)
	if err != nil {
		return "", err
	}

	var hint *hintData

	if len(section.Hint.Items) > 0 {
		items := make([]template.HTML, len(section.Hint.Items))

		for i, item := range section.Hint.Items {
			items[i] = template.HTML(item) //nolint:gosec // static hint markup
		}

		hint = &hintData{Title: section.Hint.Title, Items: items}
	}

	return renderTemplate("section.html", sectionData{
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Chart:    template.HTML(chartHTML), //nolint:gosec // echarts output
		Hint:     hint,
	})
}

// ChartWrapper wraps an echarts chart and renders only the chart content.
type ChartWrapper struct {
	chart Renderable
}

// WrapChart wraps an echarts chart to render only the div and script (no full HTML page).
func WrapChart(chart Renderable) *ChartWrapper {
	return &ChartWrapper{chart: chart}
}

// Render writes the chart element and script without a full HTML page.
func (cw *ChartWrapper) Render(w io.Writer) error {
	content, err := renderChart(cw.chart)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, content)
	if err != nil {
		return fmt.Errorf("writing chart content: %w", err)
	}

	return nil
}

func renderChart(chart Renderable) (string, error) {
	if chart == nil {
		return "", nil
	}

	var buf bytes.Buffer

	err := chart.Render(&buf)
	if err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}

	return extractChartContent(buf.String()), nil
}

func extractChartContent(html string) string {
	// Fragments pass through; full echarts pages are cut down to the chart div and script.
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			break
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			break
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}

	return content
}

package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
)

// EChartsAsset is the script the rendered charts depend on.
const EChartsAsset = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

const layout = `
{{define "page.html"}}<!DOCTYPE html>
<html lang="en" class="{{.DarkClass}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.EChartsAsset}}"></script>
<style>
body { margin: 0; font-family: system-ui, sans-serif; background: {{.Theme.Background}}; color: {{.Theme.TextPrimary}}; }
header { padding: 24px 32px; border-bottom: 1px solid {{.Theme.Border}}; }
header .project { color: {{.Theme.Accent}}; font-weight: 600; letter-spacing: .04em; text-transform: uppercase; font-size: 12px; }
header h1 { margin: 4px 0; font-size: 24px; }
header p { margin: 0; color: {{.Theme.TextMuted}}; }
main { padding: 16px 32px 48px; }
h2.group { margin: 32px 0 8px; font-size: 20px; }
section { background: {{.Theme.Surface}}; border: 1px solid {{.Theme.Border}}; border-radius: 8px; margin: 16px 0; padding: 16px; }
section h3 { margin: 0; font-size: 16px; }
section .subtitle { margin: 4px 0 12px; color: {{.Theme.TextMuted}}; font-size: 13px; }
section .hint { font-size: 13px; color: {{.Theme.TextMuted}}; }
.echart-box { display: flex; justify-content: center; }
{{.ExtraCSS}}
</style>
</head>
<body>
{{.Header}}
<main>
{{.Content}}
</main>
</body>
</html>
{{end}}

{{define "header.html"}}<header>
<div class="project">{{.ProjectName}}{{if .Subtitle}} &middot; {{.Subtitle}}{{end}}</div>
<h1>{{.Title}}</h1>
{{if .Description}}<p>{{.Description}}</p>{{end}}
</header>
{{end}}

{{define "group.html"}}<h2 class="group">{{.}}</h2>
{{end}}

{{define "section.html"}}<section>
<h3>{{.Title}}</h3>
{{if .Subtitle}}<p class="subtitle">{{.Subtitle}}</p>{{end}}
{{.Chart}}
{{with .Hint}}<div class="hint"><strong>{{.Title}}</strong>
<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
</div>{{end}}
</section>
{{end}}
`

var templates = template.Must(template.New("").Parse(layout))

// renderTemplate renders a named template with the given data.
func renderTemplate(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer

	err := templates.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}

type pageData struct {
	Title        string
	DarkClass    string
	EChartsAsset string
	Theme        ThemeConfig
	ExtraCSS     template.CSS
	Header       template.HTML
	Content      template.HTML
}

type headerData struct {
	ProjectName string
	Subtitle    string
	Title       string
	Description string
}

type sectionData struct {
	Title    string
	Subtitle string
	Chart    template.HTML
	Hint     *hintData
}

type hintData struct {
	Title string
	Items []template.HTML
}

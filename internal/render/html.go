package render

import (
	"bytes"
	"html/template"

	"collegeadmin/internal/models"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
	return p
}()

// Markdown превращает markdown в безопасный HTML.
func Markdown(md string) template.HTML {
	raw := blackfriday.Run([]byte(md), blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.AutoHeadingIDs))
	return template.HTML(policy.SanitizeBytes(raw))
}

var previewTmpl = template.Must(template.New("section").Parse(`<article class="section-preview">
{{- if .Heading}}<h2>{{.Heading}}</h2>{{end}}
{{- range .Blocks}}
{{- if eq .Kind.String "pdf"}}
<a class="pdf-link" href="{{.PDF.URL}}" target="_blank" rel="noopener">{{.Label}}</a>
{{- else if eq .Kind.String "carousel"}}
<div class="carousel">{{range .Images}}<figure><img src="{{.URL}}" alt="{{.Description}}">{{if .Description}}<figcaption>{{.Description}}</figcaption>{{end}}</figure>{{end}}</div>
{{- else if eq .Kind.String "image"}}
{{- range .Images}}<figure class="image"><img src="{{.URL}}" alt="{{.Description}}">{{if .Description}}<figcaption>{{.Description}}</figcaption>{{end}}</figure>{{end}}
{{- else}}
<div class="content">{{.Content}}</div>
{{- end}}
{{- end}}
</article>`))

// Preview рисует HTML-превью секции так, как её увидит публичный сайт.
func Preview(sec *models.Section) (template.HTML, error) {
	layout := Section(sec, Markdown(sec.Content))

	data := struct {
		Heading string
		Blocks  Layout
	}{Blocks: layout}
	if !sec.HideHeading {
		data.Heading = sec.Name
	}

	var buf bytes.Buffer
	if err := previewTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

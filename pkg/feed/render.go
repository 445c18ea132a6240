package feed

import (
	"html/template"
	"io"
)

var fragment = template.Must(template.New("feed").Parse(`{{- if .Err -}}
<p class="vlog-error">{{ .Fallback }}</p>
{{- else if not .Entries -}}
<p class="vlog-empty">No entries yet.</p>
{{- else -}}
{{- range .Entries }}
<article class="vlog-entry" id="entry-{{ .ID }}">
  <h3>{{ .Title }}</h3>
  <time>{{ .Date }}</time>
  {{- if .Image }}
  <img src="{{ .Image }}" alt="{{ .Title }}">
  {{- end }}
  <p>{{ .Text }}</p>
</article>
{{- end }}
{{- end }}
`))

// Render writes r as an HTML fragment. A failed result renders the
// fallback message.
func Render(w io.Writer, r Result) error {
	return fragment.Execute(w, struct {
		Result
		Fallback string
	}{r, FallbackMessage})
}

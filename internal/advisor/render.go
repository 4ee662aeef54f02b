package advisor

import (
	"bytes"
	"fmt"
	"html/template"
)

// Output is restricted to <ol>, <li>, <b>, <i>, <a> and <br>.
var adviceTemplate = template.Must(template.New("advice").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<ol>
{{- range $i, $s := .Steps}}
  <li><b>Step {{inc $i}} — {{$s.Title}}:</b>
  {{- with $s.Body}} {{.}}{{end}}
  {{- with $s.Benefit}} <i>Expected benefit:</i> {{.}}{{end}}
  {{- range $j, $sc := $s.Schemes}}{{if $j}}<br>{{end}}
    <b>{{$sc.Name}}</b> – {{$sc.Description}} <a href="{{$sc.URL}}" target="_blank">{{$sc.LinkText}}</a>
  {{- end}}</li>
{{- end}}
</ol>`))

// Render formats advice as an HTML fragment.
func Render(a Advice) (string, error) {
	var buf bytes.Buffer
	if err := adviceTemplate.Execute(&buf, a); err != nil {
		return "", fmt.Errorf("render advice: %w", err)
	}
	return buf.String(), nil
}

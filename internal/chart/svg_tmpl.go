package chart

import "text/template"

var svgFuncs = template.FuncMap{
	"add":  func(a, b int) int { return a + b },
	"sub":  func(a, b int) int { return a - b },
	"half": func(a int) int { return a / 2 },
}

var svgTmpl = template.Must(template.New("svg").Funcs(svgFuncs).Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" font-family="sans-serif">
  <rect width="{{.Width}}" height="{{.Height}}" fill="white"/>
  <text x="{{half .Width}}" y="28" text-anchor="middle" font-size="16">{{.Title}}</text>
  <g stroke="black" stroke-width="1">
    <line x1="64" y1="48" x2="64" y2="{{.PlotBottom}}"/>
    <line x1="64" y1="{{.PlotBottom}}" x2="{{.PlotRight}}" y2="{{.PlotBottom}}"/>
  </g>
{{- range .XTicks}}
  <line x1="{{printf "%.1f" .Pos}}" y1="{{$.PlotBottom}}" x2="{{printf "%.1f" .Pos}}" y2="{{add $.PlotBottom 5}}" stroke="black"/>
  <text x="{{printf "%.1f" .Pos}}" y="{{add $.PlotBottom 18}}" text-anchor="middle" font-size="11">{{.Label}}</text>
{{- end}}
{{- range .YTicks}}
  <line x1="59" y1="{{printf "%.1f" .Pos}}" x2="64" y2="{{printf "%.1f" .Pos}}" stroke="black"/>
  <text x="55" y="{{printf "%.1f" .Pos}}" text-anchor="end" dominant-baseline="middle" font-size="11">{{.Label}}</text>
{{- end}}
  <text x="{{half .Width}}" y="{{sub .Height 12}}" text-anchor="middle" font-size="13">{{.XLabel}}</text>
  <text x="16" y="{{half .Height}}" text-anchor="middle" font-size="13" transform="rotate(-90 16 {{half .Height}})">{{.YLabel}}</text>
{{- if .Points}}
  <polyline points="{{.Points}}" fill="none" stroke="#1f77b4" stroke-width="1.5"/>
{{- else}}
  <text x="{{half .Width}}" y="{{half .Height}}" text-anchor="middle" font-size="14" fill="#666">no data</text>
{{- end}}
{{- with .Annotation}}
  <text x="{{printf "%.1f" .X}}" y="{{printf "%.1f" .Y}}" font-size="12">
{{- range $i, $line := .Lines}}
    <tspan x="{{printf "%.1f" $.Annotation.X}}" dy="{{if $i}}14{{else}}0{{end}}">{{$line}}</tspan>
{{- end}}
  </text>
{{- end}}
</svg>
`))

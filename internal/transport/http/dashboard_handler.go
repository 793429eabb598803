package http

import (
	"html/template"
	"net/http"
	"strconv"
)

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        form { margin-bottom: 20px; }
        label { margin-right: 10px; }
        input { margin-right: 20px; width: 110px; }
        img { border: 1px solid #ccc; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <form method="get" action="/">
        <label>Epoch <input name="epoch" value="{{.Epoch}}" placeholder="28-Jul-2014"></label>
        <label>Days before <input name="low" value="{{.Low}}"></label>
        <label>Days after <input name="high" value="{{.High}}"></label>
        <button type="submit">Plot</button>
    </form>
    {{if .Epoch}}
    <img src="/api/enrolment/chart?epoch={{.Epoch}}&low={{.Low}}&high={{.High}}" alt="enrolment chart">
    {{else}}
    <p>Enter an epoch date to plot the enrolment series.</p>
    {{end}}
</body>
</html>
`))

type dashboardView struct {
	Title string
	Epoch string
	Low   string
	High  string
}

// ServeDashboard serves the single-page chart dashboard. title, low and
// high are the configured defaults shown in the form.
func ServeDashboard(title string, low, high int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := dashboardView{
			Title: title,
			Epoch: r.URL.Query().Get("epoch"),
			Low:   r.URL.Query().Get("low"),
			High:  r.URL.Query().Get("high"),
		}
		if view.Low == "" {
			view.Low = strconv.Itoa(low)
		}
		if view.High == "" {
			view.High = strconv.Itoa(high)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := dashboardTmpl.Execute(w, view); err != nil {
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		}
	}
}

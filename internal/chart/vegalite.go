package chart

import (
	"encoding/json"
	"fmt"

	"enrolcli/pkg/contracts/domain"
)

// VegaLiteSpec builds a vega-lite chart specification for the series, for
// embedding in the web dashboard. SVG rendering stays the canonical file
// output; this is the interactive variant of the same picture.
func VegaLiteSpec(series domain.Series, cfg Config) ([]byte, error) {
	type point struct {
		Day      int `json:"day"`
		Enrolled int `json:"enrolled"`
	}
	points := make([]point, series.Len())
	for i, day := range series.Days {
		points[i] = point{Day: day, Enrolled: series.Counts[i]}
	}

	spec := map[string]any{
		"$schema": "https://vega.github.io/schema/vega-lite/v5.json",
		"title":   cfg.Title,
		"width":   "container",
		"height":  360,
		"data":    map[string]any{"values": points},
		"mark":    map[string]any{"type": "line", "point": true},
		"encoding": map[string]any{
			"x": map[string]any{
				"field": "day",
				"type":  "quantitative",
				"title": cfg.XLabel,
			},
			"y": map[string]any{
				"field": "enrolled",
				"type":  "quantitative",
				"title": YLabel,
			},
		},
	}

	out, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vega-lite spec: %w", err)
	}
	return out, nil
}

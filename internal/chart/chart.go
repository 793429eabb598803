package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"enrolcli/pkg/contracts/domain"
)

// Config controls how a series is drawn.
type Config struct {
	Title  string
	XLabel string
	Width  int
	Height int

	// Label, when set, annotates the chart with the maximum and current
	// enrolment at data coordinates (LabelX, LabelY). Summary supplies
	// the annotated values; the caller already has it from the series
	// build, so the chart never rederives the statistics.
	Label   bool
	LabelX  float64
	LabelY  float64
	Summary *domain.Summary
}

const (
	defaultWidth  = 800
	defaultHeight = 480

	marginLeft   = 64
	marginRight  = 24
	marginTop    = 48
	marginBottom = 56
)

// YLabel is the fixed y-axis caption of every enrolment chart.
const YLabel = "Number of enrolled students"

type tick struct {
	Pos   float64
	Label string
}

type annotation struct {
	X     float64
	Y     float64
	Lines []string
}

type viewData struct {
	Width      int
	Height     int
	PlotRight  int
	PlotBottom int
	Title      string
	XLabel     string
	YLabel     string
	Points     string
	XTicks     []tick
	YTicks     []tick
	Annotation *annotation
}

// RenderSVG draws the series as an SVG line chart. An empty series renders
// a chart frame with a centered "no data" notice instead of failing.
func RenderSVG(series domain.Series, cfg Config) ([]byte, error) {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}

	data := viewData{
		Width:      cfg.Width,
		Height:     cfg.Height,
		PlotRight:  cfg.Width - marginRight,
		PlotBottom: cfg.Height - marginBottom,
		Title:      cfg.Title,
		XLabel:     cfg.XLabel,
		YLabel:     YLabel,
	}

	if !series.Empty() {
		scale := newScale(series, cfg)
		data.Points = scale.polyline(series)
		data.XTicks = scale.xTicks()
		data.YTicks = scale.yTicks()

		if cfg.Label && cfg.Summary != nil {
			x, y := scale.toPixel(cfg.LabelX, cfg.LabelY)
			data.Annotation = &annotation{
				X: x,
				Y: y,
				Lines: []string{
					fmt.Sprintf("max = %d", cfg.Summary.Maximum),
					fmt.Sprintf("current = %d", cfg.Summary.Current),
				},
			}
		}
	}

	var buf strings.Builder
	if err := svgTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return []byte(buf.String()), nil
}

// WriteSVG renders the series and writes it to outputPath.
func WriteSVG(series domain.Series, cfg Config, outputPath string) error {
	svg, err := RenderSVG(series, cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, svg, 0644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// scale maps data coordinates to pixel coordinates inside the plot area.
type scale struct {
	xMin, xMax float64
	yMin, yMax float64
	left, top  float64
	width      float64
	height     float64
}

func newScale(series domain.Series, cfg Config) scale {
	xMin, xMax := float64(series.Days[0]), float64(series.Days[len(series.Days)-1])
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, c := range series.Counts {
		yMin = math.Min(yMin, float64(c))
		yMax = math.Max(yMax, float64(c))
	}
	// Zero belongs on the axis; a flat series still needs a span.
	yMin = math.Min(yMin, 0)
	if xMax == xMin {
		xMax = xMin + 1
	}
	if yMax == yMin {
		yMax = yMin + 1
	}

	return scale{
		xMin: xMin, xMax: xMax,
		yMin: yMin, yMax: yMax,
		left:   marginLeft,
		top:    marginTop,
		width:  float64(cfg.Width - marginLeft - marginRight),
		height: float64(cfg.Height - marginTop - marginBottom),
	}
}

func (s scale) toPixel(x, y float64) (float64, float64) {
	px := s.left + (x-s.xMin)/(s.xMax-s.xMin)*s.width
	py := s.top + (1-(y-s.yMin)/(s.yMax-s.yMin))*s.height
	return px, py
}

func (s scale) polyline(series domain.Series) string {
	points := make([]string, series.Len())
	for i, day := range series.Days {
		x, y := s.toPixel(float64(day), float64(series.Counts[i]))
		points[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}
	return strings.Join(points, " ")
}

func (s scale) xTicks() []tick {
	var ticks []tick
	for _, v := range tickValues(s.xMin, s.xMax) {
		x, _ := s.toPixel(v, s.yMin)
		ticks = append(ticks, tick{Pos: x, Label: fmt.Sprintf("%.0f", v)})
	}
	return ticks
}

func (s scale) yTicks() []tick {
	var ticks []tick
	for _, v := range tickValues(s.yMin, s.yMax) {
		_, y := s.toPixel(s.xMin, v)
		ticks = append(ticks, tick{Pos: y, Label: fmt.Sprintf("%.0f", v)})
	}
	return ticks
}

// tickValues picks round tick positions covering [min, max] in steps of
// 1, 2 or 5 times a power of ten, aiming for about six ticks.
func tickValues(min, max float64) []float64 {
	span := max - min
	step := math.Pow(10, math.Floor(math.Log10(span/6)))
	for span/step > 6 {
		switch {
		case span/(step*2) <= 6:
			step *= 2
		case span/(step*5) <= 6:
			step *= 5
		default:
			step *= 10
		}
	}

	var values []float64
	for v := math.Ceil(min/step) * step; v <= max+step/2; v += step {
		values = append(values, v)
	}
	return values
}

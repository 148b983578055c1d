package invtrack

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// this file renders the graph views as PNG. The engines stay numeric; only
// this presentation layer converts decimals to floats.

// seriesPalette cycles for multi-line charts.
var seriesPalette = []string{
	"2563eb", // blue
	"dc2626", // red
	"16a34a", // green
	"9333ea", // purple
	"ea580c", // orange
	"0891b2", // cyan
}

// ChartLine is one named line of a value chart.
type ChartLine struct {
	Name   string
	Points []Point
}

// RenderValueChart renders one or more dated value series as a PNG line
// chart. Every line needs at least 2 points.
func RenderValueChart(title, currency string, lines ...ChartLine) ([]byte, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("no series to render")
	}
	var series []chart.Series
	for i, line := range lines {
		if len(line.Points) < 2 {
			return nil, fmt.Errorf("series %q needs at least 2 data points, got %d", line.Name, len(line.Points))
		}
		xValues := make([]time.Time, len(line.Points))
		yValues := make([]float64, len(line.Points))
		for j, p := range line.Points {
			xValues[j] = p.On.Time()
			yValues[j] = p.Value.AsFloat()
		}
		series = append(series, chart.TimeSeries{
			Name: line.Name,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(seriesPalette[i%len(seriesPalette)]),
				StrokeWidth: 2.0,
			},
			XValues: xValues,
			YValues: yValues,
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f %s", f, currency)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderCompositionChart renders an account composition as a PNG pie
// chart. An empty composition cannot be rendered.
func RenderCompositionChart(c Composition) ([]byte, error) {
	if len(c.Slices) == 0 {
		return nil, fmt.Errorf("account %q is worth zero on %s, nothing to render", c.Account, c.On)
	}
	values := make([]chart.Value, len(c.Slices))
	for i, s := range c.Slices {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Fraction*100),
			Value: s.Value.AsFloat(),
		}
	}
	graph := chart.PieChart{
		Title:  fmt.Sprintf("%s on %s", c.Account, c.On),
		Width:  600,
		Height: 600,
		Values: values,
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// Format is an image encoding supported by Render.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts "svg" or "png".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSVG, "":
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported chart format: %s (use svg|png)", s)
	}
}

// ErrNoData signals a spec with nothing to draw.
var ErrNoData = errors.New("chart has no data to draw")

// DefaultWidth is the image width used when Render gets width <= 0.
const DefaultWidth = 480

// Render draws spec as an image. Pie specs become pie charts; histograms and
// labeled bars become bar charts, the latter with the rate text in each label.
func Render(w io.Writer, s *Spec, format Format, width int) error {
	if s == nil || len(s.Points) == 0 {
		return ErrNoData
	}
	if width <= 0 {
		width = DefaultWidth
	}
	rp := gochart.SVG
	if format == FormatPNG {
		rp = gochart.PNG
	}
	height := s.Options.Height
	if height <= 0 {
		height = DefaultHeight
	}
	pad := gochart.Box{Top: s.Options.Margin.T + 20, Left: s.Options.Margin.L, Right: s.Options.Margin.R, Bottom: s.Options.Margin.B}

	switch s.Kind {
	case KindPie:
		values := make([]gochart.Value, 0, len(s.Points))
		for _, p := range s.Points {
			if p.Value <= 0 {
				continue
			}
			values = append(values, gochart.Value{Label: fmt.Sprintf("%s (%s)", p.Label, trimFloat(p.Value)), Value: p.Value})
		}
		if len(values) == 0 {
			return ErrNoData
		}
		pie := gochart.PieChart{
			Title:      s.Title,
			Width:      width,
			Height:     height,
			Background: gochart.Style{Padding: pad},
			Values:     values,
		}
		if err := pie.Render(rp, w); err != nil {
			return fmt.Errorf("render %s: %w", s.Kind, err)
		}
		return nil
	case KindHistogram, KindBar:
		bars := make([]gochart.Value, 0, len(s.Points))
		top := 0.0
		for _, p := range s.Points {
			label := p.Label
			if p.Text != "" {
				label = fmt.Sprintf("%s: %s", p.Label, p.Text)
			}
			bars = append(bars, gochart.Value{Label: label, Value: p.Value})
			top = math.Max(top, p.Value)
		}
		if top <= 0 {
			top = 1
		}
		barWidth := width / (len(bars) * 2)
		if barWidth < 4 {
			barWidth = 4
		}
		bc := gochart.BarChart{
			Title:      s.Title,
			Width:      width,
			Height:     height,
			BarWidth:   barWidth,
			Background: gochart.Style{Padding: pad},
			YAxis: gochart.YAxis{
				Name:  s.Options.YAxisTitle,
				Range: &gochart.ContinuousRange{Min: 0, Max: top * 1.1},
			},
			Bars: bars,
		}
		if err := bc.Render(rp, w); err != nil {
			return fmt.Errorf("render %s: %w", s.Kind, err)
		}
		return nil
	default:
		return fmt.Errorf("render: unknown chart kind %q", s.Kind)
	}
}

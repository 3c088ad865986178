package chart

import (
	"errors"
	"fmt"
)

// Kind names a chart type.
type Kind string

const (
	KindHistogram Kind = "histogram"
	KindPie       Kind = "pie"
	KindBar       Kind = "bar"
)

// ErrNotNumeric signals a histogram over a column with no numeric cells.
var ErrNotNumeric = errors.New("column has no numeric values")

// NotNumericError names the offending column.
type NotNumericError struct {
	Column string
}

func (e *NotNumericError) Error() string {
	return fmt.Sprintf("column %s has no numeric values", e.Column)
}

func (e *NotNumericError) Is(target error) bool { return target == ErrNotNumeric }

// Spec is a declarative, serializable chart description. It carries the data
// already reduced for drawing; nothing in it refers back to the table.
type Spec struct {
	Kind    Kind    `json:"kind"`
	Title   string  `json:"title"`
	Source  string  `json:"source"`         // column the data came from
	X       string  `json:"x"`              // field bound to the x axis or slice names
	Y       string  `json:"y"`              // field bound to the y axis or slice sizes
	Text    string  `json:"text,omitempty"` // field printed on each bar
	Points  []Point `json:"points"`
	Bins    []Bin   `json:"bins,omitempty"`
	Options Options `json:"options"`
}

// Point is one bar or slice.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text,omitempty"`
}

// Bin is one histogram interval, [Lower, Upper) except the last which is closed.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Margin in pixels around the plot area.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Options controls chart presentation. Zero fields take the defaults of the
// chart kind.
type Options struct {
	Title        string  `json:"title,omitempty"`
	Height       int     `json:"height"`
	Bins         int     `json:"bins,omitempty"`
	Hole         float64 `json:"hole,omitempty"`
	Margin       Margin  `json:"margin"`
	TextPosition string  `json:"textPosition,omitempty"`
	YAxisTitle   string  `json:"yAxisTitle,omitempty"`
}

const (
	DefaultBins      = 30
	DefaultHole      = 0.55
	DefaultHeight    = 320
	DefaultBarHeight = 360
)

// DefaultOptions returns the presentation defaults shared by all kinds.
func DefaultOptions() Options {
	return Options{
		Height: DefaultHeight,
		Bins:   DefaultBins,
		Margin: Margin{L: 10, R: 10, T: 30, B: 10},
	}
}

func (o Options) withDefaults(kind Kind) Options {
	d := DefaultOptions()
	if o.Margin == (Margin{}) {
		o.Margin = d.Margin
	}
	switch kind {
	case KindHistogram:
		if o.Bins <= 0 {
			o.Bins = d.Bins
		}
		if o.Height <= 0 {
			o.Height = d.Height
		}
	case KindPie:
		if o.Hole <= 0 || o.Hole >= 1 {
			o.Hole = DefaultHole
		}
		if o.Height <= 0 {
			o.Height = d.Height
		}
		o.Bins = 0
	case KindBar:
		if o.Height <= 0 {
			o.Height = DefaultBarHeight
		}
		if o.TextPosition == "" {
			o.TextPosition = "outside"
		}
		if o.YAxisTitle == "" {
			o.YAxisTitle = "Attrition Rate (%)"
		}
		o.Bins = 0
	}
	return o
}

package swftag

import (
	"fmt"

	"github.com/npillmayer/swf/swfio"
)

// Filter is a graphic filter applied to a placed character. Concrete types
// are DropShadowFilter, BlurFilter, GlowFilter, BevelFilter,
// GradientGlowFilter, ConvolutionFilter and ColorMatrixFilter.
type Filter interface {
	FilterID() uint8
	fmt.Stringer
}

// Filter IDs
const (
	FilterDropShadow    uint8 = 0
	FilterBlur          uint8 = 1
	FilterGlow          uint8 = 2
	FilterBevel         uint8 = 3
	FilterGradientGlow  uint8 = 4
	FilterConvolution   uint8 = 5
	FilterColorMatrix   uint8 = 6
	FilterGradientBevel uint8 = 7
)

// FilterFlags are the composition flags shared by most filters.
type FilterFlags struct {
	Inner           bool
	Knockout        bool
	CompositeSource bool
	OnTop           bool // bevel filters only
	Passes          int
}

type DropShadowFilter struct {
	Color        swfio.RGBA
	BlurX, BlurY float64
	Angle        float64 // radians
	Distance     float64
	Strength     float64
	FilterFlags
}

func (DropShadowFilter) FilterID() uint8 { return FilterDropShadow }

func (f DropShadowFilter) String() string {
	return fmt.Sprintf("drop-shadow(%s, blur %.2f/%.2f, distance %.2f)", f.Color, f.BlurX, f.BlurY, f.Distance)
}

type BlurFilter struct {
	BlurX, BlurY float64
	Passes       int
}

func (BlurFilter) FilterID() uint8 { return FilterBlur }

func (f BlurFilter) String() string {
	return fmt.Sprintf("blur(%.2f/%.2f, %d passes)", f.BlurX, f.BlurY, f.Passes)
}

type GlowFilter struct {
	Color        swfio.RGBA
	BlurX, BlurY float64
	Strength     float64
	FilterFlags
}

func (GlowFilter) FilterID() uint8 { return FilterGlow }

func (f GlowFilter) String() string {
	return fmt.Sprintf("glow(%s, blur %.2f/%.2f)", f.Color, f.BlurX, f.BlurY)
}

type BevelFilter struct {
	ShadowColor    swfio.RGBA
	HighlightColor swfio.RGBA
	BlurX, BlurY   float64
	Angle          float64
	Distance       float64
	Strength       float64
	FilterFlags
}

func (BevelFilter) FilterID() uint8 { return FilterBevel }

func (f BevelFilter) String() string {
	return fmt.Sprintf("bevel(%s/%s, distance %.2f)", f.ShadowColor, f.HighlightColor, f.Distance)
}

// GradientGlowFilter is either a gradient glow or, with Bevel set, a
// gradient bevel.
type GradientGlowFilter struct {
	Bevel        bool
	Colors       []swfio.RGBA
	Ratios       []uint8
	BlurX, BlurY float64
	Angle        float64
	Distance     float64
	Strength     float64
	FilterFlags
}

func (f GradientGlowFilter) FilterID() uint8 {
	if f.Bevel {
		return FilterGradientBevel
	}
	return FilterGradientGlow
}

func (f GradientGlowFilter) String() string {
	name := "gradient-glow"
	if f.Bevel {
		name = "gradient-bevel"
	}
	return fmt.Sprintf("%s(%d colors, distance %.2f)", name, len(f.Colors), f.Distance)
}

type ConvolutionFilter struct {
	MatrixX, MatrixY int
	Divisor, Bias    float32
	Matrix           []float32 // MatrixX * MatrixY values, row by row
	DefaultColor     swfio.RGBA
	Clamp            bool
	PreserveAlpha    bool
}

func (ConvolutionFilter) FilterID() uint8 { return FilterConvolution }

func (f ConvolutionFilter) String() string {
	return fmt.Sprintf("convolution(%dx%d, divisor %g)", f.MatrixX, f.MatrixY, f.Divisor)
}

// ColorMatrixFilter holds a 4x5 matrix, row by row. Offsets (the fifth
// column) are normalized to 0…1.
type ColorMatrixFilter struct {
	Matrix [20]float64
}

func (ColorMatrixFilter) FilterID() uint8 { return FilterColorMatrix }

func (f ColorMatrixFilter) String() string {
	return fmt.Sprintf("color-matrix(%v)", f.Matrix)
}

// readFilterList reads a FILTERLIST structure.
func readFilterList(r *swfio.Reader) ([]Filter, error) {
	f := r.Fields()
	n := int(f.UI8())
	if err := f.Err(); err != nil {
		return nil, err
	}
	filters := make([]Filter, 0, n)
	for i := range n {
		filter, err := readFilter(r)
		if err != nil {
			tracer().Debugf("filter #%d of %d: %v", i, n, err)
			return nil, err
		}
		filters = append(filters, filter)
	}
	return filters, nil
}

func readFilter(r *swfio.Reader) (Filter, error) {
	f := r.Fields()
	start := r.Pos()
	id := f.UI8()
	if err := f.Err(); err != nil {
		return nil, err
	}
	var filter Filter
	switch id {
	case FilterDropShadow:
		ds := DropShadowFilter{Color: f.RGBA()}
		ds.BlurX, ds.BlurY = f.Fixed(), f.Fixed()
		ds.Angle, ds.Distance = f.Fixed(), f.Fixed()
		ds.Strength = f.Fixed8()
		ds.FilterFlags = readFilterFlags(f, 5, false)
		filter = ds
	case FilterBlur:
		b := BlurFilter{BlurX: f.Fixed(), BlurY: f.Fixed()}
		b.Passes = int(f.UB(5))
		f.UB(3)
		filter = b
	case FilterGlow:
		g := GlowFilter{Color: f.RGBA()}
		g.BlurX, g.BlurY = f.Fixed(), f.Fixed()
		g.Strength = f.Fixed8()
		g.FilterFlags = readFilterFlags(f, 5, false)
		filter = g
	case FilterBevel:
		b := BevelFilter{ShadowColor: f.RGBA(), HighlightColor: f.RGBA()}
		b.BlurX, b.BlurY = f.Fixed(), f.Fixed()
		b.Angle, b.Distance = f.Fixed(), f.Fixed()
		b.Strength = f.Fixed8()
		b.FilterFlags = readFilterFlags(f, 4, true)
		filter = b
	case FilterGradientGlow, FilterGradientBevel:
		g := GradientGlowFilter{Bevel: id == FilterGradientBevel}
		n := int(f.UI8())
		g.Colors = make([]swfio.RGBA, n)
		g.Ratios = make([]uint8, n)
		for i := range n {
			g.Colors[i] = f.RGBA()
		}
		for i := range n {
			g.Ratios[i] = f.UI8()
		}
		g.BlurX, g.BlurY = f.Fixed(), f.Fixed()
		g.Angle, g.Distance = f.Fixed(), f.Fixed()
		g.Strength = f.Fixed8()
		g.FilterFlags = readFilterFlags(f, 4, true)
		filter = g
	case FilterConvolution:
		c := ConvolutionFilter{MatrixX: int(f.UI8()), MatrixY: int(f.UI8())}
		c.Divisor, c.Bias = f.Float32(), f.Float32()
		n, err := swfio.CheckedMulInt(c.MatrixX, c.MatrixY)
		if err != nil {
			return nil, err
		}
		if f.OK() && int64(n)*4 > r.Remaining() {
			return nil, swfio.NewFormatError(start, "convolution matrix %dx%d exceeds filter data",
				c.MatrixX, c.MatrixY)
		}
		c.Matrix = make([]float32, n)
		for i := range n {
			c.Matrix[i] = f.Float32()
		}
		c.DefaultColor = f.RGBA()
		f.UB(6)
		c.Clamp = f.Flag()
		c.PreserveAlpha = f.Flag()
		filter = c
	case FilterColorMatrix:
		var cm ColorMatrixFilter
		for i := range cm.Matrix {
			cm.Matrix[i] = float64(f.Float32())
			if i%5 == 4 {
				cm.Matrix[i] /= 256
			}
		}
		filter = cm
	default:
		return nil, swfio.NewFormatError(start, "unknown filter type %d", id)
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return filter, nil
}

func readFilterFlags(f *swfio.Fields, passBits int, bevel bool) FilterFlags {
	flags := FilterFlags{
		Inner:           f.Flag(),
		Knockout:        f.Flag(),
		CompositeSource: f.Flag(),
	}
	if bevel {
		flags.OnTop = f.Flag()
	}
	flags.Passes = int(f.UB(passBits))
	return flags
}

package docs2pdf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Paper format names accepted by PDFOptions.Format (case-insensitive).
const (
	FormatLetter  = "letter"
	FormatLegal   = "legal"
	FormatTabloid = "tabloid"
	FormatLedger  = "ledger"
	FormatA0      = "a0"
	FormatA1      = "a1"
	FormatA2      = "a2"
	FormatA3      = "a3"
	FormatA4      = "a4"
	FormatA5      = "a5"
	FormatA6      = "a6"
)

// paperSizes maps format names to width and height in inches.
var paperSizes = map[string][2]float64{
	FormatLetter:  {8.5, 11},
	FormatLegal:   {8.5, 14},
	FormatTabloid: {11, 17},
	FormatLedger:  {17, 11},
	FormatA0:      {33.1102, 46.811},
	FormatA1:      {23.3858, 33.1102},
	FormatA2:      {16.5354, 23.3858},
	FormatA3:      {11.6929, 16.5354},
	FormatA4:      {8.2677, 11.6929},
	FormatA5:      {5.8268, 8.2677},
	FormatA6:      {4.1339, 5.8268},
}

// Scale bounds accepted by Chrome's printToPDF.
const (
	MinScale     = 0.1
	MaxScale     = 2.0
	DefaultScale = 0.7
)

// DefaultMargin is applied to every side when no margin is configured.
const DefaultMargin = "1cm"

// Margin holds page margins as CSS lengths ("1cm", "0.5in", "10mm", "96px").
// A bare number is read as inches.
type Margin struct {
	Top    string
	Right  string
	Bottom string
	Left   string
}

// UniformMargin returns a Margin with the same length on every side.
func UniformMargin(length string) Margin {
	return Margin{Top: length, Right: length, Bottom: length, Left: length}
}

// PDFOptions configures how a rendered page is printed.
type PDFOptions struct {
	Format          string // "a4", "letter", ... (default: "a4")
	Landscape       bool
	Scale           float64 // 0.1-2.0 (default: 0.7)
	Margin          Margin
	PrintBackground bool
}

// DefaultPDFOptions returns the options every conversion starts from.
func DefaultPDFOptions() *PDFOptions {
	return &PDFOptions{
		Format:          FormatA4,
		Landscape:       false,
		Scale:           DefaultScale,
		Margin:          UniformMargin(DefaultMargin),
		PrintBackground: true,
	}
}

// Validate checks that the options can be turned into printToPDF parameters.
// Returns nil if o is nil (nil means use defaults).
func (o *PDFOptions) Validate() error {
	if o == nil {
		return nil
	}

	if _, ok := paperSizes[strings.ToLower(o.Format)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPaperFormat, o.Format)
	}

	// NaN fails every comparison, so it is rejected explicitly.
	if math.IsNaN(o.Scale) || o.Scale < MinScale || o.Scale > MaxScale {
		return fmt.Errorf("%w: %.2f (must be between %.1f and %.1f)", ErrInvalidScale, o.Scale, MinScale, MaxScale)
	}

	for side, value := range map[string]string{
		"top":    o.Margin.Top,
		"right":  o.Margin.Right,
		"bottom": o.Margin.Bottom,
		"left":   o.Margin.Left,
	} {
		if _, err := ParseLength(value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidMargin, side, err)
		}
	}

	return nil
}

// printParams is the engine-neutral form of PDFOptions, in inches.
type printParams struct {
	PaperWidth      float64
	PaperHeight     float64
	MarginTop       float64
	MarginRight     float64
	MarginBottom    float64
	MarginLeft      float64
	Scale           float64
	Landscape       bool
	PrintBackground bool
}

// resolve converts validated options to printParams.
// Nil options resolve to DefaultPDFOptions.
func (o *PDFOptions) resolve() (printParams, error) {
	if o == nil {
		o = DefaultPDFOptions()
	}
	if err := o.Validate(); err != nil {
		return printParams{}, err
	}

	size := paperSizes[strings.ToLower(o.Format)]
	// Validate already parsed every margin.
	top, _ := ParseLength(o.Margin.Top)
	right, _ := ParseLength(o.Margin.Right)
	bottom, _ := ParseLength(o.Margin.Bottom)
	left, _ := ParseLength(o.Margin.Left)

	return printParams{
		PaperWidth:      size[0],
		PaperHeight:     size[1],
		MarginTop:       top,
		MarginRight:     right,
		MarginBottom:    bottom,
		MarginLeft:      left,
		Scale:           o.Scale,
		Landscape:       o.Landscape,
		PrintBackground: o.PrintBackground,
	}, nil
}

// lengthUnits maps CSS length units to inches.
var lengthUnits = map[string]float64{
	"in": 1,
	"cm": 1 / 2.54,
	"mm": 1 / 25.4,
	"px": 1.0 / 96,
	"pt": 1.0 / 72,
}

// ParseLength converts a CSS length to inches.
// Empty strings are zero; bare numbers are inches.
func ParseLength(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, nil
	}

	factor := 1.0
	for unit, f := range lengthUnits {
		if strings.HasSuffix(s, unit) {
			factor = f
			s = strings.TrimSpace(strings.TrimSuffix(s, unit))
			break
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative length %q", s)
	}
	return v * factor, nil
}

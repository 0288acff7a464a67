// Package cube provides the labeled N-dimensional data container that
// IRIS level-2 readers produce: a float64 data buffer with an aligned
// boolean mask and uncertainty buffer, a physical unit, a world-coordinate
// mapping, and named per-axis coordinate series for quantities (frame
// times, pointing offsets) that the WCS does not describe.
//
// A Cube is immutable by convention: the constructor validates every
// alignment invariant once and the loader hands the result to the caller
// without retaining references.
package cube

import (
	"fmt"
	"time"

	"github.com/iris-go/iris/internal/units"
	"github.com/iris-go/iris/internal/wcs"
)

// AxisCoord is one auxiliary coordinate series attached to a data axis.
// Exactly one of Values or Times holds the series; Times is used for
// timestamp coordinates, Values for everything else.
type AxisCoord struct {
	Name   string
	Axis   int // data-order axis index the series is aligned with
	Values []float64
	Times  []time.Time
	Unit   units.Unit
}

// Len returns the series length.
func (c AxisCoord) Len() int {
	if c.Times != nil {
		return len(c.Times)
	}
	return len(c.Values)
}

// Cube is a labeled N-dimensional array: data plus a same-shaped mask and
// uncertainty, a unit, a world-coordinate mapping, and extra per-axis
// coordinate series.
type Cube struct {
	data        []float64
	shape       Shape
	strides     []int
	mask        []bool
	uncertainty []float64
	unit        units.Unit
	wcs         *wcs.WCS
	coords      []AxisCoord
}

// New validates the alignment invariants and assembles a Cube:
// mask and uncertainty must match the data shape element for element, and
// every coordinate series must be exactly as long as the axis it labels.
// The buffers are stored as given; callers hand over ownership.
func New(data []float64, shape Shape, opts ...Option) (*Cube, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("cube: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("cube: shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	c := &Cube{
		data:    data,
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Option configures an optional Cube attachment at construction.
type Option func(*Cube) error

// WithMask attaches the invalid-pixel mask (true marks invalid data,
// following the usual masked-array convention).
func WithMask(mask []bool) Option {
	return func(c *Cube) error {
		if len(mask) != len(c.data) {
			return fmt.Errorf("cube: mask has %d elements, data has %d", len(mask), len(c.data))
		}
		c.mask = mask
		return nil
	}
}

// WithUncertainty attaches the per-element standard-deviation estimate.
func WithUncertainty(uncertainty []float64) Option {
	return func(c *Cube) error {
		if len(uncertainty) != len(c.data) {
			return fmt.Errorf("cube: uncertainty has %d elements, data has %d", len(uncertainty), len(c.data))
		}
		c.uncertainty = uncertainty
		return nil
	}
}

// WithUnit attaches the physical unit of the data values.
func WithUnit(u units.Unit) Option {
	return func(c *Cube) error {
		c.unit = u
		return nil
	}
}

// WithWCS attaches the world-coordinate mapping.
func WithWCS(w *wcs.WCS) Option {
	return func(c *Cube) error {
		c.wcs = w
		return nil
	}
}

// WithCoords attaches the auxiliary coordinate series. Each series must
// align 1:1 with the axis it labels.
func WithCoords(coords []AxisCoord) Option {
	return func(c *Cube) error {
		for _, coord := range coords {
			if coord.Axis < 0 || coord.Axis >= len(c.shape) {
				return fmt.Errorf("cube: coordinate %q axis %d out of range for shape %v", coord.Name, coord.Axis, c.shape)
			}
			if coord.Len() != c.shape[coord.Axis] {
				return fmt.Errorf("cube: coordinate %q has %d values, axis %d has size %d",
					coord.Name, coord.Len(), coord.Axis, c.shape[coord.Axis])
			}
		}
		c.coords = coords
		return nil
	}
}

// Dimensions returns the cube's shape, slowest axis first.
func (c *Cube) Dimensions() Shape { return c.shape.Clone() }

// Unit returns the physical unit of the data values.
func (c *Cube) Unit() units.Unit { return c.unit }

// WCS returns the world-coordinate mapping, or nil when none is attached.
func (c *Cube) WCS() *wcs.WCS { return c.wcs }

// Data returns the flat row-major data buffer.
//
// WARNING: the slice is the cube's own storage; treat it as read-only.
func (c *Cube) Data() []float64 { return c.data }

// Mask returns the flat invalid-pixel mask, or nil when none is attached.
func (c *Cube) Mask() []bool { return c.mask }

// Uncertainty returns the flat uncertainty buffer, or nil when none is
// attached.
func (c *Cube) Uncertainty() []float64 { return c.uncertainty }

// offset flattens row-major indices, panicking on out-of-bounds access
// like a slice index.
func (c *Cube) offset(indices ...int) int {
	if len(indices) != len(c.shape) {
		panic(fmt.Sprintf("cube: expected %d indices, got %d", len(c.shape), len(indices)))
	}
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= c.shape[i] {
			panic(fmt.Sprintf("cube: index %d out of bounds for dimension %d (size %d)", idx, i, c.shape[i]))
		}
		off += idx * c.strides[i]
	}
	return off
}

// At returns the data value at the given row-major indices.
func (c *Cube) At(indices ...int) float64 { return c.data[c.offset(indices...)] }

// MaskAt reports whether the element at the given indices is invalid.
// A cube without a mask has no invalid elements.
func (c *Cube) MaskAt(indices ...int) bool {
	if c.mask == nil {
		return false
	}
	return c.mask[c.offset(indices...)]
}

// UncertaintyAt returns the uncertainty at the given indices. Zero when no
// uncertainty is attached.
func (c *Cube) UncertaintyAt(indices ...int) float64 {
	if c.uncertainty == nil {
		return 0
	}
	return c.uncertainty[c.offset(indices...)]
}

// Coords returns the attached auxiliary coordinate series.
func (c *Cube) Coords() []AxisCoord { return c.coords }

// Coord looks up an auxiliary coordinate series by name. Absence is an
// error so renderers can propagate it as a lookup failure.
func (c *Cube) Coord(name string) (AxisCoord, error) {
	for _, coord := range c.coords {
		if coord.Name == name {
			return coord, nil
		}
	}
	return AxisCoord{}, fmt.Errorf("cube: no coordinate named %q", name)
}

// String returns a short human-readable description.
func (c *Cube) String() string {
	return fmt.Sprintf("Cube%v unit=%s coords=%d", c.shape, c.unit, len(c.coords))
}

package cube

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iris-go/iris/internal/units"
)

func TestNewValidatesShape(t *testing.T) {
	_, err := New(make([]float64, 5), Shape{2, 3})
	assert.Error(t, err, "element count mismatch")

	_, err = New(nil, Shape{2, 0})
	assert.Error(t, err, "zero dimension")

	c, err := New(make([]float64, 6), Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, c.Dimensions())
}

func TestNewValidatesAttachments(t *testing.T) {
	data := make([]float64, 6)

	_, err := New(data, Shape{2, 3}, WithMask(make([]bool, 4)))
	assert.Error(t, err, "mask shape mismatch")

	_, err = New(data, Shape{2, 3}, WithUncertainty(make([]float64, 7)))
	assert.Error(t, err, "uncertainty shape mismatch")

	_, err = New(data, Shape{2, 3}, WithCoords([]AxisCoord{
		{Name: "TIME", Axis: 0, Values: []float64{1, 2, 3}},
	}))
	assert.Error(t, err, "series longer than axis")

	_, err = New(data, Shape{2, 3}, WithCoords([]AxisCoord{
		{Name: "TIME", Axis: 2, Values: []float64{1, 2}},
	}))
	assert.Error(t, err, "axis out of range")
}

func TestAccessors(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5}
	mask := []bool{false, true, false, false, false, false}
	unc := []float64{10, 11, 12, 13, 14, 15}
	times := []time.Time{
		time.Date(2021, 10, 1, 6, 0, 0, 0, time.UTC),
		time.Date(2021, 10, 1, 6, 0, 10, 0, time.UTC),
	}

	c, err := New(data, Shape{2, 3},
		WithMask(mask),
		WithUncertainty(unc),
		WithUnit(units.DN),
		WithCoords([]AxisCoord{
			{Name: "TIME", Axis: 0, Times: times},
			{Name: "PZTX", Axis: 0, Values: []float64{0.5, 1.5}, Unit: units.Arcsec},
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, 4.0, c.At(1, 1))
	assert.True(t, c.MaskAt(0, 1))
	assert.False(t, c.MaskAt(1, 1))
	assert.Equal(t, 15.0, c.UncertaintyAt(1, 2))
	assert.Equal(t, units.DN, c.Unit())

	tc, err := c.Coord("TIME")
	require.NoError(t, err)
	assert.Equal(t, 2, tc.Len())
	assert.Equal(t, times[1], tc.Times[1])

	px, err := c.Coord("PZTX")
	require.NoError(t, err)
	assert.Equal(t, units.Arcsec, px.Unit)
	assert.Equal(t, []float64{0.5, 1.5}, px.Values)

	_, err = c.Coord("NOPE")
	assert.Error(t, err)

	assert.Panics(t, func() { c.At(2, 0) })
	assert.Panics(t, func() { c.At(0) })
}

func TestBareCube(t *testing.T) {
	c, err := New([]float64{1, 2}, Shape{2})
	require.NoError(t, err)

	assert.False(t, c.MaskAt(0))
	assert.Equal(t, 0.0, c.UncertaintyAt(1))
	assert.Nil(t, c.Mask())
	assert.Nil(t, c.Uncertainty())
	assert.Nil(t, c.WCS())
}

func TestShape(t *testing.T) {
	s := Shape{3, 2, 2}
	assert.Equal(t, 12, s.NumElements())
	assert.Equal(t, []int{4, 2, 1}, s.ComputeStrides())
	assert.True(t, s.Equal(Shape{3, 2, 2}))
	assert.False(t, s.Equal(Shape{3, 2}))
	assert.NoError(t, s.Validate())
	assert.Error(t, Shape{3, -1}.Validate())

	clone := s.Clone()
	clone[0] = 9
	assert.Equal(t, 3, s[0])
}

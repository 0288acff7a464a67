package sji

import (
	"fmt"
	"math"
	"time"

	"github.com/iris-go/iris/internal/cube"
	"github.com/iris-go/iris/internal/fits"
	"github.com/iris-go/iris/internal/units"
	"github.com/iris-go/iris/internal/wcs"
)

// frameAxis is the data-order axis the per-frame series align with.
const frameAxis = 0

// ReadLevel2 reads one IRIS level-2 SJI FITS file into a Cube.
//
// The file is decoded fully into memory and its handle closed before any
// derivation runs. Pixel values equal to the unscaled bad-pixel sentinel
// are rewritten to the scaled sentinel and flagged in the mask; all
// buffers are fresh copies, so the returned cube aliases nothing.
func ReadLevel2(path string) (*Cube, error) {
	hdus, err := fits.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level-2 SJI: %w", err)
	}
	if len(hdus) < 2 {
		return nil, fmt.Errorf("read level-2 SJI: want primary image and auxiliary extension, file has %d HDU(s)", len(hdus))
	}

	primary := hdus[0]
	if primary.Image == nil || len(primary.Image.Axes()) != 3 {
		return nil, fmt.Errorf("read level-2 SJI: primary HDU is not a 3-D image series")
	}
	aux, err := newAuxTable(hdus[1])
	if err != nil {
		return nil, fmt.Errorf("read level-2 SJI: %w", err)
	}

	// FITS axis order is (column, row, frame), fastest first; the flat
	// payload is therefore already row-major for (frame, row, column).
	axes := primary.Image.Axes()
	shape := cube.Shape{axes[2], axes[1], axes[0]}
	nframes := shape[frameAxis]
	if aux.rows() != nframes {
		return nil, fmt.Errorf("read level-2 SJI: auxiliary extension has %d rows for %d frames", aux.rows(), nframes)
	}

	data := primary.Image.Float64s()
	mask := make([]bool, len(data))
	for i, v := range data {
		if v == BadPixelUnscaled {
			data[i] = BadPixelScaled
			mask[i] = true
		}
	}

	channel, err := units.ChannelByName(ChannelSJI)
	if err != nil {
		return nil, fmt.Errorf("read level-2 SJI: %w", err)
	}
	uncertainty := shotNoise(data, channel)

	coords, err := frameCoords(primary.Header, aux)
	if err != nil {
		return nil, fmt.Errorf("read level-2 SJI: %w", err)
	}

	meta, err := metaFromHeader(primary.Header, nframes)
	if err != nil {
		return nil, fmt.Errorf("read level-2 SJI: %w", err)
	}

	mapping, err := wcs.FromHeader(primary.Header)
	if err != nil {
		return nil, fmt.Errorf("read level-2 SJI: %w", err)
	}

	inner, err := cube.New(data, shape,
		cube.WithMask(mask),
		cube.WithUncertainty(uncertainty),
		cube.WithUnit(units.DN),
		cube.WithWCS(mapping),
		cube.WithCoords(coords),
	)
	if err != nil {
		return nil, fmt.Errorf("read level-2 SJI: %w", err)
	}

	return &Cube{Cube: inner, Meta: meta}, nil
}

// shotNoise estimates the per-pixel standard deviation: Poisson noise on
// the detected photons plus the camera's readout floor, expressed back in
// DN. The Poisson term clamps at zero so negative DN (the bad-pixel
// sentinel among them) yields the finite readout floor instead of NaN.
func shotNoise(data []float64, channel units.Channel) []float64 {
	readoutSq := channel.ReadoutPhotons() * channel.ReadoutPhotons()
	out := make([]float64, len(data))
	for i, v := range data {
		photons := channel.ToPhotons(v)
		if photons < 0 {
			photons = 0
		}
		out[i] = channel.FromPhotons(math.Sqrt(photons + readoutSq))
	}
	return out
}

// auxTable wraps the first extension: a 2-D array with one row per frame,
// whose header maps column names to column indices.
type auxTable struct {
	img *fits.Image
	hdr *fits.Header
}

func newAuxTable(hdu *fits.HDU) (auxTable, error) {
	if hdu.Image == nil || len(hdu.Image.Axes()) != 2 {
		return auxTable{}, fmt.Errorf("auxiliary extension is not a 2-D array")
	}
	return auxTable{img: hdu.Image, hdr: hdu.Header}, nil
}

func (a auxTable) rows() int { return a.img.Axes()[1] }

// column reads one named per-frame series. The extension header names the
// column by holding its index under the series name; an absent key means
// the product does not carry that series.
func (a auxTable) column(name string) ([]float64, error) {
	idx, ok := a.hdr.Int(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	ncols := a.img.Axes()[0]
	if idx < 0 || idx >= ncols {
		return nil, fmt.Errorf("auxiliary column %s: index %d out of range [0,%d)", name, idx, ncols)
	}
	out := make([]float64, a.rows())
	for row := range out {
		out[row] = a.img.FloatAt(idx, row)
	}
	return out, nil
}

// frameCoords derives every per-frame coordinate series: absolute
// timestamps from STARTOBS plus the elapsed-seconds column, the pointing
// and orbit columns with their units, and the exposure-time column whose
// index the EXPTIMES header field names.
func frameCoords(primary *fits.Header, aux auxTable) ([]cube.AxisCoord, error) {
	startStr, ok := primary.Str("STARTOBS")
	if !ok {
		return nil, fmt.Errorf("header STARTOBS required for frame timestamps")
	}
	start, err := parseObsTime(startStr)
	if err != nil {
		return nil, fmt.Errorf("header STARTOBS: %w", err)
	}

	elapsed, err := aux.column(CoordTime)
	if err != nil {
		return nil, err
	}
	times := make([]time.Time, len(elapsed))
	for i, s := range elapsed {
		times[i] = start.Add(time.Duration(s * float64(time.Second)))
	}

	coords := []cube.AxisCoord{
		{Name: CoordTime, Axis: frameAxis, Times: times},
	}
	for _, col := range []struct {
		name string
		key  string // header field naming the column index
		unit units.Unit
	}{
		{CoordPZTX, "PZTX", units.Arcsec},
		{CoordPZTY, "PZTY", units.Arcsec},
		{CoordXCenIX, "XCENIX", units.Arcsec},
		{CoordYCenIX, "YCENIX", units.Arcsec},
		{CoordObsVRIX, "OBS_VRIX", units.MeterPerSec},
		{CoordOPhaseIX, "OPHASEIX", units.Dimensionless},
		{CoordExposureTime, "EXPTIMES", units.Second},
	} {
		values, err := aux.column(col.key)
		if err != nil {
			return nil, err
		}
		coords = append(coords, cube.AxisCoord{
			Name:   col.name,
			Axis:   frameAxis,
			Values: values,
			Unit:   col.unit,
		})
	}
	return coords, nil
}

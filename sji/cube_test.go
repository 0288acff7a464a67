package sji

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iris-go/iris/internal/cube"
	"github.com/iris-go/iris/internal/units"
)

func summaryCube(t *testing.T) *Cube {
	t.Helper()

	start := time.Date(2021, 10, 1, 6, 9, 25, 0, time.UTC)
	end := start.Add(20 * time.Minute)
	inner, err := cube.New(make([]float64, 12), cube.Shape{3, 2, 2},
		cube.WithUnit(units.DN),
		cube.WithCoords([]cube.AxisCoord{{
			Name: CoordTime,
			Axis: 0,
			Times: []time.Time{
				start,
				start.Add(9 * time.Second),
				start.Add(18 * time.Second),
			},
		}}),
	)
	require.NoError(t, err)
	return &Cube{
		Cube: inner,
		Meta: Meta{
			Telescope:      "IRIS",
			Instrument:     "SJI_1400",
			Bandpass:       "1400",
			ObsID:          "3683602040",
			ObsDescription: "Very large sit-and-stare",
			DateObs:        &start,
			DateEnd:        &end,
			StartObs:       &start,
			EndObs:         &end,
			NFrames:        3,
		},
	}
}

func TestSummary(t *testing.T) {
	s, err := summaryCube(t).Summary(DefaultTimeFormat)
	require.NoError(t, err)

	for _, want := range []string{
		"Observatory:\t\t IRIS",
		"Instrument:\t\t SJI_1400",
		"Bandpass:\t\t 1400",
		"Obs. Start:\t\t 2021-10-01 06:09:25",
		"Obs. End:\t\t 2021-10-01 06:29:25",
		"Instance Start:\t\t 2021-10-01 06:09:25",
		"Instance End:\t\t 2021-10-01 06:09:43",
		"Total Frames in Obs.:\t 3",
		"IRIS Obs. id:\t\t 3683602040",
		"IRIS Obs. Description:\t Very large sit-and-stare",
	} {
		assert.Contains(t, s, want)
	}
	assert.Contains(t, s, "Cube dimensions:")
	assert.Contains(t, s, "Axis Types:")
}

func TestSummaryCustomTimeFormat(t *testing.T) {
	s, err := summaryCube(t).Summary("2006.01.02")
	require.NoError(t, err)
	assert.Contains(t, s, "Obs. Start:\t\t 2021.10.01\n")
	assert.NotContains(t, s, "06:09:25")
}

func TestSummaryMissingDates(t *testing.T) {
	c := summaryCube(t)
	c.Meta.DateObs = nil
	_, err := c.Summary(DefaultTimeFormat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATE_OBS")

	c = summaryCube(t)
	c.Meta.DateEnd = nil
	_, err = c.Summary(DefaultTimeFormat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATE_END")
}

func TestSummaryMissingTimeSeries(t *testing.T) {
	start := time.Date(2021, 10, 1, 6, 9, 25, 0, time.UTC)
	inner, err := cube.New(make([]float64, 12), cube.Shape{3, 2, 2})
	require.NoError(t, err)
	c := &Cube{Cube: inner, Meta: Meta{DateObs: &start, DateEnd: &start}}

	_, err = c.Summary(DefaultTimeFormat)
	assert.Error(t, err)
}

func TestStringFallsBackOnRenderFailure(t *testing.T) {
	c := summaryCube(t)
	assert.True(t, strings.HasPrefix(c.String(), "SJI Cube\n"))

	c.Meta.DateObs = nil
	assert.Contains(t, c.String(), "unrenderable")
}

func TestReadLevel2SummaryRoundTrip(t *testing.T) {
	c, err := ReadLevel2(writeLevel2File(t, testFile{}))
	require.NoError(t, err)

	s, err := c.Summary(DefaultTimeFormat)
	require.NoError(t, err)
	assert.Contains(t, s, "Observatory:\t\t IRIS")
	assert.Contains(t, s, "Instance End:\t\t 2021-10-01 06:09:43")
	assert.Contains(t, s, "pos.helioprojective.lon")
}

func TestReadLevel2SummaryWithoutObsDates(t *testing.T) {
	c, err := ReadLevel2(writeLevel2File(t, testFile{
		dropPrimary: []string{"DATE_OBS"},
	}))
	require.NoError(t, err, "load succeeds; only rendering needs the dates")

	_, err = c.Summary(DefaultTimeFormat)
	assert.Error(t, err)
	assert.Contains(t, c.String(), "unrenderable")
}

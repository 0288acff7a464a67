package sji

import (
	"fmt"
	"strings"

	"github.com/iris-go/iris/internal/cube"
)

// Cube is one SJI observation: the labeled image series with its mask,
// uncertainty, unit, world-coordinate mapping, and per-frame coordinate
// series, plus the scalar observation metadata.
type Cube struct {
	*cube.Cube
	Meta Meta
}

// Summary renders the observation report. Timestamps are formatted with
// the given layout (see DefaultTimeFormat). Metadata the report references
// must be present: absent observation dates or a missing TIME coordinate
// series fail here, at render time, not at construction.
func (c *Cube) Summary(timeFormat string) (string, error) {
	if c.Meta.DateObs == nil {
		return "", fmt.Errorf("summary: DATE_OBS not set in observation metadata")
	}
	if c.Meta.DateEnd == nil {
		return "", fmt.Errorf("summary: DATE_END not set in observation metadata")
	}
	frameTimes, err := c.Coord(CoordTime)
	if err != nil {
		return "", fmt.Errorf("summary: %w", err)
	}
	if len(frameTimes.Times) == 0 {
		return "", fmt.Errorf("summary: TIME coordinate series is empty")
	}

	axisTypes := "unknown"
	if w := c.WCS(); w != nil {
		axisTypes = fmt.Sprintf("%v", w.PhysicalTypes())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SJI Cube\n")
	fmt.Fprintf(&b, "---------\n")
	fmt.Fprintf(&b, "Observatory:\t\t %s\n", c.Meta.Telescope)
	fmt.Fprintf(&b, "Instrument:\t\t %s\n", c.Meta.Instrument)
	fmt.Fprintf(&b, "Bandpass:\t\t %s\n", c.Meta.Bandpass)
	fmt.Fprintf(&b, "Obs. Start:\t\t %s\n", c.Meta.DateObs.Format(timeFormat))
	fmt.Fprintf(&b, "Obs. End:\t\t %s\n", c.Meta.DateEnd.Format(timeFormat))
	fmt.Fprintf(&b, "Instance Start:\t\t %s\n", frameTimes.Times[0].Format(timeFormat))
	fmt.Fprintf(&b, "Instance End:\t\t %s\n", frameTimes.Times[len(frameTimes.Times)-1].Format(timeFormat))
	fmt.Fprintf(&b, "Total Frames in Obs.:\t %d\n", c.Meta.NFrames)
	fmt.Fprintf(&b, "IRIS Obs. id:\t\t %s\n", c.Meta.ObsID)
	fmt.Fprintf(&b, "IRIS Obs. Description:\t %s\n", c.Meta.ObsDescription)
	fmt.Fprintf(&b, "Cube dimensions:\t %v\n", c.Dimensions())
	fmt.Fprintf(&b, "Axis Types:\t\t %s\n", axisTypes)
	return b.String(), nil
}

// String renders the summary with DefaultTimeFormat. Rendering failures
// surface in the returned text, since fmt.Stringer cannot return an error.
func (c *Cube) String() string {
	s, err := c.Summary(DefaultTimeFormat)
	if err != nil {
		return fmt.Sprintf("SJI Cube (unrenderable: %v)", err)
	}
	return s
}

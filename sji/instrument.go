package sji

import (
	"errors"
	"fmt"
	"time"
)

// Bad-pixel sentinels of level-2 SJI products. Level-2 pixels are byte
// scaled; unscaled bad pixels arrive as the int16 minimum and are rewritten
// to the scaled sentinel during loading.
const (
	BadPixelScaled   = -200
	BadPixelUnscaled = -32768
)

// ChannelSJI is the detector channel key for slit-jaw images in the
// instrument gain table.
const ChannelSJI = "SJI"

// DefaultTimeFormat is the timestamp layout used by String. Summary takes
// the layout as an explicit argument for callers that want another one.
const DefaultTimeFormat = "2006-01-02 15:04:05"

// Names of the per-frame coordinate series attached to the frame axis.
const (
	CoordTime         = "TIME"
	CoordPZTX         = "PZTX"
	CoordPZTY         = "PZTY"
	CoordXCenIX       = "XCENIX"
	CoordYCenIX       = "YCENIX"
	CoordObsVRIX      = "OBS_VRIX"
	CoordOPhaseIX     = "OPHASEIX"
	CoordExposureTime = "EXPOSURE TIME"
)

// ErrMissingColumn reports a required auxiliary column absent from the
// per-frame extension.
var ErrMissingColumn = errors.New("missing auxiliary column")

// obsTimeLayouts are the timestamp spellings seen in level-2 headers.
// Values carry no zone; they are UTC by convention.
var obsTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseObsTime parses a header timestamp string.
func parseObsTime(s string) (time.Time, error) {
	for _, layout := range obsTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized observation time %q", s)
}

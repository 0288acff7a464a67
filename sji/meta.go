package sji

import (
	"fmt"
	"time"

	"github.com/iris-go/iris/internal/fits"
)

// unknown is the default for absent optional scalar header fields.
const unknown = "Unknown"

// Meta is the scalar observation metadata of one level-2 SJI file.
// String fields default to "Unknown" when the header card is absent; date
// fields stay nil when absent. NFrames always comes from the data array's
// leading dimension rather than a header card.
type Meta struct {
	Telescope      string
	Instrument     string
	Bandpass       string
	ObsID          string
	ObsDescription string

	DateObs  *time.Time
	DateEnd  *time.Time
	StartObs *time.Time
	EndObs   *time.Time

	NFrames int
}

// metaFromHeader extracts Meta from the primary header. Absent optional
// cards default silently; a present but unparseable date card is an error.
func metaFromHeader(h *fits.Header, nframes int) (Meta, error) {
	m := Meta{
		Telescope:      h.StrDefault("TELESCOP", unknown),
		Instrument:     h.StrDefault("INSTRUME", unknown),
		Bandpass:       h.StrDefault("TWAVE1", unknown),
		ObsID:          h.StrDefault("OBSID", unknown),
		ObsDescription: h.StrDefault("OBS_DESC", unknown),
		NFrames:        nframes,
	}

	for _, field := range []struct {
		key  string
		dest **time.Time
	}{
		{"DATE_OBS", &m.DateObs},
		{"DATE_END", &m.DateEnd},
		{"STARTOBS", &m.StartObs},
		{"ENDOBS", &m.EndObs},
	} {
		s, ok := h.Str(field.key)
		if !ok || s == "" {
			continue
		}
		t, err := parseObsTime(s)
		if err != nil {
			return Meta{}, fmt.Errorf("header %s: %w", field.key, err)
		}
		*field.dest = &t
	}
	return m, nil
}

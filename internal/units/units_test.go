package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelByName(t *testing.T) {
	tests := []struct {
		name         string
		photonsPerDN float64
		readoutDN    float64
	}{
		{"FUV", 4, 3.1},
		{"NUV", 18, 1.2},
		{"SJI", 18, 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := ChannelByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.photonsPerDN, ch.PhotonsPerDN)
			assert.Equal(t, tt.readoutDN, ch.ReadoutDN)
		})
	}
}

func TestChannelByNameUnknown(t *testing.T) {
	_, err := ChannelByName("EUV")
	assert.Error(t, err)
}

func TestConversionsInvert(t *testing.T) {
	ch, err := ChannelByName("SJI")
	require.NoError(t, err)

	for _, dn := range []float64{0, 1, -200, 1234.5} {
		assert.InDelta(t, dn, ch.FromPhotons(ch.ToPhotons(dn)), 1e-12)
	}
	assert.Equal(t, 18.0, ch.ToPhotons(1))
	assert.InDelta(t, 21.6, ch.ReadoutPhotons(), 1e-12)
}

func TestUnitString(t *testing.T) {
	assert.Equal(t, "DN", DN.String())
	assert.Equal(t, "m / s", MeterPerSec.String())
	assert.Equal(t, "dimensionless", Dimensionless.String())
}

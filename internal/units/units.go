// Package units carries the physical-unit bookkeeping for IRIS data
// products: unit symbols attached to data and coordinate series, and the
// per-channel camera gain tables needed to move between data numbers (DN)
// and detected photons. Conversions are explicit scalar multiplications;
// there is no general unit algebra here because none is needed.
package units

import "fmt"

// Unit is a physical unit symbol.
type Unit string

// Units attached to IRIS level-2 quantities.
const (
	DN            Unit = "DN"
	Photon        Unit = "photon"
	Arcsec        Unit = "arcsec"
	MeterPerSec   Unit = "m / s"
	Second        Unit = "s"
	Dimensionless Unit = ""
)

// String returns the unit symbol, with dimensionless rendered explicitly.
func (u Unit) String() string {
	if u == Dimensionless {
		return "dimensionless"
	}
	return string(u)
}

// Channel describes one IRIS detector channel's noise characteristics:
// the camera gain (photons per DN) and the readout noise floor in DN.
type Channel struct {
	Name         string
	PhotonsPerDN float64
	ReadoutDN    float64
}

// Fixed instrument channel table. Gains and readout noise are the
// calibrated IRIS values for the far-UV and near-UV spectrograph cameras
// and the slit-jaw imager.
var channels = map[string]Channel{
	"FUV": {Name: "FUV", PhotonsPerDN: 4, ReadoutDN: 3.1},
	"NUV": {Name: "NUV", PhotonsPerDN: 18, ReadoutDN: 1.2},
	"SJI": {Name: "SJI", PhotonsPerDN: 18, ReadoutDN: 1.2},
}

// ChannelByName resolves a detector channel. Unknown names are an error:
// the caller cannot derive uncertainty without noise characteristics.
func ChannelByName(name string) (Channel, error) {
	ch, ok := channels[name]
	if !ok {
		return Channel{}, fmt.Errorf("unknown detector channel %q", name)
	}
	return ch, nil
}

// ToPhotons converts a value in DN to detected photons.
func (c Channel) ToPhotons(dn float64) float64 {
	return dn * c.PhotonsPerDN
}

// FromPhotons converts detected photons back to DN.
func (c Channel) FromPhotons(photons float64) float64 {
	return photons / c.PhotonsPerDN
}

// ReadoutPhotons returns the readout noise floor in photons.
func (c Channel) ReadoutPhotons() float64 {
	return c.ReadoutDN * c.PhotonsPerDN
}

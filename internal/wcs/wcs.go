// Package wcs derives a world-coordinate mapping from FITS header cards.
//
// The mapping follows the FITS-WCS linear convention:
//
//	world = CRVAL + diag(CDELT) * PC * (pixel - (CRPIX - 1))
//
// with pixel coordinates 0-based on the Go side (FITS CRPIX is 1-based).
// Non-linear projection terms (e.g. the -TAN de-projection) are out of
// scope; for the small fields of view of slit-jaw images the linear term
// is what analysis pipelines consume.
package wcs

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// header is the key lookup surface wcs needs. internal/fits.Header
// satisfies it.
type header interface {
	Int(key string) (int, bool)
	Float(key string) (float64, bool)
	Str(key string) (string, bool)
}

// WCS is a world-coordinate mapping for one HDU.
type WCS struct {
	naxis int
	ctype []string
	cunit []string
	crpix []float64
	crval []float64
	cdelt []float64
	pc    *mat.Dense
}

// FromHeader builds the mapping from CTYPEn/CUNITn/CRPIXn/CRVALn/CDELTn
// and the PCn_m rotation matrix. Absent keys take the FITS defaults:
// empty type/unit, reference pixel and value 0, scale 1, identity PC.
func FromHeader(h header) (*WCS, error) {
	naxis, ok := h.Int("NAXIS")
	if !ok {
		return nil, fmt.Errorf("wcs: header has no NAXIS")
	}
	if naxis <= 0 {
		return nil, fmt.Errorf("wcs: no axes (NAXIS = %d)", naxis)
	}

	w := &WCS{
		naxis: naxis,
		ctype: make([]string, naxis),
		cunit: make([]string, naxis),
		crpix: make([]float64, naxis),
		crval: make([]float64, naxis),
		cdelt: make([]float64, naxis),
		pc:    identity(naxis),
	}
	for i := 0; i < naxis; i++ {
		n := strconv.Itoa(i + 1)
		if v, ok := h.Str("CTYPE" + n); ok {
			w.ctype[i] = v
		}
		if v, ok := h.Str("CUNIT" + n); ok {
			w.cunit[i] = v
		}
		if v, ok := h.Float("CRPIX" + n); ok {
			w.crpix[i] = v
		}
		if v, ok := h.Float("CRVAL" + n); ok {
			w.crval[i] = v
		}
		w.cdelt[i] = 1
		if v, ok := h.Float("CDELT" + n); ok {
			w.cdelt[i] = v
		}
		for j := 0; j < naxis; j++ {
			if v, ok := h.Float(fmt.Sprintf("PC%d_%d", i+1, j+1)); ok {
				w.pc.Set(i, j, v)
			}
		}
	}
	return w, nil
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// NAxes returns the number of world axes.
func (w *WCS) NAxes() int { return w.naxis }

// AxisType returns the CTYPE of a 0-based axis in FITS axis order.
func (w *WCS) AxisType(axis int) string { return w.ctype[axis] }

// AxisUnit returns the CUNIT of a 0-based axis in FITS axis order.
func (w *WCS) AxisUnit(axis int) string { return w.cunit[axis] }

// PixelToWorld maps 0-based pixel coordinates (FITS axis order, axis 1
// first) to world coordinates in the header's units.
func (w *WCS) PixelToWorld(pixel ...float64) ([]float64, error) {
	if len(pixel) != w.naxis {
		return nil, fmt.Errorf("wcs: expected %d pixel coordinates, got %d", w.naxis, len(pixel))
	}

	offset := mat.NewVecDense(w.naxis, nil)
	for i := 0; i < w.naxis; i++ {
		offset.SetVec(i, pixel[i]-(w.crpix[i]-1))
	}

	var rotated mat.VecDense
	rotated.MulVec(w.pc, offset)

	world := make([]float64, w.naxis)
	for i := 0; i < w.naxis; i++ {
		world[i] = w.crval[i] + w.cdelt[i]*rotated.AtVec(i)
	}
	return world, nil
}

// PhysicalTypes returns the physical meaning of each axis, in data
// (row-major) order: slowest axis first, the reverse of FITS axis order.
func (w *WCS) PhysicalTypes() []string {
	out := make([]string, w.naxis)
	for i := 0; i < w.naxis; i++ {
		out[i] = physicalType(w.ctype[w.naxis-1-i])
	}
	return out
}

// physicalType maps a CTYPE to the UCD-style physical type name used by
// analysis tooling.
func physicalType(ctype string) string {
	// Strip the projection suffix of a 4-3 form code like HPLN-TAN.
	base := ctype
	if i := strings.IndexByte(base, '-'); i > 0 {
		base = base[:i]
	}
	switch strings.ToUpper(base) {
	case "HPLN":
		return "custom:pos.helioprojective.lon"
	case "HPLT":
		return "custom:pos.helioprojective.lat"
	case "WAVE":
		return "em.wl"
	case "TIME", "UTC":
		return "time"
	case "":
		return "unknown"
	}
	return "custom:" + strings.ToLower(base)
}

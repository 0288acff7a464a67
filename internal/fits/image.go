package fits

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Pixel is the constraint covering every standard BITPIX payload type.
type Pixel interface {
	~uint8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Image is a decoded image payload. Pixels are raw file values: BSCALE and
// BZERO are never applied.
type Image struct {
	axes    []int // FITS axis order: axes[0] is NAXIS1, the fastest axis
	bitpix  int
	data    any
	floatAt func(i int) float64
	intAt   func(i int) int64
}

// Axes returns the image dimensions in FITS axis order (NAXIS1 first).
func (img *Image) Axes() []int { return img.axes }

// Bitpix returns the pixel type code from the header.
func (img *Image) Bitpix() int { return img.bitpix }

// NumPixels returns the total pixel count.
func (img *Image) NumPixels() int {
	n := 1
	for _, ax := range img.axes {
		n *= ax
	}
	return n
}

// index flattens FITS-order coordinates (x first) into the payload offset.
// FITS stores axis 1 fastest, so the flat layout equals row-major order
// over the reversed axis list.
func (img *Image) index(coords ...int) int {
	idx := 0
	for i := len(img.axes) - 1; i >= 0; i-- {
		idx = idx*img.axes[i] + coords[i]
	}
	return idx
}

// FloatAt returns the pixel at the given FITS-order coordinates as a
// float64. It panics on out-of-range coordinates, like a slice index.
func (img *Image) FloatAt(coords ...int) float64 {
	if len(coords) != len(img.axes) {
		panic(fmt.Sprintf("fits: expected %d coordinates, got %d", len(img.axes), len(coords)))
	}
	return img.floatAt(img.index(coords...))
}

// IntAt returns the pixel at the given FITS-order coordinates as an int64.
// Float payloads are truncated.
func (img *Image) IntAt(coords ...int) int64 {
	if len(coords) != len(img.axes) {
		panic(fmt.Sprintf("fits: expected %d coordinates, got %d", len(img.axes), len(coords)))
	}
	return img.intAt(img.index(coords...))
}

// Float64s returns a fresh flattened copy of every pixel as float64, in
// the payload's native order (axis 1 fastest). Callers own the result.
func (img *Image) Float64s() []float64 {
	out := make([]float64, img.NumPixels())
	for i := range out {
		out[i] = img.floatAt(i)
	}
	return out
}

// Data returns the typed payload slice ([]uint8, []int16, []int32,
// []int64, []float32, or []float64 per BITPIX). The slice is the image's
// own storage; callers must copy before mutating.
func (img *Image) Data() any { return img.data }

// bind installs the typed payload and its type-erased accessors.
func bind[T Pixel](img *Image, data []T) {
	img.data = data
	img.floatAt = func(i int) float64 { return float64(data[i]) }
	img.intAt = func(i int) int64 { return int64(data[i]) }
}

// decodeImage reads and decodes an image data section. A zero-size image
// (NAXIS=0 or any NAXISn=0) has no data section at all.
func decodeImage(h *Header, b *blockReader) (*Image, error) {
	axes, err := h.Axes()
	if err != nil {
		return nil, err
	}
	bitpix, ok := h.Int("BITPIX")
	if !ok {
		return nil, fmt.Errorf("%w: missing BITPIX", ErrBadHeader)
	}

	img := &Image{axes: axes, bitpix: bitpix}
	n := img.NumPixels()
	if len(axes) == 0 || n == 0 {
		bind(img, []float64(nil))
		return img, nil
	}

	switch bitpix {
	case 8, 16, 32, 64, -32, -64:
	default:
		return nil, fmt.Errorf("%w: BITPIX %d", ErrUnsupported, bitpix)
	}

	width := bitpix
	if width < 0 {
		width = -width
	}
	raw, err := b.readData(n * width / 8)
	if err != nil {
		return nil, fmt.Errorf("read image data: %w", err)
	}

	switch bitpix {
	case 8:
		bind(img, raw)
	case 16:
		data := make([]int16, n)
		for i := range data {
			data[i] = int16(binary.BigEndian.Uint16(raw[2*i:]))
		}
		bind(img, data)
	case 32:
		data := make([]int32, n)
		for i := range data {
			data[i] = int32(binary.BigEndian.Uint32(raw[4*i:]))
		}
		bind(img, data)
	case 64:
		data := make([]int64, n)
		for i := range data {
			data[i] = int64(binary.BigEndian.Uint64(raw[8*i:]))
		}
		bind(img, data)
	case -32:
		data := make([]float32, n)
		for i := range data {
			data[i] = math.Float32frombits(binary.BigEndian.Uint32(raw[4*i:]))
		}
		bind(img, data)
	case -64:
		data := make([]float64, n)
		for i := range data {
			data[i] = math.Float64frombits(binary.BigEndian.Uint64(raw[8*i:]))
		}
		bind(img, data)
	}
	return img, nil
}

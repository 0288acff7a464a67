package fits

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// HDU is one decoded Header/Data Unit. Exactly one of Image or Table is
// non-nil for HDUs that carry data; both are nil for a header-only HDU.
type HDU struct {
	Header *Header
	Image  *Image
	Table  *Table
}

// Open decodes every HDU from the reader. The first HDU must be a primary
// (SIMPLE) header; anything else is ErrNotFITS.
func Open(r io.Reader) ([]*HDU, error) {
	b := newBlockReader(r)
	var hdus []*HDU

	for {
		h, err := parseHeader(b)
		if errors.Is(err, io.EOF) {
			if len(hdus) == 0 {
				return nil, ErrNotFITS
			}
			return hdus, nil
		}
		if err != nil {
			if len(hdus) == 0 {
				return nil, fmt.Errorf("%w: %v", ErrNotFITS, err)
			}
			return nil, fmt.Errorf("HDU %d: %w", len(hdus), err)
		}

		hdu := &HDU{Header: h}
		switch {
		case len(hdus) == 0:
			if v, ok := h.Bool("SIMPLE"); !ok || !v {
				return nil, fmt.Errorf("%w: primary header missing SIMPLE = T", ErrNotFITS)
			}
			if err := verifyImageKeys(h); err != nil {
				return nil, fmt.Errorf("primary HDU: %w", err)
			}
			if err := attachImage(hdu, b); err != nil {
				return nil, fmt.Errorf("primary HDU: %w", err)
			}
		default:
			xten, ok := h.Str("XTENSION")
			if !ok {
				return nil, fmt.Errorf("HDU %d: %w: missing XTENSION", len(hdus), ErrBadHeader)
			}
			if err := verifyExtensionKeys(h); err != nil {
				return nil, fmt.Errorf("HDU %d (%s): %w", len(hdus), xten, err)
			}
			switch xten {
			case "IMAGE":
				if err := attachImage(hdu, b); err != nil {
					return nil, fmt.Errorf("HDU %d: %w", len(hdus), err)
				}
			case "BINTABLE":
				tbl, err := decodeTable(h, b)
				if err != nil {
					return nil, fmt.Errorf("HDU %d: %w", len(hdus), err)
				}
				hdu.Table = tbl
			default:
				return nil, fmt.Errorf("%w: XTENSION %q", ErrUnsupported, xten)
			}
		}
		hdus = append(hdus, hdu)
	}
}

// ReadFile decodes a FITS file from disk. The whole file is read into
// memory and the handle is closed before returning, so no resource
// outlives the call regardless of the decode outcome.
func ReadFile(path string) ([]*HDU, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() {
		_ = f.Close() // Ignore close error on read-only file.
	}()

	hdus, err := Open(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hdus, nil
}

// attachImage decodes an image data section onto the HDU. Dataless HDUs
// (NAXIS = 0) leave Image nil.
func attachImage(hdu *HDU, b *blockReader) error {
	axes, err := hdu.Header.Axes()
	if err != nil {
		return err
	}
	if len(axes) == 0 {
		return nil
	}
	for _, ax := range axes {
		if ax == 0 { // random-group placeholder axis
			return fmt.Errorf("%w: random groups", ErrUnsupported)
		}
	}
	img, err := decodeImage(hdu.Header, b)
	if err != nil {
		return err
	}
	hdu.Image = img
	return nil
}

// verifyImageKeys checks the mandatory keys of a primary or IMAGE header.
func verifyImageKeys(h *Header) error {
	bitpix, ok := h.Int("BITPIX")
	if !ok {
		return fmt.Errorf("%w: missing BITPIX", ErrBadHeader)
	}
	switch bitpix {
	case 8, 16, 32, 64, -32, -64:
	default:
		return fmt.Errorf("%w: BITPIX %d", ErrBadHeader, bitpix)
	}
	_, err := h.Axes()
	return err
}

// verifyExtensionKeys checks the mandatory keys shared by every extension
// header, plus the BINTABLE shape constraints.
func verifyExtensionKeys(h *Header) error {
	if err := verifyImageKeys(h); err != nil {
		return err
	}
	if _, ok := h.Int("PCOUNT"); !ok {
		return fmt.Errorf("%w: missing PCOUNT", ErrBadHeader)
	}
	if _, ok := h.Int("GCOUNT"); !ok {
		return fmt.Errorf("%w: missing GCOUNT", ErrBadHeader)
	}
	if xten, _ := h.Str("XTENSION"); xten == "BINTABLE" {
		if bitpix, _ := h.Int("BITPIX"); bitpix != 8 {
			return fmt.Errorf("%w: BINTABLE BITPIX = %d", ErrBadHeader, bitpix)
		}
		if n, _ := h.Int("NAXIS"); n != 2 {
			return fmt.Errorf("%w: BINTABLE NAXIS = %d", ErrBadHeader, n)
		}
	}
	return nil
}

// Package fits provides pure Go decoding for the subset of FITS 3.0 used by
// IRIS level-2 data products.
//
// FITS (Flexible Image Transport System) files are a sequence of HDUs
// (Header/Data Units) laid out in 2880-byte blocks:
//
//	[Header: 80-byte keyword cards, END-terminated, block padded]
//	[Data:   big-endian payload, block padded]
//	... next HDU ...
//
// Supported here are primary and IMAGE extension HDUs with any standard
// BITPIX (8, 16, 32, 64, -32, -64), and BINTABLE extensions with atomic
// column types (L, B, I, J, K, E, D, A) including repeat counts. ASCII
// tables, random groups, and variable-length arrays return ErrUnsupported.
//
// Pixel values are exposed raw: BSCALE/BZERO are reported through the
// header but never applied, so callers control scaling explicitly.
//
// Example:
//
//	hdus, err := fits.ReadFile("iris_l2_sji.fits")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img := hdus[0].Image
//	v := img.FloatAt(10, 20, 0) // x=10, y=20, frame 0
package fits

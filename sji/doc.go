// Package sji reads IRIS Slit-Jaw Imager (SJI) level-2 FITS files into
// labeled data cubes.
//
// A level-2 SJI file holds one observation: a frame x row x column image
// series in the primary HDU and a per-frame auxiliary array in the first
// extension. ReadLevel2 decodes the file, replaces bad-pixel sentinels and
// flags them in a mask, derives per-pixel shot-noise uncertainty from the
// camera's gain and readout noise, reconstructs absolute frame timestamps,
// and attaches pointing, velocity, phase, and exposure-time series to the
// frame axis.
//
// Example:
//
//	cube, err := sji.ReadLevel2("iris_l2_20211001_060925_3683602040_SJI_1400_t000.fits")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cube) // multi-line observation summary
package sji

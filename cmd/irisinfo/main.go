// Command irisinfo prints the observation summary of an IRIS level-2 SJI
// FITS file.
//
// Usage:
//
//	irisinfo [-format LAYOUT] FILE
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/iris-go/iris/sji"
)

func main() {
	format := flag.String("format", sji.DefaultTimeFormat, "timestamp layout (Go reference time)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: irisinfo [-format LAYOUT] FILE")
		os.Exit(1)
	}

	cube, err := sji.ReadLevel2(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	summary, err := cube.Summary(*format)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(summary)
}

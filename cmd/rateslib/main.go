// Package main provides the rateslib command line interface.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/abrowley/rateslib/curves"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("rateslib %s\n", version)
	case "curve":
		if err := curveCmd(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "rateslib curve: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("rateslib - differentiable curves and splines")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version                      Show version")
	fmt.Println("  curve <file> [date]          Describe a curve JSON file;")
	fmt.Println("                               with a date, print its value there")
}

func curveCmd(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing curve file")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	c, err := curves.ImportCurve(data, curves.ImportOptions{})
	if err != nil {
		return err
	}

	dates, values := c.Nodes()
	fmt.Printf("curve %q: %s, %s interpolation, ad order %d, %d nodes\n",
		c.ID(), c.Type(), c.Interpolation(), c.ADOrder(), len(dates))
	for i, d := range dates {
		fmt.Printf("  %s  %.10f\n", d.Format("2006-01-02"), values[i].Real())
	}

	if len(args) > 1 {
		date, err := time.Parse("2006-01-02", args[1])
		if err != nil {
			return err
		}
		v, err := c.Value(date)
		if err != nil {
			return err
		}
		fmt.Printf("value at %s: %.10f\n", args[1], v.Real())
	}
	return nil
}

// Package main provides the entry point for the upi-audit CLI application.
package main

import (
	"os"

	"finwatch/upi-audit/cmd/extract"
	"finwatch/upi-audit/cmd/root"
	"finwatch/upi-audit/cmd/scan"
)

func main() {
	root.Cmd.AddCommand(scan.Cmd)
	root.Cmd.AddCommand(extract.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

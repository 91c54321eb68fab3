// Command teds-edit creates, inspects and edits IEEE 1451.0 TEDS files.
//
// Usage:
//
//	teds-edit <command> [flags]
//
// Examples:
//
//	# Create a Meta-TEDS with four channels
//	teds-edit new meta --set MaxChan=4
//
//	# Show a file as a tree, or as YAML
//	teds-edit show 0102030405060708090a.bin
//	teds-edit show -o yaml 0102030405060708090a.bin
//
//	# Edit a nested field in place
//	teds-edit set channel.bin PhyUnits/Meters=130
//
//	# Edit interactively
//	teds-edit shell channel.bin
package main

import (
	"fmt"
	"os"

	"github.com/ieee1451/teds-go/cmd/teds-edit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

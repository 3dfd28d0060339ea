// Package addrbook provides embedded runtime resources for the addrbook CLI.
package addrbook

import (
	_ "embed"
	"strings"
)

//go:embed help.txt
var rawHelp string

// Help is the command reference printed by the help command.
var Help = strings.TrimRight(rawHelp, "\n")

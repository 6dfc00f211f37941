package runeport

import _ "embed"

// Version is the release of the runeport module.
//
//go:embed VERSION
var Version string

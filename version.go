package navbind

import _ "embed"

// Version is the module release, read from the VERSION file at build time.
//
//go:embed VERSION
var Version string

package vellum

import _ "embed"

// Version exposes the version of the library, kept in the VERSION file
// so release tooling can bump it without touching source.
//
//go:embed VERSION
var Version string

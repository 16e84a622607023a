// Package constant holds identifiers, placeholders and hosts that are fixed at build time.
package constant

import _ "embed"

const (
	// Vidpool names the binary, the config file and the per-user directories.
	Vidpool = "vidpool"

	Version = "0.3.1"

	// UserAgent is sent to every endpoint; several reject Go's default agent.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, set with -ldflags at release time.
var (
	BuiltAt  string
	BuiltBy  string
	Revision string
)

// AsciiArtLogo is the banner of `vidpool --help`.
//
//go:embed ascii.txt
var AsciiArtLogo string

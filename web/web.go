// Package web embeds the static board shell. All DOM plumbing lives here;
// the Go side only serves it.
package web

import "embed"

//go:embed static
var Assets embed.FS

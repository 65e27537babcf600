// Package data provides the embedded level pack.
package data

import (
	"embed"
	"io/fs"
)

// levelFS embeds all level files at build time.
//
//go:embed levels/*.json
var levelFS embed.FS

// Levels returns the embedded level files rooted at the levels directory.
func Levels() fs.FS {
	sub, err := fs.Sub(levelFS, "levels")
	if err != nil {
		// levels/ is a compile-time embed pattern, so Sub cannot fail.
		panic(err)
	}
	return sub
}

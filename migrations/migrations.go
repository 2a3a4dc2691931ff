// Package migrations embeds the goose SQL migrations so binaries can apply
// them without shipping the files separately.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Dir is the directory passed to goose within the embedded filesystem.
const Dir = "."

// Package data embeds the bundled datasets and the schema they are validated
// against.
//
// Usage:
//
//	yamlsource.LoadEmbedded(data.FS, "movies")
package data

import "embed"

//go:embed *.yaml schema.json
var FS embed.FS

// SchemaFile is the JSON Schema every dataset document must satisfy.
const SchemaFile = "schema.json"

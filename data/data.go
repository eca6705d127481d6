// Package data bundles the default question catalog so the trainer
// works out of the box; a catalog file on disk overrides it.
package data

import _ "embed"

//go:embed questions.json
var Questions []byte

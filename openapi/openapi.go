// Package openapi embeds the API description served at GET /openapi.yaml,
// so the document always ships with the binary that implements it.
package openapi

import _ "embed"

// Document is the raw openapi.yaml.
//
//go:embed openapi.yaml
var Document []byte

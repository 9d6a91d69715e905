// Package spec embeds the OpenAPI description of the screener API, served
// at /openapi.yaml.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte

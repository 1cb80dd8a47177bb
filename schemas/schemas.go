// Package schemas embeds the JSON Schema files shipped with craftd.
package schemas

import _ "embed"

// Portfolio is the schema for portfolio import documents.
//
//go:embed portfolio.schema.json
var Portfolio []byte

// Package web holds the embedded single-page UI.
package web

import _ "embed"

// IndexPage is the single-page upload and results UI served at /.
//
//go:embed static/index.html
var IndexPage []byte

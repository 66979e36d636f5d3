// Package web carries the static assets served at the root path.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte

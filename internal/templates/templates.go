// Package templates embute as páginas HTML no binário.
package templates

import "embed"

//go:embed *.html
var FS embed.FS

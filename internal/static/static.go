// Package static embeds the landing page served under /static.
package static

import "embed"

//go:embed index.html
var Content embed.FS

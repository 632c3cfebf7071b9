// ABOUTME: Embeds web/static/ CSS and SVG icons for serving under /static/.
// ABOUTME: Uses explicit subdirectory globs because //go:embed static/* does not recurse.
package web

import "embed"

//go:embed static/css/*.css static/img/*.svg
var StaticFS embed.FS

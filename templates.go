package formframe

import (
	"io/fs"

	"github.com/goliatone/go-formframe/pkg/renderers/frame"
)

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return frame.TemplatesFS()
}

package printdoc

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/arcadia-pos/arcadia-pos/web"
)

var documentTmpl = template.Must(
	template.ParseFS(web.Templates, "templates/print/document.html.tmpl"))

// RenderHTML serializes a built model into a self-contained HTML
// artifact with inline styles, suitable for printing or PDF
// conversion.
func RenderHTML(model Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, model); err != nil {
		return nil, fmt.Errorf("printdoc: render html: %w", err)
	}
	return buf.Bytes(), nil
}

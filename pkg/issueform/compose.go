package issueform

import (
	"strings"

	"github.com/ukncsp/simmeta/pkg/schema"
)

// Compose synthesizes the form rendering of a field set: one labelled block
// per declared field in schema order, blank values rendered as the platform
// placeholder. The output parses back to the same values, which is what the
// interactive submission path relies on.
func Compose(values map[string]string) string {
	var b strings.Builder
	for _, name := range schema.Names() {
		value := values[name]
		if value == "" {
			value = DefaultPlaceholder
		}
		b.WriteString(headingPrefix)
		b.WriteString(DisplayLabel(name))
		b.WriteString("\n\n")
		b.WriteString(value)
		b.WriteString("\n\n")
	}
	return b.String()
}

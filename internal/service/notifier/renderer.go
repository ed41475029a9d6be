package notifier

import (
	"strings"

	"github.com/openboard/board-api/internal/model"
)

// Rendered is the output of substituting a context into a template.
type Rendered struct {
	Subject  string
	BodyHTML string
	BodyText string
}

// Render substitutes {{name}} tokens in the template's subject and
// bodies with values from context. Every occurrence of a known key is
// replaced; tokens whose key is absent from context are left verbatim
// so that partial context does not break delivery.
//
// Values are inserted into BodyHTML without escaping. Context values
// are expected to be trusted server-side data; callers must sanitize
// any user-controlled free text (cover letters and the like) before
// putting it in the context.
func Render(tmpl *model.NotificationTemplate, context map[string]string) *Rendered {
	return &Rendered{
		Subject:  substitute(tmpl.Subject, context),
		BodyHTML: substitute(tmpl.BodyHTML, context),
		BodyText: substitute(tmpl.BodyText, context),
	}
}

func substitute(s string, context map[string]string) string {
	if s == "" || len(context) == 0 {
		return s
	}
	for key, value := range context {
		s = strings.ReplaceAll(s, "{{"+key+"}}", value)
	}
	return s
}

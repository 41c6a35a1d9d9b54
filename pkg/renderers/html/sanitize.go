package html

import (
	stdhtml "html"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

var (
	policiesOnce sync.Once
	plainPolicy  *bluemonday.Policy
	helpPolicy   *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policiesOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()

		help := bluemonday.NewPolicy()
		help.AllowElements("b", "strong", "em", "i", "br", "code", "small")
		help.AllowAttrs("href").OnElements("a")
		help.RequireNoFollowOnLinks(true)
		help.AllowStandardURLs()
		helpPolicy = help
	})
	return plainPolicy, helpPolicy
}

// PlainText strips every tag from catalog copy (labels, option labels). The
// result is unescaped text; templates escape it on output.
func PlainText(raw string) string {
	plain, _ := policies()
	return strings.TrimSpace(stdhtml.UnescapeString(plain.Sanitize(raw)))
}

// HelpHTML keeps a small inline subset in help text and drops the rest.
func HelpHTML(raw string) string {
	_, help := policies()
	return strings.TrimSpace(help.Sanitize(raw))
}

func filterPlain(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(PlainText(in.String())), nil
}

func filterHelpHTML(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(HelpHTML(in.String())), nil
}

// Package link rewrites module-relative paths into absolute host paths.
//
// Every module addresses its own pages relative to its namespace. The rewrite
// only ever uses the caller's own module name; reaching another module
// requires passing a fully qualified "/other/..." path as an absolute Href.
package link

import (
	"html"
	"sort"
	"strings"

	"github.com/opmodel/mfe/internal/descriptor"
)

// Href returns "/" + moduleName + to, with exactly one slash between them.
// Without a module name the result is host-rooted, never protocol-relative.
func Href(moduleName, to string) string {
	if moduleName == "" {
		return "/" + strings.TrimLeft(to, "/")
	}
	return "/" + moduleName + normalize(to)
}

// normalize ensures to starts with a single slash.
func normalize(to string) string {
	if strings.HasPrefix(to, "/") {
		return to
	}
	return "/" + to
}

// Link is a module-relative navigation element.
type Link struct {
	// To is the path relative to the owning module.
	To string

	// Props are forwarded to the emitted element unchanged.
	Props map[string]string
}

// Element is a rewritten navigation element.
type Element struct {
	Href  string            `json:"href"`
	Props map[string]string `json:"props,omitempty"`
}

// Rewrite produces the element for moduleName.
func (l Link) Rewrite(moduleName string) Element {
	return Element{Href: Href(moduleName, l.To), Props: l.Props}
}

// HTML renders the element as an anchor tag. Props become attributes in
// sorted order; an "href" prop is ignored in favour of the rewritten Href.
func (e Element) HTML(text string) string {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(e.Href))
	b.WriteString(`"`)

	keys := make([]string, 0, len(e.Props))
	for k := range e.Props {
		if k == "href" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(html.EscapeString(k))
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(e.Props[k]))
		b.WriteString(`"`)
	}

	b.WriteString(">")
	b.WriteString(html.EscapeString(text))
	b.WriteString("</a>")
	return b.String()
}

// Rewriter is bound to one module's descriptor.
type Rewriter struct {
	module string
}

// For returns the rewriter for d.
func For(d descriptor.Descriptor) Rewriter {
	return Rewriter{module: d.ModuleName}
}

// Href rewrites to within the bound module.
func (r Rewriter) Href(to string) string {
	return Href(r.module, to)
}

// Link rewrites to and forwards props.
func (r Rewriter) Link(to string, props map[string]string) Element {
	return Link{To: to, Props: props}.Rewrite(r.module)
}

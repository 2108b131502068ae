// Package format renders stored monster rows for the response payload.
//
// Every field is trimmed. The sources field is rewritten reference by
// reference: a URL index becomes a hyperlink labelled with the source name,
// anything else reads "name: index".
package format

import (
	"html"
	"net/url"
	"strings"

	"github.com/roach88/bestiary/internal/ir"
)

// SourceSeparator joins formatted source references.
const SourceSeparator = ", "

// SplitSource splits a "name:index" reference at its first colon.
func SplitSource(ref string) (name, index string) {
	return ir.SplitSourceRef(ref)
}

// Source renders one source reference.
func Source(ref string) string {
	name, index := SplitSource(ref)
	switch {
	case index == "":
		return name
	case isLink(index):
		return `<a target="_blank" href="` + html.EscapeString(index) + `">` + html.EscapeString(name) + `</a>`
	default:
		return name + ": " + index
	}
}

// Sources renders a comma-joined sources field.
func Sources(field string) string {
	refs := ir.SourceRefs(field)
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = Source(ref)
	}
	return strings.Join(out, SourceSeparator)
}

// Row returns the response columns of m, trimmed, with sources formatted.
func Row(m ir.Monster) []string {
	values := m.Values()
	for i, col := range ir.MonsterColumns {
		if col == "sources" {
			values[i] = Sources(values[i])
			continue
		}
		values[i] = strings.TrimSpace(values[i])
	}
	return values
}

// Rows formats monsters in the order given.
func Rows(ms []ir.Monster) [][]string {
	rows := make([][]string, len(ms))
	for i, m := range ms {
		rows[i] = Row(m)
	}
	return rows
}

func isLink(index string) bool {
	u, err := url.Parse(index)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

package ir

import "strings"

// SplitSourceRef splits one "name:page-or-url" reference at its first colon.
// Both parts are trimmed. A reference without a colon is all name.
func SplitSourceRef(ref string) (name, index string) {
	name, index, _ = strings.Cut(ref, ":")
	return strings.TrimSpace(name), strings.TrimSpace(index)
}

// SourceRefs splits a comma-joined sources field into its references,
// dropping blanks.
func SourceRefs(field string) []string {
	var refs []string
	for _, ref := range strings.Split(field, ",") {
		if ref = strings.TrimSpace(ref); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}

// SourceHashesFor derives the sourcehashes column for a sources field: the
// hash token of each referenced source name, comma-joined, in field order.
func SourceHashesFor(field string) string {
	refs := SourceRefs(field)
	hashes := make([]string, 0, len(refs))
	for _, ref := range refs {
		name, _ := SplitSourceRef(ref)
		hashes = append(hashes, SourceHash(name))
	}
	return strings.Join(hashes, ",")
}

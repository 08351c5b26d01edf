package ingest

import (
	"path"
	"strings"
)

// PathLeaf returns the last element of p, accepting both '/' and '\'
// separators and ignoring trailing separators.
func PathLeaf(p string) string {
	p = strings.TrimRight(p, `/\`)
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}

// TraceName returns the leaf of p without its extension, used to name the
// reports generated for a trace.
func TraceName(p string) string {
	leaf := PathLeaf(p)
	if name := strings.TrimSuffix(leaf, path.Ext(leaf)); name != "" {
		return name
	}
	return leaf
}

package models

import "strings"

// AnnotationMap holds reviewer comments keyed by line identifier.
type AnnotationMap map[LineID]string

// NewAnnotationMap builds an AnnotationMap from raw form or file values,
// dropping blank comments.
func NewAnnotationMap(raw map[string]string) AnnotationMap {
	out := make(AnnotationMap, len(raw))
	for id, comment := range raw {
		comment = strings.TrimSpace(comment)
		if id == "" || comment == "" {
			continue
		}
		out[LineID(id)] = comment
	}
	return out
}

// Lookup returns the trimmed comment for id, if any.
func (a AnnotationMap) Lookup(id LineID) (string, bool) {
	if a == nil {
		return "", false
	}
	comment := strings.TrimSpace(a[id])
	return comment, comment != ""
}

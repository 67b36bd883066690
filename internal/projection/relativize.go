package projection

import "strings"

// Relativizer maps absolute IRIs inside the test suite to paths relative to
// the manifest directory. Dir is the manifest directory IRI and Root the
// suite root IRI; both end in '/'. Dir is assumed to sit one level below
// Root, which is how suite layouts nest test directories.
type Relativizer struct {
	Dir  string
	Root string
}

// NewRelativizer derives Dir from the manifest IRI and pairs it with root.
func NewRelativizer(manifestIRI, root string) Relativizer {
	dir := manifestIRI
	if i := strings.LastIndexByte(dir, '/'); i >= 0 {
		dir = dir[:i+1]
	}
	return Relativizer{Dir: dir, Root: root}
}

// Relativize strips Dir from iri, or turns an IRI elsewhere under Root into
// "../<rest>". Any other IRI is returned unchanged.
func (r Relativizer) Relativize(iri string) string {
	switch {
	case r.Dir != "" && strings.HasPrefix(iri, r.Dir):
		return iri[len(r.Dir):]
	case r.Root != "" && strings.HasPrefix(iri, r.Root):
		return "../" + iri[len(r.Root):]
	default:
		return iri
	}
}

// Resolve is the inverse of Relativize.
func (r Relativizer) Resolve(rel string) string {
	switch {
	case isAbsolute(rel):
		return rel
	case strings.HasPrefix(rel, "../") && r.Root != "":
		return r.Root + rel[len("../"):]
	default:
		return r.Dir + rel
	}
}

func isAbsolute(ref string) bool {
	i := strings.Index(ref, ":")
	return i > 0 && !strings.ContainsAny(ref[:i], "/?#")
}

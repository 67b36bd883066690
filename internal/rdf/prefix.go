package rdf

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Well-known namespaces used by test manifests.
const (
	NSRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSRDFS = "http://www.w3.org/2000/01/rdf-schema#"
	NSXSD  = "http://www.w3.org/2001/XMLSchema#"
	NSMF   = "http://www.w3.org/2001/sw/DataAccess/tests/test-manifest#"
	NSSHT  = "http://www.w3.org/ns/shacl/test-suite#"
	NSSX   = "https://shexspec.github.io/shexTest/ns#"
)

// Vocabulary IRIs the engine reads directly.
const (
	RDFType  = NSRDF + "type"
	RDFFirst = NSRDF + "first"
	RDFRest  = NSRDF + "rest"
	RDFNil   = NSRDF + "nil"
)

// ErrUnknownPrefix is returned when a compact name uses an undeclared prefix.
var ErrUnknownPrefix = errors.New("unknown prefix")

// Prefixes maps short namespace prefixes to namespace IRIs.
type Prefixes struct {
	ns map[string]string
}

// DefaultPrefixes returns the namespaces every manifest is assumed to use.
func DefaultPrefixes() *Prefixes {
	return &Prefixes{ns: map[string]string{
		"rdf":  NSRDF,
		"rdfs": NSRDFS,
		"xsd":  NSXSD,
		"mf":   NSMF,
		"sht":  NSSHT,
		"sx":   NSSX,
	}}
}

// NewPrefixes returns a resolver over a copy of ns.
func NewPrefixes(ns map[string]string) *Prefixes {
	return (&Prefixes{}).With(ns)
}

// Map returns a copy of the prefix bindings.
func (p *Prefixes) Map() map[string]string {
	out := make(map[string]string, len(p.ns))
	for k, v := range p.ns {
		out[k] = v
	}
	return out
}

// With returns a copy of p extended with extra. Entries in extra override
// existing ones.
func (p *Prefixes) With(extra map[string]string) *Prefixes {
	out := &Prefixes{ns: make(map[string]string, len(p.ns)+len(extra))}
	for k, v := range p.ns {
		out.ns[k] = v
	}
	for k, v := range extra {
		out.ns[k] = v
	}
	return out
}

// Namespace returns the namespace IRI bound to prefix.
func (p *Prefixes) Namespace(prefix string) (string, bool) {
	ns, ok := p.ns[prefix]
	return ns, ok
}

// Expand turns "prefix:local" into a full IRI.
func (p *Prefixes) Expand(name string) (string, error) {
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return "", fmt.Errorf("%q is not a prefixed name", name)
	}
	ns, found := p.ns[prefix]
	if !found {
		return "", fmt.Errorf("expanding %q: %w %q", name, ErrUnknownPrefix, prefix)
	}
	return ns + local, nil
}

// MustExpand is Expand for names known at compile time.
func (p *Prefixes) MustExpand(name string) string {
	iri, err := p.Expand(name)
	if err != nil {
		panic(err)
	}
	return iri
}

// Compact returns "prefix:local" for the longest matching namespace, or the
// IRI unchanged when no namespace matches.
func (p *Prefixes) Compact(iri string) string {
	best, bestNS := "", ""
	for _, k := range p.sortedKeys() {
		ns := p.ns[k]
		if strings.HasPrefix(iri, ns) && len(ns) > len(bestNS) {
			best, bestNS = k, ns
		}
	}
	if bestNS == "" {
		return iri
	}
	return best + ":" + iri[len(bestNS):]
}

// Local strips namespace ns from iri, returning iri unchanged if it is not
// in that namespace.
func Local(iri, ns string) string {
	return strings.TrimPrefix(iri, ns)
}

func (p *Prefixes) sortedKeys() []string {
	keys := make([]string, 0, len(p.ns))
	for k := range p.ns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

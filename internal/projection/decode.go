package projection

import (
	"github.com/shexspec/mfgen/internal/rdf"
)

// Decoder shapes the values found for a rule. ok=false omits the field.
type Decoder func(c *decodeContext, values []rdf.Term) (v any, ok bool, err error)

// decodeContext is the per-entry state handed to decoders.
type decodeContext struct {
	p       *Projector
	missing []string
}

// decodeLiteral unwraps the lexical form of the first value.
func decodeLiteral(_ *decodeContext, vs []rdf.Term) (any, bool, error) {
	return vs[0].Value, true, nil
}

// decodeCompact renders the first IRI value as a prefixed name.
func decodeCompact(c *decodeContext, vs []rdf.Term) (any, bool, error) {
	if !vs[0].IsIRI() {
		return vs[0].Value, true, nil
	}
	return c.p.prefixes.Compact(vs[0].Value), true, nil
}

// decodeRelative relativizes the first IRI value against the manifest
// directory.
func decodeRelative(c *decodeContext, vs []rdf.Term) (any, bool, error) {
	return c.p.rel.Relativize(vs[0].Value), true, nil
}

// decodeFile relativizes the first value and records it as missing when it
// does not exist under the base directory.
func decodeFile(c *decodeContext, vs []rdf.Term) (any, bool, error) {
	rel := c.p.rel.Relativize(vs[0].Value)
	if c.p.prober != nil && !c.p.prober.Exists(rel) {
		c.missing = append(c.missing, rel)
	}
	return rel, true, nil
}

// decodeFocus keeps literal focus nodes as JSON-LD value objects and
// relativizes IRI focus nodes.
func decodeFocus(c *decodeContext, vs []rdf.Term) (any, bool, error) {
	v := vs[0]
	if !v.IsLiteral() {
		return c.p.rel.Relativize(v.Value), true, nil
	}
	obj := Fields{{"@value", v.Value}}
	if v.Language != "" {
		obj = append(obj, Field{"@language", v.Language})
	}
	if v.Datatype != "" {
		obj = append(obj, Field{"@type", v.Datatype})
	}
	return obj, true, nil
}

// decodeTraits lists the local names of all trait IRIs.
func decodeTraits(_ *decodeContext, vs []rdf.Term) (any, bool, error) {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, rdf.Local(v.Value, rdf.NSSHT))
	}
	return out, true, nil
}

// decodeExtensionResults expands each result node into its extension IRI
// and printed output.
func decodeExtensionResults(c *decodeContext, vs []rdf.Term) (any, bool, error) {
	ext := c.p.vocab.MustExpand("mf:extension")
	prints := c.p.vocab.MustExpand("mf:prints")

	out := make([]Fields, 0, len(vs))
	for _, node := range vs {
		var obj Fields
		if v, ok := c.p.idx.First(node, ext); ok {
			obj = append(obj, Field{"extension", v.Value})
		}
		if v, ok := c.p.idx.First(node, prints); ok {
			obj = append(obj, Field{"prints", v.Value})
		}
		out = append(out, obj)
	}
	return out, true, nil
}

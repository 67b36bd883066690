package projection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shexspec/mfgen/internal/rdf"
)

// ErrAmbiguousAction is returned when an entry whose kind requires an
// mf:action has none or more than one.
var ErrAmbiguousAction = errors.New("ambiguous action")

// Options configures a Projector.
type Options struct {
	// ManifestIRI is stripped from entry IRIs to form record ids.
	ManifestIRI string
	Relativizer Relativizer
	// Prober checks file references. Nil disables the check.
	Prober *Prober
	// Prefixes compacts IRI values such as mf:status. Nil uses the defaults.
	Prefixes *rdf.Prefixes
}

// Projector builds records from a frozen index. It is safe for concurrent
// use when the Prober is.
type Projector struct {
	idx      *rdf.Index
	walker   *rdf.Walker
	prefixes *rdf.Prefixes
	vocab    *rdf.Prefixes
	rel      Relativizer
	prober   *Prober
	manifest string
}

// New returns a Projector over idx.
func New(idx *rdf.Index, walker *rdf.Walker, opts Options) *Projector {
	prefixes := opts.Prefixes
	if prefixes == nil {
		prefixes = rdf.DefaultPrefixes()
	}
	return &Projector{
		idx:      idx,
		walker:   walker,
		prefixes: prefixes,
		vocab:    rdf.DefaultPrefixes(),
		rel:      opts.Relativizer,
		prober:   opts.Prober,
		manifest: opts.ManifestIRI,
	}
}

// Projection is the outcome of projecting one entry.
type Projection struct {
	Record Record
	// Name is the entry's mf:name, if any.
	Name    string
	HasName bool
	// Missing lists relativized file references that do not exist, in rule
	// order, possibly with repeats.
	Missing []string
}

// ID returns the record id for an entry IRI.
func (p *Projector) ID(entry string) string {
	if p.manifest != "" && strings.HasPrefix(entry, p.manifest) {
		return entry[len(p.manifest):]
	}
	return entry
}

// Project applies the rule table of kind to entry.
func (p *Projector) Project(entry rdf.Term, kind Kind) (*Projection, error) {
	table := TableFor(kind)
	c := &decodeContext{p: p}

	var action rdf.Term
	if table.RequiresAction() {
		actions := p.idx.Objects(entry, p.vocab.MustExpand("mf:action"))
		if len(actions) != 1 {
			return nil, fmt.Errorf("%w: expected 1 action for %s, got %d", ErrAmbiguousAction, entry.Value, len(actions))
		}
		action = actions[0]
	}

	rec := Record{ID: p.ID(entry.Key()), Type: kind}
	var actionFields Fields
	actionAt := -1

	for _, rule := range table.Rules {
		subject := entry
		if rule.Source == OnAction {
			subject = action
			if actionAt < 0 {
				actionAt = len(rec.Fields)
			}
		}
		v, ok, err := p.apply(c, subject, rule)
		if err != nil {
			return nil, fmt.Errorf("projecting %s of %s: %w", rule.Predicate, entry.Value, err)
		}
		if !ok {
			continue
		}
		f := Field{Key: rule.Field, Value: v}
		if rule.Source == OnAction {
			actionFields = append(actionFields, f)
		} else {
			rec.Fields = append(rec.Fields, f)
		}
	}

	if len(actionFields) > 0 {
		rec.Fields = append(rec.Fields[:actionAt], append(Fields{{ActionField, actionFields}}, rec.Fields[actionAt:]...)...)
	}

	out := &Projection{Record: rec, Missing: c.missing}
	if name, ok := rec.Fields.Get("name"); ok {
		out.Name, out.HasName = name.(string)
	}
	return out, nil
}

func (p *Projector) apply(c *decodeContext, subject rdf.Term, rule Rule) (any, bool, error) {
	values := p.idx.Objects(subject, p.vocab.MustExpand(rule.Predicate))
	if rule.Collection {
		var flat []rdf.Term
		for _, v := range values {
			if !p.walker.IsList(v) {
				flat = append(flat, v)
				continue
			}
			items, err := p.walker.Expand(v)
			if err != nil {
				return nil, false, err
			}
			flat = append(flat, items...)
		}
		values = flat
	}
	if len(values) == 0 {
		return nil, false, nil
	}
	return rule.Decode(c, values)
}

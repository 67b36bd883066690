package projection

// Source selects the node a rule reads from.
type Source int

const (
	// OnEntry reads from the test entry itself.
	OnEntry Source = iota
	// OnAction reads from the entry's mf:action node.
	OnAction
)

// Rule maps one predicate to one output field.
type Rule struct {
	Source     Source
	Predicate  string // compact name, expanded with the default prefixes
	Field      string
	Collection bool // expand RDF collection values before decoding
	Decode     Decoder
}

// Table is the ordered rule list for one test kind.
type Table struct {
	Kind  Kind
	Rules []Rule
}

// ActionField is the output key of the nested action object.
const ActionField = "action"

var actionRules = []Rule{
	{OnEntry, "mf:name", "name", false, decodeLiteral},
	{OnEntry, "sht:trait", "trait", true, decodeTraits},
	{OnEntry, "rdfs:comment", "comment", false, decodeLiteral},
	{OnEntry, "mf:status", "status", false, decodeCompact},
	{OnAction, "sht:schema", "schema", false, decodeFile},
	{OnAction, "sht:shape", "shape", false, decodeRelative},
	{OnAction, "sht:data", "data", false, decodeFile},
	{OnAction, "sht:map", "map", false, decodeFile},
	{OnAction, "sht:focus", "focus", false, decodeFocus},
	{OnAction, "sht:semActs", "semActs", false, decodeFile},
	{OnAction, "sht:shapeExterns", "shapeExterns", false, decodeFile},
	{OnEntry, "mf:result", "result", false, decodeFile},
	{OnEntry, "mf:extensionResults", "extensionResults", true, decodeExtensionResults},
}

var directRules = []Rule{
	{OnEntry, "mf:name", "name", false, decodeLiteral},
	{OnEntry, "sht:trait", "trait", true, decodeTraits},
	{OnEntry, "mf:status", "status", false, decodeCompact},
	{OnEntry, "sx:shex", "shex", false, decodeFile},
	{OnEntry, "sx:json", "json", false, decodeFile},
	{OnEntry, "sx:ttl", "ttl", false, decodeFile},
}

// TableFor returns the rule table for k. Kinds that carry an mf:action share
// one table; the others read their references directly from the entry.
func TableFor(k Kind) Table {
	if k.RequiresAction() {
		return Table{Kind: k, Rules: actionRules}
	}
	return Table{Kind: k, Rules: directRules}
}

// RequiresAction reports whether any rule of t reads from the action node.
func (t Table) RequiresAction() bool {
	for _, r := range t.Rules {
		if r.Source == OnAction {
			return true
		}
	}
	return false
}

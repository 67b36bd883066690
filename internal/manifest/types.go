package manifest

// Document is an emitted manifest. The yaml tags also serve JSON input,
// which is parsed as YAML.
type Document struct {
	Context any     `yaml:"@context,omitempty" json:"@context,omitempty"`
	ID      string  `yaml:"@id" json:"@id"`
	Type    string  `yaml:"@type" json:"@type"`
	Comment string  `yaml:"comment,omitempty" json:"comment,omitempty"`
	Entries []Entry `yaml:"entries" json:"entries"`
}

// Entry is one test record.
type Entry struct {
	ID               string            `yaml:"@id" json:"@id"`
	Type             string            `yaml:"@type" json:"@type"`
	Name             string            `yaml:"name,omitempty" json:"name,omitempty"`
	Trait            []string          `yaml:"trait,omitempty" json:"trait,omitempty"`
	Comment          string            `yaml:"comment,omitempty" json:"comment,omitempty"`
	Status           string            `yaml:"status,omitempty" json:"status,omitempty"`
	Action           *Action           `yaml:"action,omitempty" json:"action,omitempty"`
	Result           string            `yaml:"result,omitempty" json:"result,omitempty"`
	ExtensionResults []ExtensionResult `yaml:"extensionResults,omitempty" json:"extensionResults,omitempty"`
	Shex             string            `yaml:"shex,omitempty" json:"shex,omitempty"`
	JSON             string            `yaml:"json,omitempty" json:"json,omitempty"`
	TTL              string            `yaml:"ttl,omitempty" json:"ttl,omitempty"`
}

// Action holds the inputs of a validation test.
type Action struct {
	Schema       string `yaml:"schema,omitempty" json:"schema,omitempty"`
	Shape        string `yaml:"shape,omitempty" json:"shape,omitempty"`
	Data         string `yaml:"data,omitempty" json:"data,omitempty"`
	Map          string `yaml:"map,omitempty" json:"map,omitempty"`
	Focus        Focus  `yaml:"focus,omitempty" json:"focus,omitempty"`
	SemActs      string `yaml:"semActs,omitempty" json:"semActs,omitempty"`
	ShapeExterns string `yaml:"shapeExterns,omitempty" json:"shapeExterns,omitempty"`
}

// Focus is a focus node: either a (relative) IRI or a literal value object.
type Focus struct {
	IRI      string `yaml:"-" json:"-"`
	Value    string `yaml:"@value,omitempty" json:"@value,omitempty"`
	Language string `yaml:"@language,omitempty" json:"@language,omitempty"`
	Datatype string `yaml:"@type,omitempty" json:"@type,omitempty"`
}

// IsZero reports whether no focus was given.
func (f Focus) IsZero() bool { return f == Focus{} }

// IsLiteral reports whether the focus is a literal.
func (f Focus) IsLiteral() bool { return f.IRI == "" && !f.IsZero() }

// ExtensionResult is the expected output of one extension.
type ExtensionResult struct {
	Extension string `yaml:"extension,omitempty" json:"extension,omitempty"`
	Prints    string `yaml:"prints,omitempty" json:"prints,omitempty"`
}

// ManifestType is the required "@type" of a Document.
const ManifestType = "Manifest"

// Entry @type values.
const (
	TypeValidationTest     = "ValidationTest"
	TypeValidationFailure  = "ValidationFailure"
	TypeRepresentationTest = "RepresentationTest"
	TypeNegativeSyntax     = "NegativeSyntax"
	TypeNegativeStructure  = "NegativeStructure"
)

// Entry shapes. A kind's shape names the schema definition its records
// must satisfy.
const (
	ShapeAction = "actionEntry"
	ShapeDirect = "directEntry"
)

// entryShapes maps each entry @type to its shape.
var entryShapes = map[string]string{
	TypeValidationTest:     ShapeAction,
	TypeValidationFailure:  ShapeAction,
	TypeRepresentationTest: ShapeDirect,
	TypeNegativeSyntax:     ShapeDirect,
	TypeNegativeStructure:  ShapeDirect,
}

// ShapeOf returns the shape of entry kind typ.
func ShapeOf(typ string) (string, bool) {
	s, ok := entryShapes[typ]
	return s, ok
}

package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/manifest.schema.json
var schemaBytes []byte

const schemaURL = "manifest.schema.json"

// schemas holds the document schema and one schema per entry shape.
type schemas struct {
	document *jsonschema.Schema
	shapes   map[string]*jsonschema.Schema
}

var (
	compiled    *schemas
	compileOnce sync.Once
	compileErr  error
	printer     = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation. Entry and Kind are set when the
// violation is inside a test record.
type ValidationIssue struct {
	Path    string // instance location, e.g. "/entries/0/action/schema"
	Entry   string // the record's @id
	Kind    string // the record's @type
	Message string
	Keyword string // schema keyword that failed
}

// Location renders where the issue is: the document path, or the record
// and the path inside it.
func (i ValidationIssue) Location() string {
	if i.Entry == "" && i.Kind == "" {
		if i.Path == "" {
			return "/"
		}
		return i.Path
	}
	loc := i.Kind + " " + strconv.Quote(i.Entry)
	if rest := entryRelative(i.Path); rest != "" {
		loc += " at " + rest
	}
	return loc
}

// entryRelative strips the "/entries/N" prefix from path.
func entryRelative(path string) string {
	rest, ok := strings.CutPrefix(path, "/entries/")
	if !ok {
		return path
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[i:]
	}
	return ""
}

func getSchemas() (*schemas, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		s := &schemas{shapes: make(map[string]*jsonschema.Schema)}
		if s.document, err = c.Compile(schemaURL); err != nil {
			compileErr = fmt.Errorf("compiling schema: %w", err)
			return
		}
		for _, shape := range []string{ShapeAction, ShapeDirect} {
			if s.shapes[shape], err = c.Compile(schemaURL + "#/$defs/" + shape); err != nil {
				compileErr = fmt.Errorf("compiling %s schema: %w", shape, err)
				return
			}
		}
		compiled = s
	})
	return compiled, compileErr
}

// Validate checks an emitted manifest, JSON or YAML. The document envelope
// is checked first, then each record against the shape its @type selects.
// The error return is for parse or schema compilation failures; violations
// are returned in the ValidationResult.
func Validate(data []byte) (*ValidationResult, error) {
	s, err := getSchemas()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := instance(data)
	if err != nil {
		return nil, err
	}

	var issues []ValidationIssue
	if err := s.document.Validate(inst); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		issues = append(issues, extractIssues(ve, "")...)
	}

	doc, _ := inst.(map[string]any)
	entries, _ := doc["entries"].([]any)
	for i, e := range entries {
		entryIssues, err := s.validateEntry(i, e)
		if err != nil {
			return nil, err
		}
		issues = append(issues, entryIssues...)
	}

	if len(issues) == 0 {
		return &ValidationResult{Valid: true}, nil
	}
	return &ValidationResult{Issues: deduplicateIssues(issues)}, nil
}

// validateEntry checks record i against the shape of its kind. Records
// without a string @id or @type were already reported by the envelope.
func (s *schemas) validateEntry(i int, e any) ([]ValidationIssue, error) {
	rec, ok := e.(map[string]any)
	if !ok {
		return nil, nil
	}
	id, idOK := rec["@id"].(string)
	kind, kindOK := rec["@type"].(string)
	if !idOK || !kindOK {
		return nil, nil
	}
	at := "/entries/" + strconv.Itoa(i)

	shape, ok := ShapeOf(kind)
	if !ok {
		return []ValidationIssue{{
			Path:    at + "/@type",
			Entry:   id,
			Kind:    kind,
			Message: fmt.Sprintf("unknown test kind %q", kind),
			Keyword: "enum",
		}}, nil
	}

	err := s.shapes[shape].Validate(e)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}
	issues := extractIssues(ve, at)
	for j := range issues {
		issues[j].Entry, issues[j].Kind = id, kind
	}
	return issues, nil
}

// ValidateFile reads a file and validates it against the output schema.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// instance decodes data as YAML (a superset of the JSON we emit) and
// re-reads it through JSON so numbers reach the validator as json.Number.
func instance(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}
	return inst, nil
}

// extractIssues returns the leaf issues of ve with paths under prefix.
func extractIssues(ve *jsonschema.ValidationError, prefix string) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, prefix, &issues)
	if len(issues) == 0 {
		return []ValidationIssue{{Path: prefix, Message: ve.Error()}}
	}
	return issues
}

// collectValidationIssues walks the error tree down to its leaves.
func collectValidationIssues(ve *jsonschema.ValidationError, prefix string, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectValidationIssues(cause, prefix, issues)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	keyword := ""
	if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
		keyword = kw[len(kw)-1]
	}
	// The focus definition is a oneOf; its leaves carry the detail.
	if keyword == "oneOf" || keyword == "$ref" || keyword == "" {
		return
	}

	path := prefix
	if len(ve.InstanceLocation) > 0 {
		path += "/" + strings.Join(ve.InstanceLocation, "/")
	}
	*issues = append(*issues, ValidationIssue{
		Path:    path,
		Message: ve.ErrorKind.LocalizedString(printer),
		Keyword: keyword,
	})
}

func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[ValidationIssue]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		if !seen[issue] {
			seen[issue] = true
			result = append(result, issue)
		}
	}
	return result
}

// normalizeYAML converts YAML-decoded values to JSON-compatible types.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}

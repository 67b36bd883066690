package turtle

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shexspec/mfgen/internal/rdf"
)

// Graph is the parse result: triples in document order plus the prefixes and
// base IRI in effect at the end of the document.
type Graph struct {
	Triples  []rdf.Triple
	Prefixes map[string]string
	Base     string
}

// SyntaxError reports a parse failure with its 1-based position.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse reads a Turtle document from r. Relative IRIs resolve against base
// until an @base directive replaces it.
func Parse(r io.Reader, base string) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading turtle: %w", err)
	}
	return ParseString(string(data), base)
}

// ParseString is Parse over an in-memory document.
func ParseString(src, base string) (*Graph, error) {
	p := &parser{
		src:      src,
		base:     base,
		prefixes: make(map[string]string),
	}
	if err := p.document(); err != nil {
		return nil, err
	}
	return &Graph{Triples: p.triples, Prefixes: p.prefixes, Base: p.base}, nil
}

type parser struct {
	src      string
	pos      int
	base     string
	prefixes map[string]string
	triples  []rdf.Triple
	bnodes   int
}

func (p *parser) document() error {
	for {
		p.skipWS()
		if p.eof() {
			return nil
		}
		if err := p.statement(); err != nil {
			return err
		}
	}
}

func (p *parser) statement() error {
	if p.peek() == '@' {
		return p.atDirective()
	}
	if p.peek() != '<' && p.peek() != '[' && p.peek() != '(' && p.peek() != '_' {
		save := p.pos
		name := p.readName()
		switch {
		case strings.EqualFold(name, "prefix"):
			return p.prefixDirective(false)
		case strings.EqualFold(name, "base"):
			return p.baseDirective(false)
		}
		p.pos = save
	}

	var subject rdf.Term
	var err error
	bnpl := false
	switch p.peek() {
	case '[':
		bnpl = true
		subject, err = p.blankNodePropertyList()
	case '(':
		subject, err = p.collection()
	default:
		subject, err = p.node()
	}
	if err != nil {
		return err
	}

	p.skipWS()
	if !(bnpl && p.peek() == '.') {
		if err := p.predicateObjectList(subject); err != nil {
			return err
		}
	}
	return p.expect('.')
}

func (p *parser) atDirective() error {
	p.pos++ // '@'
	kw := p.readName()
	switch kw {
	case "prefix":
		return p.prefixDirective(true)
	case "base":
		return p.baseDirective(true)
	default:
		return p.errorf("unknown directive @%s", kw)
	}
}

func (p *parser) prefixDirective(dotted bool) error {
	p.skipWS()
	name := p.readName()
	if !strings.HasSuffix(name, ":") {
		return p.errorf("expected prefix name ending in ':', got %q", name)
	}
	p.skipWS()
	iri, err := p.iriRef()
	if err != nil {
		return err
	}
	p.prefixes[strings.TrimSuffix(name, ":")] = iri
	if dotted {
		return p.expect('.')
	}
	return nil
}

func (p *parser) baseDirective(dotted bool) error {
	p.skipWS()
	iri, err := p.iriRef()
	if err != nil {
		return err
	}
	p.base = iri
	if dotted {
		return p.expect('.')
	}
	return nil
}

func (p *parser) predicateObjectList(subject rdf.Term) error {
	for {
		p.skipWS()
		pred, err := p.verb()
		if err != nil {
			return err
		}
		if err := p.objectList(subject, pred); err != nil {
			return err
		}
		p.skipWS()
		if p.peek() != ';' {
			return nil
		}
		for p.peek() == ';' {
			p.pos++
			p.skipWS()
		}
		// A trailing ';' may close the list.
		if c := p.peek(); c == '.' || c == ']' || p.eof() {
			return nil
		}
	}
}

func (p *parser) objectList(subject, pred rdf.Term) error {
	for {
		p.skipWS()
		if err := p.object(subject, pred); err != nil {
			return err
		}
		p.skipWS()
		if p.peek() != ',' {
			return nil
		}
		p.pos++
	}
}

func (p *parser) verb() (rdf.Term, error) {
	if p.peek() == 'a' && p.pos+1 <= len(p.src) && (p.pos+1 == len(p.src) || isDelim(p.src[p.pos+1])) {
		p.pos++
		return rdf.IRI(rdf.RDFType), nil
	}
	t, err := p.node()
	if err != nil {
		return rdf.Term{}, err
	}
	if !t.IsIRI() {
		return rdf.Term{}, p.errorf("predicate must be an IRI, got %s", t)
	}
	return t, nil
}

func (p *parser) object(subject, pred rdf.Term) error {
	switch c := p.peek(); {
	case c == '[':
		node := p.newBlank()
		p.emit(subject, pred, node)
		return p.bracketBody(node)
	case c == '(':
		obj, err := p.collection()
		if err != nil {
			return err
		}
		p.emit(subject, pred, obj)
		return nil
	case c == '"' || c == '\'':
		lit, err := p.stringLiteral()
		if err != nil {
			return err
		}
		p.emit(subject, pred, lit)
		return nil
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		lit, err := p.numericLiteral()
		if err != nil {
			return err
		}
		p.emit(subject, pred, lit)
		return nil
	default:
		obj, err := p.node()
		if err != nil {
			return err
		}
		p.emit(subject, pred, obj)
		return nil
	}
}

// node reads an IRI reference, prefixed name, blank node label, or boolean.
func (p *parser) node() (rdf.Term, error) {
	switch p.peek() {
	case '<':
		iri, err := p.iriRef()
		if err != nil {
			return rdf.Term{}, err
		}
		return rdf.IRI(iri), nil
	case '_':
		if p.pos+1 < len(p.src) && p.src[p.pos+1] == ':' {
			p.pos += 2
			label := p.readName()
			if label == "" {
				return rdf.Term{}, p.errorf("empty blank node label")
			}
			return userBlank(label), nil
		}
	}
	if p.eof() {
		return rdf.Term{}, p.errorf("unexpected end of input")
	}
	name := p.readName()
	switch name {
	case "":
		return rdf.Term{}, p.errorf("unexpected character %q", p.peek())
	case "true", "false":
		return rdf.TypedLiteral(name, rdf.NSXSD+"boolean"), nil
	}
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return rdf.Term{}, p.errorf("expected IRI or prefixed name, got %q", name)
	}
	ns, found := p.prefixes[prefix]
	if !found {
		return rdf.Term{}, p.errorf("undeclared prefix %q", prefix)
	}
	return rdf.IRI(ns + unescapeLocal(local)), nil
}

func (p *parser) blankNodePropertyList() (rdf.Term, error) {
	node := p.newBlank()
	return node, p.bracketBody(node)
}

// bracketBody parses "[ predicateObjectList? ]" for an already allocated node.
func (p *parser) bracketBody(node rdf.Term) error {
	p.pos++ // '['
	p.skipWS()
	if p.peek() == ']' {
		p.pos++
		return nil
	}
	if err := p.predicateObjectList(node); err != nil {
		return err
	}
	return p.expect(']')
}

func (p *parser) collection() (rdf.Term, error) {
	p.pos++ // '('
	first, rest := rdf.IRI(rdf.RDFFirst), rdf.IRI(rdf.RDFRest)
	var head, prev rdf.Term
	for {
		p.skipWS()
		if p.eof() {
			return rdf.Term{}, p.errorf("unterminated collection")
		}
		if p.peek() == ')' {
			p.pos++
			nilTerm := rdf.IRI(rdf.RDFNil)
			if head.IsZero() {
				return nilTerm, nil
			}
			p.emit(prev, rest, nilTerm)
			return head, nil
		}
		cell := p.newBlank()
		if head.IsZero() {
			head = cell
		} else {
			p.emit(prev, rest, cell)
		}
		if err := p.object(cell, first); err != nil {
			return rdf.Term{}, err
		}
		prev = cell
	}
}

func (p *parser) iriRef() (string, error) {
	if p.peek() != '<' {
		return "", p.errorf("expected '<'")
	}
	p.pos++
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated IRI")
		}
		c := p.src[p.pos]
		switch c {
		case '>':
			p.pos++
			return p.resolve(sb.String())
		case '\\':
			r, err := p.unicodeEscape()
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
		case ' ', '\t', '\n', '\r':
			return "", p.errorf("whitespace in IRI")
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

func (p *parser) resolve(ref string) (string, error) {
	if p.base == "" || hasScheme(ref) {
		return ref, nil
	}
	if ref == "" {
		return stripFragment(p.base), nil
	}
	if strings.HasPrefix(ref, "#") {
		return stripFragment(p.base) + ref, nil
	}
	b, err := url.Parse(p.base)
	if err != nil {
		return "", p.errorf("invalid base IRI %q: %v", p.base, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", p.errorf("invalid IRI %q: %v", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}

func (p *parser) stringLiteral() (rdf.Term, error) {
	q := p.src[p.pos]
	long := strings.HasPrefix(p.src[p.pos:], strings.Repeat(string(q), 3))
	if long {
		p.pos += 3
	} else {
		p.pos++
	}

	var sb strings.Builder
	for {
		if p.eof() {
			return rdf.Term{}, p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case long && strings.HasPrefix(p.src[p.pos:], strings.Repeat(string(q), 3)):
			p.pos += 3
			return p.literalSuffix(sb.String())
		case !long && c == q:
			p.pos++
			return p.literalSuffix(sb.String())
		case !long && (c == '\n' || c == '\r'):
			return rdf.Term{}, p.errorf("newline in short string")
		case c == '\\':
			r, err := p.stringEscape()
			if err != nil {
				return rdf.Term{}, err
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

func (p *parser) literalSuffix(value string) (rdf.Term, error) {
	switch {
	case p.peek() == '@':
		p.pos++
		start := p.pos
		for !p.eof() && (isAlnum(p.src[p.pos]) || p.src[p.pos] == '-') {
			p.pos++
		}
		if p.pos == start {
			return rdf.Term{}, p.errorf("empty language tag")
		}
		return rdf.LangLiteral(value, p.src[start:p.pos]), nil
	case strings.HasPrefix(p.src[p.pos:], "^^"):
		p.pos += 2
		dt, err := p.node()
		if err != nil {
			return rdf.Term{}, err
		}
		if !dt.IsIRI() {
			return rdf.Term{}, p.errorf("datatype must be an IRI")
		}
		return rdf.TypedLiteral(value, dt.Value), nil
	default:
		return rdf.Literal(value), nil
	}
}

func (p *parser) numericLiteral() (rdf.Term, error) {
	start := p.pos
	if c := p.peek(); c == '+' || c == '-' {
		p.pos++
	}
	p.digits()
	dt := rdf.NSXSD + "integer"
	if p.peek() == '.' && p.pos+1 < len(p.src) && isDigit(p.src[p.pos+1]) {
		p.pos++
		p.digits()
		dt = rdf.NSXSD + "decimal"
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		if !isDigit(p.peek()) {
			return rdf.Term{}, p.errorf("malformed exponent")
		}
		p.digits()
		dt = rdf.NSXSD + "double"
	}
	lex := p.src[start:p.pos]
	if lex == "" || lex == "+" || lex == "-" {
		return rdf.Term{}, p.errorf("malformed number")
	}
	return rdf.TypedLiteral(lex, dt), nil
}

func (p *parser) digits() {
	for isDigit(p.peek()) {
		p.pos++
	}
}

func (p *parser) stringEscape() (rune, error) {
	if p.pos+1 >= len(p.src) {
		return 0, p.errorf("dangling escape")
	}
	switch c := p.src[p.pos+1]; c {
	case 't':
		p.pos += 2
		return '\t', nil
	case 'b':
		p.pos += 2
		return '\b', nil
	case 'n':
		p.pos += 2
		return '\n', nil
	case 'r':
		p.pos += 2
		return '\r', nil
	case 'f':
		p.pos += 2
		return '\f', nil
	case '"', '\'', '\\':
		p.pos += 2
		return rune(c), nil
	case 'u', 'U':
		return p.unicodeEscape()
	default:
		return 0, p.errorf("invalid escape \\%c", c)
	}
}

func (p *parser) unicodeEscape() (rune, error) {
	if p.pos+1 >= len(p.src) {
		return 0, p.errorf("dangling escape")
	}
	n := 0
	switch p.src[p.pos+1] {
	case 'u':
		n = 4
	case 'U':
		n = 8
	default:
		return 0, p.errorf("invalid escape in IRI")
	}
	if p.pos+2+n > len(p.src) {
		return 0, p.errorf("truncated unicode escape")
	}
	v, err := strconv.ParseUint(p.src[p.pos+2:p.pos+2+n], 16, 32)
	if err != nil {
		return 0, p.errorf("invalid unicode escape: %v", err)
	}
	p.pos += 2 + n
	return rune(v), nil
}

// readName consumes a run of name characters. A trailing '.' is left in the
// input because it terminates the statement.
func (p *parser) readName() string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isNameRune(r) {
			break
		}
		if r == '\\' && p.pos+1 < len(p.src) {
			p.pos += 2
			continue
		}
		p.pos += size
	}
	for p.pos > start && p.src[p.pos-1] == '.' {
		p.pos--
	}
	return p.src[start:p.pos]
}

func (p *parser) skipWS() {
	for !p.eof() {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case c == '#':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *parser) expect(c byte) error {
	p.skipWS()
	if p.peek() != c {
		if p.eof() {
			return p.errorf("expected '%c', got end of input", c)
		}
		return p.errorf("expected '%c', got %q", c, p.peek())
	}
	p.pos++
	return nil
}

func (p *parser) emit(s, pr, o rdf.Term) {
	p.triples = append(p.triples, rdf.Triple{Subject: s, Predicate: pr, Object: o})
}

// userBlank maps a document label into its own namespace. Generated labels
// never start with '_', so the two cannot meet.
func userBlank(label string) rdf.Term {
	return rdf.Blank("_" + label)
}

func (p *parser) newBlank() rdf.Term {
	p.bnodes++
	return rdf.Blank("b" + strconv.Itoa(p.bnodes-1))
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) errorf(format string, args ...any) error {
	line, col := 1, 1
	for _, r := range p.src[:min(p.pos, len(p.src))] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '_' || r == '-' || r == '.' || r == ':' || r == '%' || r == '\\' ||
		r == 0xB7 || (r >= 0x300 && r <= 0x36F)
}

func isDelim(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '<' || c == '[' || c == '(' || c == '"' || c == '#'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func hasScheme(ref string) bool {
	i := strings.IndexByte(ref, ':')
	if i <= 0 {
		return false
	}
	for j := 0; j < i; j++ {
		c := ref[j]
		if !(isAlnum(c) || (j > 0 && (c == '+' || c == '-' || c == '.'))) {
			return false
		}
	}
	return true
}

func stripFragment(iri string) string {
	if i := strings.IndexByte(iri, '#'); i >= 0 {
		return iri[:i]
	}
	return iri
}

// unescapeLocal drops the backslash from reserved-character escapes in a
// prefixed name's local part.
func unescapeLocal(local string) string {
	if !strings.Contains(local, "\\") {
		return local
	}
	var sb strings.Builder
	for i := 0; i < len(local); i++ {
		if local[i] == '\\' && i+1 < len(local) {
			i++
		}
		sb.WriteByte(local[i])
	}
	return sb.String()
}

package pyast

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer converts source text into a flat token stream, tracking line and
// column for every token and honouring bracket-depth-aware logical-line
// joining and backslash continuation, the way indentation-sensitive
// languages in this family require.
type Lexer struct {
	path       string
	src        string
	pos        int
	line       int
	col        int
	atLineHead bool
	parenDepth int
	indents    []int
	pending    []Token
}

// NewLexer creates a Lexer over src, attributing diagnostics to path.
func NewLexer(path, src string) *Lexer {
	return &Lexer{
		path:       path,
		src:        src,
		line:       1,
		col:        1,
		atLineHead: true,
		indents:    []int{0},
	}
}

// Tokenize runs the lexer to completion and returns every token, including
// a trailing EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var out []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == EOF {
			return out, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok, nil
	}

	for l.atLineHead && l.parenDepth == 0 {
		tok, produced, err := l.handleLineHead()
		if err != nil {
			return Token{}, err
		}
		if produced {
			return tok, nil
		}
	}

	l.skipIntraLineSpaceAndComments()

	if l.pos >= len(l.src) {
		return l.finish()
	}

	r := l.peekRune()
	pos := Pos{l.line, l.col}

	switch {
	case r == '\n':
		l.advanceRune()
		if l.parenDepth > 0 {
			return l.next()
		}
		l.atLineHead = true
		return Token{Kind: NEWLINE, Value: "\n", Pos: pos}, nil
	case r == '\\' && l.peekAhead(1) == '\n':
		l.advanceRune()
		l.advanceRune()
		return l.next()
	case isIdentStart(r):
		return l.lexNameOrStringPrefix()
	case unicode.IsDigit(r):
		return l.lexNumber()
	case r == '\'' || r == '"':
		return l.lexString("")
	case strings.ContainsRune("([{", r):
		l.parenDepth++
		l.advanceRune()
		return Token{Kind: OP, Value: string(r), Pos: pos}, nil
	case strings.ContainsRune(")]}", r):
		if l.parenDepth > 0 {
			l.parenDepth--
		}
		l.advanceRune()
		return Token{Kind: OP, Value: string(r), Pos: pos}, nil
	default:
		return l.lexOperator()
	}
}

// handleLineHead measures indentation at the start of a logical line and
// emits INDENT/DEDENT tokens, or skips blank/comment-only lines entirely.
func (l *Lexer) handleLineHead() (Token, bool, error) {
	start := l.pos
	width := 0
	for l.pos < len(l.src) {
		r := l.peekRune()
		if r == ' ' {
			width++
			l.advanceRune()
			continue
		}
		if r == '\t' {
			width += 8 - (width % 8)
			l.advanceRune()
			continue
		}
		break
	}
	_ = start

	if l.pos >= len(l.src) {
		l.atLineHead = false
		return l.closeRemainingIndents()
	}
	r := l.peekRune()
	if r == '\n' || r == '#' {
		if r == '#' {
			for l.pos < len(l.src) && l.peekRune() != '\n' {
				l.advanceRune()
			}
		}
		if l.pos < len(l.src) {
			l.advanceRune()
		}
		return Token{}, false, nil
	}

	l.atLineHead = false
	current := l.indents[len(l.indents)-1]
	switch {
	case width > current:
		l.indents = append(l.indents, width)
		return Token{Kind: INDENT, Pos: Pos{l.line, 1}}, true, nil
	case width < current:
		var toks []Token
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
			l.indents = l.indents[:len(l.indents)-1]
			toks = append(toks, Token{Kind: DEDENT, Pos: Pos{l.line, 1}})
		}
		if len(l.indents) == 0 || l.indents[len(l.indents)-1] != width {
			return Token{}, false, newSyntaxError(l.path, Pos{l.line, 1}, "inconsistent indentation")
		}
		l.pending = append(l.pending, toks[1:]...)
		return toks[0], true, nil
	default:
		return Token{}, false, nil
	}
}

func (l *Lexer) closeRemainingIndents() (Token, bool, error) {
	if len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		return Token{Kind: DEDENT, Pos: Pos{l.line, 1}}, true, nil
	}
	return Token{}, false, nil
}

func (l *Lexer) finish() (Token, error) {
	if tok, ok, err := l.closeRemainingIndents(); err != nil {
		return Token{}, err
	} else if ok {
		return tok, nil
	}
	return Token{Kind: EOF, Pos: Pos{l.line, l.col}}, nil
}

func (l *Lexer) skipIntraLineSpaceAndComments() {
	for l.pos < len(l.src) {
		r := l.peekRune()
		if r == ' ' || r == '\t' || r == '\r' {
			l.advanceRune()
			continue
		}
		if r == '\\' && l.peekAhead(1) == '\n' {
			l.advanceRune()
			l.advanceRune()
			continue
		}
		if r == '#' {
			for l.pos < len(l.src) && l.peekRune() != '\n' {
				l.advanceRune()
			}
			continue
		}
		if r == '\n' && l.parenDepth > 0 {
			l.advanceRune()
			continue
		}
		break
	}
}

func (l *Lexer) lexNameOrStringPrefix() (Token, error) {
	pos := Pos{l.line, l.col}
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.peekRune()) {
		l.advanceRune()
	}
	word := l.src[start:l.pos]

	if l.pos < len(l.src) && (l.peekRune() == '\'' || l.peekRune() == '"') {
		lower := strings.ToLower(word)
		if lower == "f" {
			return l.lexString("f")
		}
		if lower == "r" || lower == "b" || lower == "rb" || lower == "br" {
			return l.lexString(lower)
		}
	}

	return Token{Kind: NAME, Value: word, Pos: pos}, nil
}

func (l *Lexer) lexNumber() (Token, error) {
	pos := Pos{l.line, l.col}
	start := l.pos
	for l.pos < len(l.src) {
		r := l.peekRune()
		if unicode.IsDigit(r) || r == '.' || r == '_' || r == 'e' || r == 'E' ||
			((r == '+' || r == '-') && l.pos > start && (l.src[l.pos-1] == 'e' || l.src[l.pos-1] == 'E')) ||
			r == 'x' || r == 'X' || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') || r == 'j' || r == 'J' {
			l.advanceRune()
			continue
		}
		break
	}
	return Token{Kind: NUMBER, Value: l.src[start:l.pos], Pos: pos}, nil
}

// lexString reads a single-, double-, or triple-quoted string, optionally
// prefixed with f/r/b, and returns a STRING or FSTRING token whose Value is
// the raw quoted body (quotes stripped, prefix recorded by kind only).
func (l *Lexer) lexString(prefix string) (Token, error) {
	pos := Pos{l.line, l.col}
	quote := l.peekRune()
	l.advanceRune()
	triple := false
	if l.peekRune() == quote && l.peekAhead(1) == quote {
		triple = true
		l.advanceRune()
		l.advanceRune()
	}

	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return Token{}, newSyntaxError(l.path, pos, "unterminated string literal")
		}
		r := l.peekRune()
		if r == '\\' {
			b.WriteRune(r)
			l.advanceRune()
			if l.pos < len(l.src) {
				b.WriteRune(l.peekRune())
				l.advanceRune()
			}
			continue
		}
		if r == quote {
			if !triple {
				l.advanceRune()
				break
			}
			if l.peekAhead(1) == quote && l.peekAhead(2) == quote {
				l.advanceRune()
				l.advanceRune()
				l.advanceRune()
				break
			}
			b.WriteRune(r)
			l.advanceRune()
			continue
		}
		if r == '\n' && !triple {
			return Token{}, newSyntaxError(l.path, pos, "unterminated string literal")
		}
		b.WriteRune(r)
		l.advanceRune()
	}

	kind := STRING
	if strings.Contains(prefix, "f") {
		kind = FSTRING
	}
	return Token{Kind: kind, Value: b.String(), Pos: pos}, nil
}

var multiCharOps = []string{
	"**=", "//=", ">>=", "<<=",
	"==", "!=", "<=", ">=", "->", ":=",
	"**", "//", "<<", ">>",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
}

func (l *Lexer) lexOperator() (Token, error) {
	pos := Pos{l.line, l.col}
	rest := l.src[l.pos:]
	for _, op := range multiCharOps {
		if strings.HasPrefix(rest, op) {
			for range op {
				l.advanceRune()
			}
			return Token{Kind: OP, Value: op, Pos: pos}, nil
		}
	}
	r := l.peekRune()
	l.advanceRune()
	return Token{Kind: OP, Value: string(r), Pos: pos}, nil
}

func (l *Lexer) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *Lexer) peekAhead(n int) rune {
	p := l.pos
	var r rune
	for i := 0; i <= n; i++ {
		if p >= len(l.src) {
			return 0
		}
		var size int
		r, size = utf8.DecodeRuneInString(l.src[p:])
		if i == n {
			return r
		}
		p += size
	}
	return r
}

func (l *Lexer) advanceRune() {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

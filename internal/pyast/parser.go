package pyast

import "strings"

// Parser is a recursive-descent parser over a token stream produced by
// Lexer. It accepts a pragmatic, commonly-used subset of the source
// language's grammar: everything the classifier needs to inspect (classes,
// functions, decorators, calls, attribute chains, literals, formatted
// strings, loops, comprehensions, try blocks) is modeled precisely; operator
// expressions whose internal shape the classifier never needs are accepted
// and folded into a generic node.
type Parser struct {
	path string
	toks []Token
	pos  int
}

// Parse tokenizes and parses src, returning its module tree.
func Parse(path, src string) (*Module, error) {
	lx := NewLexer(path, src)
	toks, err := lx.Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{path: path, toks: toks}
	return p.parseModule()
}

func (p *Parser) cur() Token  { return p.toks[p.pos] }
func (p *Parser) atEOF() bool { return p.cur().Kind == EOF }

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) atKind(k Kind) bool { return p.cur().Kind == k }

func (p *Parser) atOp(v string) bool {
	return p.cur().Kind == OP && p.cur().Value == v
}

func (p *Parser) atName(v string) bool {
	return p.cur().Kind == NAME && p.cur().Value == v
}

func (p *Parser) fail(format string, args ...any) error {
	return newSyntaxError(p.path, p.cur().Pos, format, args...)
}

func (p *Parser) expectOp(v string) (Token, error) {
	if !p.atOp(v) {
		return Token{}, p.fail("expected %q, found %q", v, p.cur().Value)
	}
	return p.advance(), nil
}

func (p *Parser) expectName() (string, error) {
	if !p.atKind(NAME) {
		return "", p.fail("expected identifier, found %q", p.cur().Value)
	}
	return p.advance().Value, nil
}

func (p *Parser) skipNewlines() {
	for p.atKind(NEWLINE) {
		p.advance()
	}
}

func (p *Parser) endOfStatement() error {
	if p.atKind(NEWLINE) || p.atEOF() || p.atKind(DEDENT) {
		if p.atKind(NEWLINE) {
			p.advance()
		}
		return nil
	}
	return p.fail("expected end of statement, found %q", p.cur().Value)
}

func (p *Parser) parseModule() (*Module, error) {
	mod := &Module{Path: p.path}
	p.skipNewlines()
	for !p.atEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		mod.Body = append(mod.Body, stmt)
		p.skipNewlines()
	}
	return mod, nil
}

// parseBlock consumes `NEWLINE INDENT stmt+ DEDENT` following a header's
// trailing colon.
func (p *Parser) parseBlock() ([]Stmt, error) {
	if p.atKind(NEWLINE) {
		p.advance()
	}
	if !p.atKind(INDENT) {
		return nil, p.fail("expected indented block")
	}
	p.advance()
	p.skipNewlines()
	var body []Stmt
	for !p.atKind(DEDENT) && !p.atEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		p.skipNewlines()
	}
	if p.atKind(DEDENT) {
		p.advance()
	}
	return body, nil
}

// skipBalanced consumes tokens until the bracket/paren opened by the
// current position is closed, used for base-class lists and type
// annotations the classifier does not need to inspect.
func (p *Parser) skipBalanced(open, close string) error {
	if _, err := p.expectOp(open); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		if p.atEOF() {
			return p.fail("unterminated %q", open)
		}
		if p.atOp(open) {
			depth++
		} else if p.atOp(close) {
			depth--
		}
		p.advance()
	}
	return nil
}

func (p *Parser) parseStatement() (Stmt, error) {
	switch {
	case p.atOp("@"):
		return p.parseDecorated()
	case p.atName("class"):
		return p.parseClassDef(nil)
	case p.atName("async"):
		p.advance()
		if !p.atName("def") {
			return nil, p.fail("expected 'def' after 'async'")
		}
		return p.parseFuncDef(nil)
	case p.atName("def"):
		return p.parseFuncDef(nil)
	case p.atName("for"):
		return p.parseForStmt()
	case p.atName("while"):
		return p.parseWhileStmt()
	case p.atName("try"):
		return p.parseTryStmt()
	case p.atName("if"):
		return p.parseIfStmt()
	case p.atName("return"):
		return p.parseReturnStmt()
	case p.atName("pass"), p.atName("break"), p.atName("continue"):
		pos := p.cur().Pos
		p.advance()
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		return &PassStmt{Pos: pos}, nil
	default:
		return p.parseSimpleStmt()
	}
}

func (p *Parser) parseDecorated() (Stmt, error) {
	var decorators []*Decorator
	for p.atOp("@") {
		d, err := p.parseDecorator()
		if err != nil {
			return nil, err
		}
		decorators = append(decorators, d)
		p.skipNewlines()
	}
	switch {
	case p.atName("class"):
		return p.parseClassDef(decorators)
	case p.atName("async"):
		p.advance()
		return p.parseFuncDef(decorators)
	case p.atName("def"):
		return p.parseFuncDef(decorators)
	}
	return nil, p.fail("expected 'class' or 'def' after decorator")
}

func (p *Parser) parseDecorator() (*Decorator, error) {
	pos := p.cur().Pos
	if _, err := p.expectOp("@"); err != nil {
		return nil, err
	}
	name, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	d := &Decorator{DottedName: name, Pos: pos}
	if p.atOp("(") {
		args, kwargs, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		d.Args, d.Keywords = args, kwargs
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Parser) parseDottedName() (string, error) {
	first, err := p.expectName()
	if err != nil {
		return "", err
	}
	parts := []string{first}
	for p.atOp(".") {
		p.advance()
		n, err := p.expectName()
		if err != nil {
			return "", err
		}
		parts = append(parts, n)
	}
	return strings.Join(parts, "."), nil
}

func (p *Parser) parseClassDef(decorators []*Decorator) (Stmt, error) {
	pos := p.cur().Pos
	p.advance() // 'class'
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if p.atOp("(") {
		if err := p.skipBalanced("(", ")"); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ClassDef{Name: name, Decorators: decorators, Body: body, Pos: pos}, nil
}

func (p *Parser) parseFuncDef(decorators []*Decorator) (Stmt, error) {
	pos := p.cur().Pos
	p.advance() // 'def'
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp("("); err != nil {
		return nil, err
	}
	var args []string
	for !p.atOp(")") {
		argName, err := p.expectName()
		if err != nil {
			return nil, err
		}
		args = append(args, argName)
		// skip ": Type" annotation and/or "= default"
		for !p.atOp(",") && !p.atOp(")") {
			if p.atEOF() {
				return nil, p.fail("unterminated parameter list")
			}
			if p.atOp("(") || p.atOp("[") || p.atOp("{") {
				if err := p.skipBalanced(p.cur().Value, matching(p.cur().Value)); err != nil {
					return nil, err
				}
				continue
			}
			p.advance()
		}
		if p.atOp(",") {
			p.advance()
		}
	}
	if _, err := p.expectOp(")"); err != nil {
		return nil, err
	}
	if p.atOp("->") {
		for !p.atOp(":") {
			if p.atEOF() {
				return nil, p.fail("unterminated return type")
			}
			p.advance()
		}
	}
	if _, err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FuncDef{Name: name, Decorators: decorators, Args: args, Body: body, Pos: pos}, nil
}

func matching(open string) string {
	switch open {
	case "(":
		return ")"
	case "[":
		return "]"
	case "{":
		return "}"
	}
	return ""
}

func (p *Parser) parseForStmt() (Stmt, error) {
	pos := p.cur().Pos
	for !p.atOp(":") {
		if p.atEOF() {
			return nil, p.fail("unterminated for header")
		}
		p.advance()
	}
	p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForStmt{Body: body, Pos: pos}, nil
}

func (p *Parser) parseWhileStmt() (Stmt, error) {
	pos := p.cur().Pos
	for !p.atOp(":") {
		if p.atEOF() {
			return nil, p.fail("unterminated while header")
		}
		p.advance()
	}
	p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Body: body, Pos: pos}, nil
}

func (p *Parser) parseTryStmt() (Stmt, error) {
	pos := p.cur().Pos
	p.advance() // 'try'
	if _, err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	for p.atName("except") || p.atName("finally") || p.atName("else") {
		for !p.atOp(":") {
			if p.atEOF() {
				return nil, p.fail("unterminated except/finally header")
			}
			p.advance()
		}
		p.advance()
		if _, err := p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return &TryStmt{Body: body, Pos: pos}, nil
}

func (p *Parser) parseIfStmt() (Stmt, error) {
	pos := p.cur().Pos
	p.advance() // 'if'
	if err := p.skipUntilColon(); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Body: body, Pos: pos}
	if p.atName("elif") {
		elifPos := p.cur().Pos
		p.advance()
		if err := p.skipUntilColon(); err != nil {
			return nil, err
		}
		elifBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		nested := &IfStmt{Body: elifBody, Pos: elifPos}
		stmt.Orelse = []Stmt{nested}
		// re-parse remaining elif/else chain into nested.Orelse
		tail, err := p.parseElifElseTail()
		if err != nil {
			return nil, err
		}
		nested.Orelse = tail
		return stmt, nil
	}
	if p.atName("else") {
		p.advance()
		if _, err := p.expectOp(":"); err != nil {
			return nil, err
		}
		orelse, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Orelse = orelse
	}
	return stmt, nil
}

func (p *Parser) parseElifElseTail() ([]Stmt, error) {
	if p.atName("elif") {
		pos := p.cur().Pos
		p.advance()
		if err := p.skipUntilColon(); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		nested := &IfStmt{Body: body, Pos: pos}
		tail, err := p.parseElifElseTail()
		if err != nil {
			return nil, err
		}
		nested.Orelse = tail
		return []Stmt{nested}, nil
	}
	if p.atName("else") {
		p.advance()
		if _, err := p.expectOp(":"); err != nil {
			return nil, err
		}
		return p.parseBlock()
	}
	return nil, nil
}

func (p *Parser) skipUntilColon() error {
	depth := 0
	for {
		if p.atEOF() {
			return p.fail("unterminated header, expected ':'")
		}
		if p.atOp("(") || p.atOp("[") || p.atOp("{") {
			depth++
		} else if p.atOp(")") || p.atOp("]") || p.atOp("}") {
			depth--
		} else if p.atOp(":") && depth == 0 {
			p.advance()
			return nil
		}
		p.advance()
	}
}

func (p *Parser) parseReturnStmt() (Stmt, error) {
	pos := p.cur().Pos
	p.advance()
	var val Expr
	if !p.atKind(NEWLINE) && !p.atEOF() && !p.atKind(DEDENT) {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		val = v
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return &ReturnStmt{Value: val, Pos: pos}, nil
}

func (p *Parser) parseSimpleStmt() (Stmt, error) {
	pos := p.cur().Pos
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.atOp("=") {
		targets := []Expr{first}
		for p.atOp("=") {
			p.advance()
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			targets = append(targets, v)
		}
		value := targets[len(targets)-1]
		targets = targets[:len(targets)-1]
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		return &Assign{Targets: targets, Value: value, Pos: pos}, nil
	}
	if p.atOp(":") {
		// annotated assignment: `name: Type = value`
		p.advance()
		if _, err := p.parseExpr(); err != nil {
			return nil, err
		}
		var value Expr
		if p.atOp("=") {
			p.advance()
			value, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		return &Assign{Targets: []Expr{first}, Value: value, Pos: pos}, nil
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return &ExprStmt{Value: first, Pos: pos}, nil
}

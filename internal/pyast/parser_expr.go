package pyast

var binaryPrecedence = map[string]int{
	"or":  1,
	"and": 2,
	"==":  4, "!=": 4, "<": 4, ">": 4, "<=": 4, ">=": 4, "in": 4, "is": 4,
	"|":  5,
	"^":  6,
	"&":  7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10, "//": 10, "@": 10,
}

// parseExpr parses a full expression, including the low-precedence
// conditional form `a if cond else b`, which is accepted but folded: the
// classifier never needs to see inside a ternary.
func (p *Parser) parseExpr() (Expr, error) {
	pos := p.cur().Pos
	left, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if p.atName("if") {
		p.advance()
		if _, err := p.parseBinary(1); err != nil {
			return nil, err
		}
		if p.atName("else") {
			p.advance()
			if _, err := p.parseExpr(); err != nil {
				return nil, err
			}
		}
		return &OtherExpr{Pos: pos}, nil
	}
	return left, nil
}

func (p *Parser) parseBinary(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, prec, ok := p.peekBinaryOp()
		if !ok || prec < minPrec {
			return left, nil
		}
		pos := p.cur().Pos
		p.advance()
		if op == "not" { // `not in`
			if _, err := p.expectName(); err != nil {
				return nil, err
			}
		}
		if op == "is" && p.atName("not") {
			p.advance()
		}
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinOp{Left: left, Right: right, Op: op, Pos: pos}
	}
}

func (p *Parser) peekBinaryOp() (string, int, bool) {
	t := p.cur()
	if t.Kind == OP {
		if prec, ok := binaryPrecedence[t.Value]; ok {
			return t.Value, prec, true
		}
		return "", 0, false
	}
	if t.Kind == NAME {
		switch t.Value {
		case "or", "and", "in", "is":
			return t.Value, binaryPrecedence[t.Value], true
		case "not":
			// only valid as `not in`
			return t.Value, binaryPrecedence["in"], true
		}
	}
	return "", 0, false
}

func (p *Parser) parseUnary() (Expr, error) {
	pos := p.cur().Pos
	if p.atName("not") {
		p.advance()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Operand: v, Op: "not", Pos: pos}, nil
	}
	if p.atOp("-") || p.atOp("+") || p.atOp("~") {
		op := p.advance().Value
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Operand: v, Op: op, Pos: pos}, nil
	}
	if p.atName("await") {
		p.advance()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Await{Value: v, Pos: pos}, nil
	}
	if p.atName("lambda") {
		return p.parseLambda()
	}
	return p.parsePower()
}

func (p *Parser) parseLambda() (Expr, error) {
	pos := p.cur().Pos
	p.advance()
	for !p.atOp(":") {
		if p.atEOF() {
			return nil, p.fail("unterminated lambda")
		}
		p.advance()
	}
	p.advance()
	if _, err := p.parseExpr(); err != nil {
		return nil, err
	}
	return &OtherExpr{Pos: pos}, nil
}

func (p *Parser) parsePower() (Expr, error) {
	base, err := p.parseTrailers()
	if err != nil {
		return nil, err
	}
	if p.atOp("**") {
		pos := p.cur().Pos
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &BinOp{Left: base, Right: right, Op: "**", Pos: pos}, nil
	}
	return base, nil
}

// parseTrailers parses an atom followed by any chain of `.attr`, `(args)`,
// and `[index]` trailers.
func (p *Parser) parseTrailers() (Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.atOp("."):
			pos := p.cur().Pos
			p.advance()
			attr, err := p.expectName()
			if err != nil {
				return nil, err
			}
			expr = &Attribute{Value: expr, Attr: attr, Pos: pos}
		case p.atOp("("):
			pos := p.cur().Pos
			args, kwargs, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			expr = &Call{Func: expr, Args: args, Keywords: kwargs, Pos: pos}
		case p.atOp("["):
			pos := p.cur().Pos
			p.advance()
			depth := 1
			for depth > 0 {
				if p.atEOF() {
					return nil, p.fail("unterminated subscript")
				}
				if p.atOp("[") {
					depth++
				} else if p.atOp("]") {
					depth--
					if depth == 0 {
						p.advance()
						break
					}
				}
				p.advance()
			}
			expr = &Subscript{Value: expr, Pos: pos}
		default:
			return expr, nil
		}
	}
}

// parseCallArgs parses `( arg, arg, name=arg, ... )`, already positioned at
// the opening paren.
func (p *Parser) parseCallArgs() ([]Expr, []Keyword, error) {
	if _, err := p.expectOp("("); err != nil {
		return nil, nil, err
	}
	var args []Expr
	var kwargs []Keyword
	for !p.atOp(")") {
		if p.atOp("*") || p.atOp("**") {
			p.advance()
		}
		if p.atKind(NAME) && p.peekIsKeywordAssign() {
			name := p.advance().Value
			p.advance() // '='
			v, err := p.parseExpr()
			if err != nil {
				return nil, nil, err
			}
			kwargs = append(kwargs, Keyword{Arg: name, Value: v})
		} else {
			v, err := p.parseExpr()
			if err != nil {
				return nil, nil, err
			}
			if p.atName("for") {
				if err := p.consumeComprehensionTail(); err != nil {
					return nil, nil, err
				}
				args = append(args, &Comprehension{Pos: v.position()})
			} else {
				args = append(args, v)
			}
		}
		if p.atOp(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectOp(")"); err != nil {
		return nil, nil, err
	}
	return args, kwargs, nil
}

func (p *Parser) peekIsKeywordAssign() bool {
	if p.pos+1 >= len(p.toks) {
		return false
	}
	next := p.toks[p.pos+1]
	return next.Kind == OP && next.Value == "="
}

// consumeComprehensionTail skips `for x in y [if cond]` clauses already
// known to follow, used once the parser has recognized a comprehension.
func (p *Parser) consumeComprehensionTail() error {
	for p.atName("for") || p.atName("if") {
		p.advance()
		depth := 0
		for {
			if p.atEOF() {
				return p.fail("unterminated comprehension")
			}
			if p.atOp("(") || p.atOp("[") || p.atOp("{") {
				depth++
			} else if p.atOp(")") || p.atOp("]") || p.atOp("}") {
				if depth == 0 {
					return nil
				}
				depth--
			} else if depth == 0 && (p.atOp(",") || p.atName("for") || p.atName("if")) {
				break
			}
			p.advance()
		}
	}
	return nil
}

func (p *Parser) parseAtom() (Expr, error) {
	t := p.cur()
	pos := t.Pos
	switch t.Kind {
	case NAME:
		switch t.Value {
		case "True", "False", "None":
			p.advance()
			return &OtherExpr{Pos: pos}, nil
		}
		p.advance()
		return &Name{Id: t.Value, Pos: pos}, nil
	case STRING:
		p.advance()
		return p.maybeAdjacentString(&Str{Value: t.Value, Pos: pos})
	case FSTRING:
		p.advance()
		parts, err := parseFStringParts(p.path, t.Value, pos)
		if err != nil {
			return nil, err
		}
		return &FString{Parts: parts, Pos: pos}, nil
	case NUMBER:
		p.advance()
		return &Num{Value: t.Value, Pos: pos}, nil
	case OP:
		switch t.Value {
		case "(":
			return p.parseParenOrTuple()
		case "[":
			return p.parseListOrComprehension()
		case "{":
			return p.parseDictOrSetOrComprehension()
		case "...":
			p.advance()
			return &OtherExpr{Pos: pos}, nil
		}
	}
	return nil, p.fail("unexpected token %q", t.Value)
}

// maybeAdjacentString merges implicitly-concatenated adjacent string
// literals ("a" "b") into the first node, appending each following
// literal's text to it; the classifier treats the merged literal verbatim
// in that rare case.
func (p *Parser) maybeAdjacentString(first *Str) (Expr, error) {
	for p.atKind(STRING) {
		t := p.advance()
		first.Value += t.Value
	}
	return first, nil
}

func (p *Parser) parseParenOrTuple() (Expr, error) {
	pos := p.cur().Pos
	p.advance()
	if p.atOp(")") {
		p.advance()
		return &OtherExpr{Pos: pos}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.atName("for") {
		if err := p.consumeComprehensionTail(); err != nil {
			return nil, err
		}
		if _, err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return &Comprehension{Pos: pos}, nil
	}
	isTuple := false
	for p.atOp(",") {
		isTuple = true
		p.advance()
		if p.atOp(")") {
			break
		}
		if _, err := p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectOp(")"); err != nil {
		return nil, err
	}
	if isTuple {
		return &OtherExpr{Pos: pos}, nil
	}
	return first, nil
}

func (p *Parser) parseListOrComprehension() (Expr, error) {
	pos := p.cur().Pos
	p.advance()
	if p.atOp("]") {
		p.advance()
		return &OtherExpr{Pos: pos}, nil
	}
	if _, err := p.parseExpr(); err != nil {
		return nil, err
	}
	if p.atName("for") {
		if err := p.consumeComprehensionTail(); err != nil {
			return nil, err
		}
		if _, err := p.expectOp("]"); err != nil {
			return nil, err
		}
		return &Comprehension{Pos: pos}, nil
	}
	for p.atOp(",") {
		p.advance()
		if p.atOp("]") {
			break
		}
		if _, err := p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectOp("]"); err != nil {
		return nil, err
	}
	return &OtherExpr{Pos: pos}, nil
}

func (p *Parser) parseDictOrSetOrComprehension() (Expr, error) {
	pos := p.cur().Pos
	p.advance()
	if p.atOp("}") {
		p.advance()
		return &OtherExpr{Pos: pos}, nil
	}
	if _, err := p.parseExpr(); err != nil {
		return nil, err
	}
	if p.atOp(":") {
		p.advance()
		if _, err := p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if p.atName("for") {
		if err := p.consumeComprehensionTail(); err != nil {
			return nil, err
		}
		if _, err := p.expectOp("}"); err != nil {
			return nil, err
		}
		return &Comprehension{Pos: pos}, nil
	}
	for p.atOp(",") {
		p.advance()
		if p.atOp("}") {
			break
		}
		if _, err := p.parseExpr(); err != nil {
			return nil, err
		}
		if p.atOp(":") {
			p.advance()
			if _, err := p.parseExpr(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return &OtherExpr{Pos: pos}, nil
}

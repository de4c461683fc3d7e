package pyast

import "strings"

// parseFStringParts decomposes a formatted-string literal's raw body into
// literal text runs and expression placeholders in source order. `{{` and
// `}}` escape to literal braces; `{expr}`, `{expr!conv}`, and `{expr:spec}`
// all yield one placeholder carrying the parsed expr.
func parseFStringParts(path, body string, base Pos) ([]FStringPart, error) {
	var parts []FStringPart
	var lit strings.Builder
	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == '{' && i+1 < len(body) && body[i+1] == '{':
			lit.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(body) && body[i+1] == '}':
			lit.WriteByte('}')
			i += 2
		case c == '{':
			if lit.Len() > 0 {
				parts = append(parts, FStringPart{Literal: lit.String()})
				lit.Reset()
			}
			end, inner, err := scanPlaceholder(path, body, i, base)
			if err != nil {
				return nil, err
			}
			expr, err := parseExprSnippet(path, inner, base)
			if err != nil {
				return nil, err
			}
			parts = append(parts, FStringPart{IsExpr: true, Expr: expr})
			i = end
		default:
			lit.WriteByte(c)
			i++
		}
	}
	if lit.Len() > 0 {
		parts = append(parts, FStringPart{Literal: lit.String()})
	}
	return parts, nil
}

// scanPlaceholder finds the matching `}` for the `{` at body[start] and
// strips any trailing `!conv`/`:spec` at bracket depth zero, returning the
// index just past the closing brace and the bare expression text.
func scanPlaceholder(path, body string, start int, base Pos) (int, string, error) {
	depth := 0
	i := start
	exprEnd := -1
	for i < len(body) {
		switch body[i] {
		case '{', '(', '[':
			depth++
		case '}':
			if depth == 1 {
				if exprEnd == -1 {
					exprEnd = i
				}
				return i + 1, strings.TrimSpace(body[start+1 : exprEnd]), nil
			}
			depth--
		case ')', ']':
			depth--
		case '!':
			if depth == 1 && exprEnd == -1 && i+1 < len(body) && body[i+1] != '=' {
				exprEnd = i
			}
		case ':':
			if depth == 1 && exprEnd == -1 {
				exprEnd = i
			}
		}
		i++
	}
	return 0, "", newSyntaxError(path, base, "unterminated formatted-string placeholder")
}

func parseExprSnippet(path, src string, base Pos) (Expr, error) {
	lx := NewLexer(path, src)
	toks, err := lx.Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{path: path, toks: toks}
	return p.parseExpr()
}

package pyast

// Node is the common interface implemented by every AST node.
type Node interface {
	position() Pos
}

// Stmt is a statement-level node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression-level node.
type Expr interface {
	Node
	exprNode()
}

// Module is the root of a parsed source file.
type Module struct {
	Path string
	Body []Stmt
}

func (m *Module) position() Pos { return Pos{1, 1} }

// Decorator is one `@name(args...)` annotation on a class or function.
type Decorator struct {
	Name Pos
	// DottedName is the decorator's identifier, dots included
	// (e.g. "workflow.defn" or "workflow.run").
	DottedName string
	Args       []Expr
	Keywords   []Keyword
	Pos        Pos
}

func (d *Decorator) position() Pos { return d.Pos }

// ClassDef declares a class, with any decorators and its statement body.
type ClassDef struct {
	Name       string
	Decorators []*Decorator
	Body       []Stmt
	Pos        Pos
}

func (c *ClassDef) position() Pos { return c.Pos }
func (c *ClassDef) stmtNode()     {}

// FuncDef declares a function or method.
type FuncDef struct {
	Name       string
	Decorators []*Decorator
	Args       []string
	Body       []Stmt
	Pos        Pos
}

func (f *FuncDef) position() Pos { return f.Pos }
func (f *FuncDef) stmtNode()     {}

// ExprStmt is a statement consisting solely of an expression (typically a
// call), e.g. `await workflow.execute_activity(...)`.
type ExprStmt struct {
	Value Expr
	Pos   Pos
}

func (e *ExprStmt) position() Pos { return e.Pos }
func (e *ExprStmt) stmtNode()     {}

// Assign is `target = value` or `target: type = value`.
type Assign struct {
	Targets []Expr
	Value   Expr
	Pos     Pos
}

func (a *Assign) position() Pos { return a.Pos }
func (a *Assign) stmtNode()     {}

// ReturnStmt is `return [value]`.
type ReturnStmt struct {
	Value Expr
	Pos   Pos
}

func (r *ReturnStmt) position() Pos { return r.Pos }
func (r *ReturnStmt) stmtNode()     {}

// ForStmt is a `for ... in ...:` loop. The body is preserved but never
// walked by the classifier — its mere presence is the diagnostic.
type ForStmt struct {
	Body []Stmt
	Pos  Pos
}

func (f *ForStmt) position() Pos { return f.Pos }
func (f *ForStmt) stmtNode()     {}

// WhileStmt is a `while ...:` loop.
type WhileStmt struct {
	Body []Stmt
	Pos  Pos
}

func (w *WhileStmt) position() Pos { return w.Pos }
func (w *WhileStmt) stmtNode()     {}

// TryStmt is a `try: ... except ...:` block.
type TryStmt struct {
	Body []Stmt
	Pos  Pos
}

func (t *TryStmt) position() Pos { return t.Pos }
func (t *TryStmt) stmtNode()     {}

// IfStmt is an `if/elif/else` block. Conditions are never evaluated; the
// classifier only descends into both branches' statement lists.
type IfStmt struct {
	Body   []Stmt
	Orelse []Stmt
	Pos    Pos
}

func (i *IfStmt) position() Pos { return i.Pos }
func (i *IfStmt) stmtNode()     {}

// PassStmt is `pass`.
type PassStmt struct{ Pos Pos }

func (p *PassStmt) position() Pos { return p.Pos }
func (p *PassStmt) stmtNode()     {}

// --- Expressions ---

// Name is a bare identifier reference.
type Name struct {
	Id  string
	Pos Pos
}

func (n *Name) position() Pos { return n.Pos }
func (n *Name) exprNode()     {}

// Attribute is `value.attr`.
type Attribute struct {
	Value Expr
	Attr  string
	Pos   Pos
}

func (a *Attribute) position() Pos { return a.Pos }
func (a *Attribute) exprNode()     {}

// Keyword is one `name=value` call argument.
type Keyword struct {
	Arg   string
	Value Expr
}

// Call is a function/method invocation.
type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []Keyword
	Pos      Pos
}

func (c *Call) position() Pos { return c.Pos }
func (c *Call) exprNode()     {}

// Str is a plain (non-formatted) string literal.
type Str struct {
	Value string
	Pos   Pos
}

func (s *Str) position() Pos { return s.Pos }
func (s *Str) exprNode()     {}

// Num is a numeric literal, kept as its original source text.
type Num struct {
	Value string
	Pos   Pos
}

func (n *Num) position() Pos { return n.Pos }
func (n *Num) exprNode()     {}

// FStringPart is one segment of a formatted string: either literal text or
// an embedded expression placeholder.
type FStringPart struct {
	Literal string
	IsExpr  bool
	Expr    Expr
}

// FString is a formatted string literal, decomposed into literal runs and
// embedded expression placeholders in source order.
type FString struct {
	Parts []FStringPart
	Pos   Pos
}

func (f *FString) position() Pos { return f.Pos }
func (f *FString) exprNode()     {}

// Comprehension is a list/set/dict/generator comprehension. Like loops, its
// interior is never walked — its presence alone is the diagnostic.
type Comprehension struct {
	Pos Pos
}

func (c *Comprehension) position() Pos { return c.Pos }
func (c *Comprehension) exprNode()     {}

// Subscript is `value[index]`.
type Subscript struct {
	Value Expr
	Index Expr
	Pos   Pos
}

func (s *Subscript) position() Pos { return s.Pos }
func (s *Subscript) exprNode()     {}

// BinOp is a binary expression; operands are kept but never evaluated.
type BinOp struct {
	Left, Right Expr
	Op          string
	Pos         Pos
}

func (b *BinOp) position() Pos { return b.Pos }
func (b *BinOp) exprNode()     {}

// UnaryOp is a unary expression such as `not x` or `-x`.
type UnaryOp struct {
	Operand Expr
	Op      string
	Pos     Pos
}

func (u *UnaryOp) position() Pos { return u.Pos }
func (u *UnaryOp) exprNode()     {}

// Await wraps an awaited expression; the language under analysis marks
// asynchronous calls explicitly.
type Await struct {
	Value Expr
	Pos   Pos
}

func (a *Await) position() Pos { return a.Pos }
func (a *Await) exprNode()     {}

// OtherExpr is a catch-all for literals and shapes the classifier does not
// need to distinguish further (booleans, None, tuples, lists, dicts, lambda).
type OtherExpr struct {
	Pos Pos
}

func (o *OtherExpr) position() Pos { return o.Pos }
func (o *OtherExpr) exprNode()     {}

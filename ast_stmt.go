package ci

// Stmt is the discriminated union of every statement kind.
type Stmt interface {
	isStmt()
	StmtRange() Range
}

type stmtBase struct{ Range Range }

func (s stmtBase) StmtRange() Range { return s.Range }

// Item is one element of a function body or block: exactly one of
// Decl, Expr, Stmt is non-nil, paired with the scope it was parsed in.
type Item struct {
	Decl    Declaration
	Expr    Expr
	Stmt    Stmt
	ScopeID int
}

// StmtBlock is `{ ... }`; Body is the ordered item list and ScopeID
// the block's own scope.
type StmtBlock struct {
	stmtBase
	Body    []Item
	ScopeID int
}

func (*StmtBlock) isStmt() {}

type StmtBreak struct{ stmtBase }

func (*StmtBreak) isStmt() {}

// StmtCase is a `case value:` label; the body following it is a
// sibling Item in the enclosing block, not nested under the label.
type StmtCase struct {
	stmtBase
	Value Expr
}

func (*StmtCase) isStmt() {}

type StmtContinue struct{ stmtBase }

func (*StmtContinue) isStmt() {}

type StmtDefault struct{ stmtBase }

func (*StmtDefault) isStmt() {}

// StmtDoWhile is `do body while (cond);`.
type StmtDoWhile struct {
	stmtBase
	Body Stmt
	Cond Expr
}

func (*StmtDoWhile) isStmt() {}

// StmtFor is `for (init; cond; step) body`. Init is an item list (a
// declaration or a comma-separated expression list); Step is a
// comma-separated expression list.
type StmtFor struct {
	stmtBase
	Init []Item
	Cond Expr // nil when omitted
	Step []Expr
	Body Stmt
}

func (*StmtFor) isStmt() {}

// StmtGoto is `goto label;`.
type StmtGoto struct {
	stmtBase
	Label string
}

func (*StmtGoto) isStmt() {}

// IfBranch is one `(cond) body` pair, used both for the leading `if`
// and for each `else if`.
type IfBranch struct {
	Cond Expr
	Body Stmt
}

// StmtIf models the whole `if/else if.../else` chain as one node: a
// leading if-branch, zero or more else-if branches, and an optional
// else body.
type StmtIf struct {
	stmtBase
	If       IfBranch
	ElseIfs  []IfBranch
	Else     Stmt // nil when absent
}

func (*StmtIf) isStmt() {}

// StmtReturn is `return;` or `return value;`.
type StmtReturn struct {
	stmtBase
	Value Expr // nil for a bare return
}

func (*StmtReturn) isStmt() {}

// StmtSwitch is `switch (scrutinee) body`.
type StmtSwitch struct {
	stmtBase
	Scrutinee Expr
	Body      Stmt
}

func (*StmtSwitch) isStmt() {}

// StmtWhile is `while (cond) body`.
type StmtWhile struct {
	stmtBase
	Cond Expr
	Body Stmt
}

func (*StmtWhile) isStmt() {}

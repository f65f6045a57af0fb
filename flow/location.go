package flow

import (
	"go/token"

	"honnef.co/go/rangecheck/ast"
	"honnef.co/go/rangecheck/diagnostic"
)

// Kind tags which variant of the location sum type a Location is: an
// Assignment, PostCondition, IfHeader, EndIf, WhileHeader, or EndWhile,
// represented as a single struct with a Kind field and one populated
// variant pointer, dispatched on in the switch statements below rather
// than through an interface hierarchy.
type Kind int

const (
	KindAssign Kind = iota
	KindIf
	KindEndIf
	KindWhile
	KindEndWhile
	KindPostCondition
)

func (k Kind) String() string {
	switch k {
	case KindAssign:
		return "assign"
	case KindIf:
		return "if"
	case KindEndIf:
		return "endif"
	case KindWhile:
		return "while"
	case KindEndWhile:
		return "endwhile"
	case KindPostCondition:
		return "postcondition"
	default:
		return "unknown"
	}
}

// Location is one program point in the flattened, linear sequence the
// Builder produces. Exactly one of the variant fields below is non-nil,
// selected by Kind.
type Location struct {
	Kind Kind
	Pos  token.Pos

	// Flags set by the Builder, consumed by the Solver's routing table.
	// A location can carry at most one of these, since it can be the
	// last statement of at most one enclosing block.
	EndsIfBody    bool
	EndsElseBody  bool
	EndsWhileBody bool

	assign *assignData
	ifHdr  *ifData
	endIf  *endIfData
	whileH *whileData
	endW   *endWhileData
	post   *postData
}

type assignData struct {
	Name  string
	Value ast.Expr

	before *Store
	after  *Store
}

type ifData struct {
	Var       string
	Op        token.Token
	Cond      ast.Expr
	HasElse   bool
	EmptyThen bool
	EmptyElse bool

	before  *Store
	thenOut *Store
	elseOut *Store
}

type endIfData struct {
	afterIfBody   *Store
	afterElseBody *Store
	after         *Store
}

type whileData struct {
	Var        string
	Op         token.Token
	Cond       ast.Expr
	WidenAfter int

	before     *Store
	head       *Store
	lastHead   *Store
	bodyOut    *Store
	exitOut    *Store
	iterations int
}

type endWhileData struct {
	before *Store // the running `prev`: the last while-body location's output
	after  *Store
}

type postData struct {
	Left  ast.Expr
	Op    token.Token
	Right ast.Expr

	before *Store
	after  *Store
}

// NewAssign, NewIf, NewEndIf, NewWhile, NewEndWhile, NewPostCondition
// construct the six Location variants. The Builder is the only caller.

func NewAssign(pos token.Pos, name string, value ast.Expr) *Location {
	return &Location{Kind: KindAssign, Pos: pos, assign: &assignData{Name: name, Value: value}}
}

func NewIf(pos token.Pos, varName string, op token.Token, cond ast.Expr, hasElse, emptyThen, emptyElse bool) *Location {
	return &Location{Kind: KindIf, Pos: pos, ifHdr: &ifData{
		Var: varName, Op: op, Cond: cond,
		HasElse: hasElse, EmptyThen: emptyThen, EmptyElse: emptyElse,
	}}
}

func NewEndIf(pos token.Pos) *Location {
	return &Location{Kind: KindEndIf, Pos: pos, endIf: &endIfData{}}
}

func NewWhile(pos token.Pos, varName string, op token.Token, cond ast.Expr, widenAfter int) *Location {
	return &Location{Kind: KindWhile, Pos: pos, whileH: &whileData{Var: varName, Op: op, Cond: cond, WidenAfter: widenAfter}}
}

func NewEndWhile(pos token.Pos) *Location {
	return &Location{Kind: KindEndWhile, Pos: pos, endW: &endWhileData{}}
}

func NewPostCondition(pos token.Pos, left ast.Expr, op token.Token, right ast.Expr) *Location {
	return &Location{Kind: KindPostCondition, Pos: pos, post: &postData{Left: left, Op: op, Right: right}}
}

// setPreviousStore wires the routed predecessor store into L's primary
// input slot. IfHeader, WhileHeader, Assign, PostCondition, and EndWhile
// each have exactly one; EndIf receives its two inputs through
// setJoinInputs instead, because it has more than one producer.
func (l *Location) setPreviousStore(s *Store) {
	switch l.Kind {
	case KindAssign:
		l.assign.before = s
	case KindIf:
		l.ifHdr.before = s
	case KindWhile:
		l.whileH.before = s
	case KindPostCondition:
		l.post.before = s
	case KindEndWhile:
		l.endW.before = s
	}
}

func (l *Location) setJoinInputs(afterIfBody, afterElseBody *Store) {
	l.endIf.afterIfBody = afterIfBody
	l.endIf.afterElseBody = afterElseBody
}

// step executes L's transfer function. ctx provides the solver's queues
// and the warning sink; reporting is a no-op unless the Context was built
// with one (the final "evaluation" pass for postconditions is driven by
// the reporting flag on ctx, not a separate method).
func (l *Location) step(ctx *Context) {
	switch l.Kind {
	case KindAssign:
		l.stepAssign(ctx)
	case KindIf:
		l.stepIf(ctx)
	case KindEndIf:
		l.stepEndIf()
	case KindWhile:
		l.stepWhile(ctx)
	case KindEndWhile:
		l.stepEndWhile()
	case KindPostCondition:
		l.stepPostCondition(ctx)
	default:
		panic(diagnostic.Fatalf(ctx.Fset.Position(l.Pos), "unknown location kind %s", l.Kind))
	}
}

func (l *Location) stepAssign(ctx *Context) {
	d := l.assign
	if d.before.IsBottom() {
		d.after = d.before
		return
	}
	after := d.before.Clone()
	after.Set(d.Name, eval(ctx, d.before, d.Value))
	d.after = after
}

func (l *Location) stepIf(ctx *Context) {
	d := l.ifHdr
	if d.before.IsBottom() {
		d.thenOut, d.elseOut = d.before, d.before
		l.pushIfQueues(ctx)
		return
	}

	cond := eval(ctx, d.before, d.Cond)
	comp, ok := complement[d.Op]
	if !ok {
		panic(diagnostic.Fatalf(ctx.Fset.Position(l.Pos), "unknown comparison operator %s", d.Op))
	}

	d.thenOut = restrict(d.before, d.Var, d.Op, cond)
	d.elseOut = restrict(d.before, d.Var, comp, cond)

	l.reportDeadBranches(ctx, cond)
	l.pushIfQueues(ctx)
}

// reportDeadBranches classifies an IfHeader's two just-computed branch
// restrictions: both pruned to ⊥ is CategoryUnreachable (the condition
// can neither hold nor fail to hold here, which a sound pair of
// complementary restrictions never actually produces from a live input
// store, but the category exists for the same reason defensive code
// anywhere else does), exactly one pruned to ⊥ is CategoryDeadBranch.
func (l *Location) reportDeadBranches(ctx *Context, cond Interval) {
	d := l.ifHdr
	thenDead := d.thenOut.Get(d.Var).IsBottom()
	elseDead := d.elseOut.Get(d.Var).IsBottom()
	switch {
	case thenDead && elseDead:
		ctx.warn(l.Pos, diagnostic.CategoryUnreachable, "both branches of if are unreachable: %s %s %s can never hold or fail to hold here", d.Var, d.Op, cond)
	case thenDead:
		ctx.warn(l.Pos, diagnostic.CategoryDeadBranch, "if-branch is unreachable: %s %s %s is never true here", d.Var, d.Op, cond)
	case elseDead:
		ctx.warn(l.Pos, diagnostic.CategoryDeadBranch, "else-branch is unreachable: %s %s %s is always true here", d.Var, d.Op, cond)
	}
}

// pushIfQueues routes an IfHeader's two branch stores onto the if/else
// queues, plus the final-join queues for a branch with no location of
// its own to carry output to EndIf (empty body, or an absent else).
func (l *Location) pushIfQueues(ctx *Context) {
	d := l.ifHdr
	ctx.queues.ifBranch.push(d.thenOut)
	ctx.queues.elseBranch.push(d.elseOut)

	if d.EmptyThen {
		ctx.queues.finalIfBody.push(d.thenOut)
	}
	if !d.HasElse || d.EmptyElse {
		ctx.queues.finalElse.push(d.elseOut)
	}
}

func (l *Location) stepEndIf() {
	l.endIf.after = l.endIf.afterIfBody.JoinAll(l.endIf.afterElseBody)
}

func (l *Location) stepWhile(ctx *Context) {
	d := l.whileH
	if d.before.IsBottom() {
		d.head = d.before
		d.lastHead = d.before
		d.bodyOut, d.exitOut = d.before, d.before
		ctx.queues.whileFeedback.pop()
		ctx.queues.whileBody.push(d.bodyOut)
		ctx.queues.whileExit.push(d.exitOut)
		return
	}

	head := d.before
	if feedback, ok := ctx.queues.whileFeedback.pop(); ok {
		d.iterations++
		if d.lastHead != nil && d.iterations > d.WidenAfter {
			head = widenStore(d.lastHead, d.before.JoinAll(feedback))
		} else {
			head = d.before.JoinAll(feedback)
		}
		d.lastHead = head
	} else {
		d.lastHead = head
	}
	d.head = head

	comp, ok := complement[d.Op]
	if !ok {
		panic(diagnostic.Fatalf(ctx.Fset.Position(l.Pos), "unknown comparison operator %s", d.Op))
	}
	cond := eval(ctx, head, d.Cond)
	d.bodyOut = restrict(head, d.Var, d.Op, cond)
	d.exitOut = restrict(head, d.Var, comp, cond)

	ctx.queues.whileBody.push(d.bodyOut)
	ctx.queues.whileExit.push(d.exitOut)
}

func (l *Location) stepEndWhile() {
	l.endW.after = l.endW.before
}

func (l *Location) stepPostCondition(ctx *Context) {
	d := l.post
	d.after = d.before

	if !ctx.reporting {
		return
	}
	lv := eval(ctx, d.before, d.Left)
	rv := eval(ctx, d.before, d.Right)
	if satisfies(d.Op, lv, rv) {
		ctx.verdict(l.Pos, diagnostic.CategorySatisfied, "postcondition satisfied: %s %s %s", lv, d.Op, rv)
	} else {
		ctx.verdict(l.Pos, diagnostic.CategoryViolated, "postcondition violated: %s %s %s", lv, d.Op, rv)
	}
}

// lastStore returns the store downstream locations should treat L's
// output as, i.e. the value the Solver threads forward as `prev`.
func (l *Location) lastStore() *Store {
	switch l.Kind {
	case KindAssign:
		return l.assign.after
	case KindIf:
		// The location immediately following an IfHeader is always
		// routed through qIf/qElse rather than `prev`, so IfHeader's own
		// "last store" is never read directly; it's defined here as the
		// pre-restriction input so that every kind returns a store.
		return l.ifHdr.before
	case KindEndIf:
		return l.endIf.after
	case KindWhile:
		return l.whileH.head
	case KindEndWhile:
		return l.endW.after
	case KindPostCondition:
		return l.post.after
	default:
		return nil
	}
}

// snapshot is a deep copy of L's output slots, taken before an iteration
// so isStable can tell whether that iteration changed anything.
type snapshot struct {
	stores []*Store
}

func (l *Location) clone() snapshot {
	var stores []*Store
	for _, s := range l.outputs() {
		if s != nil {
			stores = append(stores, s.Clone())
		} else {
			stores = append(stores, nil)
		}
	}
	return snapshot{stores: stores}
}

func (l *Location) outputs() []*Store {
	switch l.Kind {
	case KindAssign:
		return []*Store{l.assign.after}
	case KindIf:
		return []*Store{l.ifHdr.thenOut, l.ifHdr.elseOut}
	case KindEndIf:
		return []*Store{l.endIf.after}
	case KindWhile:
		return []*Store{l.whileH.bodyOut, l.whileH.exitOut}
	case KindEndWhile:
		return []*Store{l.endW.after}
	case KindPostCondition:
		return []*Store{l.post.after}
	default:
		return nil
	}
}

// isStable compares L's current output slots against a prior snapshot.
func (l *Location) isStable(prior snapshot) bool {
	cur := l.outputs()
	if len(cur) != len(prior.stores) {
		return false
	}
	for i, s := range cur {
		old := prior.stores[i]
		if (s == nil) != (old == nil) {
			return false
		}
		if s == nil {
			continue
		}
		if !s.Equal(old) {
			return false
		}
	}
	return true
}

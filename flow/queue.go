package flow

// queue is a plain FIFO of stores. The solver uses one per routing edge
// (qIf, qElse, qFinalIfBody, qFinalElse, qWhileFeedback, qWhileBody,
// qWhileExit) instead of a single shared "previous store" slot, because a
// single slot can't represent an if/else header feeding two different
// successors out of the same step.
type queue struct {
	items []*Store
}

func newQueue() *queue {
	return &queue{}
}

func (q *queue) push(s *Store) {
	q.items = append(q.items, s)
}

// pop removes and returns the oldest pushed store. ok is false if the
// queue is empty; callers treat that as "nothing routed here yet".
func (q *queue) pop() (s *Store, ok bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	s = q.items[0]
	q.items = q.items[1:]
	return s, true
}

func (q *queue) empty() bool {
	return len(q.items) == 0
}

// queues bundles the named routing edges the builder wires up between
// locations and the solver drains each iteration: every edge that isn't
// a plain "previous location's output" passthrough gets its own named
// queue here.
type queues struct {
	ifBranch      *queue // qIf: IfHeader -> first location of then-body
	elseBranch    *queue // qElse: IfHeader (or first non-taken) -> first location of else-body
	finalIfBody   *queue // qFinalIfBody: last location of then-body -> EndIf
	finalElse     *queue // qFinalElse: last location of else-body (or IfHeader, if no else) -> EndIf
	whileFeedback *queue // qWhileFeedback: last location of while-body -> WhileHeader (persists across iterations)
	whileBody     *queue // qWhileBody: WhileHeader -> first location of while-body
	whileExit     *queue // qWhileExit: WhileHeader -> location following EndWhile
}

func newQueues() *queues {
	return &queues{
		ifBranch:      newQueue(),
		elseBranch:    newQueue(),
		finalIfBody:   newQueue(),
		finalElse:     newQueue(),
		whileFeedback: newQueue(),
		whileBody:     newQueue(),
		whileExit:     newQueue(),
	}
}

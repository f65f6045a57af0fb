package flow

import (
	"go/token"

	"honnef.co/go/rangecheck/diagnostic"
)

// defaultMaxIterations bounds the Jacobi loop when a Config doesn't
// override it; see the driver's Config.MaxIterations.
const defaultMaxIterations = 10000

// Solver drives Jacobi (all-locations-from-the-previous-snapshot)
// iteration over a Builder's flattened location sequence to a fixpoint,
// then makes a final reporting pass over the postconditions.
type Solver struct {
	Fset          *token.FileSet
	Locations     []*Location
	Precondition  *Store
	MaxIterations int
	Sink          func(diagnostic.Diagnostic)

	queues *queues
}

func NewSolver(fset *token.FileSet, locations []*Location, precondition *Store, maxIterations int, sink func(diagnostic.Diagnostic)) *Solver {
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	return &Solver{
		Fset:          fset,
		Locations:     locations,
		Precondition:  precondition,
		MaxIterations: maxIterations,
		Sink:          sink,
		queues:        newQueues(),
	}
}

// Run iterates to a fixpoint and reports every postcondition's verdict.
// The only errors it returns are a fatal structural error (an unknown
// node or operator discovered deep inside eval/step, surfaced as a
// panic and recovered here) or exceeding MaxIterations without
// stabilizing.
func (s *Solver) Run() (err error) {
	defer func() {
		if r := recover(); r == nil {
			return
		} else if e, ok := r.(error); ok {
			err = e
		} else {
			panic(r)
		}
	}()

	ctx := &Context{Fset: s.Fset, Sink: s.Sink, queues: s.queues}

	iter := 0
	for {
		if iter >= s.MaxIterations {
			return diagnostic.Fatalf(token.Position{}, "analysis did not reach a fixpoint after %d iterations", s.MaxIterations)
		}
		if s.iterate(ctx) {
			break
		}
		iter++
	}

	ctx.reporting = true
	for _, l := range s.Locations {
		if l.Kind == KindPostCondition {
			l.step(ctx)
		}
	}
	return nil
}

// iterate runs one Jacobi pass over every location and reports whether
// the pass left every location's output slots unchanged.
func (s *Solver) iterate(ctx *Context) bool {
	snapshots := make([]snapshot, len(s.Locations))
	for i, l := range s.Locations {
		snapshots[i] = l.clone()
	}

	// Reset every per-iteration queue. qWhileFeedback is the one
	// deliberate exception: it is the back-edge channel and must carry
	// the last iteration's while-body output into this iteration's
	// WhileHeader.
	s.queues.ifBranch = newQueue()
	s.queues.elseBranch = newQueue()
	s.queues.finalIfBody = newQueue()
	s.queues.finalElse = newQueue()
	s.queues.whileBody = newQueue()
	s.queues.whileExit = newQueue()

	prev := s.Precondition
	prevKind := Kind(-1)
	prevIfEmptyThen := false
	prevEndsIfBody := false
	afterEndWhile := false

	for _, l := range s.Locations {
		switch {
		case l.Kind == KindEndIf:
			ifBody, _ := s.queues.finalIfBody.pop()
			elseBody, _ := s.queues.finalElse.pop()
			l.setJoinInputs(ifBody, elseBody)
		case prevKind == KindIf && prevIfEmptyThen:
			// The then-block was empty, so the location right after the
			// header is the first else-body location (or, if there's no
			// else either, EndIf — already handled above).
			input, _ := s.queues.elseBranch.pop()
			l.setPreviousStore(input)
		case prevKind == KindIf:
			input, _ := s.queues.ifBranch.pop()
			l.setPreviousStore(input)
		case prevEndsIfBody:
			input, _ := s.queues.elseBranch.pop()
			l.setPreviousStore(input)
		case prevKind == KindWhile:
			input, _ := s.queues.whileBody.pop()
			l.setPreviousStore(input)
		case afterEndWhile:
			input, _ := s.queues.whileExit.pop()
			l.setPreviousStore(input)
		default:
			l.setPreviousStore(prev)
		}

		l.step(ctx)

		prev = l.lastStore()
		prevKind = l.Kind
		prevIfEmptyThen = l.Kind == KindIf && l.ifHdr.EmptyThen
		prevEndsIfBody = l.EndsIfBody
		afterEndWhile = l.Kind == KindEndWhile

		if l.EndsIfBody {
			s.queues.finalIfBody.push(prev)
		}
		if l.EndsElseBody {
			s.queues.finalElse.push(prev)
		}
		if l.EndsWhileBody {
			s.queues.whileFeedback.push(prev)
		}
	}

	stable := true
	for i, l := range s.Locations {
		if !l.isStable(snapshots[i]) {
			stable = false
		}
	}
	return stable
}

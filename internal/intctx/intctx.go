// Package intctx implements the integer context: the lexically-scoped
// symbol table the elaborator consults for every Integer-typed variable
// and type binding, including the poisoning discipline that makes a
// statically-unresolvable reassignment (one made inside an untaken or
// not-provably-taken branch) fail loudly on the next read rather than
// silently keeping a stale value.
package intctx

import (
	"fmt"

	"minispec/internal/value"
)

// cellState distinguishes an integer cell's lifecycle.
type cellState uint8

const (
	cellInvalid cellState = iota // declared, never assigned
	cellValid
	cellPoisoned // assigned under a level that didn't provably run
)

type cell struct {
	state cellState
	v     value.Value
}

// LevelKind selects how a scope level participates in Set's write-through
// search and in the poisoning rule.
type LevelKind uint8

const (
	// Immutable levels never allow an ancestor's Set to pass through them;
	// Set stops at the nearest Immutable boundary (function/module bodies).
	Immutable LevelKind = iota
	// Mutable levels pass Set through transparently (begin/end blocks that
	// always execute, for-loop bodies on a taken iteration).
	Mutable
	// Poisoning levels pass Set through, but mark the write site: if Set
	// finds its target beyond one or more Poisoning levels, the original
	// cell is marked Poisoned instead of overwritten, and a shadow cell
	// holding the new value is installed in the outermost Poisoning level
	// traversed (if/else branches, case arms — anything not guaranteed to
	// run on every elaboration path).
	Poisoning
)

type level struct {
	kind        LevelKind
	integers    map[string]*cell
	nonIntegers map[string]bool
	types       map[string]*value.ParametricUse
}

func newLevel(kind LevelKind) *level {
	return &level{
		kind:        kind,
		integers:    make(map[string]*cell),
		nonIntegers: make(map[string]bool),
		types:       make(map[string]*value.ParametricUse),
	}
}

func (l *level) childrenCanMutate() bool { return l.kind != Immutable }
func (l *level) poisonsAncestors() bool  { return l.kind == Poisoning }

// Ctx is a stack of scope levels, innermost last.
type Ctx struct {
	levels []*level
}

// New returns a context with a single outermost Immutable level.
func New() *Ctx {
	return &Ctx{levels: []*level{newLevel(Immutable)}}
}

func (c *Ctx) top() *level { return c.levels[len(c.levels)-1] }

func (c *Ctx) EnterImmutable() { c.levels = append(c.levels, newLevel(Immutable)) }
func (c *Ctx) EnterMutable()   { c.levels = append(c.levels, newLevel(Mutable)) }
func (c *Ctx) EnterPoisoning() { c.levels = append(c.levels, newLevel(Poisoning)) }

// ExitLevel pops the innermost level. It panics if called on the last
// remaining level: that is always a driver bug, never a user error.
func (c *Ctx) ExitLevel() {
	if len(c.levels) <= 1 {
		panic("intctx: ExitLevel called with only one level remaining")
	}
	c.levels = c.levels[:len(c.levels)-1]
}

// Depth reports the current level-stack depth, used by the driver's
// recursion-depth cap.
func (c *Ctx) Depth() int { return len(c.levels) }

// DefineVar declares name in the current level. isInteger=true creates an
// Invalid integer cell; false marks the name as a known non-integer (a
// Bit/Bool/String/struct variable, tracked only so shadowing is detected).
// Returns false if name is already defined in the current level.
func (c *Ctx) DefineVar(name string, isInteger bool) bool {
	l := c.top()
	if _, ok := l.integers[name]; ok {
		return false
	}
	if l.nonIntegers[name] {
		return false
	}
	if isInteger {
		l.integers[name] = &cell{state: cellInvalid}
	} else {
		l.nonIntegers[name] = true
	}
	return true
}

// IsInteger reports whether name resolves to an integer cell, searching
// innermost to outermost and stopping at the first level that defines it
// either way.
func (c *Ctx) IsInteger(name string) (isInt, found bool) {
	for i := len(c.levels) - 1; i >= 0; i-- {
		l := c.levels[i]
		if _, ok := l.integers[name]; ok {
			return true, true
		}
		if l.nonIntegers[name] {
			return false, true
		}
	}
	return false, false
}

// Get returns the current value of an integer cell. ok is false if name is
// not an integer variable in scope; err is non-nil if the cell is
// Invalid (never assigned) or Poisoned.
func (c *Ctx) Get(name string) (v value.Value, ok bool, err error) {
	for i := len(c.levels) - 1; i >= 0; i-- {
		cl, ok := c.levels[i].integers[name]
		if !ok {
			continue
		}
		switch cl.state {
		case cellValid:
			return cl.v, true, nil
		case cellPoisoned:
			return value.None, true, fmt.Errorf("%s has a value that depends on a conditional branch and cannot be used here", name)
		default:
			return value.None, true, fmt.Errorf("%s is uninitialized", name)
		}
	}
	return value.None, false, nil
}

// Set assigns v to name, applying the poisoning rule described on
// LevelKind. It returns false if name is not found as an integer before a
// non-mutable (Immutable) boundary is reached.
func (c *Ctx) Set(name string, v value.Value) bool {
	poisoningCrossed := -1 // index of the outermost Poisoning level traversed, or -1
	for i := len(c.levels) - 1; i >= 0; i-- {
		l := c.levels[i]
		if cl, ok := l.integers[name]; ok {
			if poisoningCrossed == -1 {
				cl.state = cellValid
				cl.v = v
				return true
			}
			cl.state = cellPoisoned
			shadow := c.levels[poisoningCrossed]
			shadow.integers[name] = &cell{state: cellValid, v: v}
			return true
		}
		if l.poisonsAncestors() {
			poisoningCrossed = i
		}
		if !l.childrenCanMutate() {
			return false
		}
	}
	return false
}

// SetType binds a parametric type to name in the current level.
func (c *Ctx) SetType(name string, use *value.ParametricUse) {
	c.top().types[name] = use
}

// GetType looks up a parametric type binding, innermost to outermost.
func (c *Ctx) GetType(name string) (*value.ParametricUse, bool) {
	for i := len(c.levels) - 1; i >= 0; i-- {
		if u, ok := c.levels[i].types[name]; ok {
			return u, true
		}
	}
	return nil, false
}

package parametrics

import (
	"fmt"

	"minispec/internal/value"
)

// Specializer is the one capability the worklist needs from the
// elaborator: re-run a registered definition under a concrete binding and
// return the resulting translated-code fragment (which may itself
// discover further ParametricUses, feeding the next round).
type Specializer interface {
	Specialize(def *Definition, use *value.ParametricUse) *value.Fragment
}

// Worklist drives the fixpoint loop described by the driver's
// specialization pass: every ParametricUse fingerprint discovered while
// elaborating a file (or while specializing an earlier use) is queued,
// deduped against everything already seen, and specialized exactly once.
// Dedup buckets by Hash first and falls back to Equal within a bucket,
// matching ParametricUse's own documented identity contract.
type Worklist struct {
	reg      *Registry
	spec     Specializer
	maxSteps int

	seen map[uint64][]*value.ParametricUse
	// recent holds the last few fingerprints processed, surfaced in the
	// step-cap-exceeded error so the user can see what was looping.
	recent []*value.ParametricUse
}

// NewWorklist returns an empty worklist bound to reg and spec. maxSteps
// bounds the total number of distinct specializations a run will attempt
// before giving up (the same cap the elaborator applies to for-loop
// unrolling, so one run-wide budget covers both).
func NewWorklist(reg *Registry, spec Specializer, maxSteps int) *Worklist {
	return &Worklist{reg: reg, spec: spec, maxSteps: maxSteps, seen: make(map[uint64][]*value.ParametricUse)}
}

func (w *Worklist) seenBefore(u *value.ParametricUse) bool {
	for _, o := range w.seen[u.Hash()] {
		if u.Equal(o) {
			return true
		}
	}
	return false
}

func (w *Worklist) markSeen(u *value.ParametricUse) {
	h := u.Hash()
	w.seen[h] = append(w.seen[h], u)
	w.recent = append(w.recent, u)
	if len(w.recent) > 8 {
		w.recent = w.recent[len(w.recent)-8:]
	}
}

// Drain processes pending and everything it transitively discovers,
// returning every specialized fragment keyed by its fingerprint's
// canonical rendering. It returns an error (without panicking) if the
// step cap is exceeded. A use naming a definition the registry never saw
// registered refers to a backend-native type or module and is dropped
// without being specialized.
func (w *Worklist) Drain(pending []*value.ParametricUse) (map[string]*value.Fragment, error) {
	out := make(map[string]*value.Fragment)
	queue := append([]*value.ParametricUse(nil), pending...)

	for len(queue) > 0 {
		use := queue[0]
		queue = queue[1:]
		if use == nil || w.seenBefore(use) {
			continue
		}
		w.markSeen(use)
		if len(w.seen) > w.maxSteps {
			return out, fmt.Errorf("parametric worklist exceeded %d specializations; most recent fingerprints: %s", w.maxSteps, renderRecent(w.recent))
		}
		def, ok := w.reg.Lookup(use.Name)
		if !ok {
			continue
		}
		frag := w.spec.Specialize(def, use)
		out[use.Render()] = frag
		queue = append(queue, frag.ParametricUses...)
	}
	return out, nil
}

func renderRecent(uses []*value.ParametricUse) string {
	s := ""
	for i, u := range uses {
		if i > 0 {
			s += ", "
		}
		s += u.Render()
	}
	return s
}

package hooks

import "github.com/vango-dev/vhook/pkg/vdom"

// depList is the slot content written by UseEffect. A nil depList records
// an absent dependency list.
type depList []any

// UseEffect runs fn when deps differ from the list recorded at this call
// position by the previous render.
//
// fn runs synchronously, before UseEffect returns. The new list is recorded
// before fn runs, so a re-render triggered from inside fn already sees it.
// In a pass superseded by such a re-render, UseEffect only claims its slot.
func UseEffect(fn func(), deps []any) {
	s := mustCurrent("UseEffect")

	idx, raw, written := s.next(HookEffect)
	if s.Superseded() {
		return
	}
	prev, _ := raw.(depList)
	run := !written || depsChanged(prev, deps)

	var next depList
	if deps != nil {
		next = append(depList{}, deps...)
	}
	s.write(idx, HookEffect, next)

	if !run {
		return
	}
	fn()
	if s.observer != nil {
		s.observer.EffectRan(idx)
	}
}

// depsChanged reports whether an effect with the given previous and next
// dependency lists must run.
func depsChanged(prev depList, next []any) bool {
	if prev == nil || next == nil {
		return true
	}
	if len(prev) != len(next) {
		return true
	}
	for i := range prev {
		if !vdom.SameValue(prev[i], next[i]) {
			return true
		}
	}
	return false
}

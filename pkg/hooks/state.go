package hooks

// UseState returns the value held in the current slot and a setter for it.
//
// On first use the slot is initialised with initial. The setter captures the
// slot index, so it keeps addressing the same slot after the cursor has moved
// on; it may be called from event handlers long after the render returned.
func UseState[T any](initial T) (T, func(T)) {
	s := mustCurrent("UseState")

	idx, raw, written := s.next(HookState)
	value := initial
	switch {
	case !written:
		if !s.Superseded() {
			s.write(idx, HookState, initial)
		}
	case raw == nil:
		var zero T
		value = zero
	default:
		if v, ok := raw.(T); ok {
			value = v
		}
	}

	return value, func(next T) {
		s.set(idx, next)
	}
}

// UseStateFunc is UseState with an updater-style setter: the updater
// receives the slot's value at the time the setter is called.
func UseStateFunc[T any](initial T) (T, func(func(T) T)) {
	value, set := UseState(initial)
	s := Current()
	idx := s.cursor - 1

	return value, func(update func(T) T) {
		cur := initial
		if raw, ok := s.Slot(idx); ok {
			if raw == nil {
				var zero T
				cur = zero
			} else if v, ok := raw.(T); ok {
				cur = v
			}
		}
		set(update(cur))
	}
}

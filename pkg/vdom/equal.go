package vdom

import (
	"math"
	"reflect"
)

// SameValue reports whether a and b are the same value.
//
// It differs from == in three ways: NaN is the same value as NaN, +0 and -0
// are different values, and values of non-comparable dynamic types never
// panic. The float rules also hold inside comparable arrays, structs and
// interface fields. Funcs, maps, slices, pointers and channels compare by
// identity; other non-comparable values (structs holding slices, for
// example) compare deeply.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return ok && sameFloat(x, y)
	case float32:
		y, ok := b.(float32)
		return ok && sameFloat(float64(x), float64(y))
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func, reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Float32, reflect.Float64:
		return sameFloat(va.Float(), vb.Float())
	}

	if va.Comparable() {
		return sameComparable(va, vb)
	}
	return reflect.DeepEqual(a, b)
}

// sameComparable compares two values of the same comparable type, applying
// the float rules to every float they contain.
func sameComparable(va, vb reflect.Value) bool {
	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		return sameFloat(va.Float(), vb.Float())
	case reflect.Complex64, reflect.Complex128:
		x, y := va.Complex(), vb.Complex()
		return sameFloat(real(x), real(y)) && sameFloat(imag(x), imag(y))
	case reflect.Array:
		for i := 0; i < va.Len(); i++ {
			if !sameComparable(va.Index(i), vb.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := 0; i < va.NumField(); i++ {
			if !sameComparable(va.Field(i), vb.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Interface:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		ea, eb := va.Elem(), vb.Elem()
		return ea.Type() == eb.Type() && sameComparable(ea, eb)
	default:
		return va.Equal(vb)
	}
}

func sameFloat(x, y float64) bool {
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	return x == y && math.Signbit(x) == math.Signbit(y)
}

package dsl

import (
	"fmt"
	"reflect"
)

// Accessors bind a member to a struct field through a typed selector. The
// engine hands them holders as *T and values as produced by the codec
// registry; conv adapts the latter to the field type.

type valueAccess[T, V any] struct{ f func(*T) *V }

func (a valueAccess[T, V]) Get(holder any) []any {
	return []any{*a.f(holder.(*T))}
}

func (a valueAccess[T, V]) Set(holder any, v any) error {
	val, err := conv[V](v)
	if err != nil {
		return err
	}
	*a.f(holder.(*T)) = val
	return nil
}

type pointerAccess[T, V any] struct{ f func(*T) **V }

func (a pointerAccess[T, V]) Get(holder any) []any {
	p := *a.f(holder.(*T))
	if p == nil {
		return nil
	}
	return []any{*p}
}

func (a pointerAccess[T, V]) Set(holder any, v any) error {
	val, err := conv[V](v)
	if err != nil {
		return err
	}
	*a.f(holder.(*T)) = &val
	return nil
}

type sliceAccess[T, V any] struct{ f func(*T) *[]V }

func (a sliceAccess[T, V]) Get(holder any) []any {
	s := *a.f(holder.(*T))
	out := make([]any, len(s))
	for i := range s {
		out[i] = s[i]
	}
	return out
}

func (a sliceAccess[T, V]) Set(holder any, v any) error {
	val, err := conv[V](v)
	if err != nil {
		return err
	}
	p := a.f(holder.(*T))
	*p = append(*p, val)
	return nil
}

type childAccess[T, N any] struct{ f func(*T) *N }

func (a childAccess[T, N]) Get(holder any) []any {
	return []any{a.f(holder.(*T))}
}

func (a childAccess[T, N]) Set(holder any, v any) error {
	p, ok := v.(*N)
	if !ok {
		return typeErr[N](v)
	}
	*a.f(holder.(*T)) = *p
	return nil
}

type optionalChildAccess[T, N any] struct{ f func(*T) **N }

func (a optionalChildAccess[T, N]) Get(holder any) []any {
	p := *a.f(holder.(*T))
	if p == nil {
		return nil
	}
	return []any{p}
}

func (a optionalChildAccess[T, N]) Set(holder any, v any) error {
	p, ok := v.(*N)
	if !ok {
		return typeErr[N](v)
	}
	*a.f(holder.(*T)) = p
	return nil
}

type childrenAccess[T, N any] struct{ f func(*T) *[]N }

func (a childrenAccess[T, N]) Get(holder any) []any {
	s := *a.f(holder.(*T))
	out := make([]any, len(s))
	for i := range s {
		out[i] = &s[i]
	}
	return out
}

func (a childrenAccess[T, N]) Set(holder any, v any) error {
	p, ok := v.(*N)
	if !ok {
		return typeErr[N](v)
	}
	s := a.f(holder.(*T))
	*s = append(*s, *p)
	return nil
}

type variantsAccess[T, I any] struct{ f func(*T) *[]I }

func (a variantsAccess[T, I]) Get(holder any) []any {
	s := *a.f(holder.(*T))
	out := make([]any, len(s))
	for i := range s {
		out[i] = s[i]
	}
	return out
}

// Set receives a pointer to the concrete choice. The value is stored when it
// implements I, otherwise the pointer is.
func (a variantsAccess[T, I]) Set(holder any, v any) error {
	var item I
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		if it, ok := rv.Elem().Interface().(I); ok {
			item = it
		} else if it, ok := v.(I); ok {
			item = it
		} else {
			return typeErr[I](v)
		}
	} else {
		return typeErr[I](v)
	}
	s := a.f(holder.(*T))
	*s = append(*s, item)
	return nil
}

// conv adapts a codec value to V. Besides direct assertion it converts
// between types of the same kind (a string literal into a named enum type)
// and between integer kinds.
func conv[V any](v any) (V, error) {
	if val, ok := v.(V); ok {
		return val, nil
	}
	var zero V
	rv := reflect.ValueOf(v)
	target := reflect.TypeOf(&zero).Elem()
	if !rv.IsValid() {
		return zero, typeErr[V](v)
	}
	if rv.Kind() == target.Kind() || (isInt(rv.Kind()) && isInt(target.Kind())) {
		if rv.Type().ConvertibleTo(target) {
			return rv.Convert(target).Interface().(V), nil
		}
	}
	return zero, typeErr[V](v)
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func typeErr[V any](v any) error {
	var zero V
	return fmt.Errorf("dsl: cannot assign %T to %s", v, reflect.TypeOf(&zero).Elem())
}

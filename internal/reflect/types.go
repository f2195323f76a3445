package reflect

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Func is an introspected constructor: a function returning a value, or a
// value and an error.
type Func struct {
	value      reflect.Value
	typ        reflect.Type
	returnsErr bool
}

func NewFunc(fn any) (*Func, error) {
	if fn == nil {
		return nil, errors.New("constructor is nil")
	}

	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %s", t)
	}
	if v.IsNil() {
		return nil, errors.New("constructor is nil")
	}

	switch t.NumOut() {
	case 1:
	case 2:
		if !t.Out(1).Implements(errorType) {
			return nil, fmt.Errorf("second return value of %s must be an error", t)
		}
	default:
		return nil, fmt.Errorf("constructor %s must return a value, or a value and an error", t)
	}

	return &Func{
		value:      v,
		typ:        t,
		returnsErr: t.NumOut() == 2,
	}, nil
}

// Required is the number of parameters a caller must supply. A trailing
// variadic parameter is optional.
func (f *Func) Required() int {
	if f.typ.IsVariadic() {
		return f.typ.NumIn() - 1
	}
	return f.typ.NumIn()
}

func (f *Func) Variadic() bool {
	return f.typ.IsVariadic()
}

func (f *Func) NumIn() int {
	return f.typ.NumIn()
}

func (f *Func) Out() reflect.Type {
	return f.typ.Out(0)
}

func (f *Func) Call(args []any) (any, error) {
	if len(args) < f.Required() {
		return nil, fmt.Errorf("expected %d arguments, got %d", f.Required(), len(args))
	}
	if len(args) > f.typ.NumIn() && !f.typ.IsVariadic() {
		return nil, fmt.Errorf("expected %d arguments, got %d", f.typ.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		want := f.paramType(i)
		v, err := assignable(arg, want)
		if err != nil {
			return nil, &ArgumentError{Index: i, Err: err}
		}
		in[i] = v
	}

	out := f.value.Call(in)
	if f.returnsErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

func (f *Func) paramType(i int) reflect.Type {
	if f.typ.IsVariadic() && i >= f.typ.NumIn()-1 {
		return f.typ.In(f.typ.NumIn() - 1).Elem()
	}
	return f.typ.In(i)
}

// ArgumentError reports a resolved value that does not fit a constructor
// parameter.
type ArgumentError struct {
	Index int
	Err   error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument #%d: %v", e.Index, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Allocator returns a zero-argument constructor for t. Pointers to structs
// are allocated with new; every other type yields its zero value.
func Allocator(t reflect.Type) func() any {
	if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct {
		elem := t.Elem()
		return func() any {
			return reflect.New(elem).Interface()
		}
	}
	return func() any {
		return reflect.Zero(t).Interface()
	}
}

// SetField assigns value to the exported field name of the struct target
// points to.
func SetField(target any, name string, value any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("cannot set field %s on %T: not a non-nil pointer", name, target)
	}

	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("cannot set field %s on %T: not a struct", name, target)
	}

	field := elem.FieldByName(name)
	if !field.IsValid() {
		return fmt.Errorf("field %s not found on %s", name, elem.Type())
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field %s (unexported)", name)
	}

	v, err := assignable(value, field.Type())
	if err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	field.Set(v)
	return nil
}

func assignable(value any, want reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch want.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(want), nil
		default:
			return reflect.Value{}, fmt.Errorf("cannot use nil as %s", want)
		}
	}

	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(want) {
		return reflect.Value{}, fmt.Errorf("cannot assign %s to %s", v.Type(), want)
	}
	return v, nil
}

// ShortName is the unqualified name of t with pointer indirections removed.
func ShortName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

func TypeName[T any]() string {
	return TypeFor[T]().String()
}

func TypeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// TaggedField is an exported struct field carrying a key tag.
type TaggedField struct {
	Name    string
	Type    reflect.Type
	Value   string
	Options []string
}

func (f TaggedField) Has(option string) bool {
	for _, o := range f.Options {
		if o == option {
			return true
		}
	}
	return false
}

// TaggedFields lists the fields of the struct t (or *struct) tagged with
// key, in declaration order. A "-" tag skips the field.
func TaggedFields(t reflect.Type, key string) ([]TaggedField, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s is not a struct", t)
	}

	var fields []TaggedField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup(key)
		if !ok || tag == "-" {
			continue
		}
		if !sf.IsExported() {
			return nil, fmt.Errorf("field %s is tagged but unexported", sf.Name)
		}

		parts := strings.Split(tag, ",")
		fields = append(
			fields, TaggedField{
				Name:    sf.Name,
				Type:    sf.Type,
				Value:   strings.TrimSpace(parts[0]),
				Options: parts[1:],
			},
		)
	}
	return fields, nil
}

package domain

import "reflect"

// Category is a coarse classification of a participant's dynamic type.
type Category string

const (
	// CategoryReference covers pointers and channels, whose equality is identity.
	CategoryReference Category = "reference"
	// CategoryNumeric covers the predeclared integer, float and complex types.
	CategoryNumeric Category = "numeric"
	// CategoryText covers the predeclared string type.
	CategoryText Category = "text"
	// CategoryBoolean covers the predeclared bool type.
	CategoryBoolean Category = "boolean"
	// CategoryEnumerated covers named types over a numeric, string or bool kind,
	// the usual shape of Go enum constants.
	CategoryEnumerated Category = "enumerated"
	// CategoryValue covers comparable structs, arrays and interfaces compared by value.
	CategoryValue Category = "value"
	// CategoryUnidentifiable covers slices, maps and funcs, which cannot be compared, and
	// pointers to zero-size types, which may all share one address. They are never accepted
	// in a chain of more than one participant.
	CategoryUnidentifiable Category = "unidentifiable"
)

// Profile decides which participant categories a chain accepts.
type Profile struct {
	Name       string
	Disallowed []Category
}

// StrictProfile only accepts reference participants, steering callers toward mocks whose
// equality is identity.
var StrictProfile = Profile{
	Name: "strict",
	Disallowed: []Category{
		CategoryNumeric,
		CategoryText,
		CategoryBoolean,
		CategoryEnumerated,
		CategoryValue,
	},
}

// LegacyProfile accepts any comparable participant, including enum constants and strings.
var LegacyProfile = Profile{Name: "legacy"}

// Allows reports whether the profile accepts the category.
func (p Profile) Allows(c Category) bool {
	if c == CategoryUnidentifiable {
		return false
	}
	for _, d := range p.Disallowed {
		if d == c {
			return false
		}
	}
	return true
}

// ProfileByName resolves "strict" or "legacy".
func ProfileByName(name string) (Profile, bool) {
	switch name {
	case StrictProfile.Name, "":
		return StrictProfile, true
	case LegacyProfile.Name:
		return LegacyProfile, true
	}
	return Profile{}, false
}

// CategoryOf classifies a non-nil participant.
func CategoryOf(participant any) Category {
	t := reflect.TypeOf(participant)
	switch t.Kind() {
	case reflect.Pointer:
		if t.Elem().Size() == 0 {
			return CategoryUnidentifiable
		}
		return CategoryReference
	case reflect.UnsafePointer, reflect.Chan:
		return CategoryReference
	case reflect.Slice, reflect.Map, reflect.Func:
		return CategoryUnidentifiable
	case reflect.Bool:
		if t.PkgPath() != "" {
			return CategoryEnumerated
		}
		return CategoryBoolean
	case reflect.String:
		if t.PkgPath() != "" {
			return CategoryEnumerated
		}
		return CategoryText
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		if t.PkgPath() != "" {
			return CategoryEnumerated
		}
		return CategoryNumeric
	}
	if !t.Comparable() {
		return CategoryUnidentifiable
	}
	return CategoryValue
}

// ZeroSizePointer reports whether participant points to a zero-size value. Go may place every
// such value at the same address, so two of them can compare equal.
func ZeroSizePointer(participant any) bool {
	t := reflect.TypeOf(participant)
	return t != nil && t.Kind() == reflect.Pointer && t.Elem().Size() == 0
}

// IsNil reports whether participant is nil or a typed nil pointer, channel, map, slice or func.
func IsNil(participant any) bool {
	if participant == nil {
		return true
	}
	v := reflect.ValueOf(participant)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Comparable reports whether participant can be used as a map key without panicking.
func Comparable(participant any) bool {
	return participant == nil || reflect.TypeOf(participant).Comparable()
}

// Same reports identity of two participants without panicking on non-comparable values.
func Same(a, b any) bool {
	if !Comparable(a) || !Comparable(b) {
		return false
	}
	return a == b
}

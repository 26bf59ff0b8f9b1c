// Package types implements Ferrite's hash-consed type algebra: every
// distinct type description (including its mutability) is interned once
// per Pool, so two Type values describing the same thing compare equal
// by identity.
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the variants of the type algebra.
type Kind int

const (
	Basic Kind = iota
	Pointer
	Array
	Range
	Function
	Tuple
)

func (k Kind) String() string {
	switch k {
	case Basic:
		return "basic"
	case Pointer:
		return "pointer"
	case Array:
		return "array"
	case Range:
		return "range"
	case Function:
		return "function"
	case Tuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Type is any member of the algebra. All implementations are produced
// and owned by a Pool; two Types from the same Pool describing the same
// structure (including mutability) are the same value.
type Type interface {
	Kind() Kind
	String() string
	// Mutable reports whether this type carries the mutable bit — the
	// difference between "let x: T" and "var x: mutable T".
	Mutable() bool
	key() string
}

// BasicType names a scalar, class, struct or interface type, optionally
// parameterized by generic arguments (Box<Int>).
type BasicType struct {
	Name    string
	Args    []Type
	mutable bool
}

func (t *BasicType) Kind() Kind    { return Basic }
func (t *BasicType) Mutable() bool { return t.mutable }
func (t *BasicType) String() string {
	s := t.Name
	if len(t.Args) > 0 {
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		s += "<" + strings.Join(parts, ", ") + ">"
	}
	if t.mutable {
		s = "mutable " + s
	}
	return s
}
func (t *BasicType) key() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.key()
	}
	return fmt.Sprintf("B:%t:%s<%s>", t.mutable, t.Name, strings.Join(parts, ","))
}

// PointerType is either a nullable pointer (T*) or a non-null reference
// (T&) to Elem.
type PointerType struct {
	Elem     Type
	Nullable bool
	mutable  bool
}

func (t *PointerType) Kind() Kind    { return Pointer }
func (t *PointerType) Mutable() bool { return t.mutable }
func (t *PointerType) String() string {
	sigil := "&"
	if t.Nullable {
		sigil = "*"
	}
	s := t.Elem.String() + sigil
	if t.mutable {
		s = "mutable " + s
	}
	return s
}
func (t *PointerType) key() string {
	return fmt.Sprintf("P:%t:%t:%s", t.mutable, t.Nullable, t.Elem.key())
}

// ArrayType is a sized ([N]T) or unsized ([]T) array of Elem.
type ArrayType struct {
	Elem    Type
	Size    int // -1 for unsized
	mutable bool
}

func (t *ArrayType) Kind() Kind    { return Array }
func (t *ArrayType) Mutable() bool { return t.mutable }
func (t *ArrayType) String() string {
	size := ""
	if t.Size >= 0 {
		size = fmt.Sprintf("%d", t.Size)
	}
	s := fmt.Sprintf("[%s]%s", size, t.Elem.String())
	if t.mutable {
		s = "mutable " + s
	}
	return s
}
func (t *ArrayType) key() string {
	return fmt.Sprintf("A:%t:%d:%s", t.mutable, t.Size, t.Elem.key())
}

// RangeType is an ordinal range over Elem (e.g. the type of `0..10`).
type RangeType struct {
	Elem    Type
	mutable bool
}

func (t *RangeType) Kind() Kind      { return Range }
func (t *RangeType) Mutable() bool   { return t.mutable }
func (t *RangeType) String() string  { return "Range<" + t.Elem.String() + ">" }
func (t *RangeType) key() string     { return fmt.Sprintf("R:%t:%s", t.mutable, t.Elem.key()) }

// FunctionType is the type of a function value: Params in order,
// returning Result (nil for no return value).
type FunctionType struct {
	Params  []Type
	Result  Type
	mutable bool
}

func (t *FunctionType) Kind() Kind    { return Function }
func (t *FunctionType) Mutable() bool { return t.mutable }
func (t *FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	ret := "void"
	if t.Result != nil {
		ret = t.Result.String()
	}
	return fmt.Sprintf("func(%s) -> %s", strings.Join(parts, ", "), ret)
}
func (t *FunctionType) key() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.key()
	}
	ret := ""
	if t.Result != nil {
		ret = t.Result.key()
	}
	return fmt.Sprintf("F:%t:(%s)->%s", t.mutable, strings.Join(parts, ","), ret)
}

// TupleType groups Elems positionally.
type TupleType struct {
	Elems   []Type
	mutable bool
}

func (t *TupleType) Kind() Kind    { return Tuple }
func (t *TupleType) Mutable() bool { return t.mutable }
func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *TupleType) key() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.key()
	}
	return fmt.Sprintf("T:%t:(%s)", t.mutable, strings.Join(parts, ","))
}

// Equals reports whether a and b describe the same type and mutability.
// Types from the same Pool can be compared by identity instead; Equals
// also works across pools (used in tests).
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.key() == b.key()
}

// Well-known basic type names. Ferrite spells its built-in scalars in
// title case (Int, Float, ...) rather than the lowercase keyword-like
// spellings of its C/Swift ancestors; there's otherwise a 1:1
// correspondence with spec.md §3's built-in scalar list.
const (
	IntName    = "Int" // 32-bit signed
	Int8Name   = "Int8"
	Int16Name  = "Int16"
	Int32Name  = "Int32"
	Int64Name  = "Int64"
	UIntName   = "UInt"
	UInt8Name  = "UInt8"
	UInt16Name = "UInt16"
	UInt32Name = "UInt32"
	UInt64Name = "UInt64"
	FloatName   = "Float" // a distinct type from Float64
	Float64Name = "Float64"
	BoolName   = "Bool"
	StringName = "String" // immutable char* interop string
	CharName   = "Char"
	VoidName   = "Void"
	NullName   = "Null"
)

var signedIntNames = map[string]bool{
	IntName: true, Int8Name: true, Int16Name: true, Int32Name: true, Int64Name: true,
}

var unsignedIntNames = map[string]bool{
	UIntName: true, UInt8Name: true, UInt16Name: true, UInt32Name: true, UInt64Name: true,
}

var floatNames = map[string]bool{FloatName: true, Float64Name: true}

// builtinScalarNames is the closed set spec.md §3 enumerates.
var builtinScalarNames = map[string]bool{
	BoolName: true, CharName: true, StringName: true, VoidName: true, NullName: true,
}

func init() {
	for n := range signedIntNames {
		builtinScalarNames[n] = true
	}
	for n := range unsignedIntNames {
		builtinScalarNames[n] = true
	}
	for n := range floatNames {
		builtinScalarNames[n] = true
	}
}

func basicName(t Type) (string, bool) {
	b, ok := t.(*BasicType)
	if !ok || len(b.Args) > 0 {
		return "", false
	}
	return b.Name, true
}

// IsBuiltinScalar reports whether t names one of the built-in scalar
// types (not a user class/struct/interface, and not parameterized).
func IsBuiltinScalar(t Type) bool {
	n, ok := basicName(t)
	return ok && builtinScalarNames[n]
}

// IsInteger reports whether t is any signed or unsigned integer width.
func IsInteger(t Type) bool {
	n, ok := basicName(t)
	return ok && (signedIntNames[n] || unsignedIntNames[n])
}

// IsSigned reports whether t is a signed integer type.
func IsSigned(t Type) bool {
	n, ok := basicName(t)
	return ok && signedIntNames[n]
}

// IsFloatingPoint reports whether t is Float/Float64.
func IsFloatingPoint(t Type) bool {
	n, ok := basicName(t)
	return ok && floatNames[n]
}

// IsBool reports whether t is Bool.
func IsBool(t Type) bool {
	n, ok := basicName(t)
	return ok && n == BoolName
}

// IsString reports whether t is the immutable interop String type.
func IsString(t Type) bool {
	n, ok := basicName(t)
	return ok && n == StringName
}

// IsVoid reports whether t is Void.
func IsVoid(t Type) bool {
	n, ok := basicName(t)
	return ok && n == VoidName
}

// IsNullType reports whether t is the type of the `null` literal.
func IsNullType(t Type) bool {
	n, ok := basicName(t)
	return ok && n == NullName
}

// IsPointer reports whether t is a Pointer variant (nullable or
// reference).
func IsPointer(t Type) bool { return t.Kind() == Pointer }

// IsReference reports whether t is a non-null reference (T&).
func IsReference(t Type) bool {
	p, ok := t.(*PointerType)
	return ok && !p.Nullable
}

// IsNullablePointer reports whether t is a possibly-null pointer (T*).
func IsNullablePointer(t Type) bool {
	p, ok := t.(*PointerType)
	return ok && p.Nullable
}

// IsArrayType reports whether t is an Array variant.
func IsArrayType(t Type) bool { return t.Kind() == Array }

// IsTupleType reports whether t is a Tuple variant.
func IsTupleType(t Type) bool { return t.Kind() == Tuple }

// Pointee returns t's pointee type; panics if t is not a Pointer.
func Pointee(t Type) Type {
	p, ok := t.(*PointerType)
	if !ok {
		panic("types: Pointee on non-pointer type " + t.String())
	}
	return p.Elem
}

// ElementType returns t's element type; panics if t is not an Array or
// Range.
func ElementType(t Type) Type {
	switch v := t.(type) {
	case *ArrayType:
		return v.Elem
	case *RangeType:
		return v.Elem
	default:
		panic("types: ElementType on non-array/range type " + t.String())
	}
}

// ArraySize returns t's declared size and whether it is sized; panics
// if t is not an Array.
func ArraySize(t Type) (int, bool) {
	a, ok := t.(*ArrayType)
	if !ok {
		panic("types: ArraySize on non-array type " + t.String())
	}
	return a.Size, a.Size >= 0
}

// ParamTypes returns t's parameter types; panics if t is not a
// Function.
func ParamTypes(t Type) []Type {
	f, ok := t.(*FunctionType)
	if !ok {
		panic("types: ParamTypes on non-function type " + t.String())
	}
	return f.Params
}

// ReturnType returns t's result type (nil for void); panics if t is not
// a Function.
func ReturnType(t Type) Type {
	f, ok := t.(*FunctionType)
	if !ok {
		panic("types: ReturnType on non-function type " + t.String())
	}
	return f.Result
}

// Name returns t's basic-type name, or "" if t is not a Basic variant.
func Name(t Type) string {
	b, ok := t.(*BasicType)
	if !ok {
		return ""
	}
	return b.Name
}

// GenericArgs returns t's generic arguments, or nil if t is not a
// parameterized Basic variant.
func GenericArgs(t Type) []Type {
	b, ok := t.(*BasicType)
	if !ok {
		return nil
	}
	return b.Args
}

// IsNumeric reports whether t is any integer or floating-point type.
func IsNumeric(t Type) bool {
	return IsInteger(t) || IsFloatingPoint(t)
}

// IsOrdinal reports whether t can appear as a range endpoint.
func IsOrdinal(t Type) bool {
	n, ok := basicName(t)
	return (ok && n == CharName) || IsInteger(t) || IsBool(t)
}

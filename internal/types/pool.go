package types

// Pool interns Type values by structural key, including the mutable
// bit, so SetMutable produces a different interned instance rather than
// mutating one in place — callers never hold a stale reference to the
// other mutability.
type Pool struct {
	table map[string]Type

	scalars map[string]Type
}

// NewPool creates an empty interning pool with the built-in scalar
// types pre-interned.
func NewPool() *Pool {
	p := &Pool{table: make(map[string]Type), scalars: make(map[string]Type)}
	for _, name := range []string{
		IntName, Int8Name, Int16Name, Int32Name, Int64Name,
		UIntName, UInt8Name, UInt16Name, UInt32Name, UInt64Name,
		FloatName, Float64Name, BoolName, StringName, CharName, VoidName, NullName,
	} {
		p.scalars[name] = p.Basic(name, nil, false)
	}
	return p
}

// Scalar returns the pre-interned built-in scalar type named name, or
// nil if name does not name a built-in scalar.
func (p *Pool) Scalar(name string) Type { return p.scalars[name] }

func (p *Pool) Int() Type    { return p.scalars[IntName] }
func (p *Pool) Float() Type  { return p.scalars[FloatName] }
func (p *Pool) Bool() Type   { return p.scalars[BoolName] }
func (p *Pool) StrT() Type   { return p.scalars[StringName] }
func (p *Pool) Char() Type   { return p.scalars[CharName] }
func (p *Pool) Void() Type   { return p.scalars[VoidName] }
func (p *Pool) Null() Type   { return p.scalars[NullName] }
func (p *Pool) Int64() Type  { return p.scalars[Int64Name] }
func (p *Pool) UInt64() Type { return p.scalars[UInt64Name] }

func (p *Pool) intern(t Type) Type {
	if existing, ok := p.table[t.key()]; ok {
		return existing
	}
	p.table[t.key()] = t
	return t
}

// Basic interns a named, possibly generic, basic type.
func (p *Pool) Basic(name string, args []Type, mutable bool) Type {
	return p.intern(&BasicType{Name: name, Args: args, mutable: mutable})
}

// Ptr interns a pointer or reference type over elem.
func (p *Pool) Ptr(elem Type, nullable, mutable bool) Type {
	return p.intern(&PointerType{Elem: elem, Nullable: nullable, mutable: mutable})
}

// ArrayOf interns an array type over elem. size < 0 means unsized.
func (p *Pool) ArrayOf(elem Type, size int, mutable bool) Type {
	return p.intern(&ArrayType{Elem: elem, Size: size, mutable: mutable})
}

// RangeOf interns a range type over elem.
func (p *Pool) RangeOf(elem Type, mutable bool) Type {
	return p.intern(&RangeType{Elem: elem, mutable: mutable})
}

// FuncType interns a function type.
func (p *Pool) FuncType(params []Type, result Type, mutable bool) Type {
	return p.intern(&FunctionType{Params: params, Result: result, mutable: mutable})
}

// TupleOf interns a tuple type.
func (p *Pool) TupleOf(elems []Type, mutable bool) Type {
	return p.intern(&TupleType{Elems: elems, mutable: mutable})
}

// SetMutable returns the interned type identical to t but with the
// mutable bit set to mutable. Per the mutability invariant, this never
// modifies t in place.
func (p *Pool) SetMutable(t Type, mutable bool) Type {
	switch v := t.(type) {
	case *BasicType:
		return p.Basic(v.Name, v.Args, mutable)
	case *PointerType:
		return p.Ptr(v.Elem, v.Nullable, mutable)
	case *ArrayType:
		return p.ArrayOf(v.Elem, v.Size, mutable)
	case *RangeType:
		return p.RangeOf(v.Elem, mutable)
	case *FunctionType:
		return p.FuncType(v.Params, v.Result, mutable)
	case *TupleType:
		return p.TupleOf(v.Elems, mutable)
	default:
		panic("types: SetMutable on unknown Type implementation")
	}
}

// Implements reports whether t structurally conforms to interface type
// iface: every field of iface present in t by name and type, every
// method of iface signature-matched in t excluding the receiver. The
// member tables are supplied by the semantic layer, which owns class
// and interface declarations; this function only performs the
// structural comparison.
func Implements(fields map[string]Type, methods map[string]*FunctionType, ifaceFields map[string]Type, ifaceMethods map[string]*FunctionType) bool {
	for name, ft := range ifaceFields {
		have, ok := fields[name]
		if !ok || !Equals(have, ft) {
			return false
		}
	}
	for name, sig := range ifaceMethods {
		have, ok := methods[name]
		if !ok || !signaturesEqual(have, sig) {
			return false
		}
	}
	return true
}

func signaturesEqual(a, b *FunctionType) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !Equals(a.Params[i], b.Params[i]) {
			return false
		}
	}
	if (a.Result == nil) != (b.Result == nil) {
		return false
	}
	if a.Result != nil && !Equals(a.Result, b.Result) {
		return false
	}
	return true
}

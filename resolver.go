package ci

import "github.com/pkg/errors"

// Resolver canonicalizes data types appearing in contract positions:
// typedef expansion (cycle-detected), generic substitution against the
// current binding pair, qualifier wrappers carried through, and the predicate family
// the typechecker drives off of.
//
// A small stateless struct exposing a battery of `is_*`/`unwrap_*`
// predicates over a recursive data structure, built fresh per query
// rather than memoized globally.
type Resolver struct {
	file     *ResultFile
	registry *Registry
	sink     *Sink
	mono     *Monomorphizer
}

// NewResolver builds a Resolver over file. mono may be nil for callers
// that only need structural predicates and never touch a generic tag
// reference (e.g. a standalone declarator round-trip test); any other
// caller that resolves a `struct Foo<Args>`/`union Foo<Args>` use-site
// reference needs a live Monomorphizer so the reference can be
// materialized on demand, the same on-demand rule the emitter follows
// (§4.9 mechanism 4).
func NewResolver(file *ResultFile, registry *Registry, sink *Sink, mono *Monomorphizer) *Resolver {
	return &Resolver{file: file, registry: registry, sink: sink, mono: mono}
}

// GenericBindingPair is the `(called_generics, decl_generics)` pair
// the resolver substitutes generic parameter references against.
type GenericBindingPair struct {
	Called []DataType // concrete args supplied at the call/instantiation site
	Decl   []string   // the generic parameter names the template declares
}

func (p GenericBindingPair) lookup(name string) (DataType, bool) {
	for i, n := range p.Decl {
		if n == name && i < len(p.Called) {
			return p.Called[i], true
		}
	}
	return nil, false
}

// Resolve produces the canonical form of t: typedefs expanded one
// level at a time with cycle detection, generic parameters substituted
// per binding. A DTQualified wrapper is kept: its const stays in the
// PreConst/PostConst flags and is not folded into the Quals bitmask.
func (r *Resolver) Resolve(t DataType, binding GenericBindingPair) (DataType, error) {
	return r.resolveDepth(t, binding, map[string]bool{})
}

func (r *Resolver) resolveDepth(t DataType, binding GenericBindingPair, seen map[string]bool) (DataType, error) {
	switch n := t.(type) {
	case DTGenericVar:
		if concrete, ok := binding.lookup(n.Name); ok {
			return r.resolveDepth(concrete, binding, seen)
		}
		return n, nil

	case DTTypedefRef:
		if seen[n.Name] {
			return nil, errors.Errorf("typedef cycle involving %q", n.Name)
		}
		decl := r.lookupTypedef(n.Name)
		if decl == nil {
			return n, nil // unresolved reference; caller reports if this is fatal
		}
		seen2 := map[string]bool{}
		for k := range seen {
			seen2[k] = true
		}
		seen2[n.Name] = true
		sub := GenericBindingPair{Called: n.Args, Decl: decl.Generics}
		return r.resolveDepth(decl.Aliased, sub, seen2)

	case DTQualified:
		inner, err := r.resolveDepth(n.Inner, binding, seen)
		if err != nil {
			return nil, err
		}
		return DTQualified{Inner: inner, PreConst: n.PreConst, PostConst: n.PostConst, Quals: n.Quals}, nil

	case DTPointer:
		inner, err := r.resolveDepth(n.Inner, binding, seen)
		if err != nil {
			return nil, err
		}
		return DTPointer{Inner: inner, Name: n.Name, Quals: n.Quals}, nil

	case DTArray:
		inner, err := r.resolveDepth(n.Element, binding, seen)
		if err != nil {
			return nil, err
		}
		return DTArray{Element: inner, Sized: n.Sized, Size: n.Size, Name: n.Name, IsStatic: n.IsStatic, Quals: n.Quals}, nil

	case DTFunction:
		params := make([]Param, len(n.Params))
		for i, p := range n.Params {
			if p.Variadic {
				params[i] = p
				continue
			}
			rt, err := r.resolveDepth(p.Type, binding, seen)
			if err != nil {
				return nil, err
			}
			params[i] = Param{Name: p.Name, Type: rt, Variadic: false}
		}
		ret, err := r.resolveDepth(n.Return, binding, seen)
		if err != nil {
			return nil, err
		}
		return DTFunction{Name: n.Name, Params: params, Return: ret, Generics: n.Generics}, nil

	case DTNamed:
		if len(n.Args) == 0 {
			return n, nil
		}
		args := make([]DataType, len(n.Args))
		for i, a := range n.Args {
			ra, err := r.resolveDepth(a, binding, seen)
			if err != nil {
				return nil, err
			}
			args[i] = ra
		}
		tag, err := r.materializeTag(n, args)
		if err != nil {
			return nil, err
		}
		return DTNamed{TagKind: n.TagKind, Tag: tag}, nil

	default:
		return t, nil
	}
}

func (r *Resolver) lookupTypedef(name string) *DeclTypedef {
	for _, d := range r.file.Decls {
		if td, ok := d.(*DeclTypedef); ok && td.Name == name {
			return td
		}
	}
	return nil
}

func (r *Resolver) lookupStruct(name string) *DeclStruct {
	for _, d := range r.file.Decls {
		if s, ok := d.(*DeclStruct); ok && s.Name == name {
			return s
		}
	}
	return nil
}

func (r *Resolver) lookupUnion(name string) *DeclUnion {
	for _, d := range r.file.Decls {
		if u, ok := d.(*DeclUnion); ok && u.Name == name {
			return u
		}
	}
	return nil
}

// materializeTag resolves a use-site generic tag reference
// (`struct Foo<Args>`/`union Foo<Args>`) to its mangled symbol name,
// instantiating the template on first reference and reusing the
// result thereafter (§4.8's memoized-instantiation invariant).
func (r *Resolver) materializeTag(n DTNamed, args []DataType) (string, error) {
	if r.mono == nil {
		return MangledName(n.Tag, args), nil
	}
	switch n.TagKind {
	case TagStruct:
		tmpl := r.lookupStruct(n.Tag)
		if tmpl == nil {
			return MangledName(n.Tag, args), nil
		}
		gen, err := r.mono.InstantiateStruct(tmpl, args, Range{})
		if err != nil {
			return "", err
		}
		return gen.MangledName, nil
	case TagUnion:
		tmpl := r.lookupUnion(n.Tag)
		if tmpl == nil {
			return MangledName(n.Tag, args), nil
		}
		gen, err := r.mono.InstantiateUnion(tmpl, args, Range{})
		if err != nil {
			return "", err
		}
		return gen.MangledName, nil
	default:
		return MangledName(n.Tag, args), nil
	}
}

// UnwrapAtomic strips a `_Atomic(T)` wrapper for comparison purposes.
// The wrapper itself is preserved wherever the type is re-emitted.
func UnwrapAtomic(t DataType) DataType {
	if a, ok := t.(DTAtomic); ok {
		return a.Inner
	}
	return t
}

// UnwrapQualified strips any DTQualified wrapper, exposing the
// underlying structural type.
func UnwrapQualified(t DataType) DataType {
	for {
		if q, ok := t.(DTQualified); ok {
			t = q.Inner
			continue
		}
		return t
	}
}

func structural(t DataType) DataType { return UnwrapQualified(UnwrapAtomic(t)) }

// IsInteger reports whether t is (after unwrapping qualifiers/atomic)
// an integer-compatible type: any integer primitive or an enum.
func IsInteger(t DataType) bool {
	switch n := structural(t).(type) {
	case DTPrimitive:
		switch n.Kind {
		case PrimBool, PrimChar, PrimSignedChar, PrimUnsignedChar,
			PrimShort, PrimUnsignedShort, PrimInt, PrimUnsignedInt,
			PrimLong, PrimUnsignedLong, PrimLongLong, PrimUnsignedLongLong:
			return true
		}
		return false
	case DTNamed:
		return n.TagKind == TagEnum
	default:
		return false
	}
}

// IsFloat reports whether t is a floating-point primitive.
func IsFloat(t DataType) bool {
	n, ok := structural(t).(DTPrimitive)
	if !ok {
		return false
	}
	switch n.Kind {
	case PrimFloat, PrimDouble, PrimLongDouble, PrimDecimal32, PrimDecimal64, PrimDecimal128:
		return true
	}
	return false
}

// IsArithmetic reports integer- or float-compatibility, the
// disjunction the typechecker's "must be integer or float compatible"
// rules test against.
func IsArithmetic(t DataType) bool { return IsInteger(t) || IsFloat(t) }

// IsPtr reports whether t is a pointer type.
func IsPtr(t DataType) bool {
	_, ok := structural(t).(DTPointer)
	return ok
}

// IsArray reports whether t is an array type.
func IsArray(t DataType) bool {
	_, ok := structural(t).(DTArray)
	return ok
}

// IsArrayCompatible reports array-or-pointer compatibility, used by
// array-access typechecking (an array expression decays to a pointer
// for subscripting purposes).
func IsArrayCompatible(t DataType) bool { return IsArray(t) || IsPtr(t) }

// IsVoid reports whether t is `void`.
func IsVoid(t DataType) bool {
	p, ok := structural(t).(DTPrimitive)
	return ok && p.Kind == PrimVoid
}

// IsCompatibleWithVoidPtr reports whether t is `void *` (any
// qualification), used by the pointer-compatibility cast rule.
func IsCompatibleWithVoidPtr(t DataType) bool {
	p, ok := structural(t).(DTPointer)
	if !ok {
		return false
	}
	return IsVoid(p.Inner)
}

// UnwrapPtr returns the pointee type, or nil if t is not a pointer.
func UnwrapPtr(t DataType) DataType {
	p, ok := structural(t).(DTPointer)
	if !ok {
		return nil
	}
	return p.Inner
}

// GetFieldsOfStructOrUnion returns the field list of a struct/union
// type (following a DTNamed reference through the resolver's own
// file, or a direct *-gen declaration), or nil if t does not name one.
func (r *Resolver) GetFieldsOfStructOrUnion(t DataType) []*Field {
	switch n := structural(t).(type) {
	case DTNamed:
		if n.Body != nil {
			return n.Body.Fields
		}
		for _, d := range r.file.Decls {
			switch decl := d.(type) {
			case *DeclStruct:
				if n.TagKind == TagStruct && decl.Name == n.Tag && decl.Body != nil {
					return decl.Body.Fields
				}
			case *DeclUnion:
				if n.TagKind == TagUnion && decl.Name == n.Tag && decl.Body != nil {
					return decl.Body.Fields
				}
			case *DeclStructGen:
				if decl.MangledName == n.Tag {
					return decl.Body.Fields
				}
			case *DeclUnionGen:
				if decl.MangledName == n.Tag {
					return decl.Body.Fields
				}
			}
		}
	}
	return nil
}

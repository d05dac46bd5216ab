package ci

import (
	"fmt"

	"github.com/pkg/errors"
)

// nullptrTNativeClangVersion is the first Clang release the emitter
// treats as understanding `nullptr_t` natively; anything older gets
// the `typeof(nullptr)` substitute (§4.9 mechanism 8).
const nullptrTNativeClangVersion = 17

// Emitter walks a typechecked ResultFile and produces ISO-C source.
// It owns the process-wide config, the resolver/monomorphizer pair
// needed for on-demand generic materialization, and the emitted-id
// bitset that makes the two-pass (prototype, then definition) walk
// idempotent per declaration.
type Emitter struct {
	file     *ResultFile
	registry *Registry
	sink     *Sink
	resolver *Resolver
	mono     *Monomorphizer
	builtins *BuiltinTable
	config   *PipelineConfig

	protoEmitted map[int]bool
	defEmitted   map[int]bool

	out *cWriter // the in-flight buffer, set for the duration of Generate
}

func NewEmitter(file *ResultFile, registry *Registry, sink *Sink, builtins *BuiltinTable, config *PipelineConfig) *Emitter {
	mono := NewMonomorphizer(file, sink)
	return &Emitter{
		file:         file,
		registry:     registry,
		sink:         sink,
		resolver:     NewResolver(file, registry, sink, mono),
		mono:         mono,
		builtins:     builtins,
		config:       config,
		protoEmitted: map[int]bool{},
		defEmitted:   map[int]bool{},
	}
}

func (e *Emitter) usesNullptrQuirk() bool {
	return e.config != nil && e.config.Compiler == CompilerClang && e.config.ClangVersion < nullptrTNativeClangVersion
}

// ice records an internal-compiler-error diagnostic; reaching one
// means emission encountered a shape the typechecker should already
// have rejected (§7: "Emission: (internal) unreachable variant -
// reported as ICE").
func (e *Emitter) ice(format string, args ...interface{}) {
	e.sink.Errorf(KindEmission, Range{}, "internal: "+format, args...)
}

// materialize resolves t through the resolver so an on-demand generic
// tag reference is instantiated before being spelled (§4.9 mechanism
// 4). Any other shape passes through unchanged. A fresh instantiation
// appends a new *-Gen decl to file.Decls, which the in-flight
// definition-pass loop will walk in turn - but a reference reached
// through, say, a variable's type needs the forward declaration
// visible at its use site right away, since the dependency's own
// definition may not land until later in the walk. forwardDeclareNew
// prepends that forward declaration to the whole buffer, which is
// always a safe place for it since a tag forward declaration has no
// ordering dependency beyond preceding its first use.
func (e *Emitter) materialize(t DataType) DataType {
	if t == nil {
		return t
	}
	before := len(e.file.Decls)
	resolved, err := e.resolver.Resolve(t, GenericBindingPair{})
	if err != nil {
		e.ice("%s", err)
		return t
	}
	e.forwardDeclareNew(before)
	return resolved
}

// forwardDeclareNew prepends a forward declaration for every decl
// appended to file.Decls at index >= from that doesn't have one yet.
func (e *Emitter) forwardDeclareNew(from int) {
	if e.out == nil {
		return
	}
	for i := from; i < len(e.file.Decls); i++ {
		d := e.file.Decls[i]
		id := d.Base().ID
		if e.protoEmitted[id] {
			continue
		}
		switch n := d.(type) {
		case *DeclStructGen:
			e.protoEmitted[id] = true
			e.out.prepend(fmt.Sprintf("struct %s;\n", n.MangledName))
		case *DeclUnionGen:
			e.protoEmitted[id] = true
			e.out.prepend(fmt.Sprintf("union %s;\n", n.MangledName))
		case *DeclFunctionGen:
			e.protoEmitted[id] = true
			e.out.prepend(e.functionSignature(n.MangledName, n.Return, n.Params) + ";\n")
		}
	}
}

// Generate runs the full prototype pass then the definition pass over
// the file's top-level declarations and returns the composed C
// source. It iterates by index, not range, because the definition
// pass can append newly-materialized monomorphic decls to file.Decls
// mid-walk (on-demand instantiation of a struct/union tag reference
// encountered while emitting an earlier declaration's body) and those
// must themselves be walked before Generate returns.
func (e *Emitter) Generate() (string, error) {
	out := newCWriter("    ")
	e.out = out
	defer func() { e.out = nil }()

	for i := 0; i < len(e.file.Decls); i++ {
		e.emitPrototype(out, e.file.Decls[i])
	}
	out.writel("")
	for i := 0; i < len(e.file.Decls); i++ {
		e.emitDefinition(out, e.file.Decls[i])
	}

	if e.sink.HasErrors() {
		return "", errors.Errorf("%d diagnostic(s) reported for %s", e.sink.Count(SeverityError), e.file.Path)
	}
	return out.String(), nil
}

// emitPrototype implements §4.9 mechanism 1: functions, structs,
// unions, and enums get a forward declaration; typedefs and variables
// never do (a typedef's only spelling is its definition, and a
// variable's prototype would need `extern` linkage we don't model).
func (e *Emitter) emitPrototype(out *cWriter, d Declaration) {
	id := d.Base().ID
	if e.protoEmitted[id] {
		return
	}
	switch n := d.(type) {
	case *DeclFunction:
		if n.Body == nil {
			return // the lone declaration already stands as its own prototype
		}
		e.protoEmitted[id] = true
		out.writeil(e.functionSignature(n.Name, n.Return, n.Params) + ";")
	case *DeclFunctionGen:
		e.protoEmitted[id] = true
		out.writeil(e.functionSignature(n.MangledName, n.Return, n.Params) + ";")
	case *DeclStruct:
		if n.Body == nil || len(n.Generics) > 0 {
			return
		}
		e.protoEmitted[id] = true
		out.writeil(fmt.Sprintf("struct %s;", n.Name))
	case *DeclUnion:
		if n.Body == nil || len(n.Generics) > 0 {
			return
		}
		e.protoEmitted[id] = true
		out.writeil(fmt.Sprintf("union %s;", n.Name))
	case *DeclStructGen:
		e.protoEmitted[id] = true
		out.writeil(fmt.Sprintf("struct %s;", n.MangledName))
	case *DeclUnionGen:
		e.protoEmitted[id] = true
		out.writeil(fmt.Sprintf("union %s;", n.MangledName))
	case *DeclEnum:
		e.protoEmitted[id] = true
		out.writeil(fmt.Sprintf("enum %s;", n.Name))
	}
}

func (e *Emitter) functionSignature(name string, ret DataType, params []Param) string {
	return emitTypeWithName(e, DTFunction{Params: params, Return: ret}, name)
}

// emitDefinition implements §4.9 mechanism 2: full definitions, each
// gated by its own id so a declaration reached twice (once directly,
// once as a dependency of an earlier one) is only ever written once.
func (e *Emitter) emitDefinition(out *cWriter, d Declaration) {
	id := d.Base().ID
	if e.defEmitted[id] {
		return
	}
	e.defEmitted[id] = true

	switch n := d.(type) {
	case *DeclEnum:
		e.emitEnumDef(out, n.Name, n.Underlying, n.Variants)

	case *DeclStruct:
		if len(n.Generics) > 0 {
			return // templates themselves never emit; only their *-Gen instances do
		}
		e.emitRecordDef(out, "struct", n.Name, n.Body)

	case *DeclUnion:
		if len(n.Generics) > 0 {
			return
		}
		e.emitRecordDef(out, "union", n.Name, n.Body)

	case *DeclStructGen:
		e.emitRecordDef(out, "struct", n.MangledName, n.Body)

	case *DeclUnionGen:
		e.emitRecordDef(out, "union", n.MangledName, n.Body)

	case *DeclTypedef:
		if len(n.Generics) > 0 {
			return
		}
		out.writeil("typedef " + emitTypeWithName(e, n.Aliased, n.Name) + ";")

	case *DeclTypedefGen:
		out.writeil("typedef " + emitTypeWithName(e, n.Aliased, n.MangledName) + ";")

	case *DeclFunction:
		e.emitFunctionDef(out, n.Name, n.Return, n.Params, n.Body, len(n.Generics) > 0)

	case *DeclFunctionGen:
		e.emitFunctionDef(out, n.MangledName, n.Return, n.Params, n.Body, false)

	case *DeclVariable:
		out.writeil(e.emitVariableDecl(n) + ";")

	case *DeclLabel:
		// labels have no top-level spelling of their own; they are
		// emitted inline by the statement that introduces them.
	}
}

func (e *Emitter) emitEnumDef(out *cWriter, name string, underlying DataType, variants []EnumVariant) {
	header := fmt.Sprintf("enum %s", name)
	if underlying != nil {
		header += " : " + baseTypeString(e, e.materialize(underlying))
	}
	out.writeil(header + " {")
	out.indent()
	for _, v := range variants {
		if v.Discriminant != nil {
			out.writeil(fmt.Sprintf("%s = %s,", v.Name, emitExpr(e, v.Discriminant)))
		} else {
			out.writeil(v.Name + ",")
		}
	}
	out.unindent()
	out.writel("};")
}

func (e *Emitter) emitRecordDef(out *cWriter, kind, name string, body *RecordBody) {
	if body == nil {
		out.writeil(fmt.Sprintf("%s %s;", kind, name))
		return
	}
	out.writeil(fmt.Sprintf("%s %s {", kind, name))
	out.indent()
	e.emitFields(out, body.Fields)
	out.unindent()
	out.writel("};")
}

func (e *Emitter) emitFields(out *cWriter, fields []*Field) {
	for _, f := range fields {
		if f.Anonymous != nil {
			kw := "struct"
			if nt, ok := f.Type.(DTNamed); ok && nt.TagKind == TagUnion {
				kw = "union"
			}
			out.writeil(kw + " {")
			out.indent()
			e.emitFields(out, f.Anonymous.Fields)
			out.unindent()
			out.writel("};")
			continue
		}
		line := emitTypeWithName(e, f.Type, f.Name)
		if f.BitWidth != nil {
			line += " : " + emitExpr(e, f.BitWidth)
		}
		out.writeil(line + ";")
	}
}

func (e *Emitter) emitVariableDecl(v *DeclVariable) string {
	decl := storageClassPrefix(v.Storage) + emitTypeWithName(e, v.Type, v.Name)
	if v.Initializer != nil {
		decl += " = " + emitExpr(e, v.Initializer)
	}
	return decl
}

func (e *Emitter) emitFunctionDef(out *cWriter, name string, ret DataType, params []Param, body *StmtBlock, isTemplate bool) {
	if isTemplate {
		return // a generic function template emits nothing; only its instances do
	}
	sig := storageClassPrefixFunction() + e.functionSignature(name, ret, params)
	if body == nil {
		out.writeil(sig + ";")
		return
	}
	out.writeil(sig + " {")
	out.indent()
	emitStmtBody(e, out, body)
	out.unindent()
	out.writel("}")
	out.writel("")
}

func storageClassPrefixFunction() string { return "" }

func storageClassPrefix(s StorageClass) string {
	prefix := ""
	if s&StorageStatic != 0 {
		prefix += "static "
	}
	if s&StorageExtern != 0 {
		prefix += "extern "
	}
	if s&StorageThreadLocal != 0 {
		prefix += "thread_local "
	}
	if s&StorageConstexpr != 0 {
		prefix += "constexpr "
	}
	if s&StorageInline != 0 {
		prefix += "inline "
	}
	return prefix
}

package ci

import (
	"sync"

	"github.com/pkg/errors"
)

// ResultFile is the output of parsing (and, later, typechecking and
// monomorphizing) one translation unit: file metadata, ordered
// top-level decls, the root scope and its nested scope tree, and a
// reference back to the process-wide registry for cross-file lookups.
type ResultFile struct {
	Path     string
	Source   *Source
	Sink     *Sink
	Scopes   *ScopeRegistry
	RootScopeID int
	Decls    []Declaration
	nextDeclID int
}

// NewResultFile creates an empty result file with its root scope
// already registered.
func NewResultFile(path string, src *Source, sink *Sink) *ResultFile {
	scopes := NewScopeRegistry()
	root := scopes.NewScope(-1)
	return &ResultFile{
		Path:        path,
		Source:      src,
		Sink:        sink,
		Scopes:      scopes,
		RootScopeID: root.ID,
	}
}

// NextDeclID allocates the next stable declaration id within this
// file, used to order emission and to look up bodies.
func (rf *ResultFile) NextDeclID() int {
	id := rf.nextDeclID
	rf.nextDeclID++
	return id
}

// AppendDecl adds d to the file's ordered top-level declaration list;
// used both by the parser and, later, by the monomorphizer appending
// `*-gen` declarations.
func (rf *ResultFile) AppendDecl(d Declaration) {
	rf.Decls = append(rf.Decls, d)
}

// FindDeclByMangledName looks up an already-materialized generic
// instance by its mangled name, used by the monomorphizer's memoized
// instantiation lookup.
func (rf *ResultFile) FindDeclByMangledName(name string) Declaration {
	for _, d := range rf.Decls {
		switch n := d.(type) {
		case *DeclStructGen:
			if n.MangledName == name {
				return n
			}
		case *DeclUnionGen:
			if n.MangledName == name {
				return n
			}
		case *DeclTypedefGen:
			if n.MangledName == name {
				return n
			}
		case *DeclFunctionGen:
			if n.MangledName == name {
				return n
			}
		}
	}
	return nil
}

// Registry is the process-wide map from filename to ResultFile, so
// that cross-file references and cross-file monomorphization keys
// resolve consistently. It is write-once per translation unit: a file
// is parsed, resolved, and typechecked exactly once, then looked up by
// every other file that imports its declarations.
type Registry struct {
	mu    sync.RWMutex
	files map[string]*ResultFile
}

func NewRegistry() *Registry {
	return &Registry{files: make(map[string]*ResultFile)}
}

// Put registers a file's ResultFile. Re-registering the same path is
// rejected: each file is driven by exactly one goroutine through the
// whole pipeline, so a second registration means a caller bug.
func (r *Registry) Put(path string, rf *ResultFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.files[path]; exists {
		return errors.Errorf("registry: %s already registered", path)
	}
	r.files[path] = rf
	return nil
}

// Get returns the ResultFile registered for path, if any.
func (r *Registry) Get(path string) (*ResultFile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rf, ok := r.files[path]
	return rf, ok
}

// All returns every registered path, for drivers that need to iterate
// the whole translation-unit set deterministically.
func (r *Registry) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.files))
	for p := range r.files {
		paths = append(paths, p)
	}
	return paths
}

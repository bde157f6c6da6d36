package semantic

import (
	"github.com/viant/gdlang/runtime"
	"github.com/viant/gdlang/syntax"
	"github.com/viant/gdlang/token"
)

// Reference is one use of a symbol: an identifier or member-access node and
// the range it occupies, used to answer "find references" queries without
// re-walking the tree.
type Reference struct {
	Name  string
	Range token.Range
}

// FileModel is the semantic model for one parsed file: its scope tree,
// every declared symbol, every reference recorded while walking it, and the
// inferred effective type of each top-level symbol.
type FileModel struct {
	Path       string
	Class      syntax.ClassDecl
	FileScope  *Scope
	inferrer   *Inferrer
	symbols    map[string]*Symbol
	methods    map[string]*Symbol
	references map[string][]Reference
}

// Tree returns the syntax tree backing this model's Class node.
func (fm *FileModel) Tree() *syntax.Tree { return fm.Class.Node.Tree() }

// BuildFileModel walks class, declaring every class-level symbol and every
// method's local scope, and records every identifier/member-access
// reference it finds, so the model can answer the §6 query surface without
// re-walking the tree per call.
func BuildFileModel(path string, class syntax.ClassDecl, provider runtime.Provider) *FileModel {
	fm := &FileModel{
		Path:       path,
		Class:      class,
		FileScope:  NewScope(ScopeFile, nil),
		inferrer:   NewInferrer(provider),
		symbols:    map[string]*Symbol{},
		methods:    map[string]*Symbol{},
		references: map[string][]Reference{},
	}
	classScope := NewScope(ScopeClass, fm.FileScope)
	selfType, _ := class.Name()
	classScope.Declare(&Symbol{Name: "self", Kind: SymbolVariable, Type: selfType})

	for _, member := range class.Members() {
		fm.declareMember(member, classScope)
	}
	for _, member := range class.Members() {
		fm.walkMember(member, classScope)
	}
	return fm
}

func (fm *FileModel) declareMember(member syntax.Node, classScope *Scope) {
	switch member.Kind() {
	case syntax.KindVariableDecl:
		v := syntax.AsVariableDecl(member)
		name, ok := v.Name()
		if !ok {
			return
		}
		sym := &Symbol{Name: name, Kind: SymbolVariable, Type: TypeName(v.Type())}
		if sym.Type == Unknown {
			sym.Type = fm.inferrer.Infer(v.Initializer(), classScope)
		}
		classScope.Declare(sym)
		fm.symbols[name] = sym
	case syntax.KindConstantDecl:
		c := syntax.AsConstantDecl(member)
		name, ok := c.Name()
		if !ok {
			return
		}
		sym := &Symbol{Name: name, Kind: SymbolConstant, Type: TypeName(c.Type())}
		if sym.Type == Unknown {
			sym.Type = fm.inferrer.Infer(c.Initializer(), classScope)
		}
		classScope.Declare(sym)
		fm.symbols[name] = sym
	case syntax.KindSignalDecl:
		s := syntax.AsSignalDecl(member)
		name, ok := s.Name()
		if !ok {
			return
		}
		sym := &Symbol{Name: name, Kind: SymbolSignal}
		classScope.Declare(sym)
		fm.symbols[name] = sym
	case syntax.KindMethodDecl:
		m := syntax.AsMethodDecl(member)
		name, ok := m.Name()
		if !ok {
			return
		}
		sym := &Symbol{Name: name, Kind: SymbolMethod, Type: TypeName(m.ReturnType())}
		classScope.Declare(sym)
		fm.symbols[name] = sym
		fm.methods[name] = sym
	case syntax.KindEnumDecl:
		e := syntax.AsEnumDecl(member)
		name, _ := e.Name()
		sym := &Symbol{Name: name, Kind: SymbolClass}
		if name != "" {
			classScope.Declare(sym)
			fm.symbols[name] = sym
		}
		for _, v := range e.Values() {
			ev := syntax.AsEnumValueDecl(v)
			if vname, ok := ev.Name(); ok {
				evSym := &Symbol{Name: vname, Kind: SymbolEnumValue, Type: "int"}
				classScope.Declare(evSym)
				fm.symbols[vname] = evSym
			}
		}
	case syntax.KindInnerClassDecl:
		c := syntax.AsInnerClassDecl(member)
		name, ok := c.Name()
		if !ok {
			return
		}
		sym := &Symbol{Name: name, Kind: SymbolClass}
		classScope.Declare(sym)
		fm.symbols[name] = sym
	}
}

func (fm *FileModel) walkMember(member syntax.Node, classScope *Scope) {
	if member.Kind() != syntax.KindMethodDecl {
		return
	}
	method := syntax.AsMethodDecl(member)
	methodScope := NewScope(ScopeMethod, classScope)
	for _, p := range method.Parameters() {
		pd := syntax.AsParameterDecl(p)
		if name, ok := pd.Name(); ok {
			methodScope.Declare(&Symbol{Name: name, Kind: SymbolParameter, Type: TypeName(pd.Type())})
		}
	}
	fm.walkStatements(method.Statements(), methodScope)
}

func (fm *FileModel) walkStatements(stmts []syntax.Node, scope *Scope) {
	for _, s := range stmts {
		fm.walkStatement(s, scope)
	}
}

func (fm *FileModel) walkStatement(s syntax.Node, scope *Scope) {
	switch s.Kind() {
	case syntax.KindVariableDeclStmt:
		v := syntax.AsVariableDeclStmt(s)
		fm.walkExpr(v.Initializer(), scope)
		name, ok := v.Name()
		if !ok {
			return
		}
		declared := TypeName(v.Type())
		if declared == Unknown {
			declared = fm.inferrer.Infer(v.Initializer(), scope)
		}
		scope.Declare(&Symbol{Name: name, Kind: SymbolVariable, Type: declared})
	case syntax.KindIfStmt:
		ifs := syntax.AsIfStmt(s)
		fm.walkExpr(ifs.Condition(), scope)
		fm.walkStatements(syntax.AsStatementsList(ifs.Body()).Items(), NewScope(ScopeBranch, scope))
		for _, e := range ifs.Elifs() {
			elif := syntax.AsElifClause(e)
			fm.walkExpr(elif.Condition(), scope)
			fm.walkStatements(syntax.AsStatementsList(elif.Body()).Items(), NewScope(ScopeBranch, scope))
		}
		if els := ifs.Else(); !els.IsNil() {
			fm.walkStatements(syntax.AsStatementsList(syntax.AsElseClause(els).Body()).Items(), NewScope(ScopeBranch, scope))
		}
	case syntax.KindWhileStmt:
		w := syntax.AsWhileStmt(s)
		fm.walkExpr(w.Condition(), scope)
		fm.walkStatements(syntax.AsStatementsList(w.Body()).Items(), NewScope(ScopeWhile, scope))
	case syntax.KindForStmt:
		f := syntax.AsForStmt(s)
		fm.walkExpr(f.Iterable(), scope)
		loopScope := NewScope(ScopeFor, scope)
		if name, ok := f.Variable(); ok {
			loopScope.Declare(&Symbol{Name: name, Kind: SymbolVariable, Type: fm.inferrer.Infer(f.Iterable(), scope)})
		}
		fm.walkStatements(syntax.AsStatementsList(f.Body()).Items(), loopScope)
	case syntax.KindMatchStmt:
		m := syntax.AsMatchStmt(s)
		fm.walkExpr(m.Subject(), scope)
		for _, c := range m.Cases() {
			mc := syntax.AsMatchCase(c)
			fm.walkStatements(syntax.AsStatementsList(mc.Body()).Items(), NewScope(ScopeMatchCase, scope))
		}
	case syntax.KindExprStmt:
		fm.walkExpr(syntax.AsExprStmt(s).Expression(), scope)
	case syntax.KindReturnStmt:
		fm.walkExpr(syntax.AsReturnStmt(s).Value(), scope)
	case syntax.KindAssertStmt:
		a := syntax.AsAssertStmt(s)
		fm.walkExpr(a.Condition(), scope)
		fm.walkExpr(a.Message(), scope)
	case syntax.KindAwaitStmt:
		fm.walkExpr(syntax.AsAwaitStmt(s).Target(), scope)
	case syntax.KindYieldStmt:
		y := syntax.AsYieldStmt(s)
		fm.walkExpr(y.Object(), scope)
		fm.walkExpr(y.Signal(), scope)
	}
}

func (fm *FileModel) walkExpr(e syntax.Node, scope *Scope) {
	if e.IsNil() {
		return
	}
	switch e.Kind() {
	case syntax.KindIdentifierExpr:
		if name, ok := syntax.AsIdentifierExpr(e).Name(); ok {
			fm.references[name] = append(fm.references[name], Reference{Name: name, Range: e.Range()})
		}
	case syntax.KindMemberAccessExpr:
		ma := syntax.AsMemberAccessExpr(e)
		fm.walkExpr(ma.Target(), scope)
		if name, ok := ma.Member(); ok {
			fm.references[name] = append(fm.references[name], Reference{Name: name, Range: e.Range()})
		}
	case syntax.KindCallExpr:
		c := syntax.AsCallExpr(e)
		fm.walkExpr(c.Callee(), scope)
		for _, a := range c.Arguments() {
			fm.walkExpr(a, scope)
		}
	case syntax.KindBinaryExpr:
		b := syntax.AsBinaryExpr(e)
		fm.walkExpr(b.Left(), scope)
		fm.walkExpr(b.Right(), scope)
	case syntax.KindUnaryExpr:
		fm.walkExpr(syntax.AsUnaryExpr(e).Operand(), scope)
	case syntax.KindTernaryExpr:
		t := syntax.AsTernaryExpr(e)
		fm.walkExpr(t.Condition(), scope)
		fm.walkExpr(t.Then(), scope)
		fm.walkExpr(t.Else(), scope)
	case syntax.KindIndexerExpr:
		idx := syntax.AsIndexerExpr(e)
		fm.walkExpr(idx.Target(), scope)
		fm.walkExpr(idx.Index(), scope)
	case syntax.KindArrayInitExpr:
		for _, el := range syntax.AsArrayInitExpr(e).Elements() {
			fm.walkExpr(el, scope)
		}
	case syntax.KindDictInitExpr:
		for _, en := range syntax.AsDictInitExpr(e).Entries() {
			fm.walkExpr(en, scope)
		}
	case syntax.KindBracketedExpr:
		fm.walkExpr(syntax.AsBracketedExpr(e).Inner(), scope)
	case syntax.KindAwaitExpr:
		fm.walkExpr(syntax.AsAwaitExpr(e).Target(), scope)
	case syntax.KindYieldExpr:
		y := syntax.AsYieldExpr(e)
		fm.walkExpr(y.Object(), scope)
		fm.walkExpr(y.Signal(), scope)
	}
}

// Symbols returns every class-level symbol declared in this file.
func (fm *FileModel) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(fm.symbols))
	for _, s := range fm.symbols {
		out = append(out, s)
	}
	return out
}

// Methods returns every method symbol declared in this file.
func (fm *FileModel) Methods() []*Symbol {
	out := make([]*Symbol, 0, len(fm.methods))
	for _, s := range fm.methods {
		out = append(out, s)
	}
	return out
}

// FindSymbol resolves a class-level symbol by name.
func (fm *FileModel) FindSymbol(name string) (*Symbol, bool) {
	sym, ok := fm.symbols[name]
	return sym, ok
}

// GetEffectiveType returns the inferred or declared type of a class-level
// symbol, or Unknown if name was never declared.
func (fm *FileModel) GetEffectiveType(name string) string {
	if sym, ok := fm.symbols[name]; ok {
		return sym.Type
	}
	return Unknown
}

// GetReferencesTo returns every recorded reference to name in this file.
func (fm *FileModel) GetReferencesTo(name string) []Reference {
	return fm.references[name]
}

// ProjectModel aggregates every file's model, answering project-wide
// queries the incremental pipeline and validation passes both need: cross-
// file references, call sites, and member-access sweeps.
type ProjectModel struct {
	Files     map[string]*FileModel
	CallSites *CallSiteRegistry
}

// NewProjectModel builds an empty project model.
func NewProjectModel() *ProjectModel {
	return &ProjectModel{Files: map[string]*FileModel{}, CallSites: NewCallSiteRegistry()}
}

// AddFile registers or replaces a file's model.
func (pm *ProjectModel) AddFile(fm *FileModel) {
	pm.Files[fm.Path] = fm
}

// GetReferencesInProject returns every reference to name across every file.
func (pm *ProjectModel) GetReferencesInProject(name string) map[string][]Reference {
	out := map[string][]Reference{}
	for path, fm := range pm.Files {
		if refs := fm.GetReferencesTo(name); len(refs) > 0 {
			out[path] = refs
		}
	}
	return out
}

// GetReferencesInFile returns every reference to name within one file.
func (pm *ProjectModel) GetReferencesInFile(path, name string) []Reference {
	fm, ok := pm.Files[path]
	if !ok {
		return nil
	}
	return fm.GetReferencesTo(name)
}

// GetMemberAccessesInProject returns every reference to memberName across
// every file, regardless of receiver type (a conservative over-approximation
// since member references aren't typed at record time).
func (pm *ProjectModel) GetMemberAccessesInProject(typeName, memberName string) map[string][]Reference {
	_ = typeName
	return pm.GetReferencesInProject(memberName)
}

// GetCallSitesForMethod returns every recorded call site targeting
// (typeName, methodName).
func (pm *ProjectModel) GetCallSitesForMethod(typeName, methodName string) []*CallSite {
	return pm.CallSites.Lookup(typeName, methodName)
}

package ast

// Module is a scope owning declarations, including the mutable list of
// namespace alias declarations the Type Remapper appends to (spec §3.1
// "Module").
type Module struct {
	Name       string
	Functions  []*FunctionDecl
	Structs    []*StructDecl
	AliasDecls []*NamespaceAliasDecl
}

// NewModule returns an empty module.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddAlias appends a namespace alias declaration, as the Type Remapper
// does on first encounter of a specialization key (spec §4.A.5).
func (m *Module) AddAlias(decl *NamespaceAliasDecl) {
	m.AliasDecls = append(m.AliasDecls, decl)
}

// FindAlias returns the existing alias declaration with the given name, or
// nil if none has been synthesized yet.
func (m *Module) FindAlias(name string) *NamespaceAliasDecl {
	for _, d := range m.AliasDecls {
		if d.Name == name {
			return d
		}
	}
	return nil
}

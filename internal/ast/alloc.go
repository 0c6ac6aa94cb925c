package ast

import "dspcc/internal/types"

// Allocator is the arena that owns every node created during one
// compilation (spec §3.1 "Allocator"). Rewriters never free nodes;
// replacing a child simply orphans the old node until the arena itself is
// discarded. The retained slice keeps nodes reachable for the lifetime of
// the pass and gives the driver a node count for diagnostics.
type Allocator struct {
	nodes []Node
}

// NewAllocator returns an empty arena.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// NodeCount returns the number of nodes ever allocated, including ones
// orphaned by later rewrites.
func (a *Allocator) NodeCount() int { return len(a.nodes) }

func (a *Allocator) track(n Node) Node {
	a.nodes = append(a.nodes, n)
	return n
}

func (a *Allocator) NewQualifiedIdent(ctx SourceContext, parts ...string) *QualifiedIdent {
	n := &QualifiedIdent{base: base{ctx}, Parts: parts}
	a.track(n)
	return n
}

func (a *Allocator) NewConcreteType(ctx SourceContext, t types.Type) *ConcreteType {
	n := &ConcreteType{base: base{ctx}, Type: t}
	a.track(n)
	return n
}

func (a *Allocator) NewCommaList(ctx SourceContext, items ...Node) *CommaList {
	n := &CommaList{base: base{ctx}, Items: items}
	a.track(n)
	return n
}

func (a *Allocator) NewCallOrCast(ctx SourceContext, callee Node, args ...Node) *CallOrCast {
	n := &CallOrCast{base: base{ctx}, Callee: callee, Args: args}
	a.track(n)
	return n
}

func (a *Allocator) NewDotOperator(ctx SourceContext, object Node, member string) *DotOperator {
	n := &DotOperator{base: base{ctx}, Object: object, Member: member}
	a.track(n)
	return n
}

func (a *Allocator) NewArrayElementRef(ctx SourceContext, object, index Node) *ArrayElementRef {
	n := &ArrayElementRef{base: base{ctx}, Object: object, Index: index}
	a.track(n)
	return n
}

func (a *Allocator) NewComplexMemberRef(ctx SourceContext, object Node, member string) *ComplexMemberRef {
	n := &ComplexMemberRef{base: base{ctx}, Object: object, Member: member}
	a.track(n)
	return n
}

func (a *Allocator) NewTypeCast(ctx SourceContext, target types.Type, source Node) *TypeCast {
	n := &TypeCast{base: base{ctx}, Target: target, Source: source}
	a.track(n)
	return n
}

func (a *Allocator) NewConstant(ctx SourceContext, value interface{}, t *types.Type) *Constant {
	n := &Constant{base: base{ctx}, Value: value, ResolvedType: t}
	a.track(n)
	return n
}

func (a *Allocator) NewUnaryOperator(ctx SourceContext, op string, operand Node, t *types.Type) *UnaryOperator {
	n := &UnaryOperator{base: base{ctx}, Operator: op, Operand: operand, ResolvedType: t}
	a.track(n)
	return n
}

func (a *Allocator) NewBinaryOperator(ctx SourceContext, op string, left, right Node, t *types.Type) *BinaryOperator {
	n := &BinaryOperator{base: base{ctx}, Operator: op, Left: left, Right: right, OperandType: t}
	a.track(n)
	return n
}

func (a *Allocator) NewAssignment(ctx SourceContext, target, value Node, t *types.Type) *Assignment {
	n := &Assignment{base: base{ctx}, Target: target, Value: value, AssignedType: t}
	a.track(n)
	return n
}

func (a *Allocator) NewReturnStmt(ctx SourceContext, value Node, t *types.Type) *ReturnStmt {
	n := &ReturnStmt{base: base{ctx}, Value: value, ReturnType: t}
	a.track(n)
	return n
}

func (a *Allocator) NewStructDecl(ctx SourceContext, name string, members ...*StructMember) *StructDecl {
	n := &StructDecl{base: base{ctx}, Name: name, Members: members}
	a.track(n)
	return n
}

func (a *Allocator) NewNamespaceAliasDecl(ctx SourceContext, name string, target Node) *NamespaceAliasDecl {
	n := &NamespaceAliasDecl{base: base{ctx}, Name: name, Target: target}
	a.track(n)
	return n
}

func (a *Allocator) NewMakeReference(ctx SourceContext, inner Node) *MakeReference {
	n := &MakeReference{base: base{ctx}, Inner: inner}
	a.track(n)
	return n
}

func (a *Allocator) NewMakeConst(ctx SourceContext, inner Node) *MakeConst {
	n := &MakeConst{base: base{ctx}, Inner: inner}
	a.track(n)
	return n
}

func (a *Allocator) NewBracketedSubscript(ctx SourceContext, baseNode, length Node) *BracketedSubscript {
	n := &BracketedSubscript{base: base{ctx}, Base: baseNode, Length: length}
	a.track(n)
	return n
}

func (a *Allocator) NewBlock(ctx SourceContext, stmts ...Node) *Block {
	n := &Block{base: base{ctx}, Stmts: stmts}
	a.track(n)
	return n
}

func (a *Allocator) NewFunctionDecl(ctx SourceContext, name string, returnType types.Type, body *Block) *FunctionDecl {
	n := &FunctionDecl{base: base{ctx}, Name: name, ReturnType: returnType, Body: body}
	a.track(n)
	return n
}

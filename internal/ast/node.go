// Package ast implements the tagged-variant AST the complex-number
// lowering pass rewrites. Every concrete node is a pointer-receiver struct
// implementing Node; rewriters pattern-match with a Go type switch rather
// than double-dispatch visitors, per the Design Notes in spec.md §9.
package ast

import "dspcc/internal/types"

// Node is the single interface every AST variant implements.
type Node interface {
	Context() SourceContext
}

// base is embedded by every concrete node to carry its source context.
type base struct {
	Ctx SourceContext
}

func (b base) Context() SourceContext { return b.Ctx }

// QualifiedIdent is a dotted identifier path, e.g. soul::complex_lib32_1.
type QualifiedIdent struct {
	base
	Parts []string
}

// ConcreteType is a reference to a resolved type in the source tree. The
// Type Remapper replaces these in place with a specialization expression
// when lowering.RequiresRemapping(Type) is true.
type ConcreteType struct {
	base
	Type      types.Type
	EnclosingStruct *StructDecl // non-nil when this node sits inside a struct member list
}

// CommaList is a comma-separated expression list, used both as a
// constructor-argument list and as the decomposed source of a type cast.
type CommaList struct {
	base
	Items []Node
}

// CallOrCast is an unresolved call expression or type cast; the lowering
// pass both consumes pre-existing call-or-cast nodes and produces new ones
// (add, subtract, getElement, setElement, specialization constructors...).
type CallOrCast struct {
	base
	Callee Node
	Args   []Node
}

// DotOperator is a member access, e.g. obj.real.
type DotOperator struct {
	base
	Object Node
	Member string
}

// ArrayElementRef is an indexed read a[b], optionally a slice a[b:c].
type ArrayElementRef struct {
	base
	Object       Node
	Index        Node
	SliceEnd     Node // non-nil when IsSlice
	IsSlice      bool
	ResolvedType *types.Type // element type, nil if unresolved
	ObjectIsVector bool      // true when Object's type is a vector (vs. array)
}

// ComplexMemberRef is the pre-resolution node for obj.real / obj.imag.
type ComplexMemberRef struct {
	base
	Object Node
	Member string // "real" or "imag"
}

// TypeCast casts Source to Target.
type TypeCast struct {
	base
	Target       types.Type
	Source       Node
	SourceType   *types.Type // resolved type of Source, nil if unresolved
}

// Constant is a literal value, scalar or vector, with its resolved type.
type Constant struct {
	base
	Value        interface{} // int64, float32, float64, []float32, []float64, ComplexValue, or []ComplexValue
	ResolvedType *types.Type
}

// ComplexValue is the literal payload of a resolved complex constant.
type ComplexValue struct {
	Real, Imag float64
}

// UnaryOperator is a resolved unary operator expression.
type UnaryOperator struct {
	base
	Operator     string
	Operand      Node
	ResolvedType *types.Type
}

// BinaryOperator is a resolved binary operator expression. LeftType and
// RightType are each operand's own resolved type (they may differ from one
// another, e.g. complex32 mixed with complex64); OperandType is the common
// type the Operator Rewriter casts both sides to.
type BinaryOperator struct {
	base
	Operator            string
	Left, Right         Node
	LeftType, RightType *types.Type
	OperandType         *types.Type // common operand type, nil if unresolved
}

// Assignment is `target = value`. ValueType is Value's own resolved type,
// used by the Cast Synthesizer when it differs from AssignedType.
type Assignment struct {
	base
	Target       Node
	Value        Node
	ValueType    *types.Type
	AssignedType *types.Type // type of Target, nil if unresolved
}

// ReturnStmt returns Value from the enclosing function. ValueType is
// Value's own resolved type, used by the Cast Synthesizer when it differs
// from ReturnType.
type ReturnStmt struct {
	base
	Value      Node
	ValueType  *types.Type
	ReturnType *types.Type // enclosing function's declared return type
}

// StructMember is one field of a StructDecl.
type StructMember struct {
	Name string
	Type Node // typically a *ConcreteType
}

// StructDecl declares a struct type.
type StructDecl struct {
	base
	Name          string
	Members       []*StructMember
	layoutChanged bool
}

// NotifyMemberTypeChanged marks that a member's type was rewritten,
// invalidating any cached layout (spec §4.A.5: the remapper "notifies the
// enclosing struct that its member layout changed").
func (s *StructDecl) NotifyMemberTypeChanged() { s.layoutChanged = true }

// LayoutChanged reports whether any member type was rewritten.
func (s *StructDecl) LayoutChanged() bool { return s.layoutChanged }

// NamespaceAliasDecl specializes a generic namespace, e.g.
// `namespace complex_lib32_4 = soul::complex_lib(float32, 4);`
type NamespaceAliasDecl struct {
	base
	Name   string
	Target Node
}

// MakeReference wraps Inner in the makeReference meta-function.
type MakeReference struct {
	base
	Inner Node
}

// MakeConst wraps Inner in the makeConst meta-function.
type MakeConst struct {
	base
	Inner Node
}

// BracketedSubscript is `Base[Length]`, used to express an array dimension
// on a type expression.
type BracketedSubscript struct {
	base
	Base   Node
	Length Node
}

// Block is a sequence of statements/expressions, used as a function body.
type Block struct {
	base
	Stmts []Node
}

// Param is one formal parameter of a FunctionDecl.
type Param struct {
	Name string
	Type types.Type
}

// FunctionDecl declares a function; the Element-Access Rewriter consults
// ReturnType to coerce return statements inside Body.
type FunctionDecl struct {
	base
	Name       string
	Params     []Param
	ReturnType types.Type
	Body       *Block
}

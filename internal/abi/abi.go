// Package abi names the Runtime Value ABI: the C-linkage function surface
// a code generator targets when lowering Resolved IR (internal/resolved)
// to machine code. Every declaration here is signature-only - there is no
// Go implementation, because the ABI describes calls emitted INTO a
// runtime written and linked separately (e.g. as object code from the
// extern "C" interface the original runtime exposed). internal/lowering
// names these exact functions when it describes what a backend must call;
// internal/abitrace is the reference implementation that makes the
// contract checkable from Go without a real backend.
package abi

// Variable is an opaque handle to a runtime value: a pointer-sized token
// with no Go-visible structure. Every ABI function below operates on one
// or more of these.
type Variable struct{}

// Setter functions assign a literal's runtime representation into an
// already-allocated Variable.
type (
	SetUndefinedFunc   func(this *Variable)
	SetNullFunc        func(this *Variable)
	SetNaNFunc         func(this *Variable)
	SetInfinityFunc    func(this *Variable)
	SetNegInfinityFunc func(this *Variable)
	SetNumberFunc      func(this *Variable, val float64)
	SetBooleanFunc     func(this *Variable, val bool)
	SetStringFunc      func(this *Variable, val string)
	SetEmptyObjectFunc func(this *Variable)
	SetVariableFunc    func(this *Variable, val *Variable)
)

// GetBooleanFunc reads a Variable's truthiness without a conversion step;
// internal/lowering calls convert_to_boolean first where a value is not
// already known to be boolean.
type GetBooleanFunc func(this *Variable) bool

// ConvertToBooleanFunc coerces any Variable to its boolean runtime
// representation, the step If/While conditions lower through before
// GetBoolean reads the bit.
type ConvertToBooleanFunc func(this *Variable) *Variable

// Property accessors come in four key-type flavors; a backend picks the
// typed one when the key internal/lowering hands it is a literal of that
// type (dotted names arrive as string literals), and falls back to the
// *Var form for a computed key of unknown shape.
type (
	AddPropertyByBooleanFunc func(this *Variable, name bool, property *Variable)
	AddPropertyByNumberFunc  func(this *Variable, name float64, property *Variable)
	AddPropertyByStrFunc     func(this *Variable, name string, property *Variable)
	AddPropertyByVarFunc     func(this *Variable, name *Variable, property *Variable)

	GetPropertyByBooleanFunc func(this *Variable, name bool) *Variable
	GetPropertyByNumberFunc  func(this *Variable, name float64) *Variable
	GetPropertyByStrFunc     func(this *Variable, name string) *Variable
	GetPropertyByVarFunc     func(this *Variable, name *Variable) *Variable
)

// FunctionCallFunc invokes a Variable holding a callable with an
// already-assembled argument array.
type FunctionCallFunc func(this *Variable, args []*Variable) *Variable

// Logical and equality operators. && and || are eager, not
// short-circuiting: both operands are always evaluated by the caller
// before this is invoked.
type (
	LogicalNotFunc LogicalUnaryFunc
	LogicalAndFunc LogicalBinaryFunc
	LogicalOrFunc  LogicalBinaryFunc
	LogicalEqFunc  LogicalBinaryFunc
	LogicalNeFunc  LogicalBinaryFunc
	LogicalSEqFunc LogicalBinaryFunc
	LogicalSNeFunc LogicalBinaryFunc
	LogicalGtFunc  LogicalBinaryFunc
	LogicalGeFunc  LogicalBinaryFunc
	LogicalLtFunc  LogicalBinaryFunc
	LogicalLeFunc  LogicalBinaryFunc
)

type LogicalUnaryFunc func(val *Variable) *Variable
type LogicalBinaryFunc func(val1, val2 *Variable) *Variable

// Arithmetic operators share LogicalBinaryFunc's shape, but are declared
// separately since they live at a different call site in
// internal/lowering and are named distinctly in the runtime
// (arithmetic_addition, not logical_add).
type (
	ArithmeticAdditionFunc       LogicalBinaryFunc
	ArithmeticSubstractionFunc   LogicalBinaryFunc
	ArithmeticMultiplicationFunc LogicalBinaryFunc
	ArithmeticDivisionFunc       LogicalBinaryFunc
)

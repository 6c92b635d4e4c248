package resolver

import (
	"fmt"

	"github.com/vexlang/vexc/internal/srcpos"
)

// UndefinedVariableError is raised by a reference to a name with no
// currently visible variable declaration.
type UndefinedVariableError struct {
	Name string
	Pos  srcpos.Position
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("%s: undefined variable %q", e.Pos, e.Name)
}

func (e *UndefinedVariableError) Position() srcpos.Position { return e.Pos }

// UndefinedFunctionError is raised by a call to a name with no currently
// visible function declaration (user-declared or predefined).
type UndefinedFunctionError struct {
	Name string
	Pos  srcpos.Position
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("%s: undefined function %q", e.Pos, e.Name)
}

func (e *UndefinedFunctionError) Position() srcpos.Position { return e.Pos }

// InvalidAssignmentTargetError is raised by an assignment whose left-hand
// side is a method call, e.g. `a.b(c) = 5;` - a call result is not a
// storage location.
type InvalidAssignmentTargetError struct {
	Pos srcpos.Position
}

func (e *InvalidAssignmentTargetError) Error() string {
	return fmt.Sprintf("%s: invalid assignment target: method call result is not assignable", e.Pos)
}

func (e *InvalidAssignmentTargetError) Position() srcpos.Position { return e.Pos }

package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a diagnostic. The names mirror the error taxonomy of
// §7: each kind carries whatever fields it needs inside Error.Data.
type Kind string

const (
	RegistrationFailed                Kind = "RegistrationFailed"
	UnknownType                       Kind = "UnknownType"
	UndefinedFunction                 Kind = "UndefinedFunction"
	UndefinedStruct                   Kind = "UndefinedStruct"
	UndefinedEnum                     Kind = "UndefinedEnum"
	UnknownIdentifier                 Kind = "UnknownIdentifier"
	FieldNotFound                     Kind = "FieldNotFound"
	VariantNotFound                   Kind = "VariantNotFound"
	MethodNotFound                    Kind = "MethodNotFound"
	TypeMismatch                      Kind = "TypeMismatch"
	ArrayIndexNotNumeric              Kind = "ArrayIndexNotNumeric"
	ArrayElementTypeMismatch          Kind = "ArrayElementTypeMismatch"
	ExpectedArrayType                 Kind = "ExpectedArrayType"
	ExpectedStructType                Kind = "ExpectedStructType"
	ExpectedEnumType                  Kind = "ExpectedEnumType"
	MethodCallOnNonStruct             Kind = "MethodCallOnNonStruct"
	ArgumentCountMismatch             Kind = "ArgumentCountMismatch"
	TypeParameterCountMismatch        Kind = "TypeParameterCountMismatch"
	MissingTypeParameters             Kind = "MissingTypeParameters"
	CannotInferTypeParameter          Kind = "CannotInferTypeParameter"
	ConflictingTypeInference          Kind = "ConflictingTypeInference"
	InvalidUnaryOperand               Kind = "InvalidUnaryOperand"
	InvalidBinaryOperand              Kind = "InvalidBinaryOperand"
	BinaryOperandTypeMismatch         Kind = "BinaryOperandTypeMismatch"
	CannotInferUzumakiType            Kind = "CannotInferUzumakiType"
	SelfReferenceInFunction           Kind = "SelfReferenceInFunction"
	SelfReferenceOutsideMethod        Kind = "SelfReferenceOutsideMethod"
	InstanceMethodCalledAsAssociated  Kind = "InstanceMethodCalledAsAssociated"
	AssociatedFunctionCalledAsMethod  Kind = "AssociatedFunctionCalledAsMethod"
	PrivateAccessViolation            Kind = "PrivateAccessViolation"
	ImportResolutionFailed            Kind = "ImportResolutionFailed"
	CircularImport                    Kind = "CircularImport"
	EmptyGlobImport                   Kind = "EmptyGlobImport"

	// MalformedCST marks a fatal construction error: the CST handed to the
	// AST builder was missing a field or child the builder requires
	// (§4.C). Unlike the other kinds it is never added to a List — it
	// aborts construction immediately since there is no well-formed AST
	// to keep annotating.
	MalformedCST Kind = "MalformedCST"
)

// RegistrationKind distinguishes what sort of symbol a RegistrationFailed
// diagnostic was trying to register.
type RegistrationKind string

const (
	RegType     RegistrationKind = "Type"
	RegStruct   RegistrationKind = "Struct"
	RegEnum     RegistrationKind = "Enum"
	RegSpec     RegistrationKind = "Spec"
	RegFunction RegistrationKind = "Function"
	RegMethod   RegistrationKind = "Method"
	RegVariable RegistrationKind = "Variable"
)

// MismatchContext names the statement kind a TypeMismatch occurred in.
type MismatchContext string

const (
	CtxAssignment         MismatchContext = "Assignment"
	CtxReturn             MismatchContext = "Return"
	CtxVariableDefinition MismatchContext = "VariableDefinition"
	CtxCondition          MismatchContext = "Condition"
)

// AccessContext names what kind of private member a PrivateAccessViolation
// was raised against.
type AccessContext string

const (
	AccessField    AccessContext = "Field"
	AccessMethod   AccessContext = "Method"
	AccessFunction AccessContext = "Function"
	AccessEnum     AccessContext = "Enum"
	AccessImport   AccessContext = "Import"
)

// Error is a single diagnostic. Name is the primary identifier the
// diagnostic concerns (used both in the message and for deduplication);
// Message is the fully rendered human-readable text.
type Error struct {
	Kind     Kind
	Name     string
	Location Location
	Message  string
}

func (e *Error) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic with a source-context line and a caret,
// matching the teacher's CompilerError.Format. Color adds ANSI escapes.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "error at %s: %s\n", e.Location.String(), e.Message)

	sourceLine := e.Location.Text()
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Location.StartLine)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(0, e.Location.StartColumn-1)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

// dedupKey returns the deduplication key for kinds that §7 requires to be
// reported only once per unique (kind, name) pair per compilation.
func (e *Error) dedupKey() (string, bool) {
	switch e.Kind {
	case UnknownType, UndefinedFunction, UnknownIdentifier, UndefinedStruct, UndefinedEnum:
		return string(e.Kind) + ":" + e.Name, true
	default:
		return "", false
	}
}

// List is an append-only, deduplicating collection of diagnostics. The
// checker and builder never abort on the first error recorded here; they
// keep analyzing so one pass surfaces as many problems as possible, per §7.
type List struct {
	errors []*Error
	seen   map[string]bool
}

// Add appends a diagnostic, silently dropping it if an equivalent
// (kind, name) diagnostic has already been recorded.
func (l *List) Add(e *Error) {
	if key, dedupe := e.dedupKey(); dedupe {
		if l.seen == nil {
			l.seen = make(map[string]bool)
		}
		if l.seen[key] {
			return
		}
		l.seen[key] = true
	}
	l.errors = append(l.errors, e)
}

// Errorf is a convenience constructor for Add.
func (l *List) Errorf(kind Kind, name string, loc Location, format string, args ...any) {
	l.Add(&Error{Kind: kind, Name: name, Location: loc, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any diagnostic has been recorded.
func (l *List) HasErrors() bool {
	return len(l.errors) > 0
}

// All returns every recorded diagnostic, in recording order.
func (l *List) All() []*Error {
	return l.errors
}

// Err returns nil if no diagnostics were recorded, otherwise an error whose
// message is the concatenation of every diagnostic's formatted text.
func (l *List) Err() error {
	if !l.HasErrors() {
		return nil
	}
	return &AggregateError{Errors: l.errors}
}

// AggregateError joins every diagnostic recorded during a phase into a
// single error, mirroring the teacher's AnalysisError.
type AggregateError struct {
	Errors []*Error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}


package assembler

import (
	"errors"

	"github.com/retrocore/toy16/translate"
)

var f = translate.From

var (
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelMissing    = errors.New(f("label missing"))
	ErrOrgMissing      = errors.New(f(".org requires an address"))
	ErrWordMissing     = errors.New(f(".word requires at least one value"))
	ErrAsciizSyntax    = errors.New(f(".asciiz requires a quoted string"))
	ErrAsciizUnclosed  = errors.New(f("unterminated string in .asciiz"))
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro inside .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
	ErrMacroUnknown    = errors.New(f("unknown macro invocation"))
	ErrMacroArgCount   = errors.New(f("macro argument count mismatch"))

	ErrMnemonicUnknown  = errors.New(f("unknown mnemonic"))
	ErrOperandCount     = errors.New(f("wrong number of operands"))
	ErrOperandRegister  = errors.New(f("operand is not a register"))
	ErrOperandMemory    = errors.New(f("operand is not a memory reference [X]"))
	ErrOperandLiteral   = errors.New(f("operand is not a valid literal or label"))
	ErrCharLiteral      = errors.New(f("malformed character literal"))
	ErrExpression       = errors.New(f("malformed $(...) expression"))
)

// ErrSyntax wraps an underlying error with the source line it occurred on,
// matching the one-diagnostic-line failure mode the assembler CLI reports.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d: %q: %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrMacroExpand reports an error raised while expanding a macro body.
type ErrMacroExpand struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacroExpand) Error() string {
	return f("macro %v line %d: %v", err.Macro, err.Line, err.Err)
}

func (err ErrMacroExpand) Unwrap() error {
	return err.Err
}

// ErrLabelUndefined names the specific label a Pass2 reference could not
// resolve.
type ErrLabelUndefined string

func (err ErrLabelUndefined) Error() string {
	return f("label %q is undefined", string(err))
}

func (err ErrLabelUndefined) Is(target error) bool {
	return target == ErrLabelMissing
}

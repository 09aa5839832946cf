package ccgerr

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include the frame that raised them when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None  ErrCode = iota
	Parse ErrCode = iota
	HeadConflict
	MissingSharedCategory
	ArgumentCluster
	ArenaMismatch
	MissingParent
	Lexicon
	Unlicensed
)

// CCGError is an invariant violation: something that indicates a corrupt
// derivation rather than a combinator that simply does not apply
type CCGError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) CCGError
	getStack() []byte
}

func FormatWithCode(e CCGError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			lines := strings.Split(stack, "\n")
			if len(lines) > 6 {
				stack = lines[6]
			}
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E CCGError](err E) CCGError {
	return err.withStack(debug.Stack())
}

// CodeOf returns the ErrCode of the first CCGError in err's chain, or None
func CodeOf(err error) ErrCode {
	var ccgErr CCGError
	if errors.As(err, &ccgErr) {
		return ccgErr.Code()
	}
	return None
}

type NewParse struct {
	Input   string
	Offset  int
	Message string
	stack   []byte
}

func (e NewParse) Error() string {
	return fmt.Sprintf("could not parse category '%s' at offset %d: %s", e.Input, e.Offset, e.Message)
}
func (e NewParse) Code() ErrCode    { return Parse }
func (e NewParse) getStack() []byte { return e.stack }
func (e NewParse) withStack(stack []byte) CCGError {
	e.stack = stack
	return e
}

type NewHeadConflict struct {
	First  string
	Second string
	stack  []byte
}

func (e NewHeadConflict) Error() string {
	return fmt.Sprintf("head conflict: cannot coindex '%s' with a different head '%s'", e.First, e.Second)
}
func (e NewHeadConflict) Code() ErrCode    { return HeadConflict }
func (e NewHeadConflict) getStack() []byte { return e.stack }
func (e NewHeadConflict) withStack(stack []byte) CCGError {
	e.stack = stack
	return e
}

type NewMissingSharedCategory struct {
	Rule     string
	Functor  string
	Argument string
	stack    []byte
}

func (e NewMissingSharedCategory) Error() string {
	return fmt.Sprintf("%s: no sub-category of '%s' matches the argument of '%s'", e.Rule, e.Argument, e.Functor)
}
func (e NewMissingSharedCategory) Code() ErrCode    { return MissingSharedCategory }
func (e NewMissingSharedCategory) getStack() []byte { return e.stack }
func (e NewMissingSharedCategory) withStack(stack []byte) CCGError {
	e.stack = stack
	return e
}

type NewArgumentCluster struct {
	Argument string
	New      string
	stack    []byte
}

func (e NewArgumentCluster) Error() string {
	return fmt.Sprintf("argument '%s' is type-raised but its replacement '%s' is not: refusing to discard argument cluster coordination", e.Argument, e.New)
}
func (e NewArgumentCluster) Code() ErrCode    { return ArgumentCluster }
func (e NewArgumentCluster) getStack() []byte { return e.stack }
func (e NewArgumentCluster) withStack(stack []byte) CCGError {
	e.stack = stack
	return e
}

type NewArenaMismatch struct {
	Left  string
	Right string
	stack []byte
}

func (e NewArenaMismatch) Error() string {
	return fmt.Sprintf("categories '%s' and '%s' belong to different arenas", e.Left, e.Right)
}
func (e NewArenaMismatch) Code() ErrCode    { return ArenaMismatch }
func (e NewArenaMismatch) getStack() []byte { return e.stack }
func (e NewArenaMismatch) withStack(stack []byte) CCGError {
	e.stack = stack
	return e
}

type NewMissingParent struct {
	Child string
	stack []byte
}

func (e NewMissingParent) Error() string {
	return fmt.Sprintf("unary production over '%s' needs a parent category", e.Child)
}
func (e NewMissingParent) Code() ErrCode    { return MissingParent }
func (e NewMissingParent) getStack() []byte { return e.stack }
func (e NewMissingParent) withStack(stack []byte) CCGError {
	e.stack = stack
	return e
}

type NewLexicon struct {
	Line    int
	Message string
	stack   []byte
}

func (e NewLexicon) Error() string {
	return fmt.Sprintf("markedup entry at line %d: %s", e.Line, e.Message)
}
func (e NewLexicon) Code() ErrCode    { return Lexicon }
func (e NewLexicon) getStack() []byte { return e.stack }
func (e NewLexicon) withStack(stack []byte) CCGError {
	e.stack = stack
	return e
}

type NewUnlicensed struct {
	Rule       string
	Production string
	stack      []byte
}

func (e NewUnlicensed) Error() string {
	return fmt.Sprintf("%s no longer licenses '%s'", e.Rule, e.Production)
}
func (e NewUnlicensed) Code() ErrCode    { return Unlicensed }
func (e NewUnlicensed) getStack() []byte { return e.stack }
func (e NewUnlicensed) withStack(stack []byte) CCGError {
	e.stack = stack
	return e
}

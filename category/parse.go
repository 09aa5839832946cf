package category

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cottand/rebank/ccgerr"
	"github.com/cottand/rebank/util"
)

// Lookup resolves a supertag or annotated string to its canonical category.
// Parse consults it before parsing generically, so that every occurrence of
// a supertag shares one variable-minimal instance.
type Lookup interface {
	Lookup(s string) (*Category, bool)
}

const conjSuffix = "[conj]"

// Parse reads a category in bare or annotated slash notation. lookup may be nil.
func Parse(s string, lookup Lookup) (*Category, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "[nb]", ""))
	if s == "" {
		return nil, ccgerr.New(ccgerr.NewParse{Input: s, Message: "empty category"})
	}
	if lookup != nil {
		if c, ok := lookup.Lookup(s); ok {
			return c, nil
		}
		if base, ok := strings.CutSuffix(s, conjSuffix); ok {
			if c, ok := lookup.Lookup(base); ok {
				return c.WithConj(true), nil
			}
		}
	}
	// corpus artifact: an argument-less trailing slash, as in ((S[b]\NP)/NP)/
	if last := s[len(s)-1]; last == byte(Forward) || last == byte(Backward) {
		return Parse(stripBrackets(s[:len(s)-1]), lookup)
	}

	base, conj := strings.CutSuffix(s, conjSuffix)
	p := &parser{src: base, input: s}
	c, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		if p.src[p.pos] == ')' {
			return nil, p.errorf("unbalanced brackets: unexpected ')'")
		}
		return nil, p.errorf("unexpected '%c'", p.src[p.pos])
	}
	if conj {
		c = c.WithConj(true)
	}
	return c, nil
}

// MustParse is Parse for categories known to be well-formed
func MustParse(s string, lookup Lookup) *Category {
	c, err := Parse(s, lookup)
	if err != nil {
		panic(err)
	}
	return c
}

// stripBrackets removes one pair of brackets enclosing the whole of s
func stripBrackets(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}
	return s[1 : len(s)-1]
}

type parser struct {
	src   string
	input string
	pos   int
	opens util.Stack[int]
}

func (p *parser) errorf(format string, args ...any) error {
	return ccgerr.New(ccgerr.NewParse{Input: p.input, Offset: p.pos, Message: fmt.Sprintf(format, args...)})
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// parseExpr reads operands joined by slashes, associating to the left
func (p *parser) parseExpr() (*Category, error) {
	left, err := p.parseOperand(true)
	if err != nil {
		return nil, err
	}
	for c := p.peek(); c == byte(Forward) || c == byte(Backward); c = p.peek() {
		p.pos++
		right, err := p.parseOperand(true)
		if err != nil {
			return nil, err
		}
		left = NewComplex(left, Slash(c), right, Attrs{})
	}
	return left, nil
}

func (p *parser) parseOperand(allowConj bool) (*Category, error) {
	var inner *Category
	var atom string
	var attrs Attrs

	switch c := p.peek(); {
	case c == 0:
		return nil, p.errorf("expected a category")
	case c == '(':
		p.opens.Push(p.pos)
		p.pos++
		var err error
		inner, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			p.pos, _ = p.opens.Peek()
			return nil, p.errorf("unbalanced brackets: '(' is never closed")
		}
		p.opens.Pop()
		p.pos++
		attrs = inner.Attrs()
	default:
		start := p.pos
		for p.pos < len(p.src) && isAtomChar(p.src[p.pos]) {
			p.pos++
		}
		if start == p.pos {
			return nil, p.errorf("unexpected '%c'", c)
		}
		atom = p.src[start:p.pos]
		if p.peek() == '[' && !strings.HasPrefix(p.src[p.pos:], conjSuffix) {
			feature, err := p.readUntil(']')
			if err != nil {
				return nil, err
			}
			if isFeatureVar(feature) {
				attrs.FeatVar = feature
			} else {
				attrs.Feature = feature
			}
		}
	}

	var seenVar, seenIdx, seenHat bool
suffixes:
	for {
		switch p.peek() {
		case '{':
			if seenVar {
				break suffixes
			}
			seenVar = true
			if err := p.parseVars(&attrs); err != nil {
				return nil, err
			}
		case '<':
			if seenIdx {
				break suffixes
			}
			seenIdx = true
			idx, err := p.readUntil('>')
			if err != nil {
				return nil, err
			}
			attrs.ArgIdx = idx[1 : len(idx)-1]
		case '^':
			if seenHat {
				break suffixes
			}
			seenHat = true
			p.pos++
			hat, err := p.parseOperand(false)
			if err != nil {
				return nil, err
			}
			attrs.Hat = hat
		case '[':
			if !allowConj || !strings.HasPrefix(p.src[p.pos:], conjSuffix) {
				break suffixes
			}
			p.pos += len(conjSuffix)
			attrs.Conj = true
		default:
			break suffixes
		}
	}

	if inner != nil {
		return inner.With(attrs), nil
	}
	return NewAtomic(atom, attrs), nil
}

// readUntil consumes from the current opening byte up to and including end
func (p *parser) readUntil(end byte) (string, error) {
	i := strings.IndexByte(p.src[p.pos:], end)
	if i < 0 {
		return "", p.errorf("missing '%c'", end)
	}
	s := p.src[p.pos : p.pos+i+1]
	p.pos += i + 1
	return s, nil
}

// parseVars reads {V}, {V,V2}, {V*} or {V,V2*}
func (p *parser) parseVars(attrs *Attrs) error {
	block, err := p.readUntil('}')
	if err != nil {
		return err
	}
	body := block[1 : len(block)-1]
	body, attrs.Asterisk = strings.CutSuffix(body, "*")
	first, second, hasSecond := strings.Cut(body, ",")
	v, ok := VarIndex(first)
	if !ok {
		return p.errorf("bad variable '%s' in %s", first, block)
	}
	attrs.Var = v
	if hasSecond {
		v2, ok := VarIndex(second)
		if !ok {
			return p.errorf("bad variable '%s' in %s", second, block)
		}
		attrs.Var2, attrs.HasVar2 = v2, true
	}
	return nil
}

func isAtomChar(c byte) bool {
	return c < unicode.MaxASCII && (unicode.IsLetter(rune(c)) || strings.IndexByte(",.;:-", c) >= 0)
}

// isFeatureVar recognises placeholders such as [X]
func isFeatureVar(feature string) bool {
	body := feature[1 : len(feature)-1]
	if body == "" {
		return false
	}
	for _, r := range body {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

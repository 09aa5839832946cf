package category

import (
	"strconv"
	"strings"
)

// varLetters name variables in annotated strings; index 0 is the head
const varLetters = "_YZWVUTSRPQONMLKJIHGFEDCBA"

// VarName renders v the way annotated strings do
func VarName(v int) string {
	if v >= 0 && v < len(varLetters) {
		return varLetters[v : v+1]
	}
	return strconv.Itoa(v)
}

// VarIndex is the inverse of VarName
func VarIndex(name string) (int, bool) {
	if len(name) == 1 {
		if i := strings.IndexByte(varLetters, name[0]); i >= 0 {
			return i, true
		}
	}
	v, err := strconv.Atoi(name)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

type form int

const (
	bare form = iota
	annotated
)

func (c *Category) render(f form) string {
	sb := &strings.Builder{}
	c.write(sb, f, VarName)
	if c.attrs.Conj {
		sb.WriteString("[conj]")
	}
	return sb.String()
}

// RenderVars renders the annotated form of c with every variable spelt by name
func (c *Category) RenderVars(name func(v int) string) string {
	sb := &strings.Builder{}
	c.write(sb, annotated, name)
	if c.attrs.Conj {
		sb.WriteString("[conj]")
	}
	return sb.String()
}

func (c *Category) write(sb *strings.Builder, f form, name func(int) string) {
	if !c.IsComplex() {
		sb.WriteString(c.atom)
		if f == annotated && c.attrs.FeatVar != "" {
			sb.WriteString(c.attrs.FeatVar)
		} else {
			sb.WriteString(c.attrs.Feature)
		}
		if c.attrs.Hat != nil {
			sb.WriteByte('^')
			c.attrs.Hat.writePiece(sb, f, name)
		}
		if f == annotated {
			c.writeVars(sb, name)
		}
		return
	}
	hatted := c.attrs.Hat != nil
	if f == annotated || hatted {
		sb.WriteByte('(')
	}
	c.result.writeChild(sb, f, name)
	sb.WriteByte(byte(c.slash))
	c.argument.writeChild(sb, f, name)
	if f == annotated || hatted {
		sb.WriteByte(')')
	}
	if f == annotated {
		c.writeVars(sb, name)
	}
	if hatted {
		sb.WriteByte('^')
		c.attrs.Hat.writePiece(sb, f, name)
	}
}

func (c *Category) writeChild(sb *strings.Builder, f form, name func(int) string) {
	if f == annotated {
		c.write(sb, f, name)
	} else {
		c.writePiece(sb, f, name)
	}
	if c.attrs.Conj {
		sb.WriteString("[conj]")
	}
}

// writePiece writes c as an operand of a larger category: complex
// categories get brackets unless a hat already delimits them
func (c *Category) writePiece(sb *strings.Builder, f form, name func(int) string) {
	if f == bare && c.IsComplex() && c.attrs.Hat == nil {
		sb.WriteByte('(')
		c.write(sb, f, name)
		sb.WriteByte(')')
		return
	}
	c.write(sb, f, name)
}

func (c *Category) writeVars(sb *strings.Builder, name func(int) string) {
	sb.WriteByte('{')
	sb.WriteString(name(c.attrs.Var))
	if c.attrs.HasVar2 {
		sb.WriteByte(',')
		sb.WriteString(name(c.attrs.Var2))
	}
	if c.attrs.Asterisk {
		sb.WriteByte('*')
	}
	sb.WriteByte('}')
	if c.attrs.ArgIdx != "" {
		sb.WriteByte('<')
		sb.WriteString(c.attrs.ArgIdx)
		sb.WriteByte('>')
	}
}

// CoordinationAnnotated renders a conj category as the X\X self-adjunct it
// stands for, e.g. NP[conj] becomes (NP{Y}\NP{Y}){_}. Non-conj categories
// render as Annotated.
func (c *Category) CoordinationAnnotated() string {
	if !c.attrs.Conj {
		return c.annotated
	}
	base := c.WithConj(false)
	shifted := RemapVars(base, func(v int) int { return v + 1 })
	return NewComplex(shifted, Backward, shifted, Attrs{}).Annotated()
}

package ast

import (
	"strconv"
	"strings"
)

// ExprString returns a source-syntax representation of an expression.
// Compound sub-expressions are parenthesized, so the output is canonical
// rather than a byte-for-byte copy of the input.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

// PatternString returns a source-syntax representation of a pattern.
func PatternString(p Pattern) string {
	var sb strings.Builder
	patternString(&sb, p)
	return sb.String()
}

// TypeExprString returns a source-syntax representation of a type
// annotation, in the bracketed style.
func TypeExprString(t TypeExpr) string {
	var sb strings.Builder
	typeExprString(&sb, t)
	return sb.String()
}

func exprString(sb *strings.Builder, simple bool, e Expr) {
	switch et := e.(type) {
	case *NumberLit:
		sb.WriteString(strconv.FormatFloat(et.Value, 'f', -1, 64))

	case *StringLit:
		sb.WriteString(strconv.Quote(et.Value))

	case *BoolLit:
		if et.Value {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}

	case *NullLit:
		sb.WriteString("null")

	case *UndefinedLit:
		sb.WriteString("undefined")

	case *Var:
		sb.WriteString(et.Name)

	case *ArrayLit:
		sb.WriteByte('[')
		for i, elem := range et.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, elem)
		}
		sb.WriteByte(']')

	case *DictLit:
		sb.WriteByte('[')
		for i, entry := range et.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, entry.Key)
			sb.WriteString(": ")
			exprString(sb, false, entry.Value)
		}
		sb.WriteByte(']')

	case *RecordLit:
		sb.WriteByte('{')
		for i, field := range et.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(field.Name)
			sb.WriteString(": ")
			exprString(sb, false, field.Value)
		}
		sb.WriteByte('}')

	case *Select:
		exprString(sb, true, et.Object)
		sb.WriteByte('.')
		sb.WriteString(et.Field)

	case *Index:
		exprString(sb, true, et.Container)
		sb.WriteByte('[')
		exprString(sb, false, et.Index)
		sb.WriteByte(']')

	case *Func:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteByte('(')
		for i, param := range et.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(param.Name)
			if param.Annot != nil {
				sb.WriteString(": ")
				typeExprString(sb, param.Annot)
			}
		}
		sb.WriteByte(')')
		if et.RetAnnot != nil {
			sb.WriteString(": ")
			typeExprString(sb, et.RetAnnot)
		}
		sb.WriteString(" => ")
		exprString(sb, false, et.Body)
		if simple {
			sb.WriteByte(')')
		}

	case *Call:
		exprString(sb, true, et.Func)
		sb.WriteByte('(')
		for i, arg := range et.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, arg)
		}
		sb.WriteByte(')')

	case *Binary:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, true, et.Left)
		sb.WriteByte(' ')
		sb.WriteString(et.Op.String())
		sb.WriteByte(' ')
		exprString(sb, true, et.Right)
		if simple {
			sb.WriteByte(')')
		}

	case *Unary:
		sb.WriteString(et.Op.String())
		exprString(sb, true, et.Operand)

	case *If:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("if (")
		exprString(sb, false, et.Cond)
		sb.WriteString(") ")
		exprString(sb, true, et.Then)
		if et.Else != nil {
			sb.WriteString(" else ")
			exprString(sb, true, et.Else)
		}
		if simple {
			sb.WriteByte(')')
		}

	case *Block:
		sb.WriteString("{ ")
		for _, stmt := range et.Stmts {
			exprString(sb, false, stmt)
			sb.WriteString("; ")
		}
		exprString(sb, false, et.Result)
		sb.WriteString(" }")

	case *Match:
		sb.WriteString("match ")
		exprString(sb, true, et.Value)
		sb.WriteString(" { ")
		for i, c := range et.Cases {
			if i > 0 {
				sb.WriteString(", ")
			}
			patternString(sb, c.Pattern)
			if c.Guard != nil {
				sb.WriteString(" if ")
				exprString(sb, false, c.Guard)
			}
			sb.WriteString(" => ")
			exprString(sb, false, c.Body)
		}
		sb.WriteString(" }")

	case *Let:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("let ")
		for i, b := range et.Bindings {
			if i > 0 {
				sb.WriteString(" and ")
			}
			sb.WriteString(b.Name)
			if b.Annot != nil {
				sb.WriteString(": ")
				typeExprString(sb, b.Annot)
			}
			sb.WriteString(" = ")
			exprString(sb, false, b.Init)
		}
		if simple {
			sb.WriteByte(')')
		}
	}
}

func patternString(sb *strings.Builder, p Pattern) {
	switch pt := p.(type) {
	case *LitPattern:
		exprString(sb, false, pt.Value)
	case *VarPattern:
		sb.WriteString(pt.Name)
	case *WildcardPattern:
		sb.WriteByte('_')
	}
}

func typeExprString(sb *strings.Builder, t TypeExpr) {
	switch tt := t.(type) {
	case *PrimType:
		sb.WriteString(tt.Name)
	case *ArrayType:
		sb.WriteByte('[')
		typeExprString(sb, tt.Elem)
		sb.WriteByte(']')
	case *DictType:
		sb.WriteByte('[')
		typeExprString(sb, tt.Key)
		sb.WriteString(": ")
		typeExprString(sb, tt.Value)
		sb.WriteByte(']')
	case *FuncType:
		sb.WriteByte('(')
		for i, param := range tt.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			typeExprString(sb, param)
		}
		sb.WriteString(") => ")
		typeExprString(sb, tt.Return)
	case *VarType:
		sb.WriteString(tt.Name)
	}
}

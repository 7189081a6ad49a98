// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{
			varNames: make(map[int]string, 16),
			rowNames: make(map[int]string, 16),
		}
	},
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	for k := range p.varNames {
		delete(p.varNames, k)
	}
	for k := range p.rowNames {
		delete(p.rowNames, k)
	}
	p.varCount, p.rowCount = 0, 0
	p.sb.Reset()
	printerPool.Put(p)
}

type typePrinter struct {
	varNames map[int]string
	rowNames map[int]string
	varCount int
	rowCount int
	sb       strings.Builder
}

// TypeString returns a string representation of a Type, in the surface
// syntax of type annotations. Unnamed type variables are displayed as
// `a`, `b`, ... in order of first use; row variables as `r0`, `r1`, ...
func TypeString(t Type) string {
	p := newTypePrinter()
	typeString(p, t)
	s := p.sb.String()
	p.Release()
	return s
}

func getVarName(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return string(rune('a'+i%26)) + strconv.Itoa(i/26)
}

func (p *typePrinter) varName(tv *Var) string {
	if name, ok := p.varNames[tv.Id]; ok {
		return name
	}
	name := tv.Name
	if name == "" {
		name = getVarName(p.varCount)
		p.varCount++
	}
	p.varNames[tv.Id] = name
	return name
}

func (p *typePrinter) rowName(rv *RowVar) string {
	if name, ok := p.rowNames[rv.Id]; ok {
		return name
	}
	name := "r" + strconv.Itoa(p.rowCount)
	p.rowCount++
	p.rowNames[rv.Id] = name
	return name
}

func typeString(p *typePrinter, t Type) {
	switch t := t.(type) {
	case *Const:
		p.sb.WriteString(t.Name)

	case *Var:
		p.sb.WriteString(p.varName(t))

	case *RowVar:
		p.sb.WriteString(p.rowName(t))

	case *Array:
		p.sb.WriteByte('[')
		typeString(p, t.Elem)
		p.sb.WriteByte(']')

	case *Dict:
		p.sb.WriteByte('[')
		typeString(p, t.Key)
		p.sb.WriteString(": ")
		typeString(p, t.Value)
		p.sb.WriteByte(']')

	case *Arrow:
		p.sb.WriteByte('(')
		for i, param := range t.Params {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, param)
		}
		p.sb.WriteString(") => ")
		typeString(p, t.Return)

	case *Record:
		p.sb.WriteByte('{')
		i := 0
		t.Row.Fields.Range(func(name string, ft Type) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(name)
			p.sb.WriteString(": ")
			typeString(p, ft)
			i++
			return true
		})
		if t.Row.Tail != nil {
			p.sb.WriteString(" | ")
			p.sb.WriteString(p.rowName(t.Row.Tail))
		}
		p.sb.WriteByte('}')
	}
}

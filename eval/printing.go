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

package eval

import (
	"math"
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &valuePrinter{} },
}

type valuePrinter struct {
	sb strings.Builder
}

func newValuePrinter() *valuePrinter { return printerPool.Get().(*valuePrinter) }

func (p *valuePrinter) Release() {
	p.sb.Reset()
	printerPool.Put(p)
}

// ToString renders a value the way the language surface displays it. A
// string renders verbatim with no quotes; strings nested inside arrays,
// dictionaries and records render quoted.
func ToString(v Value) string {
	if v.Tag == TagString {
		return v.Data.(string)
	}
	p := newValuePrinter()
	valueString(p, v)
	s := p.sb.String()
	p.Release()
	return s
}

// FormatNumber renders a number with no decimal point for integral values
// and shortest round-trip formatting otherwise.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f):
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func valueString(p *valuePrinter, v Value) {
	switch v.Tag {
	case TagNumber:
		p.sb.WriteString(FormatNumber(v.Data.(float64)))

	case TagString:
		p.sb.WriteString(strconv.Quote(v.Data.(string)))

	case TagBool:
		if v.Data.(bool) {
			p.sb.WriteString("true")
		} else {
			p.sb.WriteString("false")
		}

	case TagNull:
		p.sb.WriteString("null")

	case TagUndefined:
		p.sb.WriteString("undefined")

	case TagArray:
		p.sb.WriteByte('[')
		v.Data.(*ArrayObject).Range(func(i int, elem Value) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			valueString(p, elem)
			return true
		})
		p.sb.WriteByte(']')

	case TagDict:
		d := v.Data.(*DictObject)
		if d.Len() == 0 {
			p.sb.WriteString("[:]")
			return
		}
		p.sb.WriteByte('[')
		i := 0
		d.Range(func(key, value Value) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			valueString(p, key)
			p.sb.WriteString(": ")
			valueString(p, value)
			i++
			return true
		})
		p.sb.WriteByte(']')

	case TagRecord:
		p.sb.WriteByte('{')
		i := 0
		v.Data.(*RecordObject).Range(func(name string, field Value) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(name)
			p.sb.WriteString(": ")
			valueString(p, field)
			i++
			return true
		})
		p.sb.WriteByte('}')

	case TagClosure:
		p.sb.WriteString("<function>")

	case TagBuiltin:
		p.sb.WriteString("<builtin ")
		p.sb.WriteString(v.Data.(*Builtin).Name)
		p.sb.WriteByte('>')

	default:
		p.sb.WriteString("<" + v.Tag.String() + ">")
	}
}

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
	"github.com/benbjohnson/immutable"

	"github.com/wdamron/rowan/ast"
)

// Tag identifies the runtime kind of a value.
type Tag int

const (
	TagNumber Tag = iota
	TagString
	TagBool
	TagNull
	TagUndefined
	TagArray
	TagDict
	TagRecord
	TagClosure
	TagBuiltin
	// tagPending marks a let slot whose initializer has not finished
	// evaluating. It never escapes the evaluator.
	tagPending
)

var tagNames = [...]string{
	TagNumber:    "number",
	TagString:    "string",
	TagBool:      "boolean",
	TagNull:      "null",
	TagUndefined: "undefined",
	TagArray:     "array",
	TagDict:      "dictionary",
	TagRecord:    "record",
	TagClosure:   "function",
	TagBuiltin:   "function",
	tagPending:   "pending",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// Value is the universal runtime value. Data holds the tag-specific payload:
// float64 for numbers, string for strings, bool for booleans, nil for null
// and undefined, and a pointer to the object type for the remaining tags.
type Value struct {
	Tag  Tag
	Data interface{}
}

var (
	// Null is the sole null value.
	Null = Value{Tag: TagNull}
	// Undefined is the sole undefined value.
	Undefined = Value{Tag: TagUndefined}
	// True is the boolean true value.
	True = Value{Tag: TagBool, Data: true}
	// False is the boolean false value.
	False = Value{Tag: TagBool, Data: false}

	pendingValue = Value{Tag: tagPending}
)

// Create a number value.
func Num(f float64) Value { return Value{Tag: TagNumber, Data: f} }

// Create a string value.
func Str(s string) Value { return Value{Tag: TagString, Data: s} }

// Create a boolean value.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Create an array value.
func Arr(a *ArrayObject) Value { return Value{Tag: TagArray, Data: a} }

// Create a dictionary value.
func DictVal(d *DictObject) Value { return Value{Tag: TagDict, Data: d} }

// Create a record value.
func RecVal(r *RecordObject) Value { return Value{Tag: TagRecord, Data: r} }

// Create a function value from a closure.
func FunVal(c *Closure) Value { return Value{Tag: TagClosure, Data: c} }

// Create a function value from a builtin.
func BuiltinVal(b *Builtin) Value { return Value{Tag: TagBuiltin, Data: b} }

// Closure is a user function paired with the environment it closed over.
type Closure struct {
	Params []string
	Body   ast.Expr
	Env    *Env
}

// Builtin is a named host function. Impl receives exactly Arity evaluated
// arguments and performs its own shape checks on them.
type Builtin struct {
	Name  string
	Arity int
	Impl  func(args []Value) (Value, error)
}

var emptyList = immutable.NewList()

// ArrayObject is a persistent array. Operations which return a new array
// share structure with the receiver.
type ArrayObject struct {
	l *immutable.List
}

// Create an empty array.
func NewArray() *ArrayObject { return &ArrayObject{emptyList} }

// Get the length of the array.
func (a *ArrayObject) Len() int { return a.l.Len() }

// Get the element at index i. The index must be within bounds.
func (a *ArrayObject) Get(i int) Value { return a.l.Get(i).(Value) }

// Append an element to the end of the array, returning a new array.
func (a *ArrayObject) Append(v Value) *ArrayObject { return &ArrayObject{a.l.Append(v)} }

// Slice the array between the start (inclusive) and end (exclusive)
// indexes, returning a new array.
func (a *ArrayObject) Slice(start, end int) *ArrayObject { return &ArrayObject{a.l.Slice(start, end)} }

// Range iterates over the array in order while f returns true.
func (a *ArrayObject) Range(f func(i int, v Value) bool) {
	iter := a.l.Iterator()
	for !iter.Done() {
		i, v := iter.Next()
		if !f(i, v.(Value)) {
			return
		}
	}
}

// ArrayBuilder amortizes array construction.
type ArrayBuilder struct {
	b *immutable.ListBuilder
}

// Create an array builder.
func NewArrayBuilder() ArrayBuilder {
	return ArrayBuilder{immutable.NewListBuilder(emptyList)}
}

// Get the current length of the array under construction.
func (b ArrayBuilder) Len() int { return b.b.Len() }

// Append an element to the end of the array under construction.
func (b ArrayBuilder) Append(v Value) { b.b.Append(v) }

// Build the array.
func (b ArrayBuilder) Build() *ArrayObject { return &ArrayObject{b.b.List()} }

// DictEntry is a single key/value pair of a dictionary.
type DictEntry struct {
	Key   Value
	Value Value
}

// DictObject is an insertion-ordered mapping with structurally-compared
// keys. Lookups scan the entries in order.
type DictObject struct {
	entries []DictEntry
}

// Create an empty dictionary.
func NewDict() *DictObject { return &DictObject{} }

// Get the number of entries in the dictionary.
func (d *DictObject) Len() int { return len(d.entries) }

// Get the value bound to a key equal to key.
func (d *DictObject) Get(key Value) (Value, bool) {
	for i := range d.entries {
		if Equal(d.entries[i].Key, key) {
			return d.entries[i].Value, true
		}
	}
	return Value{}, false
}

// Check whether the dictionary contains a key equal to key.
func (d *DictObject) Has(key Value) bool {
	_, ok := d.Get(key)
	return ok
}

// Set binds key to value, returning a new dictionary. An existing key keeps
// its position; a new key is appended.
func (d *DictObject) Set(key, value Value) *DictObject {
	entries := make([]DictEntry, len(d.entries), len(d.entries)+1)
	copy(entries, d.entries)
	for i := range entries {
		if Equal(entries[i].Key, key) {
			entries[i].Value = value
			return &DictObject{entries}
		}
	}
	return &DictObject{append(entries, DictEntry{key, value})}
}

// Delete removes the entry for key if present, returning a new dictionary.
func (d *DictObject) Delete(key Value) *DictObject {
	entries := make([]DictEntry, 0, len(d.entries))
	for i := range d.entries {
		if !Equal(d.entries[i].Key, key) {
			entries = append(entries, d.entries[i])
		}
	}
	return &DictObject{entries}
}

// Range iterates over the entries in insertion order while f returns true.
func (d *DictObject) Range(f func(key, value Value) bool) {
	for i := range d.entries {
		if !f(d.entries[i].Key, d.entries[i].Value) {
			return
		}
	}
}

// DictBuilder constructs a dictionary in place. Setting an existing key
// overwrites its value without moving it.
type DictBuilder struct {
	d *DictObject
}

// Create a dictionary builder.
func NewDictBuilder() DictBuilder { return DictBuilder{&DictObject{}} }

// Get the current number of entries in the dictionary under construction.
func (b DictBuilder) Len() int { return len(b.d.entries) }

// Set binds key to value in the dictionary under construction.
func (b DictBuilder) Set(key, value Value) {
	for i := range b.d.entries {
		if Equal(b.d.entries[i].Key, key) {
			b.d.entries[i].Value = value
			return
		}
	}
	b.d.entries = append(b.d.entries, DictEntry{key, value})
}

// Build the dictionary.
func (b DictBuilder) Build() *DictObject { return b.d }

// RecordObject is a record value, preserving field insertion order.
type RecordObject struct {
	Entries map[string]Value
	Keys    []string
}

// Create an empty record with capacity for size fields.
func NewRecord(size int) *RecordObject {
	return &RecordObject{Entries: make(map[string]Value, size)}
}

// Get the number of fields in the record.
func (r *RecordObject) Len() int { return len(r.Keys) }

// Get the value of the named field.
func (r *RecordObject) Get(name string) (Value, bool) {
	v, ok := r.Entries[name]
	return v, ok
}

// Set assigns the named field, appending the name on first write.
func (r *RecordObject) Set(name string, v Value) {
	if _, ok := r.Entries[name]; !ok {
		r.Keys = append(r.Keys, name)
	}
	r.Entries[name] = v
}

// Range iterates over the fields in insertion order while f returns true.
func (r *RecordObject) Range(f func(name string, v Value) bool) {
	for _, name := range r.Keys {
		if !f(name, r.Entries[name]) {
			return
		}
	}
}

// Equal compares two values structurally. Numbers, strings and booleans
// compare by value, arrays element-wise in order, records by field set and
// field values, and dictionaries by entry set regardless of insertion
// order. Functions compare by identity.
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagNumber:
		return a.Data.(float64) == b.Data.(float64)
	case TagString:
		return a.Data.(string) == b.Data.(string)
	case TagBool:
		return a.Data.(bool) == b.Data.(bool)
	case TagNull, TagUndefined:
		return true
	case TagArray:
		x, y := a.Data.(*ArrayObject), b.Data.(*ArrayObject)
		if x.Len() != y.Len() {
			return false
		}
		equal := true
		x.Range(func(i int, v Value) bool {
			equal = Equal(v, y.Get(i))
			return equal
		})
		return equal
	case TagRecord:
		x, y := a.Data.(*RecordObject), b.Data.(*RecordObject)
		if x.Len() != y.Len() {
			return false
		}
		equal := true
		x.Range(func(name string, v Value) bool {
			w, ok := y.Get(name)
			equal = ok && Equal(v, w)
			return equal
		})
		return equal
	case TagDict:
		x, y := a.Data.(*DictObject), b.Data.(*DictObject)
		if x.Len() != y.Len() {
			return false
		}
		equal := true
		x.Range(func(key, v Value) bool {
			w, ok := y.Get(key)
			equal = ok && Equal(v, w)
			return equal
		})
		return equal
	case TagClosure, TagBuiltin:
		return a.Data == b.Data
	}
	return false
}

// Truthy reports whether a value counts as true in a condition. Null,
// undefined, false, zero and the empty string are falsy; every other value
// is truthy.
func Truthy(v Value) bool {
	switch v.Tag {
	case TagNull, TagUndefined:
		return false
	case TagBool:
		return v.Data.(bool)
	case TagNumber:
		return v.Data.(float64) != 0
	case TagString:
		return v.Data.(string) != ""
	}
	return true
}

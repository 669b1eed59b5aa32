// Package object implements the PDF indirect-object graph: a tagged
// Object variant, the ObjectID identity used throughout the engine, and
// the lexer/parser that read it. Document, Load and Write live in
// internal/pdfcore/document.
package object

import "fmt"

// Kind tags the variant held by an Object.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindReal
	KindName
	KindString
	KindArray
	KindDictionary
	KindStream
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindReal:
		return "Real"
	case KindName:
		return "Name"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindDictionary:
		return "Dictionary"
	case KindStream:
		return "Stream"
	case KindReference:
		return "Reference"
	default:
		return "Unknown"
	}
}

// ObjectID identifies an entry in a Document's object table.
type ObjectID struct {
	Number     int64
	Generation int64
}

func (id ObjectID) String() string {
	return fmt.Sprintf("%d %d R", id.Number, id.Generation)
}

// Object is the closed, tagged PDF value variant. Exactly one of the
// typed fields is meaningful, selected by Kind; callers check Kind
// before reading a field.
type Object struct {
	Kind Kind

	Bool   bool
	Int    int64
	Real   float64
	Name   string // decoded bytes-as-string, NOT UTF-8 validated
	Str    []byte
	IsHex  bool
	Items  []Object
	Dict   *Dict
	Stream []byte // raw, still-encoded stream bytes
	Ref    ObjectID
}

// Null is the shared Null object value.
var Null = Object{Kind: KindNull}

func Boolean(v bool) Object     { return Object{Kind: KindBoolean, Bool: v} }
func Integer(v int64) Object    { return Object{Kind: KindInteger, Int: v} }
func Real(v float64) Object     { return Object{Kind: KindReal, Real: v} }
func NameObj(v string) Object   { return Object{Kind: KindName, Name: v} }
func StringObj(v string) Object { return Object{Kind: KindString, Str: []byte(v)} }
func Reference(id ObjectID) Object {
	return Object{Kind: KindReference, Ref: id}
}
func ArrayObj(items []Object) Object {
	return Object{Kind: KindArray, Items: items}
}
func DictObj(d *Dict) Object {
	return Object{Kind: KindDictionary, Dict: d}
}

// Dict is an insertion-order-preserving mapping from Name to Object,
// matching spec.md's "insertion-order-preserving is not required" data
// model note while still giving deterministic serialization output.
type Dict struct {
	keys   []string
	values map[string]Object
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{values: make(map[string]Object)}
}

// Get returns the value for key and whether it was present.
func (d *Dict) Get(key string) (Object, bool) {
	if d == nil {
		return Null, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Set inserts or replaces key's value, preserving first-insertion order.
func (d *Dict) Set(key string, v Object) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Delete removes key, if present.
func (d *Dict) Delete(key string) {
	if _, exists := d.values[key]; !exists {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns keys in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Clone returns a deep copy of d.
func (d *Dict) Clone() *Dict {
	nd := NewDict()
	if d == nil {
		return nd
	}
	for _, k := range d.keys {
		nd.Set(k, d.values[k].Clone())
	}
	return nd
}

// Clone returns a deep copy of o.
func (o Object) Clone() Object {
	switch o.Kind {
	case KindArray:
		items := make([]Object, len(o.Items))
		for i, it := range o.Items {
			items[i] = it.Clone()
		}
		return Object{Kind: KindArray, Items: items}
	case KindDictionary:
		return Object{Kind: KindDictionary, Dict: o.Dict.Clone()}
	case KindStream:
		data := make([]byte, len(o.Stream))
		copy(data, o.Stream)
		return Object{Kind: KindStream, Dict: o.Dict.Clone(), Stream: data}
	case KindString:
		s := make([]byte, len(o.Str))
		copy(s, o.Str)
		return Object{Kind: KindString, Str: s, IsHex: o.IsHex}
	default:
		return o
	}
}

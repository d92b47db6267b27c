/*
Copyright 2025 Codenotary Inc. All rights reserved.

SPDX-License-Identifier: BUSL-1.1
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://mariadb.com/bsl11/

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package doctree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// Kind is the JSON type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMap
)

var kindNames = map[Kind]string{
	KindNull:     "null",
	KindBool:     "bool",
	KindNumber:   "number",
	KindString:   "string",
	KindSequence: "sequence",
	KindMap:      "map",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Value is a JSON value of any shape. Map entries keep the order in which
// they were decoded; numbers keep their literal text.
type Value struct {
	kind   Kind
	b      bool
	s      string
	items  []Value
	fields []Field
}

// Field is one entry of a map Value.
type Field struct {
	Key   string
	Value Value
}

func Null() Value {
	return Value{kind: KindNull}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number wraps a JSON number literal.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, s: n.String()}
}

func String(s string) Value {
	return Value{kind: KindString, s: s}
}

func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: items}
}

// Map builds a map Value. When a key repeats, the later value replaces the
// earlier one in its original position.
func Map(fields ...Field) Value {
	v := Value{kind: KindMap}
	for _, f := range fields {
		v.set(f.Key, f.Value)
	}
	return v
}

func (v *Value) set(key string, val Value) {
	for i := range v.fields {
		if v.fields[i].Key == key {
			v.fields[i].Value = val
			return
		}
	}
	v.fields = append(v.fields, Field{Key: key, Value: val})
}

func (v Value) Kind() Kind {
	return v.kind
}

// Items returns the elements of a sequence, nil for any other kind.
func (v Value) Items() []Value {
	return v.items
}

// Fields returns the entries of a map in order, nil for any other kind.
func (v Value) Fields() []Field {
	return v.fields
}

// Get returns the value of a map entry.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Truthy reports whether v is displayable: null, false, zero and the empty
// string are not. Sequences and maps are truthy even when empty.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			// out of range literals are non-zero
			return true
		}
		return f != 0 && !math.IsNaN(f)
	case KindString:
		return v.s != ""
	case KindSequence, KindMap:
		return true
	}
	return false
}

// String renders scalars the way they are displayed in a tree leaf.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber, KindString:
		return v.s
	}

	bs, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(bs)
}

// Interface converts v into the generic form produced by encoding/json,
// with numbers as json.Number. Map order is lost.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return json.Number(v.s)
	case KindString:
		return v.s
	case KindSequence:
		items := make([]interface{}, len(v.items))
		for i, it := range v.items {
			items[i] = it.Interface()
		}
		return items
	case KindMap:
		m := make(map[string]interface{}, len(v.fields))
		for _, f := range v.fields {
			m[f.Key] = f.Value.Interface()
		}
		return m
	}
	return nil
}

// Equal reports whether v and o hold the same JSON, including map order.
func (v Value) Equal(o Value) bool {
	return reflect.DeepEqual(v.normalize(), o.normalize())
}

func (v Value) normalize() Value {
	n := Value{kind: v.kind, b: v.b, s: v.s}
	for _, it := range v.items {
		n.items = append(n.items, it.normalize())
	}
	for _, f := range v.fields {
		n.fields = append(n.fields, Field{Key: f.Key, Value: f.Value.normalize()})
	}
	return n
}

// MarshalJSON writes map entries in their stored order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		buf.WriteString(v.s)
	case KindString:
		bs, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(bs)
	case KindSequence:
		buf.WriteByte('[')
		for i, it := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := it.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMap:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			bs, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(bs)
			buf.WriteByte(':')
			if err := f.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, v.kind)
	}
	return nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Parse decodes exactly one JSON value, keeping map entry order.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("%w: trailing data after value", ErrMalformedJSON)
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			seq := Value{kind: KindSequence, items: []Value{}}
			for dec.More() {
				it, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				seq.items = append(seq.items, it)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return seq, nil
		case '{':
			m := Value{kind: KindMap, fields: []Field{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected map key %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				m.set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return m, nil
		}
	}

	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// FromInterface converts the generic values produced by encoding/json (or
// built by hand) into a Value. Go maps have no order, so their keys are
// sorted.
func FromInterface(i interface{}) (Value, error) {
	switch t := i.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case float64:
		return Number(json.Number(strconv.FormatFloat(t, 'f', -1, 64))), nil
	case float32:
		return Number(json.Number(strconv.FormatFloat(float64(t), 'f', -1, 32))), nil
	case int:
		return Number(json.Number(strconv.Itoa(t))), nil
	case int64:
		return Number(json.Number(strconv.FormatInt(t, 10))), nil
	case int32:
		return Number(json.Number(strconv.FormatInt(int64(t), 10))), nil
	case uint64:
		return Number(json.Number(strconv.FormatUint(t, 10))), nil
	case uint32:
		return Number(json.Number(strconv.FormatUint(uint64(t), 10))), nil
	case []interface{}:
		seq := Value{kind: KindSequence, items: make([]Value, 0, len(t))}
		for _, it := range t {
			v, err := FromInterface(it)
			if err != nil {
				return Value{}, err
			}
			seq.items = append(seq.items, v)
		}
		return seq, nil
	case []string:
		seq := Value{kind: KindSequence, items: make([]Value, 0, len(t))}
		for _, it := range t {
			seq.items = append(seq.items, String(it))
		}
		return seq, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		m := Value{kind: KindMap, fields: make([]Field, 0, len(t))}
		for _, k := range keys {
			v, err := FromInterface(t[k])
			if err != nil {
				return Value{}, err
			}
			m.fields = append(m.fields, Field{Key: k, Value: v})
		}
		return m, nil
	}

	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, i)
}

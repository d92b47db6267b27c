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

// Package indexkey encodes the list of indexed fields and the optional
// ordering key of an index into the single string used as the index name,
// and decodes such names back into their parts.
//
// An index over fields "owner" and "status" ordered by "created" is named
//
//	owner__status__ORDER_BY__created
package indexkey

import (
	"strings"
)

const (
	// FieldSeparator joins indexed field names.
	FieldSeparator = "__"
	// OrderBySeparator precedes the ordering key, if any.
	OrderBySeparator = "__ORDER_BY__"
)

// Key is the structured form of an index name.
type Key struct {
	Fields      []string
	OrderingKey string
	// Ordered is false when the name carries no ordering key.
	Ordered bool
}

// Encode returns the index name for fields without an ordering key.
func Encode(fields []string) (string, error) {
	return Key{Fields: fields}.Encode()
}

// EncodeOrdered returns the index name for fields ordered by orderingKey.
func EncodeOrdered(fields []string, orderingKey string) (string, error) {
	return Key{Fields: fields, OrderingKey: orderingKey, Ordered: true}.Encode()
}

// MustEncode is like Key.Encode but panics on invalid field names.
func MustEncode(k Key) string {
	id, err := k.Encode()
	if err != nil {
		panic(err)
	}
	return id
}

// Encode joins the fields with FieldSeparator and appends the ordering key
// after OrderBySeparator when k.Ordered is set. An empty field list encodes
// to the empty string (plus the ordering suffix, if any).
func (k Key) Encode() (string, error) {
	for i, f := range k.Fields {
		if f == "" {
			return "", &InvalidFieldNameError{Field: f, Position: i, Reason: "empty field name"}
		}

		if strings.Contains(f, FieldSeparator) {
			return "", &InvalidFieldNameError{Field: f, Position: i, Reason: "contains reserved delimiter " + FieldSeparator}
		}
	}

	id := k.encode()

	// names such as "a_" followed by "b", or "ORDER_BY" in a middle position,
	// pass the checks above but would not decode back to the same fields
	decoded := Decode(id)

	if len(k.Fields) > 0 {
		for i, f := range k.Fields {
			if i >= len(decoded.Fields) || decoded.Fields[i] != f {
				return "", &InvalidFieldNameError{Field: f, Position: i, Reason: "ambiguous with reserved delimiters"}
			}
		}

		if len(decoded.Fields) != len(k.Fields) {
			last := len(k.Fields) - 1
			return "", &InvalidFieldNameError{Field: k.Fields[last], Position: last, Reason: "ambiguous with reserved delimiters"}
		}
	}

	if decoded.Ordered != k.Ordered || decoded.OrderingKey != k.OrderingKey {
		last := len(k.Fields) - 1
		if last < 0 {
			return id, nil
		}
		return "", &InvalidFieldNameError{Field: k.Fields[last], Position: last, Reason: "ambiguous with reserved delimiters"}
	}

	return id, nil
}

func (k Key) encode() string {
	var sb strings.Builder

	sb.WriteString(strings.Join(k.Fields, FieldSeparator))

	if k.Ordered {
		sb.WriteString(OrderBySeparator)
		sb.WriteString(k.OrderingKey)
	}

	return sb.String()
}

// Decode splits id on the first OrderBySeparator; the left segment is split
// on FieldSeparator into fields and the right segment, if present, is the
// ordering key verbatim.
//
// Decode never fails: malformed names degrade to a best-effort split. As with
// strings.Split, an empty left segment yields a single empty field.
func Decode(id string) Key {
	parts := strings.SplitN(id, OrderBySeparator, 2)

	k := Key{
		Fields: strings.Split(parts[0], FieldSeparator),
	}

	if len(parts) == 2 {
		k.OrderingKey = parts[1]
		k.Ordered = true
	}

	return k
}

// String returns the encoded name without validating it.
func (k Key) String() string {
	return k.encode()
}

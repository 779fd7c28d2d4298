package jsonmatch

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"

	json "github.com/goccy/go-json"
)

// Kind identifies the type of a JSON value.
type Kind int

// JSON value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name used in mismatch details.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Parse errors.
var (
	ErrEmptyDocument = errors.New("empty JSON document")
	ErrTrailingData  = errors.New("unexpected data after top-level JSON value")
)

// Value is an immutable parsed JSON value.
// The zero Value is JSON null.
type Value struct {
	kind Kind
	b    bool
	s    string   // string value, or the number literal
	num  *big.Rat // exact numeric value for KindNumber
	arr  []Value
	obj  map[string]Value
	keys []string // sorted object keys
}

// Parse parses a single JSON document.
// Decoding follows RFC 8259 strictly: leading zeros, bare fractions,
// misspelled literals and raw control characters are rejected.
// Numbers are kept exactly; they are never rounded through float64,
// so literals outside the float64 range are accepted.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, ErrEmptyDocument
	}

	dec := stdjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Value{}, err
	}

	var extra interface{}
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Value{}, ErrTrailingData
	}

	return fromInterface(raw)
}

// ParseString parses a single JSON document held in a string.
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

// fromInterface converts a decoded tree into a Value.
func fromInterface(v interface{}) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Value{kind: KindNull}, nil
	case bool:
		return Value{kind: KindBool, b: t}, nil
	case string:
		return Value{kind: KindString, s: t}, nil
	case json.Number:
		return numberValue(string(t))
	case float64:
		return numberValue(fmt.Sprint(t))
	case []interface{}:
		arr := make([]Value, len(t))
		for i, elem := range t {
			ev, err := fromInterface(elem)
			if err != nil {
				return Value{}, err
			}
			arr[i] = ev
		}
		return Value{kind: KindArray, arr: arr}, nil
	case map[string]interface{}:
		obj := make(map[string]Value, len(t))
		keys := make([]string, 0, len(t))
		for k, elem := range t {
			ev, err := fromInterface(elem)
			if err != nil {
				return Value{}, err
			}
			obj[k] = ev
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return Value{kind: KindObject, obj: obj, keys: keys}, nil
	default:
		return Value{}, fmt.Errorf("unsupported JSON value of type %T", v)
	}
}

func numberValue(lit string) (Value, error) {
	r, ok := new(big.Rat).SetString(lit)
	if !ok {
		return Value{}, fmt.Errorf("invalid JSON number %q", lit)
	}
	return Value{kind: KindNumber, s: lit, num: r}, nil
}

// Kind returns the value's JSON type.
func (v Value) Kind() Kind {
	return v.kind
}

// Len returns the number of elements of an array or members of an object.
// It returns 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.keys)
	default:
		return 0
	}
}

// Keys returns the object's keys in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Get returns the member of an object under key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	m, ok := v.obj[key]
	return m, ok
}

// Interface returns the value as a plain Go tree of map[string]interface{},
// []interface{}, string, bool, nil and json.Number.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return json.Number(v.s)
	case KindString:
		return v.s
	case KindArray:
		out := make([]interface{}, len(v.arr))
		for i, elem := range v.arr {
			out[i] = elem.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, len(v.obj))
		for k, elem := range v.obj {
			out[k] = elem.Interface()
		}
		return out
	default:
		return nil
	}
}

// Pretty renders the value with two-space indentation and sorted keys.
func (v Value) Pretty() string {
	data, err := encode(v.Interface(), "  ")
	if err != nil {
		return v.compact()
	}
	return data
}

// String renders the value as compact JSON.
func (v Value) String() string {
	return v.compact()
}

func (v Value) compact() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return v.s
	}
	data, err := encode(v.Interface(), "")
	if err != nil {
		return fmt.Sprintf("<%s>", v.kind)
	}
	return data
}

// encode renders v without HTML escaping so output mirrors the input text.
func encode(v interface{}, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

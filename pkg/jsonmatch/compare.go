package jsonmatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// maxDetailValueLen caps how much of a value is quoted in a detail line.
const maxDetailValueLen = 80

// Equal reports whether two values are structurally equal.
func Equal(a, b Value) bool {
	c := comparer{}
	c.compare(nil, a, b)
	return len(c.diffs) == 0
}

// Compare returns the divergences between expected and actual in traversal
// order. With all set to false it stops at the first one.
func Compare(expected, actual Value, all bool) []Difference {
	c := comparer{all: all}
	c.compare(nil, expected, actual)
	return c.diffs
}

// segment is one step of a path: an object key or an array index.
type segment struct {
	key   string
	index int
	isIdx bool
}

type comparer struct {
	all   bool
	diffs []Difference
}

// compare walks both trees depth first. It returns true when the walk should
// stop.
func (c *comparer) compare(path []segment, exp, act Value) bool {
	if exp.kind != act.kind {
		return c.record(path, fmt.Sprintf("expected %s, got %s", describe(exp), describe(act)))
	}

	switch exp.kind {
	case KindNull:
		return false
	case KindBool:
		if exp.b != act.b {
			return c.record(path, fmt.Sprintf("expected %t, got %t", exp.b, act.b))
		}
	case KindNumber:
		if exp.num.Cmp(act.num) != 0 {
			return c.record(path, fmt.Sprintf("expected %s, got %s", exp.s, act.s))
		}
	case KindString:
		if exp.s != act.s {
			return c.record(path, fmt.Sprintf("expected %s, got %s",
				strconv.Quote(exp.s), strconv.Quote(act.s)))
		}
	case KindArray:
		return c.compareArrays(path, exp, act)
	case KindObject:
		return c.compareObjects(path, exp, act)
	}
	return false
}

func (c *comparer) compareArrays(path []segment, exp, act Value) bool {
	if len(exp.arr) != len(act.arr) {
		if c.record(path, fmt.Sprintf("expected array of length %d, got length %d",
			len(exp.arr), len(act.arr))) {
			return true
		}
	}

	n := len(exp.arr)
	if len(act.arr) < n {
		n = len(act.arr)
	}
	for i := 0; i < n; i++ {
		if c.compare(extend(path, segment{index: i, isIdx: true}), exp.arr[i], act.arr[i]) {
			return true
		}
	}
	return false
}

func (c *comparer) compareObjects(path []segment, exp, act Value) bool {
	for _, key := range unionKeys(exp.keys, act.keys) {
		child := extend(path, segment{key: key})
		ev, inExp := exp.obj[key]
		av, inAct := act.obj[key]

		switch {
		case !inAct:
			if c.record(child, "missing key, expected "+quoteValue(ev)) {
				return true
			}
		case !inExp:
			if c.record(child, "unexpected key with value "+quoteValue(av)) {
				return true
			}
		default:
			if c.compare(child, ev, av) {
				return true
			}
		}
	}
	return false
}

// record appends a difference and reports whether the walk should stop.
func (c *comparer) record(path []segment, detail string) bool {
	c.diffs = append(c.diffs, Difference{
		Path:   renderPath(path),
		Expr:   pathExpr(path),
		Detail: detail,
	})
	return !c.all
}

// unionKeys merges two sorted key lists, dropping duplicates.
func unionKeys(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// extend returns a copy of path with seg appended, so sibling paths never
// share a backing array.
func extend(path []segment, seg segment) []segment {
	out := make([]segment, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}

// renderPath formats a path as "a.b[0]['c.d']". The root is "$".
func renderPath(path []segment) string {
	if len(path) == 0 {
		return "$"
	}
	var sb strings.Builder
	for i, seg := range path {
		switch {
		case seg.isIdx:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.index))
			sb.WriteByte(']')
		case isIdentifier(seg.key):
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(seg.key)
		default:
			sb.WriteString("['")
			sb.WriteString(strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(seg.key))
			sb.WriteString("']")
		}
	}
	return sb.String()
}

// pathExpr converts a path to a JSONPath expression rooted at "$".
func pathExpr(path []segment) jp.Expr {
	x := jp.R()
	for _, seg := range path {
		if seg.isIdx {
			x = x.N(seg.index)
		} else {
			x = x.C(seg.key)
		}
	}
	return x
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// describe names a value's type followed by its rendering, e.g. `string "1"`.
func describe(v Value) string {
	if v.kind == KindNull {
		return "null"
	}
	return v.kind.String() + " " + quoteValue(v)
}

// quoteValue renders a value for a detail line, truncating long composites.
func quoteValue(v Value) string {
	s := v.compact()
	if len(s) > maxDetailValueLen {
		return s[:maxDetailValueLen] + "..."
	}
	return s
}

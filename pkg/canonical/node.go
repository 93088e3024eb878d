package canonical

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

type kind int

const (
	kindScalar kind = iota
	kindSequence
	kindMapping
)

// Node is one value in a parameter tree: a scalar, an ordered
// sequence, or a string-keyed mapping. The three shapes are explicit
// variants, so sequence-versus-mapping never depends on runtime key
// sniffing. Callers must not rely on integer-keyed mappings behaving
// like sequences; sequences are built with Seq or from []any.
type Node struct {
	kind    kind
	scalar  string
	seq     []Node
	mapping map[string]Node
}

// String builds a scalar node from a string value.
func String(v string) Node {
	return Node{kind: kindScalar, scalar: v}
}

// Bool builds a scalar node from a bool value.
func Bool(v bool) Node {
	return Node{kind: kindScalar, scalar: strconv.FormatBool(v)}
}

// Int builds a scalar node from an integer value.
func Int(v int64) Node {
	return Node{kind: kindScalar, scalar: strconv.FormatInt(v, 10)}
}

// Float builds a scalar node from a float value, rendered with the
// shortest exact decimal representation.
func Float(v float64) Node {
	return Node{kind: kindScalar, scalar: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Decimal builds a scalar node from an arbitrary-precision decimal,
// rendered in plain notation so amounts never pick up exponents.
func Decimal(d *apd.Decimal) Node {
	return Node{kind: kindScalar, scalar: d.Text('f')}
}

// Seq builds an ordered sequence node. Element order is preserved
// through canonicalization.
func Seq(items ...Node) Node {
	seq := make([]Node, len(items))
	for i, it := range items {
		seq[i] = it.clone()
	}
	return Node{kind: kindSequence, seq: seq}
}

// Map builds a mapping node from the given entries. The entries are
// copied; key order is irrelevant because mappings are sorted when
// encoded.
func Map(entries map[string]Node) Node {
	mapping := make(map[string]Node, len(entries))
	for k, v := range entries {
		mapping[k] = v.clone()
	}
	return Node{kind: kindMapping, mapping: mapping}
}

// FromParams builds a mapping node from a generic parameter map. The
// input is deep-copied, so the caller's structure is never observed to
// change regardless of what the pipeline injects later. A nil map
// yields an empty mapping.
func FromParams(params map[string]any) Node {
	mapping := make(map[string]Node, len(params))
	for k, v := range params {
		mapping[k] = FromValue(v)
	}
	return Node{kind: kindMapping, mapping: mapping}
}

// FromValue converts a generic value into a node. Nested
// map[string]any values become mappings, []any values become
// sequences, pre-built nodes are copied, and everything else is
// rendered as a scalar.
func FromValue(v any) Node {
	switch t := v.(type) {
	case Node:
		return t.clone()
	case map[string]any:
		return FromParams(t)
	case []any:
		seq := make([]Node, len(t))
		for i, el := range t {
			seq[i] = FromValue(el)
		}
		return Node{kind: kindSequence, seq: seq}
	default:
		return Node{kind: kindScalar, scalar: formatScalar(v)}
	}
}

// Set adds or replaces a top-level entry on a mapping node. It is a
// no-op on scalars and sequences.
func (n *Node) Set(key string, value Node) {
	if n.kind != kindMapping {
		return
	}
	if n.mapping == nil {
		n.mapping = make(map[string]Node)
	}
	n.mapping[key] = value
}

func (n Node) clone() Node {
	switch n.kind {
	case kindSequence:
		seq := make([]Node, len(n.seq))
		for i, el := range n.seq {
			seq[i] = el.clone()
		}
		return Node{kind: kindSequence, seq: seq}
	case kindMapping:
		mapping := make(map[string]Node, len(n.mapping))
		for k, v := range n.mapping {
			mapping[k] = v.clone()
		}
		return Node{kind: kindMapping, mapping: mapping}
	default:
		return n
	}
}

func formatScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case *apd.Decimal:
		return t.Text('f')
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

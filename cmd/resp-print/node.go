package main

import (
	"math"
	"strconv"

	"github.com/nussjustin/resp/resp2"
	"github.com/nussjustin/resp/resp3"
)

// node is a protocol independent view of a decoded value used by the printers.
type node struct {
	// kind is the name of the RESP type, for example "blob-string".
	kind string

	// value is the textual representation of scalar values that do not carry a payload.
	value string

	// tag is the YAML tag used for the value.
	tag string

	// yamlValue overrides value when encoding as YAML.
	yamlValue string

	// payload is the string payload of the value. It is only used if hasPayload is true.
	payload    []byte
	hasPayload bool

	// children holds the elements of aggregates. For keyed aggregates keys and values alternate.
	children  []node
	aggregate bool
	keyed     bool
}

func payloadNode(kind string, b []byte) node {
	return node{kind: kind, tag: "!" + kind, payload: b, hasPayload: true}
}

func scalarNode(kind, tag, value string) node {
	return node{kind: kind, tag: tag, value: value}
}

func markerNode(kind string) node {
	return node{kind: kind, tag: "!" + kind}
}

func aggregateNode[V any](kind string, vs []V, convert func(V) node) node {
	n := node{kind: kind, tag: "!" + kind, children: make([]node, len(vs)), aggregate: true}
	for i := range vs {
		n.children[i] = convert(vs[i])
	}
	return n
}

func entriesNode(kind string, es []resp3.MapEntry) node {
	n := node{kind: kind, tag: "!" + kind, children: make([]node, 0, 2*len(es)), aggregate: true, keyed: true}
	for _, e := range es {
		n.children = append(n.children, fromRESP3(e.Key), fromRESP3(e.Value))
	}
	return n
}

// size returns the number of elements of an aggregate node, counting key value pairs once.
func (n node) size() int {
	if n.keyed {
		return len(n.children) / 2
	}
	return len(n.children)
}

func fromRESP2(v resp2.Value) node {
	switch v := v.(type) {
	case resp2.SimpleString:
		return payloadNode("simple-string", v)
	case resp2.Error:
		return payloadNode("error", v)
	case resp2.Integer:
		return scalarNode("integer", "!!int", strconv.FormatUint(uint64(v), 10))
	case resp2.BulkString:
		return payloadNode("bulk-string", v)
	case resp2.Null:
		return node{kind: "null", tag: "!!null", yamlValue: "null"}
	case resp2.Array:
		return aggregateNode("array", v, fromRESP2)
	default:
		panic("unreachable")
	}
}

func formatDouble(f float64) (text, yaml string) {
	switch {
	case math.IsInf(f, 1):
		return "inf", ".inf"
	case math.IsInf(f, -1):
		return "-inf", "-.inf"
	case math.IsNaN(f):
		return "nan", ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	return s, s
}

func fromRESP3(v resp3.Value) node {
	switch v := v.(type) {
	case resp3.Blob:
		return payloadNode("blob-string", v)
	case resp3.SimpleString:
		return payloadNode("simple-string", v)
	case resp3.SimpleError:
		return payloadNode("simple-error", v)
	case resp3.Number:
		return scalarNode("number", "!!int", strconv.FormatUint(uint64(v), 10))
	case resp3.Null:
		return node{kind: "null", tag: "!!null", yamlValue: "null"}
	case resp3.Double:
		n := scalarNode("double", "!!float", "")
		n.value, n.yamlValue = formatDouble(float64(v))
		return n
	case resp3.Boolean:
		return scalarNode("boolean", "!!bool", strconv.FormatBool(bool(v)))
	case resp3.BlobError:
		b := append([]byte(nil), v.Code...)
		if len(v.Message) > 0 {
			b = append(append(b, ' '), v.Message...)
		}
		return payloadNode("blob-error", b)
	case resp3.VerbatimString:
		n := payloadNode("verbatim-string", v.Text)
		n.value = v.Format.String()
		return n
	case resp3.BigNumber:
		return scalarNode("big-number", "!!int", v.String())
	case resp3.Array:
		return aggregateNode("array", v, fromRESP3)
	case resp3.Map:
		return entriesNode("map", v)
	case resp3.Set:
		return aggregateNode("set", v, fromRESP3)
	case resp3.Attribute:
		return entriesNode("attribute", v)
	case resp3.Push:
		return aggregateNode("push", v, fromRESP3)
	case resp3.StreamArray:
		return markerNode("stream-array")
	case resp3.StreamSet:
		return markerNode("stream-set")
	case resp3.StreamMap:
		return markerNode("stream-map")
	case resp3.StreamEnd:
		return markerNode("stream-end")
	default:
		panic("unreachable")
	}
}

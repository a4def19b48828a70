package talent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/errors"
)

// wrapperKeys are the fields under which API responses nest the record collection.
var wrapperKeys = []string{"nodes", "tree"}

// Decode parses a talent tree payload in JSON or YAML.
//
// The payload may be:
//   - an array of records
//   - an object keyed by order id ({"1": {...}, "2": {...}})
//   - an object with a "nodes" or "tree" field holding either of the above
//
// Records from keyed payloads are returned sorted by order id; a record
// without an order_id field takes it from its key. Array payloads keep
// their order.
//
// Decode returns an INVALID_FORMAT error when the bytes cannot be parsed and
// an INVALID_INPUT error when the payload is not a collection of records
// or violates [ValidateTree].
func Decode(data []byte) ([]Node, error) {
	raw, err := parse(data)
	if err != nil {
		return nil, err
	}
	return FromAny(raw)
}

// ReadFrom decodes a payload from r. See [Decode].
func ReadFrom(r io.Reader) ([]Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Decode(data)
}

// ReadFile decodes the payload stored at path. See [Decode].
func ReadFile(path string) ([]Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	nodes, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nodes, nil
}

// FromAny converts an already deserialized payload (the result of a generic
// JSON or YAML unmarshal) into records. See [Decode] for accepted shapes.
func FromAny(raw any) ([]Node, error) {
	recs, keyed, err := collect(raw)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(recs))
	for i, rec := range recs {
		n, err := decodeRecord(rec)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "record %d", i)
		}
		nodes = append(nodes, n)
	}

	if keyed {
		slices.SortStableFunc(nodes, func(a, b Node) int { return a.OrderID - b.OrderID })
	}

	if err := ValidateTree(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// WriteTo encodes nodes as an indented JSON array.
func WriteTo(w io.Writer, nodes []Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(nodes); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes nodes to path as an indented JSON array.
func WriteFile(path string, nodes []Node) error {
	var buf bytes.Buffer
	if err := WriteTo(&buf, nodes); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// =============================================================================
// Internal Helpers
// =============================================================================

// parse unmarshals JSON when the payload looks like JSON, YAML otherwise.
// JSON is not routed through the YAML parser because tab indentation is
// legal JSON and illegal YAML.
func parse(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty payload")
	}

	var raw any
	if trimmed[0] == '[' || trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON")
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML")
	}
	return raw, nil
}

// collect flattens the payload into record maps. keyed reports whether the
// records came from an object keyed by order id.
func collect(raw any) (recs []map[string]any, keyed bool, err error) {
	switch v := raw.(type) {
	case []any:
		recs = make([]map[string]any, 0, len(v))
		for i, item := range v {
			rec, ok := asMap(item)
			if !ok {
				return nil, false, errors.New(errors.ErrCodeInvalidInput, "record %d is %T, want object", i, item)
			}
			recs = append(recs, rec)
		}
		return recs, false, nil

	case map[string]any, map[any]any:
		obj, _ := asMap(v)
		for _, key := range wrapperKeys {
			if inner, ok := obj[key]; ok && isCollection(inner) {
				return collect(inner)
			}
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		recs = make([]map[string]any, 0, len(obj))
		for _, k := range keys {
			rec, ok := asMap(obj[k])
			if !ok {
				return nil, false, errors.New(errors.ErrCodeInvalidInput, "record %q is %T, want object", k, obj[k])
			}
			if _, has := rec["order_id"]; !has {
				id, convErr := strconv.Atoi(strings.TrimSpace(k))
				if convErr != nil {
					return nil, false, errors.New(errors.ErrCodeInvalidInput, "record %q has no order_id", k)
				}
				rec["order_id"] = id
			}
			recs = append(recs, rec)
		}
		return recs, true, nil

	case nil:
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "payload is null, want array or object of talent records")

	default:
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "payload is %T, want array or object of talent records", raw)
	}
}

func isCollection(v any) bool {
	switch v.(type) {
	case []any, map[string]any, map[any]any:
		return true
	}
	return false
}

// asMap normalizes the two map shapes produced by the JSON and YAML decoders.
// The result is always a fresh map.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// decodeRecord maps one generic record onto a Node. Weak typing accepts the
// backend's 0/1 pre_filled flag and numeric strings.
func decodeRecord(rec map[string]any) (Node, error) {
	var n Node
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		Result:           &n,
	})
	if err != nil {
		return Node{}, err
	}
	if err := dec.Decode(rec); err != nil {
		return Node{}, err
	}
	if _, ok := rec["order_id"]; !ok {
		return Node{}, fmt.Errorf("missing order_id")
	}
	return n, nil
}

package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// objEntry is one key/value pair of an order-preserving JSON object, used so
// leaf-path headers come out in the source document's field order instead
// of Go map iteration order.
type objEntry struct {
	key string
	val any
}

type orderedObj []objEntry

func (o orderedObj) get(key string) (any, bool) {
	for _, e := range o {
		if e.key == key {
			return e.val, true
		}
	}
	return nil, false
}

// decodeOrdered parses JSON preserving object key order: objects decode to
// orderedObj, arrays to []any, numbers to json.Number, strings to string,
// booleans to bool, and null to nil.
func decodeOrdered(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var obj orderedObj
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj = append(obj, objEntry{key: key, val: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			var arr []any
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
	case json.Number:
		return t, nil
	case string:
		return t, nil
	case bool:
		return t, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("ingest: unexpected json token %v", tok)
}

// ParseJSON implements spec §4.F's JSON ingestion rules: an explicit
// {data:{columns,rows}} shape is used directly; an array of objects derives
// its header from the leaf paths (dot-joined keys and numeric indices) of
// the first element; anything else falls back to a breadth-first search for
// the first array in the document.
func ParseJSON(data []byte) ([][]string, error) {
	root, err := decodeOrdered(data)
	if err != nil {
		return nil, fmt.Errorf("ingest: json parse failure: %w", err)
	}

	if obj, ok := root.(orderedObj); ok {
		if d, ok := obj.get("data"); ok {
			if dObj, ok := d.(orderedObj); ok {
				colsRaw, hasCols := dObj.get("columns")
				rowsRaw, hasRows := dObj.get("rows")
				if hasCols && hasRows {
					return columnsRowsToCells(colsRaw, rowsRaw)
				}
			}
		}
	}

	if arr, ok := root.([]any); ok && len(arr) > 0 {
		if _, ok := arr[0].(orderedObj); ok {
			return arrayOfObjectsToCells(arr)
		}
	}

	arr := bfsFirstArray(root)
	if arr == nil {
		return nil, fmt.Errorf("ingest: json input contains no array")
	}
	if len(arr) > 0 {
		if _, ok := arr[0].(orderedObj); ok {
			return arrayOfObjectsToCells(arr)
		}
	}
	return scalarArrayToCells(arr), nil
}

func columnsRowsToCells(colsRaw, rowsRaw any) ([][]string, error) {
	cols, ok := colsRaw.([]any)
	if !ok {
		return nil, fmt.Errorf("ingest: data.columns is not an array")
	}
	rows, ok := rowsRaw.([]any)
	if !ok {
		return nil, fmt.Errorf("ingest: data.rows is not an array")
	}
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = toCell(c)
	}
	out := [][]string{header}
	for _, r := range rows {
		rowArr, ok := r.([]any)
		if !ok {
			continue
		}
		rec := make([]string, len(header))
		for i := range header {
			if i < len(rowArr) {
				rec[i] = toCell(rowArr[i])
			} else {
				rec[i] = "null"
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// leafPaths walks v (expected to be an orderedObj) collecting dot-joined
// paths to every leaf (non-object, non-array) value, descending into
// arrays with a numeric path segment per index.
func leafPaths(v any, prefix string, out *[]string) {
	switch vv := v.(type) {
	case orderedObj:
		for _, e := range vv {
			p := e.key
			if prefix != "" {
				p = prefix + "." + e.key
			}
			leafPaths(e.val, p, out)
		}
	case []any:
		for i, elem := range vv {
			p := strconv.Itoa(i)
			if prefix != "" {
				p = prefix + "." + p
			}
			leafPaths(elem, p, out)
		}
	default:
		*out = append(*out, prefix)
	}
}

// extractLeaf navigates path (dot-joined keys/indices) through v, returning
// its stringified leaf value, or the literal string "null" if any segment
// is absent.
func extractLeaf(v any, path string) string {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		switch c := cur.(type) {
		case orderedObj:
			val, ok := c.get(seg)
			if !ok {
				return "null"
			}
			cur = val
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(c) {
				return "null"
			}
			cur = c[idx]
		default:
			return "null"
		}
	}
	return toCell(cur)
}

func arrayOfObjectsToCells(arr []any) ([][]string, error) {
	first, ok := arr[0].(orderedObj)
	if !ok {
		return nil, fmt.Errorf("ingest: first array element is not an object")
	}
	var header []string
	leafPaths(first, "", &header)

	out := [][]string{header}
	for _, elem := range arr {
		rec := make([]string, len(header))
		for i, path := range header {
			rec[i] = extractLeaf(elem, path)
		}
		out = append(out, rec)
	}
	return out, nil
}

func scalarArrayToCells(arr []any) [][]string {
	out := [][]string{{"value"}}
	for _, v := range arr {
		out = append(out, []string{toCell(v)})
	}
	return out
}

// bfsFirstArray searches v breadth-first for the first JSON array reachable
// from the root (spec §4.F: "descend to the first array found by
// breadth-first search").
func bfsFirstArray(v any) []any {
	queue := []any{v}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		switch c := cur.(type) {
		case []any:
			return c
		case orderedObj:
			for _, e := range c {
				queue = append(queue, e.val)
			}
		}
	}
	return nil
}

func toCell(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

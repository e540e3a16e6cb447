package ingest

import (
	"encoding/json"
	"fmt"
)

// jsonStatDimension mirrors the JSON-stat v2 "dimension" entry this adapter
// understands: a set of categories, optionally with an explicit id→position
// index (when categories are not already naturally ordered).
type jsonStatDimension struct {
	Category struct {
		Index json.RawMessage  `json:"index"`
		Label map[string]string `json:"label"`
	} `json:"category"`
}

// jsonStatDataset is the subset of the JSON-stat v2 dataset shape this
// adapter reads. Full JSON-stat adapter semantics are explicitly out of
// scope (spec.md §1 Non-goals: "JSONstat adapter"); this flattens the
// common rectangular case (dimensions × value array) into table rows.
type jsonStatDataset struct {
	ID        []string                     `json:"id"`
	Size      []int                        `json:"size"`
	Dimension map[string]jsonStatDimension `json:"dimension"`
	Value     []any                        `json:"value"`
}

// dimensionOrder returns dim's category keys in index order: if an explicit
// index map/array is present it's honored, otherwise label map order (via
// Go map iteration, since JSON-stat doesn't otherwise define one) is used.
func dimensionOrder(dim jsonStatDimension) []string {
	if len(dim.Category.Index) > 0 {
		var asArray []string
		if err := json.Unmarshal(dim.Category.Index, &asArray); err == nil {
			return asArray
		}
		var asMap map[string]int
		if err := json.Unmarshal(dim.Category.Index, &asMap); err == nil {
			out := make([]string, len(asMap))
			for k, i := range asMap {
				if i >= 0 && i < len(out) {
					out[i] = k
				}
			}
			return out
		}
	}
	out := make([]string, 0, len(dim.Category.Label))
	for k := range dim.Category.Label {
		out = append(out, k)
	}
	return out
}

// ParseJSONStat flattens a rectangular JSON-stat v2 dataset: one row per
// cell of the dense value array, columns = each dimension's category label
// followed by the cell's value. The value array is row-major with the last
// dimension varying fastest, per the JSON-stat v2 spec.
func ParseJSONStat(data []byte) ([][]string, error) {
	var ds jsonStatDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("ingest: jsonstat parse failure: %w", err)
	}
	if len(ds.ID) == 0 {
		return nil, fmt.Errorf("ingest: jsonstat dataset has no dimensions")
	}

	orders := make([][]string, len(ds.ID))
	for i, id := range ds.ID {
		orders[i] = dimensionOrder(ds.Dimension[id])
	}

	header := append(append([]string{}, ds.ID...), "value")
	rows := [][]string{header}

	indices := make([]int, len(ds.ID))
	total := 1
	for _, sz := range ds.Size {
		total *= sz
	}
	for flat := 0; flat < total && flat < len(ds.Value); flat++ {
		rem := flat
		for d := len(ds.ID) - 1; d >= 0; d-- {
			sz := ds.Size[d]
			indices[d] = rem % sz
			rem /= sz
		}
		rec := make([]string, len(ds.ID)+1)
		for d, id := range ds.ID {
			dim := ds.Dimension[id]
			idx := indices[d]
			var key string
			if idx < len(orders[d]) {
				key = orders[d][idx]
			}
			if label, ok := dim.Category.Label[key]; ok {
				rec[d] = label
			} else {
				rec[d] = key
			}
		}
		rec[len(ds.ID)] = toCell(ds.Value[flat])
		rows = append(rows, rec)
	}
	return rows, nil
}

package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/gjrichter/ixmaps-data/table"
)

// jsonDBField mirrors one entry of a jsondb document's "fields" array
// (spec GLOSSARY: "the project's own persisted Table shape").
type jsonDBField struct {
	ID       string `json:"id"`
	Typ      int    `json:"typ"`
	Width    int    `json:"width"`
	Decimals int    `json:"decimals"`
	Created  bool   `json:"created"`
}

type jsonDBDocument struct {
	Fields  []jsonDBField `json:"fields"`
	Records [][]string    `json:"records"`
}

// ParseJSONDB builds a Table directly from a previously-serialized jsondb
// document, bypassing the row-array path other source kinds go through
// (spec §6: "jsondb type expects a previously-serialized table-shaped
// object").
func ParseJSONDB(data []byte) (*table.Table, error) {
	var doc jsonDBDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ingest: jsondb parse failure: %w", err)
	}
	fields := make([]table.Field, len(doc.Fields))
	for i, f := range doc.Fields {
		fields[i] = table.Field{
			Id:       f.ID,
			Typ:      table.FieldType(f.Typ),
			Width:    f.Width,
			Decimals: f.Decimals,
			Created:  f.Created,
		}
	}
	return table.New(fields, doc.Records), nil
}

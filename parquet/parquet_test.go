package parquet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gjrichter/ixmaps-data/internal/duckengine"
	"github.com/gjrichter/ixmaps-data/table"
	"github.com/stretchr/testify/require"
)

func TestValidateMagic_MissingHeaderWarnsButContinues(t *testing.T) {
	var warned bool
	validateMagic([]byte("not-a-parquet-file"), testSink{warned: &warned})
	require.True(t, warned)
}

func TestValidateMagic_ValidHeaderDoesNotWarn(t *testing.T) {
	var warned bool
	validateMagic([]byte("PAR1rest-of-file"), testSink{warned: &warned})
	require.False(t, warned)
}

func TestAcquireBytes_FallsBackOnPrimaryFailure(t *testing.T) {
	primary := func(context.Context) ([]byte, error) { return nil, errors.New("network down") }
	fallback := func(context.Context) ([]byte, error) { return []byte("PAR1..."), nil }
	var warned bool
	data, err := acquireBytes(context.Background(), primary, fallback, testSink{warned: &warned})
	require.NoError(t, err)
	require.Equal(t, []byte("PAR1..."), data)
	require.True(t, warned)
}

func TestAcquireBytes_NoFallbackPropagatesError(t *testing.T) {
	primary := func(context.Context) ([]byte, error) { return nil, errors.New("network down") }
	_, err := acquireBytes(context.Background(), primary, nil, nil)
	require.Error(t, err)
}

// materialized record/field counts always match the schema, for N
// well under the 10M cap.
func TestMaterialize_RecordAndFieldCountMatchSchema(t *testing.T) {
	ctx := context.Background()
	db, err := duckengine.Bootstrap(ctx)
	require.NoError(t, err)

	const n = 1234
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT i AS id, i * 2 AS doubled FROM generate_series(1, %d) AS t(i)", n))
	require.NoError(t, err)

	cellTypes := []CellType{CellNumber, CellNumber}
	records, err := scanAllRows(rows, cellTypes)
	require.NoError(t, err)
	require.Len(t, records, n)
	for _, rec := range records {
		require.Len(t, rec, 2)
	}

	fields := []table.Field{table.NewField("id"), table.NewField("doubled")}
	tbl := table.New(fields, records)
	require.Equal(t, n, tbl.NumRecords())
	require.Equal(t, []string{"id", "doubled"}, tbl.FieldNames())
}

type testSink struct{ warned *bool }

func (s testSink) Log(string, ...any)          {}
func (s testSink) Warn(string, ...any)         { *s.warned = true }
func (s testSink) Error(error, string, ...any) {}

// Package parquet implements the Parquet/GeoParquet ingestion pipeline
// (spec §4.H): byte acquisition with transport fallback, magic-number
// validation, embedded SQL engine registration, geometry-column detection,
// schema-driven per-cell conversion, and row-count-adaptive materialization.
package parquet

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"

	"github.com/gjrichter/ixmaps-data/internal/duckengine"
	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
)

// MaxRows is the hard row cap enforced before materialization begins (spec
// §4.H step 3).
const MaxRows = 10_000_000

// FetchFunc acquires the raw bytes of a Parquet/GeoParquet blob (spec §4.H
// step 1: "fetch via primary transport; on failure, retry via a fallback
// binary transport"). Package transport's FetchBlob methods take the source
// as an argument, so the façade wraps one in a closure bound to its source;
// parquet itself stays free of a direct dependency on package transport.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Options configures a single pipeline Load.
type Options struct {
	Primary  FetchFunc
	Fallback FetchFunc
	OnState  StateFunc // optional: observe every state transition
}

// Load runs one file through the full pipeline and returns the materialized
// Table. Cleanup — dropping the registered virtual file — always runs, on
// both the success and error paths (spec §4.H step 8, "CLEANUP is
// idempotent and always visited").
func Load(ctx context.Context, opts Options, s sink.Sink) (*table.Table, error) {
	s = sink.OrNoop(s)
	emit := func(st State) {
		if opts.OnState != nil {
			opts.OnState(st)
		}
	}

	emit(StateAcquiringBytes)
	data, err := acquireBytes(ctx, opts.Primary, opts.Fallback, s)
	if err != nil {
		emit(StateCleanup)
		emit(StateFailed)
		return nil, fmt.Errorf("parquet: acquiring bytes: %w", err)
	}

	emit(StateValidating)
	validateMagic(data, s)

	emit(StateEngineInit)
	db, err := duckengine.Bootstrap(ctx)
	if err != nil {
		emit(StateCleanup)
		emit(StateFailed)
		return nil, fmt.Errorf("parquet: engine bootstrap: %w", err)
	}

	reg, err := duckengine.RegisterBlob(data)
	if err != nil {
		emit(StateCleanup)
		emit(StateFailed)
		return nil, fmt.Errorf("parquet: registering blob: %w", err)
	}
	emit(StateRegistered)
	failed := false
	defer func() {
		emit(StateCleanup)
		reg.Cleanup()
		if failed {
			emit(StateFailed)
		} else {
			emit(StateDone)
		}
	}()

	rowCount, err := countRows(ctx, db, reg.Path)
	if err != nil {
		failed = true
		return nil, fmt.Errorf("parquet: counting rows: %w", err)
	}
	if err := checkRowCap(rowCount); err != nil {
		failed = true
		return nil, err
	}

	emit(StateDetectingGeo)
	columnNames, sqlTypes, err := introspectSchema(ctx, db, reg.Path)
	if err != nil {
		failed = true
		return nil, fmt.Errorf("parquet: introspecting schema: %w", err)
	}

	if _, isGeo := detectGeoColumn(columnNames); isGeo {
		emit(StateGeoBranch)
	} else {
		emit(StatePlainBranch)
	}

	cellTypes := make([]CellType, len(columnNames))
	for i := range columnNames {
		cellTypes[i] = classifyColumn(columnNames[i], sqlTypes[i])
	}

	emit(StateMaterializing)
	records, err := materialize(ctx, db, reg.Path, cellTypes, rowCount, len(columnNames))
	if err != nil {
		failed = true
		return nil, fmt.Errorf("parquet: materializing rows: %w", err)
	}

	emit(StateBuildingTable)
	fields := make([]table.Field, len(columnNames))
	for i, name := range columnNames {
		fields[i] = table.NewField(name)
	}
	return table.New(fields, records), nil
}

func acquireBytes(ctx context.Context, primary, fallback FetchFunc, s sink.Sink) ([]byte, error) {
	if primary == nil {
		return nil, fmt.Errorf("parquet: no primary transport configured")
	}
	data, err := primary(ctx)
	if err == nil {
		return data, nil
	}
	if fallback == nil {
		return nil, err
	}
	s.Warn("parquet: primary transport failed, retrying fallback transport", "error", err.Error())
	return fallback(ctx)
}

// validateMagic checks the PAR1 header; a mismatch is a warning, not an
// abort (spec §4.H step 1: "log a warning if not but continue").
func validateMagic(data []byte, s sink.Sink) bool {
	if len(data) < 4 || string(data[:4]) != "PAR1" {
		s.Warn("parquet: PAR1 magic number not found, continuing anyway")
		return false
	}
	return true
}

// checkRowCap enforces the 10M-row hard cap (spec §4.H step 3): a
// file exceeding it fails with a message mentioning "too large" and
// suggesting a smaller LIMIT, instead of producing a truncated Table.
func checkRowCap(rowCount int) error {
	if rowCount > MaxRows {
		return fmt.Errorf("parquet: file is too large: %d rows exceeds the maximum of %d; specify a smaller LIMIT", rowCount, MaxRows)
	}
	return nil
}

func countRows(ctx context.Context, db *sql.DB, path string) (int, error) {
	var n int
	row := db.QueryRowContext(ctx, fmt.Sprintf("SELECT count(*) FROM read_parquet('%s')", path))
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func introspectSchema(ctx context.Context, db *sql.DB, path string) (names, sqlTypes []string, err error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM read_parquet('%s') LIMIT 1", path))
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, err
	}
	names = make([]string, len(colTypes))
	sqlTypes = make([]string, len(colTypes))
	for i, ct := range colTypes {
		names[i] = ct.Name()
		sqlTypes[i] = ct.DatabaseTypeName()
	}
	return names, sqlTypes, nil
}

func materialize(ctx context.Context, db *sql.DB, path string, cellTypes []CellType, rowCount, colCount int) ([][]string, error) {
	switch selectStrategy(rowCount) {
	case StrategySmall:
		return materializeSync(ctx, db, path, cellTypes)
	case StrategyMedium:
		return materializeBatched(ctx, db, path, cellTypes, batchSize(colCount), rowCount)
	default:
		if useWorker(rowCount, colCount) {
			return materializeWorkerStreamed(ctx, db, path, cellTypes, batchSize(colCount), rowCount)
		}
		return materializeBatched(ctx, db, path, cellTypes, batchSize(colCount), rowCount)
	}
}

func materializeSync(ctx context.Context, db *sql.DB, path string, cellTypes []CellType) ([][]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM read_parquet('%s')", path))
	if err != nil {
		return nil, err
	}
	return scanAllRows(rows, cellTypes)
}

// materializeBatched pages through the result set in fixed-size batches,
// yielding the scheduler between batches (spec §5: "yields between
// materialization batches to keep the scheduler responsive").
func materializeBatched(ctx context.Context, db *sql.DB, path string, cellTypes []CellType, batch, rowCount int) ([][]string, error) {
	var out [][]string
	for offset := 0; offset < rowCount; offset += batch {
		rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM read_parquet('%s') LIMIT %d OFFSET %d", path, batch, offset))
		if err != nil {
			return nil, err
		}
		part, err := scanAllRows(rows, cellTypes)
		if err != nil {
			return nil, err
		}
		out = append(out, part...)
		runtime.Gosched()
	}
	return out, nil
}

type workerBatch struct {
	rows [][]string
	err  error
}

// materializeWorkerStreamed hands batches to a background goroutine and
// receives them over a channel: a worker offload for large files with an
// acceptable memory estimate (spec §4.H step 6).
func materializeWorkerStreamed(ctx context.Context, db *sql.DB, path string, cellTypes []CellType, batch, rowCount int) ([][]string, error) {
	results := make(chan workerBatch)
	go func() {
		defer close(results)
		for offset := 0; offset < rowCount; offset += batch {
			rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM read_parquet('%s') LIMIT %d OFFSET %d", path, batch, offset))
			if err != nil {
				results <- workerBatch{err: err}
				return
			}
			part, err := scanAllRows(rows, cellTypes)
			if err != nil {
				results <- workerBatch{err: err}
				return
			}
			results <- workerBatch{rows: part}
		}
	}()

	var out [][]string
	for r := range results {
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, r.rows...)
	}
	return out, nil
}

func scanAllRows(rows *sql.Rows, cellTypes []CellType) ([][]string, error) {
	defer rows.Close()
	n := len(cellTypes)
	var out [][]string
	for rows.Next() {
		raw := make([]any, n)
		ptrs := make([]any, n)
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make([]string, n)
		for i, v := range raw {
			rec[i] = convertCell(cellTypes[i], v)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

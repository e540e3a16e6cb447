// Package duckengine manages the process-wide embedded columnar SQL engine
// used by the Parquet/GeoParquet pipeline (spec §4.H). The engine is a
// singleton: init-once, reused by every subsequent load, never torn down by
// this layer (spec §5, "Resource policy").
package duckengine

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
)

// BootstrapTimeout bounds the one-time engine initialization (spec §6:
// "15s engine bootstrap timeout").
var BootstrapTimeout = 15 * time.Second

var (
	once    sync.Once
	handle  *sql.DB
	initErr error
)

// Bootstrap returns the process-wide *sql.DB, opening and pinging it exactly
// once. Every later call — regardless of its own context — reuses the same
// handle and the same outcome; a failed bootstrap is sticky.
func Bootstrap(ctx context.Context) (*sql.DB, error) {
	once.Do(func() {
		type result struct {
			db  *sql.DB
			err error
		}
		done := make(chan result, 1)
		go func() {
			db, err := sql.Open("duckdb", "")
			if err == nil {
				err = db.Ping()
			}
			done <- result{db, err}
		}()
		select {
		case r := <-done:
			handle, initErr = r.db, r.err
		case <-time.After(BootstrapTimeout):
			initErr = fmt.Errorf("duckengine: bootstrap timed out after %s", BootstrapTimeout)
		case <-ctx.Done():
			initErr = ctx.Err()
		}
	})
	return handle, initErr
}

// Registration is a virtual file registered with the engine for the
// duration of a single Parquet load. Cleanup removes the backing temp file;
// it is idempotent and safe to call on both the success and error paths
// (spec §4.H step 8: "Cleanup").
type Registration struct {
	Path string
}

// RegisterBlob writes data to a generated, time-suffixed virtual filename
// under the OS temp directory and returns a Registration whose Path can be
// read directly by the engine (`read_parquet('<path>')`). The generated name
// mirrors a time-suffixed virtual filename convention using a
// uuid instead of a counter, to stay collision-free across concurrent loads
// of the same process.
func RegisterBlob(data []byte) (*Registration, error) {
	name := fmt.Sprintf("ixdata-%d-%s.parquet", time.Now().UnixNano(), uuid.NewString())
	path := filepath.Join(os.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("duckengine: registering blob: %w", err)
	}
	return &Registration{Path: path}, nil
}

// Cleanup removes the registration's backing file. Safe to call more than
// once and safe to call when reg is nil.
func (reg *Registration) Cleanup() {
	if reg == nil {
		return
	}
	_ = os.Remove(reg.Path)
}

// Package ixdata is the public façade (spec §4.K): feed/object/import entry
// points wiring the broker, the ingestion dispatcher, the Parquet pipeline,
// and the operator engine behind the same success/error callback contract
// the rest of the module's diagnostics follow.
package ixdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gjrichter/ixmaps-data/broker"
	"github.com/gjrichter/ixmaps-data/ingest"
	"github.com/gjrichter/ixmaps-data/parquet"
	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
	"github.com/gjrichter/ixmaps-data/transport"
)

var parquetKinds = map[string]bool{"parquet": true, "geoparquet": true}

// Options carries one feed's configuration (spec §6 "Feed options").
// Source/Type/Data describe where the bytes come from and how to parse
// them; Cache toggles the cache of a *transport.HTTPFetcher used as the
// feed's fetcher; Parser (including its TopoObjectName) is passed through
// to the dispatcher; RawCallback, when set, receives the raw 2-D cell array
// instead of a constructed Table.
type Options struct {
	Source      string
	Type        string
	Data        []byte // set directly for in-memory (Object) sources
	Cache       *bool  // nil/true = cache enabled; explicit false disables it
	Parser      ingest.Options
	RawCallback func(rows [][]string)
}

func (o Options) cacheEnabled() bool {
	return o.Cache == nil || *o.Cache
}

// Feed is a single registered, not-yet-realized load. Load takes the
// success and error callbacks; calling Load more than once is a caller bug
// but not guarded against beyond the "exactly once" guarantee of a single
// Load call per Feed.
type Feed struct {
	opts     Options
	fetcher  transport.Fetcher
	s        sink.Sink
	fallback parquet.FetchFunc
}

// NewFeed registers a URL-backed, asynchronous feed (spec §4.K `feed(...)`).
// fetcher supplies the primary transport; it may be nil only when Data is
// already populated (e.g. a caller pre-fetched the bytes and wants the
// normal parse/table pipeline without a second network round-trip).
func NewFeed(opts Options, fetcher transport.Fetcher, s sink.Sink) *Feed {
	return &Feed{opts: opts, fetcher: fetcher, s: sink.OrNoop(s)}
}

// NewObject registers an in-memory, "object"-sourced feed (spec §4.K
// `object({...}).import(cb)`): Data is required; no transport fetch occurs.
func NewObject(opts Options, s sink.Sink) *Feed {
	return &Feed{opts: opts, s: sink.OrNoop(s)}
}

// Load runs the feed to completion and invokes exactly one of success or
// onError (spec §5: "the callback is invoked exactly once"). For a
// non-Parquet kind with RawCallback set, RawCallback replaces success and
// onError still reports failures. It is asynchronous: the pipeline runs on a
// separate goroutine and the callbacks fire from it.
func (f *Feed) Load(success func(*table.Table), onError func(error)) {
	go f.run(context.Background(), success, onError)
}

func (f *Feed) run(ctx context.Context, success func(*table.Table), onError func(error)) {
	kind := strings.ToLower(f.opts.Type)

	if parquetKinds[kind] {
		tbl, err := f.loadParquet(ctx)
		if err != nil {
			onError(err)
			return
		}
		success(tbl)
		return
	}

	data, err := f.acquire(ctx)
	if err != nil {
		onError(newLoadError(CategoryTransport, f.opts.Source, err))
		return
	}

	if f.opts.RawCallback != nil {
		rows, err := rawRows(kind, data, f.opts.Parser)
		if err != nil {
			onError(newLoadError(CategoryFormat, f.opts.Source, err))
			return
		}
		f.opts.RawCallback(rows)
		return
	}

	tbl, err := ingest.Dispatch(kind, data, f.opts.Parser, f.s)
	if err != nil {
		onError(newLoadError(CategoryFormat, f.opts.Source, err))
		return
	}
	success(tbl)
}

func (f *Feed) acquire(ctx context.Context) ([]byte, error) {
	if f.opts.Data != nil {
		return f.opts.Data, nil
	}
	if f.fetcher == nil {
		return nil, fmt.Errorf("ixdata: no data and no fetcher configured for source %q", f.opts.Source)
	}
	if hf, ok := f.fetcher.(*transport.HTTPFetcher); ok && hf.Cache != nil && !f.opts.cacheEnabled() {
		uncached := *hf
		uncached.Cache = nil
		return uncached.FetchBlob(ctx, f.opts.Source)
	}
	return f.fetcher.FetchBlob(ctx, f.opts.Source)
}

func (f *Feed) loadParquet(ctx context.Context) (*table.Table, error) {
	primary := func(ctx context.Context) ([]byte, error) { return f.acquire(ctx) }
	opts := parquet.Options{Primary: primary, Fallback: f.fallback}
	tbl, err := parquet.Load(ctx, opts, f.s)
	if err != nil {
		return nil, newLoadError(CategoryEngine, f.opts.Source, err)
	}
	return tbl, nil
}

// rawRows runs the dispatcher far enough to produce the raw 2-D cell array
// without building a Table, for RawCallback consumers (spec §6 `callback`
// option: "pre-table callback receiving raw 2-D cell array").
func rawRows(kind string, data []byte, opts ingest.Options) ([][]string, error) {
	tbl, err := ingest.Dispatch(kind, data, opts, sink.Noop{})
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, tbl.NumRecords()+1)
	rows = append(rows, tbl.FieldNames())
	rows = append(rows, tbl.RawRecords()...)
	return rows, nil
}

// Import is the synchronous convenience entry point (spec §4.K): valid only
// for in-memory sources (Data set) whose parser is synchronous — any
// Parquet/GeoParquet kind is rejected since that pipeline requires the
// engine bootstrap and transport acquisition stages.
func Import(opts Options) (*table.Table, error) {
	kind := strings.ToLower(opts.Type)
	if parquetKinds[kind] {
		return nil, newLoadError(CategoryFormat, opts.Source, fmt.Errorf("import: %q requires the asynchronous feed/object pipeline", opts.Type))
	}
	if opts.Data == nil {
		return nil, newLoadError(CategoryFormat, opts.Source, fmt.Errorf("import: no in-memory data provided"))
	}
	tbl, err := ingest.Dispatch(kind, opts.Data, opts.Parser, sink.Noop{})
	if err != nil {
		return nil, newLoadError(CategoryFormat, opts.Source, err)
	}
	return tbl, nil
}

// NewBroker builds a broker whose slots load each of opts in sequence
// through the same feed pipeline (spec §4.K: ".broker(opts)" factory).
func NewBroker(opts []Options, fetcher transport.Fetcher, s sink.Sink) *broker.Broker {
	loaders := make([]broker.LoadFunc, len(opts))
	for i, o := range opts {
		o := o
		loaders[i] = func() (*table.Table, error) {
			feed := NewFeed(o, fetcher, s)
			result := make(chan struct {
				tbl *table.Table
				err error
			}, 1)
			feed.Load(
				func(t *table.Table) { result <- struct {
					tbl *table.Table
					err error
				}{tbl: t} },
				func(err error) { result <- struct {
					tbl *table.Table
					err error
				}{err: err} },
			)
			r := <-result
			return r.tbl, r.err
		}
	}
	return broker.New(loaders)
}

// defaultHTTPTimeout is a 30-second request timeout for a default
// transport; no code in this package references it.
const defaultHTTPTimeout = 30 * time.Second

// Command ixdata exercises the façade → dispatcher → operator pipeline end
// to end from the command line: load a source, run a WHERE query or a
// pivot over it, and pretty-print the result.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	ixdata "github.com/gjrichter/ixmaps-data"
	"github.com/gjrichter/ixmaps-data/ingest"
	"github.com/gjrichter/ixmaps-data/internal/logsink"
	"github.com/gjrichter/ixmaps-data/ops"
	"github.com/gjrichter/ixmaps-data/table"
)

var (
	sourceType string
	delimiter  string

	whereClause string

	pivotLead  string
	pivotCols  string
	pivotKeep  string
	pivotValue string
	pivotCalc  string
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:   "ixdata",
		Short: "Load, query, and pivot tabular and geo-tabular data sources",
	}

	loadCmd := &cobra.Command{
		Use:   "load [source]",
		Short: "Load a source and print it as a table",
		Args:  cobra.ExactArgs(1),
		RunE:  runLoad,
	}
	loadCmd.Flags().StringVar(&sourceType, "type", "csv", "source kind (csv, json, geojson, topojson, kml, gml, rss, jsonstat, jsondb; parquet and geoparquet are rejected)")
	loadCmd.Flags().StringVar(&delimiter, "delimiter", "", "explicit CSV delimiter (auto-detected when empty)")

	queryCmd := &cobra.Command{
		Use:   "query [source]",
		Short: "Load a source and run a WHERE clause against it",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}
	queryCmd.Flags().StringVar(&sourceType, "type", "csv", "source kind")
	queryCmd.Flags().StringVar(&delimiter, "delimiter", "", "explicit CSV delimiter")
	queryCmd.Flags().StringVar(&whereClause, "where", "", "WHERE clause, e.g. \"age\" >= \"18\"")

	pivotCmd := &cobra.Command{
		Use:   "pivot [source]",
		Short: "Load a source and pivot it",
		Args:  cobra.ExactArgs(1),
		RunE:  runPivot,
	}
	pivotCmd.Flags().StringVar(&sourceType, "type", "csv", "source kind")
	pivotCmd.Flags().StringVar(&delimiter, "delimiter", "", "explicit CSV delimiter")
	pivotCmd.Flags().StringVar(&pivotLead, "lead", "", "lead (row-key) column(s), comma/pipe separated")
	pivotCmd.Flags().StringVar(&pivotCols, "cols", "", "dynamic column(s) source field")
	pivotCmd.Flags().StringVar(&pivotKeep, "keep", "", "kept column(s)")
	pivotCmd.Flags().StringVar(&pivotValue, "value", "", "value column(s) to aggregate")
	pivotCmd.Flags().StringVar(&pivotCalc, "calc", "", "aggregation: \"\", max, mean, string")

	root.AddCommand(loadCmd, queryCmd, pivotCmd)

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("ixdata command failed")
	}
}

func runLoad(cmd *cobra.Command, args []string) error {
	t, err := loadTable(args[0])
	if err != nil {
		return err
	}
	printTable(t)
	return nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	t, err := loadTable(args[0])
	if err != nil {
		return err
	}
	result := ops.Select(t, whereClause, logsink.New())
	printTable(result)
	return nil
}

func runPivot(cmd *cobra.Command, args []string) error {
	t, err := loadTable(args[0])
	if err != nil {
		return err
	}
	opts := ops.PivotOptions{
		Lead:  ops.SplitList(pivotLead),
		Cols:  ops.SplitList(pivotCols),
		Keep:  ops.SplitList(pivotKeep),
		Value: ops.SplitList(pivotValue),
		Calc:  pivotCalc,
	}
	result := ops.Pivot(t, opts, logsink.New())
	printTable(result)
	return nil
}

// loadTable reads source's bytes (a local path or an http(s) URL) and runs
// it through the synchronous façade entry point.
func loadTable(source string) (*table.Table, error) {
	data, err := readSource(source)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}

	t, err := ixdata.Import(ixdata.Options{
		Source: source,
		Type:   sourceType,
		Data:   data,
		Parser: parserOptions(),
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func parserOptions() ingest.Options {
	return ingest.Options{Delimiter: delimiter}
}

func readSource(source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(source)
}

func printTable(t *table.Table) {
	if t == nil {
		fmt.Println("(no result)")
		return
	}
	w := tablewriter.NewWriter(os.Stdout)
	w.SetHeader(t.FieldNames())
	w.SetBorder(false)
	w.SetAutoWrapText(false)
	w.SetAutoFormatHeaders(true)
	w.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	w.SetAlignment(tablewriter.ALIGN_LEFT)
	w.SetCenterSeparator("")
	w.SetColumnSeparator("")
	w.SetRowSeparator("")
	w.SetHeaderLine(false)
	w.SetTablePadding("\t")
	w.SetNoWhiteSpace(true)
	w.AppendBulk(t.RawRecords())
	w.Render()
}

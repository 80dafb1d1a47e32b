package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	tableprint "github.com/ryann/table-print"
	"github.com/ryann/table-print/internal/input"
)

type rootFlags struct {
	format     string
	config     string
	only       []string
	include    []string
	except     []string
	maxWidth   int
	names      map[string]string
	maxWidths  map[string]int
	widths     map[string]int
	budget     time.Duration
	timeLayout string
	sqlite     string
	delimiter  string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "tp [file | query [args...]]",
		Short: "Print records as an aligned text table",
		Long: `tp reads records and prints them as an aligned text table.

Records come from a JSON, JSON lines, YAML, CSV or TSV file (or stdin), or
from a SQLite query. Columns default to the keys of the first record, in
order; --only, --include and --except change the selection.

Examples:
  tp users.json
  tp --only name,email users.yaml
  cat events.jsonl | tp -f jsonl --except payload
  tp --sqlite app.db "SELECT * FROM users WHERE active = ?" 1
  tp --config table.toml --width id=6 users.csv`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.format, "format", "f", "", "input format: json, jsonl, yaml, csv, tsv (default from file extension, else json)")
	flags.StringVarP(&f.config, "config", "c", "", "options file (.yaml, .json or .toml)")
	flags.StringSliceVar(&f.only, "only", nil, "show only these fields")
	flags.StringSliceVar(&f.include, "include", nil, "add fields to the defaults")
	flags.StringSliceVar(&f.except, "except", nil, "remove fields from the defaults")
	flags.IntVar(&f.maxWidth, "max-width", 0, "default maximum column width (default 30)")
	flags.StringToStringVar(&f.names, "name", nil, "column display names, field=name")
	flags.StringToIntVar(&f.maxWidths, "max", nil, "per-column maximum widths, field=n")
	flags.StringToIntVar(&f.widths, "width", nil, "fixed column widths, field=n")
	flags.DurationVar(&f.budget, "budget", 0, "time budget for sampling each column's width (default 2s)")
	flags.StringVar(&f.timeLayout, "time-layout", "", "Go layout for timestamp values")
	flags.StringVar(&f.sqlite, "sqlite", "", "read records by querying this SQLite database")
	flags.StringVar(&f.delimiter, "delimiter", "", "field delimiter for csv input")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "log debug details to stderr")
	return cmd
}

func (f *rootFlags) run(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd.ErrOrStderr(), f.verbose)
	defer func() { _ = log.Sync() }()

	opts, err := f.options(cmd)
	if err != nil {
		return err
	}

	records, err := f.records(cmd, args, log)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := tableprint.Write(cmd.OutOrStdout(), opts, records...); err != nil {
		return err
	}
	log.Debugw("rendered table", "records", len(records), "elapsed", time.Since(start))
	return nil
}

// options loads the config file, then applies flags that were set
// explicitly on top of it.
func (f *rootFlags) options(cmd *cobra.Command) (tableprint.Options, error) {
	var opts tableprint.Options
	if f.config != "" {
		var err error
		if opts, err = tableprint.LoadOptions(f.config); err != nil {
			return tableprint.Options{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("only") {
		opts.Only = f.only
	}
	if flags.Changed("include") {
		opts.Include = f.include
	}
	if flags.Changed("except") {
		opts.Except = f.except
	}
	if flags.Changed("max-width") {
		opts.MaxWidth = f.maxWidth
	}
	if flags.Changed("budget") {
		opts.SampleBudget = f.budget
	}
	if flags.Changed("time-layout") {
		opts.TimeLayout = f.timeLayout
	}

	column := func(field string, set func(*tableprint.ColumnOptions)) {
		if opts.Columns == nil {
			opts.Columns = make(map[string]tableprint.ColumnOptions)
		}
		c := opts.Columns[field]
		set(&c)
		opts.Columns[field] = c
	}
	for field, name := range f.names {
		column(field, func(c *tableprint.ColumnOptions) { c.Name = name })
	}
	for field, n := range f.maxWidths {
		column(field, func(c *tableprint.ColumnOptions) { c.MaxWidth = n })
	}
	for field, n := range f.widths {
		column(field, func(c *tableprint.ColumnOptions) { c.Width = n })
	}

	if err := opts.Validate(); err != nil {
		return tableprint.Options{}, err
	}
	return opts, nil
}

func (f *rootFlags) records(cmd *cobra.Command, args []string, log *zap.SugaredLogger) ([]any, error) {
	if f.sqlite != "" {
		if len(args) == 0 {
			return nil, errors.New("--sqlite needs a query argument")
		}
		db, err := sql.Open("sqlite3", f.sqlite)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.sqlite, err)
		}
		defer db.Close()
		params := make([]any, len(args)-1)
		for i, a := range args[1:] {
			params[i] = a
		}
		log.Debugw("querying", "database", f.sqlite, "query", args[0])
		return input.Query(cmd.Context(), db, args[0], params...)
	}

	if len(args) > 1 {
		return nil, fmt.Errorf("expected at most one input file, got %d", len(args))
	}
	var (
		r    io.Reader = cmd.InOrStdin()
		name string
	)
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r, name = file, args[0]
	}

	format, err := f.inputFormat(name)
	if err != nil {
		return nil, err
	}
	log.Debugw("reading records", "source", sourceName(name), "format", format)

	if f.delimiter != "" && (format == input.CSV || format == input.TSV) {
		if utf8.RuneCountInString(f.delimiter) != 1 {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", f.delimiter)
		}
		d, _ := utf8.DecodeRuneInString(f.delimiter)
		return input.ReadCSV(r, d)
	}
	return input.Read(r, format)
}

func (f *rootFlags) inputFormat(name string) (input.Format, error) {
	switch {
	case f.format != "":
		return input.ParseFormat(f.format)
	case name != "":
		return input.FormatOf(name)
	default:
		return input.JSON, nil
	}
}

func sourceName(name string) string {
	if name == "" {
		return "stdin"
	}
	return name
}

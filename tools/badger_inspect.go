package main

import (
	"chat-hub/repositories"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

type inspectConfig struct {
	DbPath  string `envconfig:"BADGER_FILEPATH" default:"./data/badger"`
	Prefix  string `envconfig:"INSPECT_PREFIX"`
	Colours bool   `envconfig:"INSPECT_COLOURS" default:"true"`
}

func main() {
	var cfg inspectConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal("Error while reading config: ", err)
	}
	dbPath := flag.String("db", cfg.DbPath, "Path to badger DB")
	prefix := flag.String("prefix", cfg.Prefix, "Record prefix to scan (user:, group:, conv:, msg:), all when empty")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	prefixes := repositories.Prefixes
	if *prefix != "" {
		prefixes = []string{*prefix}
	}

	counts := make(map[string]int)
	for _, p := range prefixes {
		table := newTable()
		err := repositories.ScanRecords(db, p, func(r repositories.Record) {
			counts[r.Kind]++
			table.Append([]string{printable(r.Key), r.Kind, r.At, r.Detail})
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(header(p, cfg.Colours))
		table.Render()
		fmt.Println()
	}
	for kind, n := range counts {
		fmt.Printf("%s: %d\n", kind, n)
	}
}

func newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "At", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func header(prefix string, colours bool) string {
	title := fmt.Sprintf("== %s ==", strings.TrimSuffix(prefix, ":"))
	if !colours {
		return title
	}
	return color.New(color.BgBlack, color.FgGreen).Render(title)
}

// printable shows the NUL separator of index-style keys.
func printable(key string) string {
	return strings.ReplaceAll(key, "\x00", "/")
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}

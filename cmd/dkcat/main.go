package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/suparena/datakit"
	"github.com/suparena/datakit/config"
	"github.com/suparena/datakit/dataset"
	"github.com/suparena/datakit/filesystem"
	"github.com/suparena/datakit/registry"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")

	configPath  = flag.String("config", "", "Path to a datakit YAML configuration file")
	inPath      = flag.String("in", "", "Input path or prefix")
	inFormat    = flag.String("format", "tsv", "Input format: "+strings.Join(registry.Formats(), "|"))
	inGzip      = flag.Bool("gzip", false, "Input files are gzip compressed")
	outPath     = flag.String("out", "", "Optional output path; converts the dataset when set")
	outFormat   = flag.String("out-format", "jsonlines", "Output format when converting")
	outGzip     = flag.Bool("gzip-out", false, "Gzip the converted output")
	partitionBy = flag.String("partition-by", "", "Comma-separated partition columns for the converted output")
	limit       = flag.Int("limit", 10, "Number of rows to preview")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := datakit.GetVersionInfo()
		fmt.Printf("DataKit dkcat version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if *inPath == "" {
		pterm.Error.Println("missing required flag -in")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background()); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	fs, err := filesystem.New(ctx, cfg.FileSystemOptions())
	if err != nil {
		return err
	}
	dio := datakit.NewDataIO(datakit.WithFileSystem(fs))

	codec, err := registry.New(*inFormat)
	if err != nil {
		return err
	}

	rs, err := dio.Read(ctx, *inPath, codec, datakit.ReadOptions{Gzip: *inGzip})
	if err != nil {
		return err
	}

	preview(rs)

	if *outPath == "" {
		return nil
	}

	outCodec, err := registry.New(*outFormat)
	if err != nil {
		return err
	}
	opts := datakit.WriteOptions{Gzip: *outGzip}
	if *partitionBy != "" {
		opts.PartitionBy = strings.Split(*partitionBy, ",")
	}
	if err := dio.Write(ctx, rs, *outPath, outCodec, opts); err != nil {
		return err
	}
	pterm.Success.Printfln("wrote %d rows to %s as %s", rs.Len(), *outPath, outCodec.Name())
	return nil
}

func preview(rs *dataset.RecordSet) {
	pterm.Info.Printfln("%d rows, %d columns (%s)", rs.Len(), len(rs.Columns), strings.Join(rs.Columns, ", "))

	n := *limit
	if n > rs.Len() {
		n = rs.Len()
	}
	if n == 0 {
		return
	}

	table := pterm.TableData{rs.Columns}
	for _, r := range rs.Records[:n] {
		row := make([]string, len(rs.Columns))
		for i, c := range rs.Columns {
			row[i] = fmt.Sprint(r[c])
		}
		table = append(table, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}

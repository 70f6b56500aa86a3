// benchmark_graphs reads the engine's benchmarks/benchmark_<size>.txt files
// and plots insertion and sort timings against the dataset size.
package main

import (
	"flag"
	"time"

	"github.com/flightbench/flightbench/benchmark"
	"github.com/flightbench/flightbench/config"
	"github.com/flightbench/flightbench/graph"
	"github.com/flightbench/flightbench/util/logging"
	"github.com/flightbench/flightbench/util/sysinfo"
)

// Program option vars:
var (
	configFile    string
	benchmarksDir string
	graphsDir     string
	average       bool
	caption       bool
)

// Parse args:
func init() {
	flag.StringVar(&configFile, "config", "", "Harness config file in TOML format.")
	flag.StringVar(&benchmarksDir, "benchmarks-dir", "", "Directory of benchmark files (default from config).")
	flag.StringVar(&graphsDir, "graphs-dir", "", "Directory to write charts to (default from config).")
	flag.BoolVar(&average, "average", false, "Average repeated rows of one size.")
	flag.BoolVar(&caption, "caption", true, "Name the host in the chart titles.")

	flag.Parse()
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	logging.Logger.Infof("%s took %s", name, elapsed)
}

func main() {
	logging.WithRun("benchmark_graphs")
	defer logging.Logger.Sync()
	defer timeTrack(time.Now(), "benchmark_graphs - main()")

	cfg, err := config.Resolve(configFile)
	if err != nil {
		logging.Logger.Fatalf("config error: %v", err)
	}
	if benchmarksDir != "" {
		cfg.Layout.Benchmarks = benchmarksDir
	}
	if graphsDir != "" {
		cfg.Layout.Graphs = graphsDir
	}

	host := sysinfo.HostStat()
	logging.Logger.Infow("host", "arch", host.Arch, "platform", host.Platform,
		"cpu", host.CPUModel, "cpus", host.CPUCount, "ram", host.RAM)

	agg := &benchmark.Aggregator{
		Dir:     cfg.Layout.Benchmarks,
		Sizes:   cfg.Sizes,
		Average: cfg.Average || average,
	}
	series, stats := agg.Aggregate()
	logging.Logger.Infof("%d files read, %d missing, %d failed, %d rows kept, %d malformed, %d invalid",
		stats.FilesRead, stats.FilesMissing, stats.FilesFailed, stats.RowsKept, stats.RowsMalformed, stats.RowsInvalid)
	if !series.Empty() {
		sum := benchmark.Summarize(series)
		logging.Logger.Infof("avl insert: %s", &sum.AVLInsert)
		logging.Logger.Infof("linear insert: %s", &sum.LinearInsert)
		logging.Logger.Infof("sort: %s", &sum.Sort)
	}

	p := &graph.Plotter{
		Dir:    cfg.Layout.Graphs,
		Width:  graph.DefaultWidth,
		Height: graph.DefaultHeight,
	}
	if caption {
		p.Caption = host.Label()
	}
	res, err := p.Plot(series)
	if err != nil {
		logging.Logger.Fatal(err)
	}
	for _, f := range res.Files {
		logging.Logger.Infof("wrote %s", f)
	}
}

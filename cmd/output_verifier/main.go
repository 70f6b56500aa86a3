// output_verifier compares the engine's outputs/output_<i>.txt files with
// the golden expected_outputs/output_<i>.txt files and exits non-zero when
// any of them differ.
package main

import (
	"flag"
	"os"

	"github.com/flightbench/flightbench/config"
	"github.com/flightbench/flightbench/util/logging"
	"github.com/flightbench/flightbench/verify"
)

// Program option vars:
var (
	configFile  string
	outputDir   string
	expectedDir string
	first       int
	last        int
	strict      bool
)

// Parse args:
func init() {
	flag.StringVar(&configFile, "config", "", "Harness config file in TOML format.")
	flag.StringVar(&outputDir, "outputs-dir", "", "Directory of engine outputs (default from config).")
	flag.StringVar(&expectedDir, "expected-dir", "", "Directory of expected outputs (default from config).")
	flag.IntVar(&first, "first", 0, "First test id (default from config).")
	flag.IntVar(&last, "last", 0, "Last test id (default from config).")
	flag.BoolVar(&strict, "strict", false, "Fail tests whose output or expected file is missing.")

	flag.Parse()
}

func main() {
	logging.WithRun("output_verifier")

	cfg, err := config.Resolve(configFile)
	if err != nil {
		logging.Logger.Fatalf("config error: %v", err)
	}
	v := &verify.Verifier{
		OutputDir:   cfg.Layout.Outputs,
		ExpectedDir: cfg.Layout.ExpectedOutputs,
		First:       cfg.Verify.First,
		Last:        cfg.Verify.Last,
		Strict:      cfg.Verify.Strict || strict,
	}
	if outputDir != "" {
		v.OutputDir = outputDir
	}
	if expectedDir != "" {
		v.ExpectedDir = expectedDir
	}
	if first > 0 {
		v.First = first
	}
	if last > 0 {
		v.Last = last
	}

	summary, err := v.Run()
	if err != nil {
		logging.Logger.Fatal(err)
	}
	for _, r := range summary.Results {
		if r.Err != nil {
			logging.Logger.Warnf("%s: %v", r.Name, r.Err)
		} else if !r.Passed {
			logging.Logger.Debugf("%s: %s at line %d", r.Name, r.Status, r.FirstDiffLine)
		}
	}
	if err := summary.Print(os.Stdout); err != nil {
		logging.Logger.Fatal(err)
	}
	logging.Logger.Sync()
	os.Exit(summary.ExitCode())
}

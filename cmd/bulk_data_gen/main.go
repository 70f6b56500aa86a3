// bulk_data_gen writes engine input files from pre-specified use cases.
//
// Supported use cases:
// throughput: one inputs/flights_<N>.txt per configured size, for benchmarks.
// grammar: inputs/input_test.txt with the fixed regression queries.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/flightbench/flightbench/bulk_data_gen/common"
	"github.com/flightbench/flightbench/bulk_data_gen/flights"
	bulkQueryGen "github.com/flightbench/flightbench/bulk_query_gen"
	"github.com/flightbench/flightbench/config"
	"github.com/flightbench/flightbench/testcase"
	"github.com/flightbench/flightbench/util/logging"
	"github.com/pkg/profile"
)

const GrammarFlights = 10

// Program option vars:
var (
	useCase    string
	configFile string
	inputsDir  string
	count      int
	queryCount int
	queryMode  string
	seed       int64
	profMode   string
	debug      int
)

var profChoices = []string{"", "cpu", "mem"}

func contains(choices []string, s string) bool {
	for _, c := range choices {
		if c == s {
			return true
		}
	}
	return false
}

// Parse args:
func init() {
	flag.StringVar(&useCase, "use-case", common.ProfileChoices[0], fmt.Sprintf("Use case to model. (choices: %s)", strings.Join(common.ProfileChoices, ", ")))
	flag.StringVar(&configFile, "config", "", "Harness config file in TOML format.")
	flag.StringVar(&inputsDir, "inputs-dir", "", "Directory to write input files to (default from config).")
	flag.IntVar(&count, "count", GrammarFlights, "Number of flights for the grammar use case.")
	flag.IntVar(&queryCount, "queries", -1, "Number of queries per file (default: fixtures for grammar, none for throughput).")
	flag.StringVar(&queryMode, "query-mode", bulkQueryGen.ModeRandom, fmt.Sprintf("Query generator used with -queries. (choices: %s)", strings.Join(bulkQueryGen.ModeChoices, ", ")))
	flag.Int64Var(&seed, "seed", 0, "PRNG seed (default, or 0, uses the current timestamp).")
	flag.StringVar(&profMode, "profile", "", "Write a pprof profile of the run. (choices: cpu, mem)")
	flag.IntVar(&debug, "debug", 0, "Debug printing (choices: 0, 1) (default 0).")

	flag.Parse()

	if !contains(common.ProfileChoices, useCase) {
		logging.Logger.Fatalf("invalid use case specifier: %v", useCase)
	}
	if !contains(bulkQueryGen.ModeChoices, queryMode) {
		logging.Logger.Fatalf("invalid query mode specifier: %v", queryMode)
	}
	if !contains(profChoices, profMode) {
		logging.Logger.Fatalf("invalid profile specifier: %v", profMode)
	}
	if count < 0 {
		logging.Logger.Fatal("count must not be negative")
	}
	if debug > 0 {
		logging.SetLevel("debug")
	}

	// the default seed is the current timestamp:
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	logging.Logger.Infof("%s took %s", name, elapsed)
}

func main() {
	logging.WithRun("bulk_data_gen")
	defer logging.Logger.Sync()
	defer timeTrack(time.Now(), "bulk_data_gen - main()")

	switch profMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	cfg, err := config.Resolve(configFile)
	if err != nil {
		logging.Logger.Fatalf("config error: %v", err)
	}
	if inputsDir != "" {
		cfg.Layout.Inputs = inputsDir
	}
	p, err := cfg.Profile(useCase)
	if err != nil {
		logging.Logger.Fatal(err)
	}
	logging.Logger.Infof("using random seed %d", seed)
	logging.Logger.Debugf("%s", p.String())

	rnd := rand.New(rand.NewSource(seed))

	switch useCase {
	case common.ProfileThroughput:
		for _, size := range cfg.Sizes {
			path := filepath.Join(cfg.Layout.Inputs, testcase.DatasetName(size))
			if err := write(path, p, size, queries(rnd, p, 0), rnd); err != nil {
				logging.Logger.Fatal(err)
			}
		}
	case common.ProfileGrammar:
		path := filepath.Join(cfg.Layout.Inputs, testcase.TestInputName)
		if err := write(path, p, count, queries(rnd, p, len(bulkQueryGen.Fixtures())), rnd); err != nil {
			logging.Logger.Fatal(err)
		}
	default:
		panic("unreachable")
	}
}

// queries returns the workload of one file. Without -queries the default
// number of fixture queries is used.
func queries(rnd *rand.Rand, p common.Profile, def int) []string {
	if queryCount < 0 {
		return bulkQueryGen.Workload(bulkQueryGen.FixtureGenerator{}, def)
	}
	g, err := bulkQueryGen.NewGenerator(queryMode, rnd, p)
	if err != nil {
		logging.Logger.Fatal(err)
	}
	return bulkQueryGen.Workload(g, queryCount)
}

func write(path string, p common.Profile, n int, qs []string, rnd *rand.Rand) error {
	t := time.Now()
	cfg := &flights.FlightSimulatorConfig{Profile: p, Count: int64(n)}
	sim, err := cfg.ToSimulatorWithRand(rnd)
	if err != nil {
		return err
	}
	tc := &testcase.TestCase{Flights: flights.Generate(sim), Queries: qs}
	if int64(len(tc.Flights)) != sim.SeenFlights() {
		panic(fmt.Sprintf("Logic error, collected %d flights, generated %d flights", len(tc.Flights), sim.SeenFlights()))
	}
	if err := testcase.WriteFile(path, tc); err != nil {
		return err
	}
	logging.Logger.Infof("Written %d flights, %d queries to %s, took %0f seconds", len(tc.Flights), len(qs), path, time.Since(t).Seconds())
	return nil
}

// bulk_query_gen generates filter queries, one per line, on stdout. The
// lines are the query section of an engine input file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/flightbench/flightbench/bulk_data_gen/common"
	bulkQueryGen "github.com/flightbench/flightbench/bulk_query_gen"
	"github.com/flightbench/flightbench/config"
	"github.com/flightbench/flightbench/util/logging"
)

// Program option vars:
var (
	queryMode  string
	useCase    string
	configFile string
	queryCount int
	seed       int64
	debug      int
)

// Parse args:
func init() {
	flag.StringVar(&queryMode, "query-mode", bulkQueryGen.ModeFixture, fmt.Sprintf("Query generator. (choices: %s)", strings.Join(bulkQueryGen.ModeChoices, ", ")))
	flag.StringVar(&useCase, "use-case", common.ProfileGrammar, fmt.Sprintf("Profile random values are drawn from. (choices: %s)", strings.Join(common.ProfileChoices, ", ")))
	flag.StringVar(&configFile, "config", "", "Harness config file in TOML format.")
	flag.IntVar(&queryCount, "queries", len(bulkQueryGen.Fixtures()), "Number of queries to generate.")
	flag.Int64Var(&seed, "seed", 0, "PRNG seed (default, or 0, uses the current timestamp).")
	flag.IntVar(&debug, "debug", 0, "Debug printing (choices: 0, 1, 2) (default 0).")

	flag.Parse()

	if queryCount < 0 {
		logging.Logger.Fatal("queries must not be negative")
	}
	if debug > 0 {
		logging.SetLevel("debug")
	}

	// the default seed is the current timestamp:
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
}

func main() {
	logging.WithRun("bulk_query_gen")
	defer logging.Logger.Sync()

	cfg, err := config.Resolve(configFile)
	if err != nil {
		logging.Logger.Fatalf("config error: %v", err)
	}
	p, err := cfg.Profile(useCase)
	if err != nil {
		logging.Logger.Fatal(err)
	}
	logging.Logger.Infof("using random seed %d", seed)

	generator, err := bulkQueryGen.NewGenerator(queryMode, rand.New(rand.NewSource(seed)), p)
	if err != nil {
		logging.Logger.Fatal(err)
	}

	// Set up bookkeeping:
	stats := make(map[string]int64)

	// Set up output buffering:
	out := bufio.NewWriter(os.Stdout)

	for i := 0; i < queryCount; i++ {
		q := generator.Dispatch(i)
		line := q.String()
		if _, err := out.WriteString(line + "\n"); err != nil {
			logging.Logger.Fatal(err)
		}
		stats[q.HumanLabel]++

		if debug == 1 {
			logging.Logger.Debugf("%s", q.HumanLabel)
		} else if debug >= 2 {
			e, err := bulkQueryGen.ParseExpr(q.Expr)
			if err != nil {
				logging.Logger.Fatalf("generated an invalid query %q: %v", line, err)
			}
			logging.Logger.Debugf("%s: %s", q.HumanLabel, e)
		}
	}
	if err := out.Flush(); err != nil {
		logging.Logger.Fatal(err)
	}

	// Print stats:
	keys := []string{}
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, err := fmt.Fprintf(os.Stderr, "%s: %d queries\n", k, stats[k])
		if err != nil {
			logging.Logger.Fatal(err)
		}
	}
}

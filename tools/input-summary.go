// Tool created to verify bulk_data_gen input files: prints what each file
// holds and exits non-zero if a flight breaks a record invariant or a query
// does not parse.
package main

import (
	"fmt"
	"os"

	"github.com/flightbench/flightbench/testcase"
	"github.com/flightbench/flightbench/util/logging"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <input file>...\n", os.Args[0])
		os.Exit(2)
	}
	failed := false
	for _, path := range os.Args[1:] {
		tc, err := testcase.ReadFile(path)
		if err != nil {
			logging.Logger.Error(err)
			failed = true
			continue
		}
		s := testcase.Summarize(tc)
		fmt.Printf("%s\n", path)
		if err := s.Print(os.Stdout); err != nil {
			logging.Logger.Fatal(err)
		}
		if !s.OK() {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

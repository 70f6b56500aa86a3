package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flightbench/flightbench/bulk_data_gen/common"
	"github.com/flightbench/flightbench/util/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, DefaultSizes, c.Sizes)
	require.Equal(t, "inputs", c.Layout.Inputs)
	require.Equal(t, Verify{First: 1, Last: 10}, c.Verify)
	require.Equal(t, []string{common.ProfileGrammar, common.ProfileThroughput}, c.ProfileNames())

	// callers may mutate their copy
	c.Sizes[0] = 1
	require.Equal(t, 100, DefaultSizes[0])
}

const sample = `
[layout]
inputs = "data/in"
graphs = "out/graphs"

[benchmark]
sizes = [10, 20]
average = true

[verify]
last = 4
strict = true

[profiles.grammar]
airports = ["AAA", "BBB"]
price_max = 200
duration_step = "30m"

[profiles.tiny]
seats_max = 3
departure_end = "2025-01-02T00:00:00"
`

func TestParse(t *testing.T) {
	c, err := Parse(sample)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	require.Equal(t, "data/in", c.Layout.Inputs)
	require.Equal(t, "outputs", c.Layout.Outputs)
	require.Equal(t, "out/graphs", c.Layout.Graphs)
	require.Equal(t, []int{10, 20}, c.Sizes)
	require.True(t, c.Average)
	require.Equal(t, Verify{First: 1, Last: 4, Strict: true}, c.Verify)

	g, err := c.Profile(common.ProfileGrammar)
	require.NoError(t, err)
	require.Equal(t, []string{"AAA", "BBB"}, g.Airports)
	require.Equal(t, 200.0, g.PriceMax)
	require.Equal(t, 50.0, g.PriceMin)
	require.Equal(t, 30*time.Minute, g.DurationStep)

	tiny, err := c.Profile("tiny")
	require.NoError(t, err)
	require.Equal(t, "tiny", tiny.Name)
	require.Equal(t, 3, tiny.SeatsMax)
	require.Equal(t, common.GrammarProfile().Airports, tiny.Airports)

	// untouched profile keeps its defaults
	th, err := c.Profile(common.ProfileThroughput)
	require.NoError(t, err)
	require.Equal(t, common.ThroughputProfile(), th)

	_, err = c.Profile("missing")
	require.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("[layout\n")
	require.Error(t, err)

	_, err = Parse("[profiles.grammar]\nduration_min = \"soon\"\n")
	require.Error(t, err)

	_, err = Parse("[profiles.grammar]\ndeparture_start = \"yesterday\"\n")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"zero size":      "[benchmark]\nsizes = [0]\n",
		"duplicate size": "[benchmark]\nsizes = [5, 5]\n",
		"inverted range": "[verify]\nfirst = 5\nlast = 2\n",
		"bad profile":    "[profiles.grammar]\nairports = [\"AAA\"]\n",
	}
	for name, doc := range cases {
		c, err := Parse(doc)
		require.NoError(t, err, name)
		require.Error(t, c.Validate(), name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flightbench.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []int{10, 20}, c.Sizes)

	_, err = Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte(EnvBenchmarksDir+"=from-dotenv\n"+EnvGraphsDir+"=dotenv-graphs\n"), 0644))

	t.Setenv(EnvOutputsDir, "env-out")
	t.Setenv(EnvGraphsDir, "env-graphs")
	t.Setenv(EnvVerifyLast, "7")
	// godotenv sets variables for the process; register them for cleanup
	t.Setenv(EnvBenchmarksDir, "")
	require.NoError(t, os.Unsetenv(EnvBenchmarksDir))

	c := Default()
	require.NoError(t, c.ApplyEnv(dotenv, filepath.Join(dir, "missing.env")))
	require.Equal(t, "inputs", c.Layout.Inputs)
	require.Equal(t, "env-out", c.Layout.Outputs)
	require.Equal(t, "from-dotenv", c.Layout.Benchmarks)
	require.Equal(t, "env-graphs", c.Layout.Graphs)
	require.Equal(t, 7, c.Verify.Last)
}

func TestIntEnv(t *testing.T) {
	saved := logging.Logger
	defer func() { logging.Logger = saved }()
	core, logs := observer.New(zap.WarnLevel)
	logging.Logger = zap.New(core).Sugar()

	t.Setenv("FLIGHTBENCH_TEST_INT", "x")
	require.Equal(t, 3, IntEnv("FLIGHTBENCH_TEST_INT", 3))
	require.Equal(t, 1, logs.FilterMessageSnippet("FLIGHTBENCH_TEST_INT").Len())
	t.Setenv("FLIGHTBENCH_TEST_INT", "12")
	require.Equal(t, 12, IntEnv("FLIGHTBENCH_TEST_INT", 3))
	require.Equal(t, 5, IntEnv("FLIGHTBENCH_TEST_UNSET", 5))
	require.Equal(t, 1, logs.Len())
}

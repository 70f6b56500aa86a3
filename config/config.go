// Package config holds the harness configuration shared by every tool:
// directory layout, benchmark sizes, verification range and generation
// profiles. Values come from built-in defaults, an optional TOML file and
// the environment, in that order.
package config

import (
	"encoding/json"
	"os"
	"sort"
	"strconv"

	"github.com/flightbench/flightbench/bulk_data_gen/common"
	"github.com/flightbench/flightbench/util/logging"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Layout names the directories the harness and the engine hand files
// through.
type Layout struct {
	Inputs          string `json:"inputs"`
	Outputs         string `json:"outputs"`
	ExpectedOutputs string `json:"expected_outputs"`
	Benchmarks      string `json:"benchmarks"`
	Graphs          string `json:"graphs"`
}

type Verify struct {
	First  int  `json:"first"`
	Last   int  `json:"last"`
	Strict bool `json:"strict"`
}

type Config struct {
	Layout Layout
	// Sizes are the dataset sizes generated and aggregated, in plot order.
	Sizes  []int
	Verify Verify
	// Average merges repeated benchmark rows of one size into their mean.
	Average  bool
	Profiles map[string]common.Profile
}

var DefaultSizes = []int{100, 1000, 5000, 10000, 50000, 100000, 250000, 500000}

func Default() *Config {
	return &Config{
		Layout: Layout{
			Inputs:          "inputs",
			Outputs:         "outputs",
			ExpectedOutputs: "expected_outputs",
			Benchmarks:      "benchmarks",
			Graphs:          "graphs",
		},
		Sizes:    append([]int(nil), DefaultSizes...),
		Verify:   Verify{First: 1, Last: 10},
		Profiles: common.DefaultProfiles(),
	}
}

// Profile returns the named generation profile.
func (c *Config) Profile(name string) (common.Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return p, errors.Errorf("unknown profile %q (have %v)", name, c.ProfileNames())
	}
	return p, nil
}

func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks sizes, the verification range and every profile.
func (c *Config) Validate() error {
	if len(c.Sizes) == 0 {
		return errors.New("no benchmark sizes configured")
	}
	seen := make(map[int]bool, len(c.Sizes))
	for _, s := range c.Sizes {
		if s <= 0 {
			return errors.Errorf("benchmark size must be positive, got %d", s)
		}
		if seen[s] {
			return errors.Errorf("benchmark size %d listed twice", s)
		}
		seen[s] = true
	}
	if c.Verify.First < 1 || c.Verify.Last < c.Verify.First {
		return errors.Errorf("invalid verify range [%d, %d]", c.Verify.First, c.Verify.Last)
	}
	for _, name := range c.ProfileNames() {
		p := c.Profiles[name]
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// fileConfig mirrors the TOML document. Absent keys leave defaults alone.
type fileConfig struct {
	Layout    *Layout `json:"layout"`
	Benchmark *struct {
		Sizes   []int `json:"sizes"`
		Average *bool `json:"average"`
	} `json:"benchmark"`
	Verify   *Verify                       `json:"verify"`
	Profiles map[string]common.ProfileSpec `json:"profiles"`
}

// Load reads a TOML file over Default.
func Load(path string) (*Config, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config loading failed")
	}
	return fromTree(tree)
}

// Parse reads a TOML document over Default.
func Parse(doc string) (*Config, error) {
	tree, err := toml.Load(doc)
	if err != nil {
		return nil, errors.Wrap(err, "config parsing failed")
	}
	return fromTree(tree)
}

func fromTree(tree *toml.Tree) (*Config, error) {
	b, err := json.Marshal(tree.ToMap())
	if err != nil {
		return nil, errors.Wrap(err, "config marshall failed")
	}
	var fc fileConfig
	if err := json.Unmarshal(b, &fc); err != nil {
		return nil, errors.Wrap(err, "config unmarshall failed")
	}
	c := Default()
	if err := c.apply(&fc); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) apply(fc *fileConfig) error {
	if l := fc.Layout; l != nil {
		for _, f := range []struct {
			dst *string
			src string
		}{
			{&c.Layout.Inputs, l.Inputs},
			{&c.Layout.Outputs, l.Outputs},
			{&c.Layout.ExpectedOutputs, l.ExpectedOutputs},
			{&c.Layout.Benchmarks, l.Benchmarks},
			{&c.Layout.Graphs, l.Graphs},
		} {
			if f.src != "" {
				*f.dst = f.src
			}
		}
	}
	if b := fc.Benchmark; b != nil {
		if len(b.Sizes) > 0 {
			c.Sizes = append([]int(nil), b.Sizes...)
		}
		if b.Average != nil {
			c.Average = *b.Average
		}
	}
	if v := fc.Verify; v != nil {
		if v.First != 0 {
			c.Verify.First = v.First
		}
		if v.Last != 0 {
			c.Verify.Last = v.Last
		}
		c.Verify.Strict = v.Strict
	}
	for name, ps := range fc.Profiles {
		ps := ps
		base, ok := c.Profiles[name]
		if !ok {
			// a new profile starts from the grammar profile's bounds
			base = common.GrammarProfile()
		}
		base.Name = name
		p, err := ps.Apply(base)
		if err != nil {
			return err
		}
		c.Profiles[name] = p
	}
	return nil
}

// Environment keys for directory overrides.
const (
	EnvInputsDir          = "FLIGHTBENCH_INPUTS_DIR"
	EnvOutputsDir         = "FLIGHTBENCH_OUTPUTS_DIR"
	EnvExpectedOutputsDir = "FLIGHTBENCH_EXPECTED_OUTPUTS_DIR"
	EnvBenchmarksDir      = "FLIGHTBENCH_BENCHMARKS_DIR"
	EnvGraphsDir          = "FLIGHTBENCH_GRAPHS_DIR"
	EnvVerifyLast         = "FLIGHTBENCH_VERIFY_LAST"
)

func StringEnv(key string, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func IntEnv(key string, def int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Logger.Warnf("ignoring %s=%q, not an integer; using %d", key, value, def)
		return def
	}
	return parsed
}

// ApplyEnv loads the given .env files (missing ones are ignored) and then
// applies FLIGHTBENCH_* overrides. Variables already set in the process
// win over .env entries.
func (c *Config) ApplyEnv(dotenv ...string) error {
	for _, f := range dotenv {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "loading %s", f)
		}
	}
	c.Layout.Inputs = StringEnv(EnvInputsDir, c.Layout.Inputs)
	c.Layout.Outputs = StringEnv(EnvOutputsDir, c.Layout.Outputs)
	c.Layout.ExpectedOutputs = StringEnv(EnvExpectedOutputsDir, c.Layout.ExpectedOutputs)
	c.Layout.Benchmarks = StringEnv(EnvBenchmarksDir, c.Layout.Benchmarks)
	c.Layout.Graphs = StringEnv(EnvGraphsDir, c.Layout.Graphs)
	c.Verify.Last = IntEnv(EnvVerifyLast, c.Verify.Last)
	return nil
}

// Resolve loads path when non-empty (defaults otherwise), applies the
// environment and validates the result.
func Resolve(path string) (*Config, error) {
	c := Default()
	if path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return nil, err
		}
	}
	if err := c.ApplyEnv(".env"); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

package logging

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger      *zap.SugaredLogger
	AtomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// LevelEnv names the variable holding the initial level (debug, info, ...).
const LevelEnv = "LOG_LEVEL"

func init() {
	if level, ok := os.LookupEnv(LevelEnv); ok {
		if err := SetLevel(level); err != nil {
			fmt.Fprintf(os.Stderr, "%s=%q: %v, logging at info\n", LevelEnv, level, err)
		}
	}
	logger, err := NewConfig().Build()
	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}
	Logger = logger.Sugar()
}

// NewConfig is the console configuration every tool logs with. Output goes
// to stderr so stdout stays free for generated data.
func NewConfig() zap.Config {
	return zap.Config{
		Level:       AtomicLevel,
		Development: false,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "M",
			LevelKey:       "L",
			TimeKey:        "T",
			NameKey:        "N",
			CallerKey:      zapcore.OmitKey,
			FunctionKey:    zapcore.OmitKey,
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
}

// WithRun tags Logger with a fresh run id and a tool name, and returns the id.
func WithRun(tool string) string {
	id := uuid.NewString()
	Logger = Logger.Named(tool).With("run", id)
	return id
}

// SetLevel changes the level of Logger and of every logger derived from it.
func SetLevel(level string) error {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	AtomicLevel.SetLevel(l)
	return nil
}

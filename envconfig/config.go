package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/ollama/pretokenize/logutil"
)

var (
	// Set via PRETOK_DEBUG in the environment
	Debug bool
	// Set via PRETOK_TRACE in the environment
	Trace bool
	// Set via PRETOK_NUM_PARALLEL in the environment
	NumParallel int
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"PRETOK_DEBUG":        {"PRETOK_DEBUG", Debug, "Show additional debug information (e.g. PRETOK_DEBUG=1)"},
		"PRETOK_TRACE":        {"PRETOK_TRACE", Trace, "Log every span and merge decision (very noisy)"},
		"PRETOK_NUM_PARALLEL": {"PRETOK_NUM_PARALLEL", NumParallel, "Maximum number of files processed in parallel"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	// default values
	NumParallel = runtime.GOMAXPROCS(0)

	LoadConfig()
}

func LoadConfig() {
	if debug := clean("PRETOK_DEBUG"); debug != "" {
		d, err := strconv.ParseBool(debug)
		if err == nil {
			Debug = d
		} else {
			Debug = true
		}
	}

	if trace := clean("PRETOK_TRACE"); trace != "" {
		d, err := strconv.ParseBool(trace)
		if err == nil {
			Trace = d
		} else {
			Trace = true
		}
	}

	if np := clean("PRETOK_NUM_PARALLEL"); np != "" {
		val, err := strconv.Atoi(np)
		if err != nil || val <= 0 {
			slog.Error("invalid setting must be greater than zero", "PRETOK_NUM_PARALLEL", np, "error", err)
		} else {
			NumParallel = val
		}
	}
}

// LogLevel folds the debug toggles down to a single slog level.
func LogLevel() slog.Level {
	switch {
	case Trace:
		return logutil.LevelTrace
	case Debug:
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

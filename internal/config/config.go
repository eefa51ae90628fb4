package config

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/ostafen/reext/pkg/util/format"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load,
// e.g. REEXT_READ_SIZE overrides --read-size.
const EnvPrefix = "REEXT"

// Configuration keys. Each key is also the name of the matching command line flag.
const (
	KeyConfigFile   = "config"
	KeyLogLevel     = "log-level"
	KeyLogDir       = "log-dir"
	KeyNoLog        = "no-log"
	KeyRecursive    = "recursive"
	KeyInclude      = "include"
	KeyExclude      = "exclude"
	KeyExt          = "ext"
	KeyExtended     = "extended"
	KeyReadSize     = "read-size"
	KeyWorkers      = "workers"
	KeyDryRun       = "dry-run"
	KeySkipMatching = "skip-matching"
	KeyReport       = "report"
	KeyNoProgress   = "no-progress"
	KeyCacheSize    = "cache-size"
	KeyMountpoint   = "mountpoint"
)

const (
	DefaultLogLevel  = "INFO"
	DefaultLogDir    = "."
	DefaultReadSize  = "8KB"
	DefaultCacheSize = 4096
)

// DefaultWorkers is the size of the worker pool when none is configured.
var DefaultWorkers = runtime.NumCPU()

// Config holds the settings shared by all commands. Fields which a command does
// not define a flag for keep their default value, unless set through the
// environment or the config file.
type Config struct {
	LogLevel   string
	LogDir     string
	DisableLog bool

	Recursive bool
	Include   []string
	Exclude   []string
	FileExt   []string
	Extended  bool
	// ReadSize is the number of leading bytes classified per file; 0 reads whole files.
	ReadSize uint64
	Workers  int

	DryRun       bool
	SkipMatching bool
	ReportFile   string
	NoProgress   bool

	CacheSize  int
	Mountpoint string
}

// RegisterRootFlags defines the persistent flags available to every command.
func RegisterRootFlags(flags *pflag.FlagSet) {
	flags.String(KeyConfigFile, "", "path of a YAML, TOML or JSON config file")
	flags.String(KeyLogLevel, DefaultLogLevel, "log level (DEBUG, INFO, WARN, ERROR)")
}

// RegisterScanFlags defines the flags selecting and classifying files.
func RegisterScanFlags(flags *pflag.FlagSet) {
	flags.BoolP(KeyRecursive, "r", false, "descend into subdirectories")
	flags.StringSlice(KeyInclude, nil, "only process files whose name matches one of these glob patterns")
	flags.StringSlice(KeyExclude, nil, "skip files whose name matches one of these glob patterns")
	flags.StringSlice(KeyExt, nil, "restrict detection to these extensions")
	flags.Bool(KeyExtended, false, "fall back to extended content detection for unknown files")
	flags.String(KeyReadSize, DefaultReadSize, "number of leading bytes to inspect (0 reads the whole file)")
	flags.IntP(KeyWorkers, "w", DefaultWorkers, "number of files processed concurrently")
}

// RegisterRecoverFlags defines the flags controlling renames.
func RegisterRecoverFlags(flags *pflag.FlagSet) {
	flags.Bool(KeyDryRun, false, "detect extensions without renaming files")
	flags.Bool(KeySkipMatching, false, "leave files which already carry the detected extension")
	flags.StringP(KeyReport, "o", "", "write a DFXML report of the renamed files")
	flags.Bool(KeyNoProgress, false, "disable the progress bar")
}

// RegisterLogFlags defines the flags of the detailed log file.
func RegisterLogFlags(flags *pflag.FlagSet) {
	flags.String(KeyLogDir, DefaultLogDir, "directory where the session log is written")
	flags.Bool(KeyNoLog, false, "disable the session log")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogDir, DefaultLogDir)
	v.SetDefault(KeyNoLog, false)

	v.SetDefault(KeyRecursive, false)
	v.SetDefault(KeyInclude, []string{})
	v.SetDefault(KeyExclude, []string{})
	v.SetDefault(KeyExt, []string{})
	v.SetDefault(KeyExtended, false)
	v.SetDefault(KeyReadSize, DefaultReadSize)
	v.SetDefault(KeyWorkers, DefaultWorkers)

	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeySkipMatching, false)
	v.SetDefault(KeyReport, "")
	v.SetDefault(KeyNoProgress, false)

	v.SetDefault(KeyCacheSize, DefaultCacheSize)
	v.SetDefault(KeyMountpoint, "")
}

// Load resolves the configuration of a command. Values are taken, in order of
// precedence, from flags explicitly set, REEXT_* environment variables, the
// file named by --config, and defaults.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	readSize, err := format.ParseBytes(v.GetString(KeyReadSize))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyReadSize, err)
	}
	if readSize > math.MaxInt64 {
		return nil, fmt.Errorf("invalid %s: %d exceeds the maximum file size", KeyReadSize, readSize)
	}

	workers := v.GetInt(KeyWorkers)
	if workers <= 0 {
		return nil, fmt.Errorf("invalid %s: %d", KeyWorkers, workers)
	}

	cacheSize := v.GetInt(KeyCacheSize)
	if cacheSize <= 0 {
		return nil, fmt.Errorf("invalid %s: %d", KeyCacheSize, cacheSize)
	}

	return &Config{
		LogLevel:     v.GetString(KeyLogLevel),
		LogDir:       v.GetString(KeyLogDir),
		DisableLog:   v.GetBool(KeyNoLog),
		Recursive:    v.GetBool(KeyRecursive),
		Include:      v.GetStringSlice(KeyInclude),
		Exclude:      v.GetStringSlice(KeyExclude),
		FileExt:      v.GetStringSlice(KeyExt),
		Extended:     v.GetBool(KeyExtended),
		ReadSize:     readSize,
		Workers:      workers,
		DryRun:       v.GetBool(KeyDryRun),
		SkipMatching: v.GetBool(KeySkipMatching),
		ReportFile:   v.GetString(KeyReport),
		NoProgress:   v.GetBool(KeyNoProgress),
		CacheSize:    cacheSize,
		Mountpoint:   v.GetString(KeyMountpoint),
	}, nil
}

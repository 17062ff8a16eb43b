// Package config loads tablemerge settings from flags, environment
// variables, .env files and an optional YAML config file.
//
// Precedence, highest first:
//  1. Command-line flags (bound by the CLI)
//  2. Environment variables (TABLEMERGE_MERGE_KEY, TABLEMERGE_LOG_LEVEL, ...)
//  3. .env.local, then .env
//  4. Config file (--config, or .tablemerge.yaml in the working or home directory)
//  5. Defaults
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vegasq/tablemerge/errors"
	"github.com/vegasq/tablemerge/merge"
	"github.com/vegasq/tablemerge/output"
)

// EnvPrefix prefixes every environment variable read by tablemerge.
const EnvPrefix = "TABLEMERGE"

// Config keys.
const (
	KeyMergeKey         = "merge.key"
	KeyEmptyKeys        = "merge.empty_keys"
	KeyPreviewRows      = "merge.preview_rows"
	KeyUnicodeNFC       = "merge.unicode_nfc"
	KeyMergedPath       = "export.merged_path"
	KeyUnmatchedPath    = "export.unmatched_path"
	KeySanitizeFormulas = "export.sanitize_formulas"
	KeySheetName        = "export.sheet_name"
	KeyEncoding         = "input.encoding"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
	KeyLogOutput        = "log.output"
)

// Config holds the resolved settings.
type Config struct {
	// ConfigFile is the config file that was read, if any.
	ConfigFile string

	// Merge settings
	Key         string
	EmptyKeys   merge.EmptyKeyPolicy
	PreviewRows int
	UnicodeNFC  bool

	// Export settings
	MergedPath       string
	UnmatchedPath    string
	SanitizeFormulas bool
	SheetName        string

	// Input settings
	Encoding string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMergeKey, "")
	v.SetDefault(KeyEmptyKeys, string(merge.EmptyKeysMatch))
	v.SetDefault(KeyPreviewRows, merge.DefaultPreviewRows)
	v.SetDefault(KeyUnicodeNFC, false)
	v.SetDefault(KeyMergedPath, output.DefaultMergedFilename)
	v.SetDefault(KeyUnmatchedPath, output.DefaultUnmatchedFilename)
	v.SetDefault(KeySanitizeFormulas, false)
	v.SetDefault(KeySheetName, output.DefaultSheetName)
	v.SetDefault(KeyEncoding, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyLogOutput, "stderr")
}

// Init prepares v: defaults, environment binding and the config file.
// configFile may be empty, in which case .tablemerge.yaml is searched for in
// the working directory and then the home directory. A missing config file
// is not an error; a malformed one is.
func Init(v *viper.Viper, configFile string) error {
	loadEnvFiles()

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".tablemerge")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.NewConfigError("file", fmt.Sprintf("cannot read %s", configName(v, configFile)), err)
	}
	return nil
}

func configName(v *viper.Viper, configFile string) string {
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	return configFile
}

// Load builds a validated Config from v.
func Load(v *viper.Viper) (*Config, error) {
	policy, err := merge.ParseEmptyKeyPolicy(v.GetString(KeyEmptyKeys))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ConfigFile: v.ConfigFileUsed(),

		Key:         strings.TrimSpace(v.GetString(KeyMergeKey)),
		EmptyKeys:   policy,
		PreviewRows: v.GetInt(KeyPreviewRows),
		UnicodeNFC:  v.GetBool(KeyUnicodeNFC),

		MergedPath:       v.GetString(KeyMergedPath),
		UnmatchedPath:    v.GetString(KeyUnmatchedPath),
		SanitizeFormulas: v.GetBool(KeySanitizeFormulas),
		SheetName:        v.GetString(KeySheetName),

		Encoding: v.GetString(KeyEncoding),

		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		LogOutput: v.GetString(KeyLogOutput),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be caught by type conversion.
func (c *Config) Validate() error {
	if c.PreviewRows < 0 {
		return errors.NewConfigError("merge", fmt.Sprintf("preview_rows must not be negative, got %d", c.PreviewRows), nil)
	}
	if strings.TrimSpace(c.MergedPath) == "" {
		return errors.NewConfigError("export", "merged_path must not be empty", nil)
	}
	if strings.TrimSpace(c.UnmatchedPath) == "" {
		return errors.NewConfigError("export", "unmatched_path must not be empty", nil)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "auto", "console", "json":
	default:
		return errors.NewConfigError("log", fmt.Sprintf("unknown format %q (want auto, console or json)", c.LogFormat), nil)
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides a variable that is already set, so loading
// .env.local first gives it precedence over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

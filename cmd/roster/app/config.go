package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/roster/internal/cmd/application"
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string `validate:"omitempty,oneof=table json yaml wide"`

	// Config file
	ConfigFile string

	// Roster configuration
	SourcePath     string `validate:"required"`
	RosterPath     string `validate:"required"`
	UsernameColumn string `validate:"required"`
	NameColumn     string `validate:"required"`
	Indent         int    `validate:"gte=0,lte=8"`

	// Logging configuration. LogLevel is only set by the --log-level flag;
	// EnvLogLevel comes from LOG_LEVEL and ranks below -v and -q.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string `validate:"omitempty,oneof=auto json console pretty"`
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. ROSTER_* environment variables
// 3. .env files
// 4. Config file (configFile, or .roster.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("file", "cannot read "+configFile, err)
		}
	} else {
		// Search for config in standard locations
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("file", "cannot read config", err)
			}
		}
	}

	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:  strings.ToLower(v.GetString("format")),

		// Config file
		ConfigFile: v.ConfigFileUsed(),

		// Roster configuration
		SourcePath:     v.GetString("source_path"),
		RosterPath:     v.GetString("roster_path"),
		UsernameColumn: v.GetString("username_column"),
		NameColumn:     v.GetString("name_column"),
		Indent:         v.GetInt("indent"),

		// Logging configuration
		EnvLogLevel: getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source_path", constants.DefaultSourcePath)
	v.SetDefault("roster_path", constants.DefaultRosterPath)
	v.SetDefault("username_column", constants.UsernameColumn)
	v.SetDefault("name_column", constants.NameColumn)
	v.SetDefault("indent", constants.DefaultIndent)
}

// Settings converts the configuration into the settings handed to commands.
func (c *Config) Settings() application.Settings {
	return application.Settings{
		SourcePath:     c.SourcePath,
		RosterPath:     c.RosterPath,
		UsernameColumn: c.UsernameColumn,
		NameColumn:     c.NameColumn,
		Indent:         c.Indent,
	}
}

// Validate checks the configuration for missing or out-of-range values.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = strings.ToLower(format)
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// Variables already in the environment always win; between the two
	// files the first to set a key keeps it.
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/sanspareilsmyn/latencylens/internal/csvlayout"
)

const (
	defaultKafkaGroupID        = "latencylens-default-group"
	defaultLayoutPivot         = false
	defaultLayoutPrintNonStats = false
	defaultOutputDirectory     = "reports"
	defaultOutputFilename      = "timing.csv"
	defaultOutputMaxSizeMB     = 100
	defaultOutputMaxBackups    = 5
	defaultOutputMaxAgeDays    = 14
	defaultOutputCompress      = false
	defaultMetricsEnabled      = false
	defaultMetricsListenAddr   = ":9095"
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
	defaultLogFileEnabled      = false
	defaultLogDirectory        = "log"
	defaultLogFilename         = "app.log"
	defaultLogMaxSizeMB        = 100
	defaultLogMaxBackups       = 3
	defaultLogMaxAgeDays       = 7
	defaultLogCompress         = false

	// Environment variable prefix
	envPrefix = "LATENCYLENS"
)

type Config struct {
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Layout  LayoutConfig  `mapstructure:"layout"`
	Output  OutputConfig  `mapstructure:"output"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"groupID"`
}

// LayoutConfig controls how timing windows are rendered to CSV.
type LayoutConfig struct {
	Pivot              bool   `mapstructure:"pivot"`
	Columns            string `mapstructure:"columns"`
	PrintNonStatistics bool   `mapstructure:"printNonStatistics"`
}

// OutputConfig controls the rotating CSV report file.
type OutputConfig struct {
	Directory  string `mapstructure:"directory"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxSize"`    // Max size in MB
	MaxBackups int    `mapstructure:"maxBackups"` // Max backup files
	MaxAge     int    `mapstructure:"maxAge"`     // Max days to retain
	Compress   bool   `mapstructure:"compress"`   // Compress rotated files?
}

type MetricsConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	ListenAddress string `mapstructure:"listenAddress"`
}

type LogConfig struct {
	Level              string `mapstructure:"level"`
	Format             string `mapstructure:"format"`
	FileLoggingEnabled bool   `mapstructure:"fileLoggingEnabled"`
	Directory          string `mapstructure:"directory"`
	Filename           string `mapstructure:"filename"`
	MaxSize            int    `mapstructure:"maxSize"`
	MaxBackups         int    `mapstructure:"maxBackups"`
	MaxAge             int    `mapstructure:"maxAge"`
	Compress           bool   `mapstructure:"compress"`
}

// Load initializes viper, reads config, applies defaults, unmarshals, and validates.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	configureViper(v, configPath)

	// Set default values before reading config source .yaml
	setDefaults(v)

	// Read configuration from file (error if mandatory file is missing)
	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	// Unmarshal the configuration
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshallingConfig, err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// configureViper sets up viper instance for file and environment variables.
func configureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults applies default configuration values using Viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("kafka.groupID", defaultKafkaGroupID)
	v.SetDefault("layout.pivot", defaultLayoutPivot)
	v.SetDefault("layout.columns", csvlayout.DefaultColumns)
	v.SetDefault("layout.printNonStatistics", defaultLayoutPrintNonStats)
	v.SetDefault("output.directory", defaultOutputDirectory)
	v.SetDefault("output.filename", defaultOutputFilename)
	v.SetDefault("output.maxSize", defaultOutputMaxSizeMB)
	v.SetDefault("output.maxBackups", defaultOutputMaxBackups)
	v.SetDefault("output.maxAge", defaultOutputMaxAgeDays)
	v.SetDefault("output.compress", defaultOutputCompress)
	v.SetDefault("metrics.enabled", defaultMetricsEnabled)
	v.SetDefault("metrics.listenAddress", defaultMetricsListenAddr)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("log.fileLoggingEnabled", defaultLogFileEnabled)
	v.SetDefault("log.directory", defaultLogDirectory)
	v.SetDefault("log.filename", defaultLogFilename)
	v.SetDefault("log.maxSize", defaultLogMaxSizeMB)
	v.SetDefault("log.maxBackups", defaultLogMaxBackups)
	v.SetDefault("log.maxAge", defaultLogMaxAgeDays)
	v.SetDefault("log.compress", defaultLogCompress)
}

// readConfigFile attempts to read the configuration file specified in viper.
func readConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return ErrConfigFileMissing
		}
		return fmt.Errorf("%w: %w", ErrReadingConfigFile, err)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if len(cfg.Kafka.Brokers) == 0 {
		return ErrEmptyKafkaBrokers
	}
	if cfg.Kafka.Topic == "" {
		return ErrEmptyKafkaTopic
	}
	if cfg.Kafka.GroupID == "" {
		return ErrEmptyKafkaGroupID
	}
	// Resolve the column spec once here so a bad layout fails at startup,
	// not on the first formatted window.
	if _, err := csvlayout.ResolveColumns(cfg.Layout.Columns); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayoutColumns, err)
	}
	if cfg.Output.Filename == "" {
		return ErrEmptyOutputFilename
	}
	return nil
}

package config

// LogLevel selects the minimum level of emitted log records.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config is the top-level qaview configuration, corresponding to .qaview.yml.
type Config struct {
	PlotsDir     string   `yaml:"plots_dir" koanf:"plots_dir"`
	Include      []string `yaml:"include" koanf:"include"`
	Exclude      []string `yaml:"exclude" koanf:"exclude"`
	OutputDir    string   `yaml:"output_dir" koanf:"output_dir"`
	PageName     string   `yaml:"page_name" koanf:"page_name"`
	StaticDir    string   `yaml:"static_dir" koanf:"static_dir"`
	Title        string   `yaml:"title" koanf:"title"`
	Intro        string   `yaml:"intro" koanf:"intro"`
	Width        int      `yaml:"width" koanf:"width"`
	Height       int      `yaml:"height" koanf:"height"`
	HeadingLevel int      `yaml:"heading_level" koanf:"heading_level"`
	Collapsed    bool     `yaml:"collapsed" koanf:"collapsed"`
	// TransitionMS is handed to the browser binder; 0 toggles instantly.
	TransitionMS int         `yaml:"transition_ms" koanf:"transition_ms"`
	Serve        ServeConfig `yaml:"serve" koanf:"serve"`
	LogLevel     LogLevel    `yaml:"log_level" koanf:"log_level"`
}

// ServeConfig holds settings for the local report server.
type ServeConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

package config

// DefaultInclude matches the plots the QA scripts write.
var DefaultInclude = []string{"plots/*.png"}

// DefaultExcludes are glob patterns never picked up as plots.
var DefaultExcludes = []string{
	".git/**",
	"**/*_thumb.png",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PlotsDir:     ".",
		Include:      append([]string(nil), DefaultInclude...),
		Exclude:      append([]string(nil), DefaultExcludes...),
		OutputDir:    "report",
		PageName:     "index.html",
		StaticDir:    "static",
		Title:        "QA plots",
		Width:        640,
		Height:       480,
		HeadingLevel: 3,
		Serve: ServeConfig{
			Port: 8080,
		},
		LogLevel: LogInfo,
	}
}

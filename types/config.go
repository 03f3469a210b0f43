package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	UI      UIConfig      `mapstructure:"ui"`
}

// ProjectConfig holds project-related settings.
type ProjectConfig struct {
	RootDir string `mapstructure:"rootDir" validate:"required"`
}

// DataConfig holds snapshot storage configuration.
type DataConfig struct {
	Dir    string `mapstructure:"dir" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// UIConfig holds the persisted UI state: the active view and category
// selection carried between invocations.
type UIConfig struct {
	View     string `mapstructure:"view" validate:"omitempty,oneof=all today week overdue nodate completed"`
	Category string `mapstructure:"category"`
}

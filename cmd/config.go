package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plemaire/taskdeck/types"
)

const (
	configName = ".taskdeck"
	envPrefix  = "TASKDECK"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance; it caches struct info.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. It's okay if it doesn't exist.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g., TASKDECK_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("project.rootDir", ".taskdeck")
	viper.SetDefault("data.dir", filepath.Join(".taskdeck", "data"))
	viper.SetDefault("data.format", "json")
	viper.SetDefault("ui.view", "all")
	viper.SetDefault("ui.category", "")

	cfgFileFlag := viper.GetString("config") // Value from --config flag

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		projectConfigDir := viper.GetString("project.rootDir")
		if _, err := os.Stat(projectConfigDir); !os.IsNotExist(err) {
			// Project-specific config directory exists; prioritize it.
			viper.AddConfigPath(projectConfigDir)
			viper.SetConfigName(configName)
		} else {
			home, err := os.UserHomeDir()
			cobra.CheckErr(err)
			viper.AddConfigPath(home) // $HOME/.taskdeck.yaml
			viper.AddConfigPath(".")  // ./.taskdeck.yaml
			viper.SetConfigName(configName)
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		HandleFatalError("Error: Could not parse the configuration.", err)
	}
	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		HandleFatalError("Error: Invalid configuration.", err)
	}
}

// GetConfig returns the unmarshaled global application config.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// SaveUIState persists the current view and category selection so the next
// invocation picks up where the user left off.
func SaveUIState(view, category string) error {
	GlobalAppConfig.UI.View = view
	GlobalAppConfig.UI.Category = category
	viper.Set("ui.view", view)
	viper.Set("ui.category", category)

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		// No config file exists, create a project-specific one.
		projectConfigDir := GlobalAppConfig.Project.RootDir
		if err := os.MkdirAll(projectConfigDir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		configFile = filepath.Join(projectConfigDir, configName+".yaml")
		viper.SetConfigFile(configFile)
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configFile, err)
	}
	return nil
}

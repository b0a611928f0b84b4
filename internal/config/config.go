// Package config loads and validates the jiramcp configuration: the Jira
// base URL and username from config.yaml / environment, and the API token
// from the OS keychain with an environment-variable fallback. Validation
// fails fast so the server never starts with a missing or non-HTTPS upstream.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	// DefaultConfigFileName is the standard name for the main configuration file.
	DefaultConfigFileName = "config.yaml"
	// DefaultConfigDirName is the standard name for the configuration directory within the user's home directory.
	DefaultConfigDirName = ".jiramcp"
	// ConfigDirEnvVar is the environment variable used to override the default configuration directory path.
	ConfigDirEnvVar = "JIRAMCP_CONFIG_DIR"
)

// EnsureConfigDir checks if the configuration directory exists, creating it if necessary.
// It prioritizes baseDir if provided. If baseDir is empty, it checks the JIRAMCP_CONFIG_DIR
// environment variable, then defaults to ~/.jiramcp. The directory is created with 0700
// permissions since it may sit next to credential material.
func EnsureConfigDir(baseDir string) (string, error) {
	var configDirPath string

	if baseDir != "" {
		configDirPath = baseDir
		log.Debug().Str("path", configDirPath).Msg("Using provided base directory path")
	} else if envDir := os.Getenv(ConfigDirEnvVar); envDir != "" {
		configDirPath = envDir
		log.Debug().Str("path", configDirPath).Str("env_var", ConfigDirEnvVar).Msg("Using config directory path from environment variable")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDirPath = filepath.Join(homeDir, DefaultConfigDirName)
		log.Debug().Str("path", configDirPath).Msg("Using default config directory path")
	}

	info, err := os.Stat(configDirPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", configDirPath).Msg("Config directory does not exist, attempting to create")
			if mkdirErr := os.MkdirAll(configDirPath, 0700); mkdirErr != nil {
				log.Error().Err(mkdirErr).Str("path", configDirPath).Msg("Failed to create config directory")
				return "", fmt.Errorf("%w: %w", ErrConfigDirCreate, mkdirErr)
			}
			return configDirPath, nil
		}
		log.Error().Err(err).Str("path", configDirPath).Msg("Failed to stat config directory path")
		return "", fmt.Errorf("%w: %w", ErrConfigDirStat, err)
	}

	if !info.IsDir() {
		log.Error().Str("path", configDirPath).Msg("Config path exists but is not a directory")
		return "", ErrConfigDirNotDir
	}

	return configDirPath, nil
}

// Config holds the settings needed to reach the upstream Jira instance.
// The API token is deliberately not part of this struct; it is resolved
// separately via GetAPIToken so it never travels through viper's debug
// output or config marshalling.
type Config struct {
	JiraURL          string `mapstructure:"jira_url" yaml:"jira_url"`
	JiraUsername     string `mapstructure:"jira_username" yaml:"jira_username"`
	AllowInsecureURL bool   `mapstructure:"allow_insecure_url" yaml:"allow_insecure_url,omitempty"`
}

// Load reads the configuration from config.yaml in the config directory,
// with JIRAMCP_* environment variables taking precedence. A missing config
// file is not an error; validation of the resulting values is a separate
// step (Validate) so commands like `config init` can run before any Jira
// settings exist.
func Load(baseDir string) (*Config, error) {
	configDir, err := EnsureConfigDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure config directory: %w", err)
	}

	v := viper.New()
	v.SetDefault("jira_url", "")
	v.SetDefault("jira_username", "")
	v.SetDefault("allow_insecure_url", false)

	configPath := filepath.Join(configDir, DefaultConfigFileName)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	log.Debug().Str("path", configPath).Msg("Attempting to load config file")

	v.SetEnvPrefix("JIRAMCP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Warn().Str("path", configPath).Msg("Config file not found. Using defaults and environment variables.")
		} else {
			log.Error().Err(err).Str("path", configPath).Msg("Failed to read config file")
			return nil, fmt.Errorf("%w: %w", ErrConfigRead, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Error().Err(err).Str("path", configPath).Msg("Failed to unmarshal config file")
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is complete enough to talk to Jira:
// the base URL and username must be present, and the URL must use HTTPS
// unless allow_insecure_url was set explicitly (intended for local test
// targets only).
func (c *Config) Validate() error {
	if c.JiraURL == "" {
		return ErrJiraURLMissing
	}
	if !strings.HasPrefix(c.JiraURL, "https://") && !c.AllowInsecureURL {
		return fmt.Errorf("%w: got %q", ErrJiraURLInsecure, RedactedURL(c.JiraURL))
	}
	if c.JiraUsername == "" {
		return ErrJiraUsernameMissing
	}
	return nil
}

// RedactedURL strips any userinfo from a URL string so it is safe to log or
// embed in error messages.
func RedactedURL(rawURL string) string {
	if idx := strings.LastIndex(rawURL, "@"); idx != -1 {
		scheme := ""
		if s := strings.Index(rawURL, "://"); s != -1 {
			scheme = rawURL[:s+3]
		}
		return scheme + rawURL[idx+1:]
	}
	return rawURL
}

// --- Default File Creation ---

const defaultConfigYAML = `# User-specific configuration for the jiramcp server
# Located at ~/.jiramcp/config.yaml

# Base URL of your Jira Cloud instance. Must use HTTPS.
jira_url: ""  # e.g. "https://your-org.atlassian.net"

# Username for Basic authentication (typically your Atlassian account email).
jira_username: ""

# The API token is NOT stored here. Run 'jiramcp config set-key <token>' to
# store it in the OS keychain, or export JIRAMCP_JIRA_API_TOKEN.
`

// writeFileIfNotExists checks if a file exists. If not, it writes the provided content.
func writeFileIfNotExists(filePath string, content string, perm os.FileMode) error {
	_, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", filePath).Msg("File does not exist, attempting to write default content")
			if errWrite := os.WriteFile(filePath, []byte(content), perm); errWrite != nil {
				log.Error().Err(errWrite).Str("path", filePath).Msg("Failed to write default file content")
				return fmt.Errorf("%w: %w", ErrDefaultFileWrite, errWrite)
			}
			log.Info().Str("path", filePath).Msg("Successfully wrote default file content")
			return nil
		}
		log.Error().Err(err).Str("path", filePath).Msg("Failed to stat file path")
		return fmt.Errorf("%w: %w", ErrDefaultFileStat, err)
	}
	log.Debug().Str("path", filePath).Msg("File already exists, no action needed")
	return nil
}

// CreateDefaultConfigFiles ensures the configuration directory exists and
// creates a commented default config.yaml if one does not already exist.
// If baseDir is empty, it uses the default ~/.jiramcp.
func CreateDefaultConfigFiles(baseDir string) error {
	configDir, err := EnsureConfigDir(baseDir)
	if err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	filePath := filepath.Join(configDir, DefaultConfigFileName)
	return writeFileIfNotExists(filePath, defaultConfigYAML, 0600)
}

// --- API Token Handling ---

const (
	keyringServiceName = "jiramcp"
	keyringUserName    = "jira_api_token"
	// EnvAPITokenName defines the environment variable used to look up the
	// Jira API token as a fallback when it is not in the OS keychain.
	EnvAPITokenName = "JIRAMCP_JIRA_API_TOKEN"
)

// GetAPIToken retrieves the Jira API token. It first tries the OS
// keychain/keyring (service "jiramcp", user "jira_api_token"), then the
// JIRAMCP_JIRA_API_TOKEN environment variable. The token value itself is
// never logged.
func GetAPIToken() (string, error) {
	log.Debug().Str("service", keyringServiceName).Str("user", keyringUserName).Msg("Attempting to get API token from keychain")
	token, err := keyring.Get(keyringServiceName, keyringUserName)
	if err == nil {
		log.Debug().Msg("API token retrieved successfully (from keychain)")
		return token, nil
	}

	if !errors.Is(err, keyring.ErrNotFound) {
		log.Error().Err(err).Str("service", keyringServiceName).Str("user", keyringUserName).Msg("Error reading token from keychain")
		return "", fmt.Errorf("%w: %w", ErrKeyringGet, err)
	}

	log.Debug().Str("env_var", EnvAPITokenName).Msg("API token not found in keychain, checking environment variable")
	if token = os.Getenv(EnvAPITokenName); token != "" {
		log.Debug().Msg("API token retrieved successfully (from env var)")
		return token, nil
	}

	return "", ErrAPITokenNotFound
}

// SetAPIToken stores the Jira API token securely in the OS keychain/keyring.
func SetAPIToken(token string) error {
	log.Debug().Str("service", keyringServiceName).Str("user", keyringUserName).Msg("Attempting to set API token in keychain")
	if err := keyring.Set(keyringServiceName, keyringUserName, token); err != nil {
		log.Error().Err(err).Str("service", keyringServiceName).Str("user", keyringUserName).Msg("Failed to set API token in keychain")
		return fmt.Errorf("%w: %w", ErrKeyringSet, err)
	}
	log.Info().Str("service", keyringServiceName).Msg("API token stored successfully in keychain")
	return nil
}

package config

import "errors"

// Sentinel errors for configuration loading and validation.

// ErrConfigRead indicates an error occurred while reading the config file.
var ErrConfigRead = errors.New("failed to read configuration file")

// ErrConfigParse indicates an error occurred while parsing the config file.
var ErrConfigParse = errors.New("failed to parse configuration file")

// ErrConfigDirCreate indicates an error occurred while creating the config directory.
var ErrConfigDirCreate = errors.New("failed to create config directory")

// ErrConfigDirStat indicates an error occurred while checking the config directory.
var ErrConfigDirStat = errors.New("failed to check config directory")

// ErrConfigDirNotDir indicates the config path exists but is not a directory.
var ErrConfigDirNotDir = errors.New("config path exists but is not a directory")

// ErrDefaultFileWrite indicates an error occurred while writing a default config file.
var ErrDefaultFileWrite = errors.New("failed to write default config file")

// ErrDefaultFileStat indicates an error occurred while checking a default config file.
var ErrDefaultFileStat = errors.New("failed to check default config file")

// ErrJiraURLMissing indicates no Jira base URL is configured.
var ErrJiraURLMissing = errors.New("jira_url is not configured")

// ErrJiraURLInsecure indicates the configured Jira base URL is not HTTPS.
var ErrJiraURLInsecure = errors.New("jira_url must use the https scheme")

// ErrJiraUsernameMissing indicates no Jira username is configured.
var ErrJiraUsernameMissing = errors.New("jira_username is not configured")

// ErrKeyringSet indicates an error occurred while setting a key in the OS keyring.
var ErrKeyringSet = errors.New("failed to set key in OS keyring")

// ErrKeyringGet indicates an error occurred while getting a key from the OS keyring (excluding 'not found').
var ErrKeyringGet = errors.New("failed to get key from OS keyring")

// ErrAPITokenNotFound is returned when the Jira API token cannot be found in
// the OS keychain or the fallback environment variable.
var ErrAPITokenNotFound = errors.New("Jira API token not found in OS keychain or environment variable " + EnvAPITokenName)

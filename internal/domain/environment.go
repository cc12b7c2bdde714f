package domain

import (
	"fmt"
	"strings"
)

const EnvironmentVersion = 1

const DefaultIgnoreURL = "https://www.toptal.com/developers/gitignore/api/"

// Environment is the persisted user configuration.
type Environment struct {
	Version              int    `json:"version"`
	GitName              string `json:"git_name"`
	GitEmail             string `json:"git_email"`
	GitDir               string `json:"git_dir"`
	GitIgnoreURL         string `json:"git_ignore_url"`
	ConnStr              string `json:"conn_str"`
	GoogleSearchAPIKey   string `json:"google_search_api_key"`
	GoogleSearchEngineID string `json:"google_search_engine_id"`
}

// EnvKey names one field of the Environment document by its JSON name.
type EnvKey string

const (
	EnvGitName              EnvKey = "git_name"
	EnvGitEmail             EnvKey = "git_email"
	EnvGitDir               EnvKey = "git_dir"
	EnvGitIgnoreURL         EnvKey = "git_ignore_url"
	EnvConnStr              EnvKey = "conn_str"
	EnvGoogleSearchAPIKey   EnvKey = "google_search_api_key"
	EnvGoogleSearchEngineID EnvKey = "google_search_engine_id"
)

var EnvKeys = []EnvKey{
	EnvGitName,
	EnvGitEmail,
	EnvGitDir,
	EnvGitIgnoreURL,
	EnvConnStr,
	EnvGoogleSearchAPIKey,
	EnvGoogleSearchEngineID,
}

func (k EnvKey) IsValid() bool {
	for _, key := range EnvKeys {
		if key == k {
			return true
		}
	}
	return false
}

func ParseEnvKey(value string) (EnvKey, error) {
	parsed := EnvKey(strings.ReplaceAll(strings.TrimSpace(value), "-", "_"))
	if parsed == "" {
		return "", fmt.Errorf("environment key is required")
	}
	if !parsed.IsValid() {
		return "", fmt.Errorf("invalid environment key: %s", value)
	}
	return parsed, nil
}

// Label is the human readable name of the key.
func (k EnvKey) Label() string {
	switch k {
	case EnvGitName:
		return "Git User Name"
	case EnvGitEmail:
		return "Git Email"
	case EnvGitDir:
		return "Git Directory"
	case EnvGitIgnoreURL:
		return "Git Ignore URL"
	case EnvConnStr:
		return "Connection String"
	case EnvGoogleSearchAPIKey:
		return "Google Search API Key"
	case EnvGoogleSearchEngineID:
		return "Google Search Engine ID"
	default:
		return string(k)
	}
}

// NewEnvironment returns the defaults; sqlPath is the default database file.
func NewEnvironment(sqlPath string) Environment {
	return Environment{
		Version:      EnvironmentVersion,
		GitName:      "User",
		GitEmail:     "user.name@email.com",
		GitDir:       "~/Code",
		GitIgnoreURL: DefaultIgnoreURL,
		ConnStr:      sqlPath,
	}
}

func (e Environment) Get(key EnvKey) string {
	switch key {
	case EnvGitName:
		return e.GitName
	case EnvGitEmail:
		return e.GitEmail
	case EnvGitDir:
		return e.GitDir
	case EnvGitIgnoreURL:
		return e.GitIgnoreURL
	case EnvConnStr:
		return e.ConnStr
	case EnvGoogleSearchAPIKey:
		return e.GoogleSearchAPIKey
	case EnvGoogleSearchEngineID:
		return e.GoogleSearchEngineID
	default:
		return ""
	}
}

func (e Environment) WithDefaults(defaults Environment) Environment {
	if e.Version == 0 {
		e.Version = EnvironmentVersion
	}
	if strings.TrimSpace(e.GitName) == "" {
		e.GitName = defaults.GitName
	}
	if strings.TrimSpace(e.GitEmail) == "" {
		e.GitEmail = defaults.GitEmail
	}
	if strings.TrimSpace(e.GitDir) == "" {
		e.GitDir = defaults.GitDir
	}
	if strings.TrimSpace(e.GitIgnoreURL) == "" {
		e.GitIgnoreURL = defaults.GitIgnoreURL
	}
	if strings.TrimSpace(e.ConnStr) == "" {
		e.ConnStr = defaults.ConnStr
	}
	return e
}

// RepositoryContext carries the identity and directories used by the git
// commands. It is built once at startup and passed by value.
type RepositoryContext struct {
	WorkDir string
	GitDir  string
	Author  Identity
}

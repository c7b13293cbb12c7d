package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bitrise-io/subl-launch/sublime"
	"github.com/spf13/viper"
)

const (
	AppName        = "subl-launch"
	ConfigFileName = "config.yaml"
)

const (
	KeyArgumentTemplate  = "argument-template"
	KeyHandledExtensions = "handled-extensions"
	KeyUserExtensions    = "user-extensions"
	KeyDefaultApp        = "default-app"
)

var ErrUnknownKey = errors.New("unknown configuration key")

// BuiltinExtensions are the source file types offered to the editor out of the box.
var BuiltinExtensions = []string{
	"cs", "uxml", "uss", "shader", "compute", "cginc", "hlsl", "glslinc", "template", "raytrace",
}

// extraExtensions are always appended to the default handled set.
var extraExtensions = []string{"json", "asmdef", "log"}

var knownKeys = []string{
	KeyArgumentTemplate,
	KeyHandledExtensions,
	KeyUserExtensions,
	KeyDefaultApp,
}

type Config struct {
	v    *viper.Viper
	path string
}

// Dir returns the per-user configuration directory of the tool.
func Dir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load reads the config file at path. A missing file is not an error, defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault(KeyArgumentTemplate, sublime.DefaultArgumentTemplate)
	v.SetDefault(KeyUserExtensions, "")
	v.SetDefault(KeyDefaultApp, "")

	if fileExists(path) {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return &Config{v: v, path: path}, nil
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := c.v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("write config %s: %w", c.path, err)
	}
	return nil
}

// Set updates one of the known keys in memory. Call Save to persist it.
func (c *Config) Set(key, value string) error {
	for _, known := range knownKeys {
		if key == known {
			c.v.Set(key, value)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Values returns every known key with its effective value, sorted by key.
func (c *Config) Values() [][2]string {
	keys := append([]string(nil), knownKeys...)
	sort.Strings(keys)

	values := make([][2]string, 0, len(keys))
	for _, key := range keys {
		value := c.v.GetString(key)
		if key == KeyHandledExtensions {
			value = c.HandledExtensionsString()
		}
		values = append(values, [2]string{key, value})
	}
	return values
}

func (c *Config) ArgumentTemplate() string {
	return c.v.GetString(KeyArgumentTemplate)
}

func (c *Config) SetArgumentTemplate(template string) {
	c.v.Set(KeyArgumentTemplate, template)
}

func (c *Config) ResetArgumentTemplate() {
	c.v.Set(KeyArgumentTemplate, sublime.DefaultArgumentTemplate)
}

func (c *Config) DefaultApp() string {
	return c.v.GetString(KeyDefaultApp)
}

func (c *Config) SetDefaultApp(app string) {
	c.v.Set(KeyDefaultApp, app)
}

// HandledExtensionsString is the raw ';' separated list, falling back to the
// defaults derived from the user extensions when nothing was configured.
func (c *Config) HandledExtensionsString() string {
	if c.v.IsSet(KeyHandledExtensions) {
		return c.v.GetString(KeyHandledExtensions)
	}
	return strings.Join(DefaultExtensions(c.v.GetString(KeyUserExtensions)), ";")
}

func (c *Config) SetHandledExtensions(extensions string) {
	c.v.Set(KeyHandledExtensions, extensions)
}

func (c *Config) HandledExtensions() map[string]struct{} {
	return ParseExtensions(c.HandledExtensionsString())
}

// DefaultExtensions joins the built-in, user and extra extensions, dropping duplicates.
func DefaultExtensions(userExtensions string) []string {
	var all []string
	all = append(all, BuiltinExtensions...)
	all = append(all, splitExtensions(userExtensions)...)
	all = append(all, extraExtensions...)

	seen := make(map[string]bool, len(all))
	result := make([]string, 0, len(all))
	for _, ext := range all {
		if seen[ext] {
			continue
		}
		seen[ext] = true
		result = append(result, ext)
	}
	return result
}

// ParseExtensions turns "cs;.json;*.LOG" into the lower-case set {cs, json, log}.
func ParseExtensions(extensions string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, ext := range splitExtensions(extensions) {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

func splitExtensions(extensions string) []string {
	var result []string
	for _, part := range strings.Split(extensions, ";") {
		ext := strings.TrimLeft(strings.TrimSpace(part), ".*")
		if ext != "" {
			result = append(result, ext)
		}
	}
	return result
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

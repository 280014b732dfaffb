package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type TokenConfig struct {
	Value string `mapstructure:"-"`
	Path  string `mapstructure:"path"`
}

type NotionConfig struct {
	Token             TokenConfig `mapstructure:"token"`
	BaseURL           string      `mapstructure:"base_url"`
	Version           string      `mapstructure:"version"`
	RequestsPerSecond float64     `mapstructure:"requests_per_second"`
}

type VaultConfig struct {
	Dir string `mapstructure:"dir"`
}

type SourceConfig struct {
	DatabaseID    string `mapstructure:"database_id"`
	TagDatabaseID string `mapstructure:"tag_database_id"`
	Limit         int    `mapstructure:"limit"`
}

// PropertiesConfig names the database properties the migrator reads and
// writes.
type PropertiesConfig struct {
	Title    string `mapstructure:"title"`
	Migrated string `mapstructure:"migrated"`
	Created  string `mapstructure:"created"`
}

type RenderConfig struct {
	MaxDepth int `mapstructure:"max_depth"`
}

type LinksConfig struct {
	Rewrite bool `mapstructure:"rewrite"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	Notion     NotionConfig     `mapstructure:"notion"`
	Vault      VaultConfig      `mapstructure:"vault"`
	Source     SourceConfig     `mapstructure:"source"`
	Properties PropertiesConfig `mapstructure:"properties"`
	Render     RenderConfig     `mapstructure:"render"`
	Links      LinksConfig      `mapstructure:"links"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

// cacheBase returns the base cache directory for notionvault.
// Checks XDG_CACHE_HOME, then ~/.cache, then /tmp/notionvault as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "notionvault")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "notionvault")
	}
	return filepath.Join(os.TempDir(), "notionvault")
}

// DBPath returns the path to the DuckDB migration ledger.
func DBPath() string {
	return filepath.Join(cacheBase(), "ledger.db")
}

// CASDir returns the path to the rendered note snapshot store.
func CASDir() string {
	return filepath.Join(cacheBase(), "cas")
}

// TreeCacheDir returns the path to the fetched block tree cache.
func TreeCacheDir() string {
	return filepath.Join(cacheBase(), "trees")
}

// LogPath returns the path to the migration log file.
func LogPath() string {
	return filepath.Join(cacheBase(), "notionvault.log")
}

// legacyEnv maps config keys to the environment variable names used by
// earlier releases of the migration script.
var legacyEnv = map[string]string{
	"notion.token":           "NOTION_TOKEN",
	"vault.dir":              "OBSIDIAN_DIR",
	"source.database_id":     "ALL_DATABASE_ID",
	"source.tag_database_id": "TAG_DATABASE_ID",
}

func InitializeViper() error {
	// A missing .env is normal; values may come from the real environment.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "notionvault"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "notionvault"))
	}

	viper.SetDefault("notion.base_url", "https://api.notion.com/v1")
	viper.SetDefault("notion.version", "2022-06-28")
	viper.SetDefault("notion.requests_per_second", 3.0)
	viper.SetDefault("vault.dir", ".")
	viper.SetDefault("source.limit", 100)
	viper.SetDefault("properties.title", "Name")
	viper.SetDefault("properties.migrated", "Migrated")
	viper.SetDefault("properties.created", "Created")
	viper.SetDefault("render.max_depth", 64)
	viper.SetDefault("links.rewrite", true)
	viper.SetDefault("cache.enabled", true)

	viper.SetEnvPrefix("NOTIONVAULT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for key, legacy := range legacyEnv {
		envName := "NOTIONVAULT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := viper.BindEnv(key, envName, legacy); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func stringToTokenConfigHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(TokenConfig{}) {
			return data, nil
		}
		if f.Kind() == reflect.String {
			return TokenConfig{Value: data.(string)}, nil
		}
		return data, nil
	}
}

func Load() (*Config, error) {
	if err := InitializeViper(); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToTokenConfigHookFunc(),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := resolveToken(&config.Notion.Token); err != nil {
		return nil, fmt.Errorf("failed to resolve Notion token: %w", err)
	}

	return &config, nil
}

// Validate reports settings a migration cannot run without.
func (c *Config) Validate() error {
	if c.Notion.Token.Value == "" {
		return fmt.Errorf("notion token is not set (notion.token or NOTION_TOKEN)")
	}
	if c.Vault.Dir == "" {
		return fmt.Errorf("vault directory is not set (vault.dir or OBSIDIAN_DIR)")
	}
	return nil
}

// resolveToken accepts either a literal token or a path to a file holding
// one. Environment values override the config file.
func resolveToken(token *TokenConfig) error {
	if envKey := viper.GetString("notion.token"); envKey != "" {
		if !strings.HasPrefix(envKey, "/") && !strings.HasPrefix(envKey, "./") && !strings.HasPrefix(envKey, "~/") {
			token.Value = envKey
			return nil
		}
		token.Path = envKey
	}

	if token.Path != "" {
		if strings.HasPrefix(token.Path, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				token.Path = filepath.Join(home, token.Path[2:])
			}
		}
		keyBytes, err := os.ReadFile(token.Path)
		if err != nil {
			return fmt.Errorf("failed to read token from file %s: %w", token.Path, err)
		}
		token.Value = strings.TrimSpace(string(keyBytes))
	}

	return nil
}

package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// 这两个常量是导航白名单与新窗口默认地址，属于产品配置，不从页面推导。
const (
	DefaultAllowedHost = "www.pinterest.com"
	DefaultWindowURL   = "https://www.google.com/"
)

// Config 存放壳应用的全部可调参数。
// 优先级：环境变量(WEBSHELL_*) > YAML 文件 > DefaultConfig。
type Config struct {
	StartURL     string `yaml:"start_url" envconfig:"START_URL"`
	AllowedHost  string `yaml:"allowed_host" envconfig:"ALLOWED_HOST"`
	DefaultURL   string `yaml:"default_url" envconfig:"DEFAULT_URL"`
	WindowTitle  string `yaml:"window_title" envconfig:"WINDOW_TITLE"`
	WindowWidth  int    `yaml:"window_width" envconfig:"WINDOW_WIDTH"`
	WindowHeight int    `yaml:"window_height" envconfig:"WINDOW_HEIGHT"`
	DataRoot     string `yaml:"data_root" envconfig:"DATA_ROOT"`
	HistoryDB    string `yaml:"history_db" envconfig:"HISTORY_DB"`
	LogLevel     string `yaml:"log_level" envconfig:"LOG_LEVEL"`
}

// DefaultConfig 返回内置默认配置。
func DefaultConfig() Config {
	return Config{
		StartURL:     DefaultWindowURL,
		AllowedHost:  DefaultAllowedHost,
		DefaultURL:   DefaultWindowURL,
		WindowTitle:  "WebShell",
		WindowWidth:  1280,
		WindowHeight: 820,
		DataRoot:     "data",
		HistoryDB:    "history.db",
		LogLevel:     "info",
	}
}

// LoadConfig 在默认值之上叠加 YAML 文件与环境变量。
// path 为空或文件不存在时只使用默认值 + 环境变量。
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// 未设置的环境变量不会覆盖已有字段（字段上没有 default 标签）。
	if err := envconfig.Process("WEBSHELL", &cfg); err != nil {
		return Config{}, fmt.Errorf("load env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 做基础结构校验。
func (c Config) Validate() error {
	if strings.TrimSpace(c.AllowedHost) == "" {
		return fmt.Errorf("allowed_host is required")
	}
	for name, raw := range map[string]string{"default_url": c.DefaultURL, "start_url": c.StartURL} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid %s: scheme must be http or https", name)
		}
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("invalid window size: %dx%d", c.WindowWidth, c.WindowHeight)
	}
	if strings.TrimSpace(c.DataRoot) == "" {
		return fmt.Errorf("data_root is required")
	}
	return nil
}

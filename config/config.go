package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config 汇总所有通过环境变量控制的运行配置。
// 统一集中读取，方便日志输出与调试。
// 各 provider 的 API Key 沿用原有的环境变量名（OPENROUTER_API_KEY 等），
// 由宿主环境负责注入，本进程不做任何 .env 加载。
type Config struct {
	LogFile      string
	DefaultModel string

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	GroqAPIKey        string
	GroqBaseURL       string
	HuggingFaceAPIKey string
	HuggingFaceBase   string

	// 文件配置支持（额外别名、默认模型）
	FileConfig *FileConfig
}

// FileConfig 对应 ~/.external-brain/config.yaml 的内容。
type FileConfig struct {
	DefaultModel string            `yaml:"default_model"`
	Aliases      map[string]string `yaml:"aliases"`
}

var (
	once sync.Once
	cfg  Config
)

// Get 返回全局配置（延迟加载）。
func Get() *Config {
	once.Do(func() {
		cfg = loadFromEnv()
		cfg.FileConfig = loadFromFile()
	})
	return &cfg
}

func loadFromEnv() Config {
	return Config{
		LogFile:           strings.TrimSpace(os.Getenv("EXTERNAL_BRAIN_LOG_FILE")),
		DefaultModel:      strings.TrimSpace(os.Getenv("EXTERNAL_BRAIN_DEFAULT_MODEL")),
		OpenRouterAPIKey:  strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterBaseURL: strings.TrimSpace(os.Getenv("EXTERNAL_BRAIN_OPENROUTER_BASE_URL")),
		GroqAPIKey:        strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		GroqBaseURL:       strings.TrimSpace(os.Getenv("EXTERNAL_BRAIN_GROQ_BASE_URL")),
		HuggingFaceAPIKey: strings.TrimSpace(os.Getenv("HUGGINGFACE_API_KEY")),
		HuggingFaceBase:   strings.TrimSpace(os.Getenv("EXTERNAL_BRAIN_HUGGINGFACE_BASE_URL")),
	}
}

func loadFromFile() *FileConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	configPath := filepath.Join(home, ".external-brain", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		// 尝试读取 config.yml
		configPath = filepath.Join(home, ".external-brain", "config.yml")
		data, err = os.ReadFile(configPath)
		if err != nil {
			return nil
		}
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		fmt.Fprintf(os.Stderr, "解析配置文件失败: %v\n", err)
		return nil
	}

	return &fc
}

// Summary 返回可安全打印的配置摘要（会脱敏 key）。
func (c Config) Summary() string {
	s := fmt.Sprintf(
		"default_model=%s log_file=%s openrouter_api_key=%s openrouter_base_url=%s groq_api_key=%s groq_base_url=%s huggingface_api_key=%s huggingface_base_url=%s",
		emptyAsDefault(c.DefaultModel, "(default)"),
		emptyAsDefault(c.LogFile, "(empty)"),
		maskSecret(c.OpenRouterAPIKey),
		emptyAsDefault(c.OpenRouterBaseURL, "(default)"),
		maskSecret(c.GroqAPIKey),
		emptyAsDefault(c.GroqBaseURL, "(default)"),
		maskSecret(c.HuggingFaceAPIKey),
		emptyAsDefault(c.HuggingFaceBase, "(default)"),
	)

	if c.FileConfig != nil {
		s += fmt.Sprintf(" file_default_model=%s aliases_count=%d", c.FileConfig.DefaultModel, len(c.FileConfig.Aliases))
	}
	return s
}

func emptyAsDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func maskSecret(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "(empty)"
	}
	if len(v) <= 6 {
		return "***"
	}
	return v[:2] + "***" + v[len(v)-2:]
}

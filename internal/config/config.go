package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/Zacy-Sokach/PolyChat/internal/api"
	"github.com/Zacy-Sokach/PolyChat/internal/params"
	"github.com/Zacy-Sokach/PolyChat/internal/utils"
)

// Config 客户端配置。配置文件中的值可被环境变量覆盖。
type Config struct {
	BaseURL  string        `yaml:"base_url"`
	Model    string        `yaml:"model"`
	Defaults DefaultParams `yaml:"defaults"`
}

// DefaultParams 配置文件中的默认采样参数
type DefaultParams struct {
	Temperature     float64 `yaml:"temperature"`
	ReasoningEffort string  `yaml:"reasoning_effort"`
}

// envOverrides 环境变量覆盖项
type envOverrides struct {
	BaseURL string `env:"POLYCHAT_BASE_URL"`
}

// LoadConfig 加载配置：配置文件缺失时返回默认值，
// 然后用非空的环境变量覆盖。
func LoadConfig() (*Config, error) {
	config := defaultConfig()

	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	applyDefaults(config)

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("解析环境变量失败: %w", err)
	}
	if overrides.BaseURL != "" {
		config.BaseURL = overrides.BaseURL
	}

	return config, nil
}

// Exists 检查配置文件是否已创建，用于判断是否首次运行
func Exists() (bool, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

// SaveConfig 保存配置到配置文件
func SaveConfig(config *Config) error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// GenerationParams 把配置中的默认项转换为采样参数
func (c *Config) GenerationParams() params.GenerationParams {
	p := params.Default()
	p.Temperature = c.Defaults.Temperature
	p.ReasoningEffort = c.Defaults.ReasoningEffort
	return p
}

func defaultConfig() *Config {
	p := params.Default()
	return &Config{
		BaseURL: api.DefaultBaseURL,
		Model:   "polychat-default",
		Defaults: DefaultParams{
			Temperature:     p.Temperature,
			ReasoningEffort: p.ReasoningEffort,
		},
	}
}

// applyDefaults 补齐配置文件中缺失的字段
func applyDefaults(config *Config) {
	fallback := defaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = fallback.BaseURL
	}
	if config.Model == "" {
		config.Model = fallback.Model
	}
	if config.Defaults.ReasoningEffort == "" {
		config.Defaults.ReasoningEffort = fallback.Defaults.ReasoningEffort
	}
}

func getConfigPath() (string, error) {
	configDir, err := utils.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("获取配置目录失败: %w", err)
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

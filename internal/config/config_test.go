package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Zacy-Sokach/PolyChat/internal/api"
	"github.com/Zacy-Sokach/PolyChat/internal/params"
)

// useTempConfigDir 把配置目录指向临时目录，避免污染真实配置
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("POLYCHAT_CONFIG_HOME", tmpDir)
	t.Setenv("POLYCHAT_BASE_URL", "")
	return tmpDir
}

func TestLoadConfigWhenNotExists(t *testing.T) {
	useTempConfigDir(t)

	// 加载不存在的配置应该返回默认值
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed when config doesn't exist: %v", err)
	}

	if config.BaseURL != api.DefaultBaseURL {
		t.Errorf("Expected default base URL %q, got %q", api.DefaultBaseURL, config.BaseURL)
	}
	if config.Defaults.Temperature != 0.7 {
		t.Errorf("Expected default temperature 0.7, got %g", config.Defaults.Temperature)
	}
	if config.Defaults.ReasoningEffort != params.EffortMedium {
		t.Errorf("Expected default effort %q, got %q", params.EffortMedium, config.Defaults.ReasoningEffort)
	}
}

func TestSaveAndLoadConfigIntegration(t *testing.T) {
	tmpDir := useTempConfigDir(t)

	testConfig := &Config{
		BaseURL: "http://chat.internal:8080",
		Model:   "glm-4.5",
		Defaults: DefaultParams{
			Temperature:     1.2,
			ReasoningEffort: params.EffortHigh,
		},
	}

	if err := SaveConfig(testConfig); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	// 验证配置文件已创建
	if _, err := os.Stat(filepath.Join(tmpDir, "config.yaml")); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedConfig, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loadedConfig.BaseURL != testConfig.BaseURL {
		t.Errorf("Loaded BaseURL %q doesn't match saved %q", loadedConfig.BaseURL, testConfig.BaseURL)
	}
	if loadedConfig.Model != testConfig.Model {
		t.Errorf("Loaded Model %q doesn't match saved %q", loadedConfig.Model, testConfig.Model)
	}
	if loadedConfig.Defaults.Temperature != 1.2 {
		t.Errorf("Loaded temperature %g doesn't match saved 1.2", loadedConfig.Defaults.Temperature)
	}
}

func TestEnvOverridesBaseURL(t *testing.T) {
	useTempConfigDir(t)

	testConfig := &Config{BaseURL: "http://from-file:3001"}
	if err := SaveConfig(testConfig); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	t.Setenv("POLYCHAT_BASE_URL", "http://from-env:9000")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.BaseURL != "http://from-env:9000" {
		t.Errorf("Env should override file base URL, got %q", config.BaseURL)
	}
}

func TestExistsDetectsFirstRun(t *testing.T) {
	useTempConfigDir(t)

	// 配置文件尚未创建时视为首次运行
	exists, err := Exists()
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("Exists should report false before the config file is saved")
	}

	// 首次配置保存后不再是首次运行
	if err := SaveConfig(&Config{BaseURL: "http://confirmed:3001"}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	exists, err = Exists()
	if err != nil {
		t.Fatalf("Exists failed after save: %v", err)
	}
	if !exists {
		t.Error("Exists should report true after the config file is saved")
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.BaseURL != "http://confirmed:3001" {
		t.Errorf("First-run save was not persisted, got %q", loaded.BaseURL)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tmpDir := useTempConfigDir(t)

	// 创建无效的配置文件
	configPath := filepath.Join(tmpDir, "config.yaml")
	os.WriteFile(configPath, []byte("invalid: yaml: content: [}"), 0644)

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestGenerationParamsFromConfig(t *testing.T) {
	config := &Config{
		Defaults: DefaultParams{
			Temperature:     1.5,
			ReasoningEffort: params.EffortLow,
		},
	}

	p := config.GenerationParams()
	if p.Temperature != 1.5 {
		t.Errorf("Temperature = %g, want 1.5", p.Temperature)
	}
	if p.ReasoningEffort != params.EffortLow {
		t.Errorf("ReasoningEffort = %q, want %q", p.ReasoningEffort, params.EffortLow)
	}
	if p.TopP != nil || p.TopK != nil {
		t.Error("Config defaults should leave top_p/top_k unset")
	}
}

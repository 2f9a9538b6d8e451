package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if cmd.Use != "lexinote [word]" {
		t.Errorf("Expected Use to be 'lexinote [word]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "AI dictionary notes") {
		t.Errorf("Expected Short description to contain 'AI dictionary notes'")
	}

	// Test that flags are set up
	flagTests := []string{
		"config",
		"vault",
		"batch",
		"export",
		"deck",
		"model",
		"on-duplicate",
		"note",
		"chat",
		"translate",
		"apkg",
		"list-decks",
		"skip-audio",
		"skip-anki",
		"provider",
		"target-language",
		"anki-url",
		"audio-backend",
	}

	for _, name := range flagTests {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if name == "config" {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}
}

func TestSetupFlagDefaults(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	vaultFlag := cmd.Flags().Lookup("vault")
	if vaultFlag == nil {
		t.Fatal("vault flag not found")
	}

	home, _ := os.UserHomeDir()
	expectedDefault := filepath.Join(home, ".local", "state", "lexinote", "vault")
	if vaultFlag.DefValue != expectedDefault {
		t.Errorf("Expected default vault dir to be %s, got %s", expectedDefault, vaultFlag.DefValue)
	}

	dupFlag := cmd.Flags().Lookup("on-duplicate")
	if dupFlag == nil {
		t.Fatal("on-duplicate flag not found")
	}
	if dupFlag.DefValue != "ask" {
		t.Errorf("Expected default on-duplicate to be ask, got %s", dupFlag.DefValue)
	}
}

func TestInitConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	viper.Reset()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "test-config.yaml")
	content := `completion:
  provider: gemini
  groq_key: config-key
vault:
  directory: /test/vault`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	InitConfig(cfgPath)

	if got := viper.GetString("completion.provider"); got != "gemini" {
		t.Errorf("completion.provider = %q, want gemini", got)
	}

	// Test environment variable prefix
	os.Setenv("LEXINOTE_TEST_VAR", "test-value")
	defer os.Unsetenv("LEXINOTE_TEST_VAR")

	if viper.GetString("test_var") != "test-value" {
		t.Error("Environment variable not properly loaded")
	}
}

func TestGetGroqKey(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{"from environment", "env-test-key", "config-test-key", "env-test-key"},
		{"from config when no env", "", "config-test-key", "config-test-key"},
		{"empty when neither set", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			if tt.envKey != "" {
				os.Setenv("GROQ_API_KEY", tt.envKey)
				defer os.Unsetenv("GROQ_API_KEY")
			} else {
				os.Unsetenv("GROQ_API_KEY")
			}
			if tt.configKey != "" {
				viper.Set("completion.groq_key", tt.configKey)
			}

			if got := GetGroqKey(); got != tt.expected {
				t.Errorf("GetGroqKey = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetGeminiKey(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	viper.Reset()
	os.Setenv("GEMINI_API_KEY", "env-gemini-key")
	defer os.Unsetenv("GEMINI_API_KEY")

	if got := GetGeminiKey(); got != "env-gemini-key" {
		t.Errorf("GetGeminiKey = %q, want env value", got)
	}
}

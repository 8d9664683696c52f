package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration
type Config struct {
	ServerAddr string
	LogLevel   string

	OpenAIKey string
	GeminiKey string

	TranslateCacheTTL    time.Duration
	TranslateOpenAIModel string

	TTSProviders   []string
	TTSEdgeBinary  string
	TTSEnableCache bool
	TTSCacheDir    string
	TTSOpenAIModel string

	ExplainModel       string
	ExplainGeminiModel string
	AutoExplain        bool

	HistoryPath         string
	RomanizeLLMFallback bool
}

// SetDefaults registers the default value of every config key
func SetDefaults() {
	viper.SetDefault("server.addr", "0.0.0.0:5000")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("translate.cache_ttl", time.Hour)
	viper.SetDefault("translate.openai_model", "gpt-4o-mini")
	viper.SetDefault("tts.providers", []string{"edge", "google", "openai"})
	viper.SetDefault("tts.edge_binary", "edge-tts")
	viper.SetDefault("tts.enable_cache", false)
	viper.SetDefault("tts.cache_dir", "./.lingobridge-cache/audio")
	viper.SetDefault("tts.openai_model", "gpt-4o-mini-tts")
	viper.SetDefault("explain.model", "gpt-3.5-turbo")
	viper.SetDefault("explain.gemini_model", "gemini-2.0-flash")
	viper.SetDefault("chat.auto_explain", false)
	viper.SetDefault("history.path", "./.lingobridge-cache/history.db")
	viper.SetDefault("romanize.llm_fallback", false)
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile, envFile string) {
	// A missing .env is fine; variables may come from the environment
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", envFile, err)
		}
	}

	SetDefaults()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}

		// Search config in home directory with name ".lingobridge" (without extension)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lingobridge")
	}

	// Environment variables, e.g. LINGOBRIDGE_SERVER_ADDR
	viper.SetEnvPrefix("LINGOBRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// LoadConfig reads the current viper state
func LoadConfig() Config {
	return Config{
		ServerAddr:           viper.GetString("server.addr"),
		LogLevel:             viper.GetString("log.level"),
		OpenAIKey:            GetOpenAIKey(),
		GeminiKey:            GetGeminiKey(),
		TranslateCacheTTL:    viper.GetDuration("translate.cache_ttl"),
		TranslateOpenAIModel: viper.GetString("translate.openai_model"),
		TTSProviders:         viper.GetStringSlice("tts.providers"),
		TTSEdgeBinary:        viper.GetString("tts.edge_binary"),
		TTSEnableCache:       viper.GetBool("tts.enable_cache"),
		TTSCacheDir:          viper.GetString("tts.cache_dir"),
		TTSOpenAIModel:       viper.GetString("tts.openai_model"),
		ExplainModel:         viper.GetString("explain.model"),
		ExplainGeminiModel:   viper.GetString("explain.gemini_model"),
		AutoExplain:          viper.GetBool("chat.auto_explain"),
		HistoryPath:          viper.GetString("history.path"),
		RomanizeLLMFallback:  viper.GetBool("romanize.llm_fallback"),
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini.api_key")
}

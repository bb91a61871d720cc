package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Akachukwu893331/BMI-Calculator/internal/gateway"
)

// config is read once at startup from the environment (and .env if present).
type config struct {
	Port        string
	GinMode     string
	DBURL       string
	CORSOrigins []string

	AI              gateway.Config
	AIRatePerMinute int
	AIBurst         int
}

// providerKeyEnv maps an AI provider to the variable holding its API key.
var providerKeyEnv = map[string]string{
	gateway.ProviderGemini:    "GEMINI_API_KEY",
	gateway.ProviderOpenAI:    "OPENAI_API_KEY",
	gateway.ProviderAnthropic: "ANTHROPIC_API_KEY",
}

func loadConfig() (*config, error) {
	_ = godotenv.Load()

	cfg := &config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		DBURL:       os.Getenv("DB_URL"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		AIBurst:     5,
	}

	provider := strings.ToLower(getEnv("AI_PROVIDER", gateway.ProviderGemini))
	keyEnv, ok := providerKeyEnv[provider]
	if !ok {
		return nil, fmt.Errorf("AI_PROVIDER must be one of gemini, openai, anthropic (got %q)", provider)
	}
	cfg.AI = gateway.Config{
		Provider: provider,
		APIKey:   os.Getenv(keyEnv),
		Model:    getEnv("AI_MODEL", gateway.DefaultModel(provider)),
		BaseURL:  os.Getenv("AI_BASE_URL"),
	}

	rate, err := strconv.Atoi(getEnv("AI_RATE_PER_MINUTE", "30"))
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("AI_RATE_PER_MINUTE must be a positive integer")
	}
	cfg.AIRatePerMinute = rate

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

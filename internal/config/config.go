package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	OpenAIAPIKey  string
	RealtimeURL   string
	RealtimeVoice string

	GeminiAPIKey string
	GeminiModel  string

	SceneWarmup   time.Duration
	SceneInterval time.Duration

	FollowUpWarmup time.Duration
	FollowUpPoll   time.Duration

	LogDir        string
	SessionLogDir string
	DBPath        string
}

func Load() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		OpenAIAPIKey:  getenv("OPENAI_API_KEY", ""),
		RealtimeURL:   getenv("REALTIME_URL", "wss://api.openai.com/v1/realtime?model=gpt-4o-realtime-preview-2024-12-17"),
		RealtimeVoice: getenv("REALTIME_VOICE", "alloy"),
		GeminiAPIKey:  getenv("GEMINI_API_KEY", ""),
		GeminiModel:   getenv("GEMINI_MODEL", "gemini-2.0-flash"),

		SceneWarmup:    getdur("SCENE_WARMUP_SEC", 3),
		SceneInterval:  getdur("SCENE_INTERVAL_SEC", 8),
		FollowUpWarmup: getdur("FOLLOWUP_WARMUP_SEC", 5),
		FollowUpPoll:   getdur("FOLLOWUP_POLL_SEC", 5),

		LogDir:        getenv("LOG_DIR", "logs"),
		SessionLogDir: getenv("SESSION_LOG_DIR", "session_logs"),
		DBPath:        getenv("DB_PATH", "sessions.db"),
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getdur(k string, defSec int) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(defSec) * time.Second
}

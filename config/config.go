package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	FrontEndURL string
	BackendURL  string
	Env         string
	UploadDir   string
	OllamaURL   string
	OllamaModel string
	LogLevel    string
}

// App holds the loaded configuration, set by Load at startup.
var App *Config

// Load reads .env (if present) and builds the config from the environment.
func Load() *Config {
	godotenv.Load()

	App = &Config{
		Port:        getEnv("PORT", "3000"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "taskbuddy"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		FrontEndURL: getEnv("FRONT_END_URL", "http://localhost:5173"),
		BackendURL:  getEnv("BACKEND_URL", "http://localhost:3000"),
		Env:         getEnv("ENV", "development"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		OllamaURL:   getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel: getEnv("OLLAMA_MODEL", "llama3.2:1b"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
	return App
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

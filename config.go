package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/Zachkp/portfolio/internal/logging"
)

// Config is read once from the environment at startup. A .env file in the
// working directory is loaded first by godotenv/autoload (see main.go).
type Config struct {
	Port   string
	DBPath string
	Debug  bool

	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
	ToEmail   string
	AutoReply bool

	AdminUsername string
	AdminPassword string

	ParticleFPS        int
	ParticleMaxCount   int
	ParticleMaxStreams int
	ParticleMaxWidth   int
	ParticleMaxHeight  int
}

func loadConfig(getenv func(string) string, log logging.Logger) Config {
	str := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	num := func(key string, def int) int {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Warnf("config: %s=%q is not a positive integer, using %d", key, v, def)
			return def
		}
		return n
	}
	flag := func(key string, def bool) bool {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Warnf("config: %s=%q is not a boolean, using %t", key, v, def)
			return def
		}
		return b
	}

	return Config{
		Port:   str("PORT", "8080"),
		DBPath: str("DB_PATH", "portfolio.db"),
		Debug:  flag("LOG_DEBUG", false),

		SMTPHost:  str("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  str("SMTP_PORT", "587"),
		SMTPUser:  getenv("SMTP_USER"),
		SMTPPass:  getenv("SMTP_PASS"),
		ToEmail:   str("TO_EMAIL", personalInfo.Email),
		AutoReply: flag("CONTACT_AUTOREPLY", true),

		AdminUsername: getenv("ADMIN_USERNAME"),
		AdminPassword: getenv("ADMIN_PASSWORD"),

		ParticleFPS:        num("PARTICLE_FPS", 30),
		ParticleMaxCount:   num("PARTICLE_MAX_COUNT", 20000),
		ParticleMaxStreams: num("PARTICLE_MAX_STREAMS", 16),
		ParticleMaxWidth:   num("PARTICLE_MAX_WIDTH", 1920),
		ParticleMaxHeight:  num("PARTICLE_MAX_HEIGHT", 1080),
	}
}

func envConfig(log logging.Logger) Config {
	return loadConfig(os.Getenv, log)
}

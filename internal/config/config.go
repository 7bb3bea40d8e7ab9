package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lab-semillas/internal/domain/usuarios"
	"lab-semillas/internal/platform/logger"
	"lab-semillas/internal/ports/auth"
)

type Config struct {
	App struct {
		Port            string
		ShutdownTimeout time.Duration
	}
	Log struct {
		Level  logger.Level
		Format logger.Format
		App    string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
		Channel  string
	}
	Historial struct {
		// Si está seteado, el historial va a SQLite en vez de a la base principal.
		SQLitePath string
	}
	Odin struct {
		BaseURL string
		APIKey  string
		Timeout time.Duration
	}

	// DevUsers siembra el repo de usuarios: "ana:ANALISTA,jefe:ADMIN".
	DevUsers []usuarios.Usuario
}

// Load lee la configuración del entorno. El .env lo carga main con godotenv.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	cfg.Log.Level = logger.ParseLevel(os.Getenv("LOG_LEVEL"))
	cfg.Log.Format = logger.ParseFormat(os.Getenv("LOG_FORMAT"))
	cfg.Log.App = getEnv("APP_NAME", "lab-semillas")

	cfg.DB.DSN = os.Getenv("DB_DSN")

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
	cfg.Redis.Channel = getEnv("NOTIFY_CHANNEL", "lab-semillas.workflow")

	cfg.Historial.SQLitePath = os.Getenv("HISTORIAL_SQLITE_PATH")

	cfg.Odin.BaseURL = os.Getenv("ODIN_BASE_URL")
	cfg.Odin.APIKey = os.Getenv("ODIN_API_KEY")
	cfg.Odin.Timeout = getEnvAsDuration("ODIN_TIMEOUT", 5*time.Second)

	devUsers, err := ParseDevUsers(os.Getenv("DEV_USERS"))
	if err != nil {
		return nil, err
	}
	cfg.DevUsers = devUsers

	return cfg, nil
}

// OdinEnabled es false en modo dev: se autentica con X-Debug-User-ID / X-Debug-Role.
func (c *Config) OdinEnabled() bool {
	return c.Odin.BaseURL != "" && c.Odin.APIKey != ""
}

// ParseDevUsers parsea "username:ROL" separados por coma. Los IDs se asignan en orden.
func ParseDevUsers(raw string) ([]usuarios.Usuario, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var out []usuarios.Usuario
	seen := map[string]bool{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		username, rolRaw, ok := strings.Cut(item, ":")
		username = strings.TrimSpace(username)
		rol := auth.ParseRol(rolRaw)
		if !ok || username == "" || rol == "" {
			return nil, fmt.Errorf("DEV_USERS: invalid entry %q (want username:ROL)", item)
		}
		key := strings.ToLower(username)
		if seen[key] {
			return nil, fmt.Errorf("DEV_USERS: duplicated username %q", username)
		}
		seen[key] = true

		out = append(out, usuarios.Usuario{
			ID:       int64(len(out) + 1),
			Username: username,
			Nombre:   username,
			Rol:      rol,
			Activo:   true,
		})
	}
	return out, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if dur, err := time.ParseDuration(value); err == nil {
			return dur
		}
	}
	return defaultValue
}

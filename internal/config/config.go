package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// базовый адрес CMS-бэкенда, например https://api.example.edu
	APIURL        string
	APITimeout    time.Duration
	SessionSecret string
	SessionTTL    time.Duration
	SecureCookie  bool

	Log      string
	LogLevel string
	LogDir   string
	Env      string // dev|prod

	CacheTTL time.Duration

	UploadImageMaxMB int
	UploadVideoMaxMB int
	UploadPDFMaxMB   int
	UploadAnyMaxMB   int

	AllowedOrigins []string
	// если пусто, в дашборд пускается любой вошедший пользователь
	AdminRoles []string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует, logger от config не зависит.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	apiTimeout, err := time.ParseDuration(def(os.Getenv("API_TIMEOUT"), "30s"))
	if err != nil {
		return nil, fmt.Errorf("API_TIMEOUT: %w", err)
	}
	sessionTTL, err := time.ParseDuration(def(os.Getenv("SESSION_TTL"), "168h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	cacheTTL, err := time.ParseDuration(def(os.Getenv("CACHE_TTL"), "60s"))
	if err != nil {
		return nil, fmt.Errorf("CACHE_TTL: %w", err)
	}

	mb := func(name string, d int) (int, error) {
		raw := def(os.Getenv(name), strconv.Itoa(d))
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%s: invalid size %q", name, raw)
		}
		return n, nil
	}

	cfg := &Config{
		Port:          def(os.Getenv("PORT"), "8080"),
		APIURL:        strings.TrimRight(os.Getenv("API_URL"), "/"),
		APITimeout:    apiTimeout,
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    sessionTTL,

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		LogDir:   def(os.Getenv("LOG_DIR"), "logs"),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		CacheTTL: cacheTTL,
	}
	cfg.SecureCookie = cfg.Env == "prod"

	if cfg.UploadImageMaxMB, err = mb("UPLOAD_IMAGE_MAX_MB", 5); err != nil {
		return nil, err
	}
	if cfg.UploadVideoMaxMB, err = mb("UPLOAD_VIDEO_MAX_MB", 10); err != nil {
		return nil, err
	}
	if cfg.UploadPDFMaxMB, err = mb("UPLOAD_PDF_MAX_MB", 10); err != nil {
		return nil, err
	}
	if cfg.UploadAnyMaxMB, err = mb("UPLOAD_ANY_MAX_MB", 10); err != nil {
		return nil, err
	}

	for _, o := range strings.Split(def(os.Getenv("CORS_ORIGINS"), "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	for _, role := range strings.Split(os.Getenv("ADMIN_ROLES"), ",") {
		if role = strings.TrimSpace(role); role != "" {
			cfg.AdminRoles = append(cfg.AdminRoles, role)
		}
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	// без бэкенда дашборду нечего показывать
	if c.APIURL == "" {
		return nil, fmt.Errorf("API_URL is empty")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return nil, fmt.Errorf("API_URL must start with http:// or https://")
	}

	if strings.TrimSpace(c.SessionSecret) == "" {
		if c.Env == "prod" {
			return nil, fmt.Errorf("SESSION_SECRET is empty")
		}
		warnings = append(warnings, "SESSION_SECRET is empty, sessions are signed with a development key")
	} else if len(c.SessionSecret) < 32 {
		warnings = append(warnings, "SESSION_SECRET is shorter than 32 bytes")
	}

	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 8080")
	}

	return warnings, nil
}

// MaxBytes переводит лимит в мегабайтах в байты.
func MaxBytes(mb int) int64 {
	return int64(mb) << 20
}

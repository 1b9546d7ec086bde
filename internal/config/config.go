package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza a configuração carregada do ambiente.
type Config struct {
	Port            int
	DBDSN           string
	RedisURL        string
	JWTAccessTTL    time.Duration
	JWTRefreshTTL   time.Duration
	JWTSecret       string
	AllowOrigins    []string
	RateLimitPublic RateLimitConfig
	RateLimitAuth   RateLimitConfig
	Storage         StorageConfig
	Assistente      AssistenteConfig
	Admin           AdminConfig
}

// RateLimitConfig representa limites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// StorageConfig descreve o destino dos blobs externalizados.
type StorageConfig struct {
	Provider    string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

// AssistenteConfig parametriza o serviço generativo do tutor.
type AssistenteConfig struct {
	APIKey       string
	Model        string
	MaxHistorico int
}

// AdminConfig define a conta administrativa semeada na subida.
type AdminConfig struct {
	Nome  string
	Email string
	Senha string
}

// Load carrega variáveis de ambiente e aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.DBDSN = getEnv("DB_DSN", "")
	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN obrigatório")
	}

	cfg.RedisURL = getEnv("REDIS_URL", "")
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL obrigatório")
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET deve ter pelo menos 32 caracteres")
	}

	accessTTL, err := parseDurationEnv("JWT_ACCESS_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.JWTAccessTTL = accessTTL

	refreshTTL, err := parseDurationEnv("JWT_REFRESH_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWTRefreshTTL = refreshTTL

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	if cfg.RateLimitPublic, err = loadRateLimit("RATE_LIMIT_PUBLIC", 10, 20); err != nil {
		return nil, err
	}
	if cfg.RateLimitAuth, err = loadRateLimit("RATE_LIMIT_AUTH", 10, 40); err != nil {
		return nil, err
	}

	cfg.Storage = StorageConfig{
		Provider:    strings.TrimSpace(getEnv("STORAGE_PROVIDER", "noop")),
		S3Endpoint:  strings.TrimSpace(getEnv("STORAGE_S3_ENDPOINT", "")),
		S3Region:    strings.TrimSpace(getEnv("STORAGE_S3_REGION", "auto")),
		S3Bucket:    strings.TrimSpace(getEnv("STORAGE_S3_BUCKET", "")),
		S3AccessKey: strings.TrimSpace(getEnv("STORAGE_S3_ACCESS_KEY", "")),
		S3SecretKey: strings.TrimSpace(getEnv("STORAGE_S3_SECRET_KEY", "")),
		S3PublicURL: strings.TrimSpace(getEnv("STORAGE_S3_PUBLIC_URL", "")),
	}

	maxHistorico, err := strconv.Atoi(getEnv("ASSISTENTE_MAX_HISTORICO", "10"))
	if err != nil || maxHistorico < 0 {
		return nil, errors.New("ASSISTENTE_MAX_HISTORICO inválido")
	}
	cfg.Assistente = AssistenteConfig{
		APIKey:       strings.TrimSpace(getEnv("GEMINI_API_KEY", "")),
		Model:        strings.TrimSpace(getEnv("GEMINI_MODEL", "gemini-2.0-flash")),
		MaxHistorico: maxHistorico,
	}

	cfg.Admin = AdminConfig{
		Nome:  strings.TrimSpace(getEnv("ADMIN_NOME", "Administração da Liga")),
		Email: strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))),
		Senha: getEnv("ADMIN_SENHA", ""),
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func loadRateLimit(prefixo string, defRPS float64, defBurst int) (RateLimitConfig, error) {
	rps := defRPS
	if raw := getEnv(prefixo+"_RPS", ""); raw != "" {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil || val <= 0 {
			return RateLimitConfig{}, errors.New(prefixo + "_RPS inválido")
		}
		rps = val
	}

	burst := defBurst
	if raw := getEnv(prefixo+"_BURST", ""); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val <= 0 {
			return RateLimitConfig{}, errors.New(prefixo + "_BURST inválido")
		}
		burst = val
	}

	return RateLimitConfig{RequestsPerSecond: rps, Burst: burst}, nil
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}

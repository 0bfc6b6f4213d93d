package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se lee una sola vez al arrancar el proceso y no cambia durante su vida.
type Config struct {
	App     AppConfig
	DB      DBConfig
	HTTP    HTTPConfig
	CBAM    CBAMConfig
	Storage StorageConfig
	Admin   AdminConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	// BasePublicURL es la URL pública de la vista de escaneo (QR y enlaces de pasaporte).
	BasePublicURL string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	// EnforceRLS activa las políticas row-level security por org_id (solo PostgreSQL, best-effort).
	EnforceRLS bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
	// PublicAPIURL es la URL externa de esta API (para URLs de subida prefirmadas).
	PublicAPIURL string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CBAMConfig parámetros del cálculo CBAM.
type CBAMConfig struct {
	// CertificatePricePerTonne precio por defecto (EUR/tCO2e) capturado al crear una declaración.
	CertificatePricePerTonne float64
}

// StorageConfig almacenamiento de artefactos: disco local o un object store compatible S3.
type StorageConfig struct {
	Mode           string // local | s3
	LocalPath      string
	Bucket         string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3UseSSL       bool
	S3PublicURL    string
	UploadSecret   string // firma de los tokens de subida locales
	UploadTokenTTL int    // minutos
}

// AdminConfig protege las rutas de administración (organizaciones y API keys).
type AdminConfig struct {
	// TokenHash hash bcrypt del token de administración. Vacío = rutas admin deshabilitadas.
	TokenHash string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATABASE_URL, CORS_ORIGINS, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:           getString(v, "APP_ENV", "development"),
			Name:          getString(v, "APP_NAME", "passport-api"),
			LogLevel:      getString(v, "LOG_LEVEL", "info"),
			BasePublicURL: strings.TrimRight(getString(v, "BASE_PUBLIC_URL", "http://localhost:3000/scan"), "/"),
		},
		DB: DBConfig{
			Driver:      getString(v, "DB_DRIVER", "postgres"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "passport_api"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			EnforceRLS:  getBool(v, "RLS_ENFORCE", false),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 8080),
			CORSOrigins:  getList(v, "CORS_ORIGINS", []string{"http://localhost:3000"}),
			PublicAPIURL: strings.TrimRight(getString(v, "PUBLIC_API_URL", "http://localhost:8080"), "/"),
		},
		CBAM: CBAMConfig{
			CertificatePricePerTonne: getFloat(v, "CBAM_CERTIFICATE_PRICE_PER_TONNE", 80),
		},
		Storage: StorageConfig{
			Mode:           getString(v, "STORAGE_MODE", "local"),
			LocalPath:      getString(v, "STORAGE_LOCAL_PATH", "./data/artifacts"),
			Bucket:         getString(v, "STORAGE_BUCKET", "passport-artifacts"),
			S3Endpoint:     getString(v, "S3_ENDPOINT", ""),
			S3AccessKey:    getString(v, "S3_ACCESS_KEY", ""),
			S3SecretKey:    getString(v, "S3_SECRET_KEY", ""),
			S3UseSSL:       getBool(v, "S3_USE_SSL", true),
			S3PublicURL:    strings.TrimRight(getString(v, "S3_PUBLIC_BASE_URL", ""), "/"),
			UploadSecret:   getString(v, "UPLOAD_TOKEN_SECRET", ""),
			UploadTokenTTL: getInt(v, "UPLOAD_TOKEN_TTL_MINUTES", 15),
		},
		Admin: AdminConfig{
			TokenHash: getString(v, "ADMIN_TOKEN_HASH", ""),
		},
	}

	if cfg.CBAM.CertificatePricePerTonne < 0 {
		return nil, fmt.Errorf("config: CBAM_CERTIFICATE_PRICE_PER_TONNE no puede ser negativo")
	}
	switch cfg.DB.Driver {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("config: DB_DRIVER desconocido %q", cfg.DB.Driver)
	}
	switch cfg.Storage.Mode {
	case "local", "s3":
	default:
		return nil, fmt.Errorf("config: STORAGE_MODE desconocido %q", cfg.Storage.Mode)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// getList separa por comas (CORS_ORIGINS="http://a,http://b").
func getList(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, part := range strings.Split(v.GetString(key), ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

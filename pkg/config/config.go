package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del backend de autenticación.
// Se construye una sola vez al arranque y se pasa explícitamente a los
// componentes; ningún módulo lee variables de entorno por su cuenta.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	DB       DBConfig
	Keycloak KeycloakConfig
	Storage  StorageConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env     string // development, staging, production
	Name    string
	Version string
	Debug   bool
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido,
// si no el construido a partir de los campos individuales.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// KeycloakConfig configuración del realm de Keycloak que custodia las credenciales.
type KeycloakConfig struct {
	BaseURL   string
	Realm     string
	AdminUser string
	AdminPass string
	ClientID  string
}

// JWKSURL devuelve la URL del JWKS del realm, usada para verificar tokens.
func (c KeycloakConfig) JWKSURL() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/certs", strings.TrimRight(c.BaseURL, "/"), c.Realm)
}

// StorageConfig configuración del bucket de objetos para logos institucionales.
type StorageConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	Folder       string
	UseSSL       bool
	MaxLogoBytes int64
}

// Load lee la configuración desde variables de entorno y opcionalmente desde
// un archivo .env en el directorio de trabajo. Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // el archivo es opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:     v.GetString("APP_ENV"),
			Name:    v.GetString("APP_NAME"),
			Version: v.GetString("APP_VERSION"),
			Debug:   v.GetBool("DEBUG"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
		Keycloak: KeycloakConfig{
			BaseURL:   v.GetString("KC_BASE_URL"),
			Realm:     v.GetString("KC_REALM"),
			AdminUser: v.GetString("KC_ADMIN_USER"),
			AdminPass: v.GetString("KC_ADMIN_PASS"),
			ClientID:  v.GetString("KC_CLIENT_ID"),
		},
		Storage: StorageConfig{
			Endpoint:     v.GetString("MINIO_ENDPOINT"),
			AccessKey:    v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:    v.GetString("MINIO_SECRET_KEY"),
			Bucket:       v.GetString("MINIO_BUCKET"),
			Folder:       v.GetString("MINIO_FOLDER"),
			UseSSL:       v.GetBool("MINIO_USE_SSL"),
			MaxLogoBytes: v.GetInt64("LOGO_MAX_BYTES"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "medisupply-authenticator")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("DEBUG", true)

	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "medisupply_local_user")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "medisupply_local_db")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("KC_BASE_URL", "http://localhost:8080")
	v.SetDefault("KC_REALM", "medisupply-realm")
	v.SetDefault("KC_ADMIN_USER", "admin")
	v.SetDefault("KC_ADMIN_PASS", "admin")
	v.SetDefault("KC_CLIENT_ID", "medisupply-app")

	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "medisupply-logos")
	v.SetDefault("MINIO_FOLDER", "logos")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("LOGO_MAX_BYTES", 2*1024*1024)
}

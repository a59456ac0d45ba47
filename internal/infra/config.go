package infra

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config — estrutura raiz da configuração do backend.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig descreve o servidor HTTP.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig descreve a conexão com o PostgreSQL.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int    `mapstructure:"max_conns"`
	MinConns int    `mapstructure:"min_conns"`
}

// RedisConfig descreve a conexão com o Redis (cache de allow-lists).
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	ACLTTL   time.Duration `mapstructure:"acl_ttl"`
}

// AuthConfig contém o segredo JWT e os parâmetros de sessão.
type AuthConfig struct {
	JWTSecretPath string        `mapstructure:"jwt_secret_path"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	CookieSecure  bool          `mapstructure:"cookie_secure"` // true em produção
	JWTSecret     []byte
}

// AuditConfig ajusta o gravador assíncrono de auditoria de login.
type AuditConfig struct {
	BufferSize    int           `mapstructure:"buffer_size"`
	BatchSize     int           `mapstructure:"batch_size"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

// LoggerConfig configura o comportamento do zap.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig inicializa a configuração combinando arquivo, ENV e defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. Localização do arquivo
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	// 2. ENV pode sobrepor qualquer chave: SERVER_PORT=9000 ⇒ server.port
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 3. Defaults
	setDefaults(v)

	// 4. Leitura do arquivo (ausência não é erro: ENV + defaults bastam)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 5. Mapeamento na struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	// 6. Segredo JWT direto do ENV (Docker/K8s) ou de arquivo
	cfg.Auth.JWTSecret = loadSecretResource(cfg.Auth.JWTSecretPath, "AUTH_JWT_SECRET_DATA")
	if len(cfg.Auth.JWTSecret) == 0 {
		return nil, errors.New("jwt secret nao configurado (auth.jwt_secret_path ou AUTH_JWT_SECRET_DATA)")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("database.max_conns", 25)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("redis.acl_ttl", 5*time.Minute)
	v.SetDefault("auth.token_ttl", 168*time.Hour) // 7 dias
	v.SetDefault("audit.buffer_size", 1000)
	v.SetDefault("audit.batch_size", 100)
	v.SetDefault("audit.flush_interval", 1*time.Second)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
}

func loadSecretResource(path string, envDataKey string) []byte {
	if data := os.Getenv(envDataKey); data != "" {
		return []byte(data)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return data
		}
	}
	return nil
}

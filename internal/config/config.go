package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート

	DatabaseURL      string // 接続文字列（あれば個別設定より優先）
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト
	PostgresPort     int    // DBポート
	PostgresSSLMode  string

	JWTAccessSecret  string // アクセストークン署名シークレット
	JWTRefreshSecret string // リフレッシュトークン署名シークレット

	GoEnv     string // dev/prod
	UploadDir string // 商品画像の保存ディレクトリ
}

// Loadは環境変数から設定を組み立てる
func Load() (Config, error) {
	pgPort, err := atoiOrDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "shop"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTAccessSecret:  os.Getenv("JWT_SECRET_KEY_ACCESS_TOKEN"),
		JWTRefreshSecret: os.Getenv("JWT_SECRET_KEY_REFRESH_TOKEN"),

		GoEnv:     getenv("GO_ENV", "dev"),
		UploadDir: getenv("UPLOAD_DIR", "uploads"),
	}

	//必須チェック
	if cfg.JWTAccessSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET_KEY_ACCESS_TOKEN is required")
	}
	if cfg.JWTRefreshSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET_KEY_REFRESH_TOKEN is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiOrDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Memoria(t *testing.T) {
	t.Setenv("APP_STORAGE", "MEMORY")
	t.Setenv("APP_ADMIN_PASSWORD", "secreto")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.App.Storage)
	assert.Equal(t, "secreto", cfg.App.AdminPassword)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Redis.Enabled())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"storage desconocido", Config{App: AppConfig{Storage: "mongo"}, Docno: DocnoConfig{Strategy: DocnoClock}}, "APP_STORAGE"},
		{"redis sin dirección", Config{App: AppConfig{Storage: StorageMemory}, Docno: DocnoConfig{Strategy: DocnoRedis}}, "REDIS_ADDR"},
		{"estrategia desconocida", Config{App: AppConfig{Storage: StorageMemory}, Docno: DocnoConfig{Strategy: "uuid"}}, "DOCNO_STRATEGY"},
		{"válida", Config{App: AppConfig{Storage: StoragePostgres}, Docno: DocnoConfig{Strategy: DocnoRedis}, Redis: RedisConfig{Addr: "localhost:6379"}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "almacen", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/almacen?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://otro"
	assert.Equal(t, "postgresql://otro", c.ConnectionString())
}

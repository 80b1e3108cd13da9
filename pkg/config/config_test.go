package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "estoque.db", cfg.Store.SQLitePath)
	assert.True(t, cfg.Store.SeedDemo)
	assert.Equal(t, 60*time.Second, cfg.Sheets.CacheTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.History.DefaultWindow)
	assert.False(t, cfg.JWT.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_ValoresComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "Postgres")
	v.Set("HTTP_PORT", "9090")
	v.Set("SEED_DEMO", "false")
	v.Set("HISTORY_DEFAULT_DAYS", "7")
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Store.SeedDemo)
	assert.Equal(t, 7*24*time.Hour, cfg.History.DefaultWindow)
	assert.True(t, cfg.JWT.Enabled())
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/1", DBName: "x", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2F1@db:5432/x?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}

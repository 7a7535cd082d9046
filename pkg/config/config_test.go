package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-portal/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "secreto")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, "secreto", cfg.Session.Secret, "sin SESSION_SECRET se reutiliza JWT_SECRET")
	assert.False(t, cfg.Session.SecureCookie, "en development la cookie no exige HTTPS")
	assert.Equal(t, 30*time.Minute, cfg.Session.PurgeEvery)
	assert.Equal(t, 10, cfg.HTTP.LoginRateLimit)
}

func TestFromViper_CookieSeguraFueraDeDevelopment(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("APP_ENV", "production")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.True(t, cfg.Session.SecureCookie)

	v.Set("SESSION_SECURE_COOKIE", "false")
	cfg, err = config.FromViper(v)
	require.NoError(t, err)
	assert.False(t, cfg.Session.SecureCookie)
}

func TestFromViper_SinJWTSecret_RetornaError(t *testing.T) {
	_, err := config.FromViper(viper.New())
	assert.Error(t, err)
}

func TestFromViper_BackendURLSinBarraFinal(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("BACKEND_URL", "http://api.farmacia.local/api/")
	v.Set("BACKEND_TIMEOUT_SECONDS", "3")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "http://api.farmacia.local/api", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
}

func TestFromViper_BackendURLInvalido(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("BACKEND_URL", "no es una url")

	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "farmacia", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/farmacia?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

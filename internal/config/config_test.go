package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:9090")
	t.Setenv("DATABASE_DSN", "postgres://localhost/linkward")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("LINKS_TABLE", "custom_links")
	t.Setenv("TENANT_LINKS_TABLE", "custom_tenant_links")
	t.Setenv("ID_LENGTH", "12")
	t.Setenv("INCLUDE_TIME_STAMP", "true")
	t.Setenv("MAX_ID_ATTEMPTS", "20")
	t.Setenv("ENABLE_PPROF", "true")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("TLS_HOSTS", "go.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	o := &Options{Addr: "localhost:8080", IDLength: 5, MaxIDAttempts: 10, LogLevel: "info"}
	applyEnv(o)

	assert.Equal(t, "0.0.0.0:9090", o.Addr)
	assert.Equal(t, "postgres://localhost/linkward", o.DatabaseDSN)
	assert.Equal(t, "localhost:6379", o.RedisAddr)
	assert.Equal(t, "custom_links", o.LinksTable)
	assert.Equal(t, "custom_tenant_links", o.TenantLinksTable)
	assert.Equal(t, 12, o.IDLength)
	assert.True(t, o.IncludeTimestamp)
	assert.Equal(t, 20, o.MaxIDAttempts)
	assert.True(t, o.EnablePprof)
	assert.True(t, o.EnableHTTPS)
	assert.Equal(t, "go.example.com", o.TLSHosts)
	assert.Equal(t, "debug", o.LogLevel)
}

func TestApplyEnv_KeepsFlagValues(t *testing.T) {
	o := &Options{Addr: "localhost:8080", IDLength: 5, LogLevel: "info"}
	applyEnv(o)

	assert.Equal(t, "localhost:8080", o.Addr)
	assert.Equal(t, 5, o.IDLength)
	assert.Equal(t, "info", o.LogLevel)
}

func TestApplyEnv_BadNumbersIgnored(t *testing.T) {
	t.Setenv("ID_LENGTH", "lots")
	t.Setenv("MAX_ID_ATTEMPTS", "-")

	o := &Options{IDLength: 5, MaxIDAttempts: 10}
	applyEnv(o)

	assert.Equal(t, 5, o.IDLength)
	assert.Equal(t, 10, o.MaxIDAttempts)
}

// Package config provides the process-wide configuration for both binaries,
// from command-line flags, the environment, and an optional .env file.
package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Options holds the configuration values fixed at startup.
type Options struct {
	// Addr is the server's listening address (ip:port).
	Addr string

	// DatabaseDSN selects the Postgres record store when set.
	DatabaseDSN string

	// RedisAddr selects the Redis record store when set and DatabaseDSN
	// is empty.
	RedisAddr string

	// LinksTable is the name of the link table.
	LinksTable string

	// TenantLinksTable is the name of the tenant index table.
	TenantLinksTable string

	// IDLength is the length of minted link identifiers.
	IDLength int

	// IncludeTimestamp embeds a timestamp component in identifiers when
	// IDLength leaves room for one.
	IncludeTimestamp bool

	// MaxIDAttempts bounds the allocator's collision retry loop.
	MaxIDAttempts int

	// EnablePprof serves pprof on localhost:6060.
	EnablePprof bool

	// EnableHTTPS serves TLS with autocert-managed certificates.
	EnableHTTPS bool

	// TLSHosts is the comma-separated autocert host whitelist.
	TLSHosts string

	// LogLevel is the zap log level.
	LogLevel string
}

var options = &Options{}

func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "postgres dsn")
	flag.StringVar(&options.RedisAddr, "r", "", "redis address")
	flag.StringVar(&options.LinksTable, "links-table", "links", "link table name")
	flag.StringVar(&options.TenantLinksTable, "tenant-links-table", "tenant_links", "tenant index table name")
	flag.IntVar(&options.IDLength, "id-length", 5, "length of minted identifiers")
	flag.BoolVar(&options.IncludeTimestamp, "id-timestamp", false, "embed a timestamp in identifiers")
	flag.IntVar(&options.MaxIDAttempts, "id-attempts", 10, "max identifier allocation attempts")
	flag.BoolVar(&options.EnablePprof, "p", false, "enable pprof")
	flag.BoolVar(&options.EnableHTTPS, "s", false, "enable https")
	flag.StringVar(&options.TLSHosts, "tls-hosts", "", "comma-separated autocert hosts")
	flag.StringVar(&options.LogLevel, "log-level", "info", "log level")
}

// Parse reads flags, then overrides them with environment variables when
// set. A .env file in the working directory is loaded first, if present.
func Parse() *Options {
	_ = godotenv.Load()
	flag.Parse()
	applyEnv(options)
	return options
}

func applyEnv(o *Options) {
	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		o.Addr = addr
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		o.DatabaseDSN = dsn
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		o.RedisAddr = addr
	}
	if table := os.Getenv("LINKS_TABLE"); table != "" {
		o.LinksTable = table
	}
	if table := os.Getenv("TENANT_LINKS_TABLE"); table != "" {
		o.TenantLinksTable = table
	}
	if length := os.Getenv("ID_LENGTH"); length != "" {
		if n, err := strconv.Atoi(length); err == nil {
			o.IDLength = n
		}
	}
	if stamp := os.Getenv("INCLUDE_TIME_STAMP"); stamp != "" {
		v, err := strconv.ParseBool(stamp)
		if err != nil {
			v = false
		}
		o.IncludeTimestamp = v
	}
	if attempts := os.Getenv("MAX_ID_ATTEMPTS"); attempts != "" {
		if n, err := strconv.Atoi(attempts); err == nil {
			o.MaxIDAttempts = n
		}
	}
	if pprof := os.Getenv("ENABLE_PPROF"); pprof != "" {
		v, err := strconv.ParseBool(pprof)
		if err != nil {
			v = false
		}
		o.EnablePprof = v
	}
	if https := os.Getenv("ENABLE_HTTPS"); https != "" {
		v, err := strconv.ParseBool(https)
		if err != nil {
			v = false
		}
		o.EnableHTTPS = v
	}
	if hosts := os.Getenv("TLS_HOSTS"); hosts != "" {
		o.TLSHosts = hosts
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		o.LogLevel = level
	}
}

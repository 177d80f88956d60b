package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/linkward/linkward/internal/config"
	"github.com/linkward/linkward/internal/handler"
	"github.com/linkward/linkward/internal/logger"
	"github.com/linkward/linkward/internal/service"
	"github.com/linkward/linkward/internal/storage"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	log := logger.New()
	defer func() {
		_ = log.Log.Sync()
	}()

	if err := log.Init(options.LogLevel); err != nil {
		panic(err)
	}
	zapLogger := log.Log

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	store := newStore(options, zapLogger)

	allocator := service.NewIDAllocator(store, options.IDLength, options.IncludeTimestamp, options.MaxIDAttempts)
	lifecycle := service.NewLifecycle(store, allocator, zapLogger)

	manager := handler.NewManager(lifecycle, store, zapLogger)
	r := handler.NewManagerRouter(manager, zapLogger)

	serve(r, options, zapLogger)
}

func newStore(options *config.Options, zapLogger *zap.Logger) service.Store {
	switch {
	case options.DatabaseDSN != "":
		zapLogger.Info("using postgres store", zap.String("linksTable", options.LinksTable))
		db, err := storage.InitDB(options.DatabaseDSN, options.LinksTable, options.TenantLinksTable, zapLogger)
		if err != nil {
			panic(err)
		}
		return storage.NewPostgresStore(db, options.LinksTable, options.TenantLinksTable, zapLogger)
	case options.RedisAddr != "":
		zapLogger.Info("using redis store", zap.String("addr", options.RedisAddr))
		rdb := redis.NewClient(&redis.Options{Addr: options.RedisAddr})
		return storage.NewRedisStore(rdb, zapLogger)
	default:
		zapLogger.Info("using in memory store")
		return storage.NewMemoryStore()
	}
}

func serve(r http.Handler, options *config.Options, zapLogger *zap.Logger) {
	if options.EnableHTTPS {
		manager := &autocert.Manager{
			Cache:      autocert.DirCache("cache-dir"),
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(strings.Split(options.TLSHosts, ",")...),
		}
		server := &http.Server{
			Addr:      ":443",
			Handler:   r,
			TLSConfig: manager.TLSConfig(),
		}
		zapLogger.Info("Server is running with TLS", zap.String("addr", server.Addr))
		if err := server.ListenAndServeTLS("", ""); err != nil {
			panic(err)
		}
		return
	}

	zapLogger.Info("Server is running", zap.String("addr", options.Addr))
	if err := http.ListenAndServe(options.Addr, r); err != nil {
		panic(err)
	}
}

package main

import (
	"crypto/tls"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"project-board/api"
	"project-board/board"
	"project-board/config"
	"project-board/domain"
	"project-board/store"
	"project-board/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	var rc *redis.Client
	if cfg.RedisConnectionString != "" {
		rc = redis.NewClient(redisOptions(cfg.RedisConnectionString))
	} else {
		log.Warn("no redis configured; command dedup and snapshot cache disabled")
	}

	st := store.New()
	form := board.NewForm(st)
	views := map[domain.Status]*board.ListView{
		domain.StatusActive:   board.NewListView(st, domain.StatusActive),
		domain.StatusFinished: board.NewListView(st, domain.StatusFinished),
	}
	cache := store.NewSnapshotCache(st, rc, cfg.CacheTTL)

	var deduper api.Deduper
	if rc != nil {
		deduper = api.NewRedisDeduper(rc, cfg.DeduperTTL)
	}

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(echoprometheus.NewMiddleware("project_board"))
	e.Use(api.DecompressRequest(cfg.MaxBodyBytes))
	e.GET("/metrics", echoprometheus.NewHandler())
	e.FileFS("/", "static/index.html", web.Assets)

	api.Register(e, st, cache, form, views, deduper, log.StandardLogger())

	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}

// redisOptions accepts either a redis URL or the comma-separated
// host,password,ssl form some managed offerings hand out.
func redisOptions(connStr string) *redis.Options {
	opts, err := redis.ParseURL(connStr)
	if err == nil {
		return opts
	}
	parts := strings.Split(connStr, ",")
	opts = &redis.Options{Addr: parts[0]}
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToLower(kv[0]) {
		case "password":
			opts.Password = kv[1]
		case "ssl":
			if strings.ToLower(kv[1]) == "true" {
				opts.TLSConfig = &tls.Config{}
			}
		}
	}
	return opts
}

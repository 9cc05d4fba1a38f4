// cmd/edge-service/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubgate/internal/edge"
	"clubgate/pkg/config"
	"clubgate/pkg/db"
	"clubgate/pkg/logger"
	"clubgate/pkg/tenants"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer log.Sync()

	pool := db.MustConnect(cfg, log)

	var cache tenants.Cache
	if rdb := db.MustRedis(cfg, log); rdb != nil {
		cache = tenants.NewRedisCache(rdb, log)
	} else {
		cache = tenants.NewNopCache()
	}

	app := edge.New(log, cfg, pool, cache)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: app.Handler()}
	go func() {
		log.Infow("edge-service listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("ListenAndServe", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	fmt.Println("edge-service stopped")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"table-sales/internal/common/db"
	"table-sales/internal/common/httpx"
	"table-sales/internal/common/logger"
	"table-sales/internal/common/mq"
	"table-sales/internal/config"
	"table-sales/internal/handler"
	"table-sales/internal/repository"
	"table-sales/internal/service"
)

func main() {
	port := flag.Int("port", 3000, "http port")
	storeFlag := flag.Int("store", 0, "store tenant (1 or 2, overrides config)")
	cfgPath := flag.String("config", "", "path to config.yaml")
	operator := flag.String("operator", "", "operator name stamped on opened sales")
	flag.Parse()

	lg := logger.New("table-sales")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.App{Store: config.StoreCfg{ID: 1}}
	path := *cfgPath
	if path == "" {
		if found, err := config.FindConfig(); err == nil {
			path = found
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			lg.Error("config_load", err, map[string]any{"path": path})
			os.Exit(1)
		}
		cfg = loaded
	}

	storeID := cfg.Store.ID
	if *storeFlag != 0 {
		storeID = *storeFlag
	}
	if storeID != 1 && storeID != 2 {
		fmt.Fprintln(os.Stderr, "--store must be 1 or 2")
		os.Exit(2)
	}
	op := cfg.Store.Operator
	if *operator != "" {
		op = *operator
	}

	var store repository.Store
	if cfg.BackendConfigured() {
		conn, err := db.Connect(ctx, cfg.Database.Host, cfg.Database.Port,
			cfg.Database.User, cfg.Database.Pass, cfg.Database.Name)
		if err != nil {
			lg.Error("db_connect", err, nil)
			os.Exit(1)
		}
		defer conn.Close()
		store = repository.NewPG(conn.Pool, storeID)
	} else {
		lg.Info("demo_mode", map[string]any{"reason": "no database configured"})
		store = repository.NewMemory()
	}

	var pub service.Publisher = service.NopPublisher{}
	if cfg.BackendConfigured() && cfg.BrokerConfigured() {
		client, err := mq.Dial(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Pass)
		if err != nil {
			lg.Error("mq_connect", err, nil)
			os.Exit(1)
		}
		defer client.Close()
		if err := client.Declare(); err != nil {
			lg.Error("mq_declare", err, nil)
			os.Exit(1)
		}
		pub = client
	}

	svc := service.New(store, pub, lg, op, storeID)
	srv := httpx.New(":"+strconv.Itoa(*port), handler.Router(handler.New(svc, lg)))

	lg.Info("service_started", map[string]any{
		"port": *port, "store": storeID, "demo": !cfg.BackendConfigured(),
	})
	if err := srv.Run(ctx); err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
}

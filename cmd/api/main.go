package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"vectorhire/internal/api"
	"vectorhire/internal/archive"
	"vectorhire/internal/auth"
	"vectorhire/internal/config"
	"vectorhire/internal/evaluate"
	"vectorhire/internal/notify"
	"vectorhire/internal/session"
	"vectorhire/internal/store"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	slots, redisClient, err := buildSlots(cfg)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}
	log.Printf("storage ready, driver=%s", cfg.Storage.Driver)

	recordStore := store.NewRecordStore(slots.applications)

	if cfg.Seed.Demo {
		if err := recordStore.SeedDemo(context.Background()); err != nil {
			log.Fatalf("seed demo applications: %v", err)
		}
		log.Printf("demo applications seeded")
	}

	holder, err := session.NewHolder(
		slots.session,
		slots.signups,
		cfg.Auth.DemoAdminEmail,
		cfg.Auth.DemoAdminPassword,
		cfg.Auth.DemoAdminName,
	)
	if err != nil {
		log.Fatalf("init session holder: %v", err)
	}

	authService, err := auth.NewAuthService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	var archiveClient *archive.Client
	if cfg.Archive.Enabled {
		archiveClient, err = archive.NewClient(cfg.Archive)
		if err != nil {
			log.Fatalf("init archive client: %v", err)
		}
		log.Printf("archive ready, bucket=%s", cfg.Archive.Bucket)
	}

	hub := notify.NewHub(redisClient, logger)
	go hub.Run(context.Background())

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, api.Deps{
		Store:       recordStore,
		Holder:      holder,
		AuthService: authService,
		Evaluator:   evaluate.New(),
		Archive:     archiveClient,
		Hub:         hub,
		Logger:      logger,
		MaxBytes:    cfg.Upload.MaxBytes,
		ClamdAddr:   cfg.Upload.ClamdAddr,
	})

	address := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("api listening on %s", address)

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}

type slotSet struct {
	applications store.Slot
	session      store.Slot
	signups      store.Slot
}

// buildSlots 按配置选择槽位后端。redis 驱动下返回共享的客户端，
// 变更信号也借助它跨进程广播。
func buildSlots(cfg *config.Config) (slotSet, redis.UniversalClient, error) {
	switch cfg.Storage.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return slotSet{}, nil, fmt.Errorf("ping redis: %w", err)
		}
		return slotSet{
			applications: store.NewRedisSlot(client, store.SlotApplications),
			session:      store.NewRedisSlot(client, store.SlotSession),
			signups:      store.NewRedisSlot(client, store.SlotSignups),
		}, client, nil
	case "memory":
		return slotSet{
			applications: store.NewMemorySlot(),
			session:      store.NewMemorySlot(),
			signups:      store.NewMemorySlot(),
		}, nil, nil
	default:
		applications, err := store.NewFileSlot(cfg.Storage.Dir, store.SlotApplications)
		if err != nil {
			return slotSet{}, nil, err
		}
		sessionSlot, err := store.NewFileSlot(cfg.Storage.Dir, store.SlotSession)
		if err != nil {
			return slotSet{}, nil, err
		}
		signups, err := store.NewFileSlot(cfg.Storage.Dir, store.SlotSignups)
		if err != nil {
			return slotSet{}, nil, err
		}
		return slotSet{
			applications: applications,
			session:      sessionSlot,
			signups:      signups,
		}, nil, nil
	}
}

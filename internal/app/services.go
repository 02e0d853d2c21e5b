package app

import (
	"context"
	"fmt"

	"github.com/yungbote/devroster-backend/internal/data/seed"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
	"github.com/yungbote/devroster-backend/internal/realtime"
	"github.com/yungbote/devroster-backend/internal/realtime/bus"
	"github.com/yungbote/devroster-backend/internal/services"
)

type Services struct {
	Developer services.DeveloperService

	// Bus is nil unless REDIS_ADDR is set.
	Bus bus.Bus
}

func wireServices(ctx context.Context, log *logger.Logger, cfg Config, repos Repos, hub *realtime.SSEHub) (Services, error) {
	log.Info("Wiring services...")

	roster, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		return Services{}, fmt.Errorf("load seed: %w", err)
	}

	developerService, err := services.NewDeveloperService(ctx, log, repos.Developer, roster)
	if err != nil {
		return Services{}, fmt.Errorf("init developer service: %w", err)
	}

	var (
		emitter  services.SSEEmitter = &services.HubEmitter{Hub: hub}
		eventBus bus.Bus
	)
	if cfg.RedisAddr != "" {
		eventBus, err = bus.NewRedisBus(log, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			return Services{}, fmt.Errorf("init event bus: %w", err)
		}
		// Replicas publish to Redis; each forwarder delivers to its local hub.
		emitter = &services.RedisEmitter{Bus: eventBus, Log: log}
	}
	developerService.Subscribe(services.NewDeveloperNotifier(emitter))

	return Services{
		Developer: developerService,
		Bus:       eventBus,
	}, nil
}

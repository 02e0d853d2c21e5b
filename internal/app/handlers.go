package app

import (
	httpH "github.com/yungbote/devroster-backend/internal/http/handlers"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
	"github.com/yungbote/devroster-backend/internal/realtime"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Developer *httpH.DeveloperHandler
	Draft     *httpH.DraftHandler
	Realtime  *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, repos Repos, services Services, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(repos.Probes()...),
		Developer: httpH.NewDeveloperHandler(services.Developer),
		Draft:     httpH.NewDraftHandler(services.Developer),
		Realtime:  httpH.NewRealtimeHandler(log, hub),
	}
}

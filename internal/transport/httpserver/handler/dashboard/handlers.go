package dashboard

import (
	"time"

	dashboarddomain "orbit-expenses/internal/domain/dashboard"
	"orbit-expenses/pkg/logger"
)

type Handlers struct {
	Dashboard *dashboarddomain.Service
	log       logger.Logger
	now       func() time.Time
}

func New(dashboard *dashboarddomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Dashboard: dashboard,
		log:       log,
		now:       time.Now,
	}
}

package expenses

import (
	"time"

	expensesdomain "orbit-expenses/internal/domain/expenses"
	"orbit-expenses/pkg/logger"
)

type Handlers struct {
	Expenses *expensesdomain.Service
	log      logger.Logger
	now      func() time.Time
}

func New(expenses *expensesdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Expenses: expenses,
		log:      log,
		now:      time.Now,
	}
}

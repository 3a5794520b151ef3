package handler

import (
	dashboarddomain "orbit-expenses/internal/domain/dashboard"
	expensesdomain "orbit-expenses/internal/domain/expenses"
	commonhandler "orbit-expenses/internal/transport/httpserver/handler/common"
	dashboardhandler "orbit-expenses/internal/transport/httpserver/handler/dashboard"
	expenseshandler "orbit-expenses/internal/transport/httpserver/handler/expenses"
	"orbit-expenses/pkg/logger"
)

type Handlers struct {
	Common    *commonhandler.Handlers
	Expenses  *expenseshandler.Handlers
	Dashboard *dashboardhandler.Handlers
}

func New(expenses *expensesdomain.Service, dashboard *dashboarddomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Common:    commonhandler.New(expenses, log),
		Expenses:  expenseshandler.New(expenses, log),
		Dashboard: dashboardhandler.New(dashboard, log),
	}
}

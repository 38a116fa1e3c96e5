// Package server exposes the HTTP API: authentication, households,
// expenses, balances, and settle-up suggestions.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/housetab/housetab/internal/auth"
	"github.com/housetab/housetab/internal/service"
)

// Server holds the services behind the HTTP handlers.
type Server struct {
	auth       *service.AuthService
	expenses   *service.ExpenseService
	households *service.HouseholdService
	jwt        *auth.JWTManager
}

// New builds the gin engine with all routes and middleware registered.
func New(authSvc *service.AuthService, expenses *service.ExpenseService, households *service.HouseholdService, jwt *auth.JWTManager) *gin.Engine {
	s := &Server{
		auth:       authSvc,
		expenses:   expenses,
		households: households,
		jwt:        jwt,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), cors())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	authed := api.Group("", requireAuth(s.jwt))
	authed.POST("/households", s.createHousehold)
	authed.GET("/households", s.listHouseholds)
	authed.GET("/households/:householdId", s.getHousehold)
	authed.POST("/households/:householdId/members", s.addMembers)
	authed.GET("/households/:householdId/expenses", s.listExpenses)
	authed.GET("/households/:householdId/balances", s.getBalances)
	authed.GET("/households/:householdId/settle-up", s.settleUp)

	authed.POST("/expenses", s.createExpense)
	authed.POST("/expenses/:expenseId/pay", s.payShare)

	return router
}

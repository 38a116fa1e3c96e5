package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/housetab/housetab/internal/ledger"
	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/service"
	"github.com/housetab/housetab/internal/storage"
)

type participantShareRequest struct {
	User  string  `json:"user" binding:"required"`
	Share float64 `json:"share" binding:"required,gt=0,lte=1"`
}

type createExpenseRequest struct {
	HouseholdID  string                    `json:"householdId" binding:"required"`
	Name         string                    `json:"name" binding:"required"`
	Amount       float64                   `json:"amount" binding:"required,gt=0"`
	Date         int64                     `json:"date"`
	Payer        string                    `json:"payer" binding:"required"`
	Participants []participantShareRequest `json:"participants" binding:"required,min=1,dive"`
}

type payShareRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type participantShareResponse struct {
	User       string  `json:"user"`
	Share      float64 `json:"share"`
	IsPaid     bool    `json:"isPaid"`
	AmountPaid float64 `json:"amountPaid"`
}

type expenseResponse struct {
	ID               string                     `json:"id"`
	HouseholdID      string                     `json:"householdId"`
	Name             string                     `json:"name"`
	Amount           float64                    `json:"amount"`
	Date             int64                      `json:"date"`
	Payer            string                     `json:"payer"`
	Participants     []participantShareResponse `json:"participants"`
	IsCompletelyPaid bool                       `json:"isCompletelyPaid"`
	CreatedAt        int64                      `json:"createdAt"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	shares := make([]participantShareResponse, len(e.Participants))
	for i, p := range e.Participants {
		shares[i] = participantShareResponse{
			User:       p.UserID,
			Share:      p.Share,
			IsPaid:     p.IsPaid,
			AmountPaid: p.AmountPaid,
		}
	}
	return expenseResponse{
		ID:               e.ID,
		HouseholdID:      e.HouseholdID,
		Name:             e.Name,
		Amount:           e.Amount,
		Date:             e.Date,
		Payer:            e.PayerID,
		Participants:     shares,
		IsCompletelyPaid: e.IsCompletelyPaid,
		CreatedAt:        e.CreatedAt,
	}
}

// writeDomainError maps engine and storage errors to HTTP statuses.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrExpenseNotFound), errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrNotParticipant), errors.Is(err, service.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrAlreadyPaid),
		errors.Is(err, ledger.ErrAmountMismatch),
		errors.Is(err, ledger.ErrInvalidExpense):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) createExpense(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participants := make([]models.ParticipantShare, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = models.ParticipantShare{UserID: p.User, Share: p.Share}
	}

	expense, err := s.expenses.CreateExpense(c.Request.Context(), userID(c), service.CreateExpenseInput{
		HouseholdID:  req.HouseholdID,
		Name:         req.Name,
		Amount:       req.Amount,
		Date:         req.Date,
		PayerID:      req.Payer,
		Participants: participants,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) listExpenses(c *gin.Context) {
	expenses, err := s.expenses.ListExpenses(c.Request.Context(), userID(c), c.Param("householdId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	out := make([]expenseResponse, len(expenses))
	for i := range expenses {
		out[i] = toExpenseResponse(&expenses[i])
	}
	c.JSON(http.StatusOK, gin.H{"expenses": out})
}

func (s *Server) getBalances(c *gin.Context) {
	balances, err := s.expenses.Balances(c.Request.Context(), userID(c), c.Param("householdId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, balances)
}

func (s *Server) settleUp(c *gin.Context) {
	plan, err := s.expenses.SettleUp(c.Request.Context(), userID(c), c.Param("householdId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if plan == nil {
		plan = []ledger.Transaction{}
	}
	c.JSON(http.StatusOK, gin.H{"transactions": plan})
}

func (s *Server) payShare(c *gin.Context) {
	var req payShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := s.expenses.RecordPayment(c.Request.Context(), c.Param("expenseId"), userID(c), req.Amount)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "expense": toExpenseResponse(expense)})
}

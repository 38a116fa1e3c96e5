package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/housetab/housetab/internal/models"
)

type createHouseholdRequest struct {
	Name    string   `json:"name" binding:"required"`
	Members []string `json:"members"`
}

type addMembersRequest struct {
	Members []string `json:"members" binding:"required,min=1"`
}

type householdResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"createdAt"`
}

func toHouseholdResponse(h *models.Household) householdResponse {
	return householdResponse{
		ID:        h.ID,
		Name:      h.Name,
		Members:   h.Members,
		CreatedAt: h.CreatedAt,
	}
}

func (s *Server) createHousehold(c *gin.Context) {
	var req createHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	household, err := s.households.CreateHousehold(c.Request.Context(), userID(c), req.Name, req.Members)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toHouseholdResponse(household))
}

func (s *Server) getHousehold(c *gin.Context) {
	household, err := s.households.GetHousehold(c.Request.Context(), userID(c), c.Param("householdId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHouseholdResponse(household))
}

func (s *Server) listHouseholds(c *gin.Context) {
	households, err := s.households.ListHouseholds(c.Request.Context(), userID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	out := make([]householdResponse, len(households))
	for i := range households {
		out[i] = toHouseholdResponse(&households[i])
	}
	c.JSON(http.StatusOK, gin.H{"households": out})
}

func (s *Server) addMembers(c *gin.Context) {
	var req addMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	household, err := s.households.AddMembers(c.Request.Context(), userID(c), c.Param("householdId"), req.Members)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHouseholdResponse(household))
}

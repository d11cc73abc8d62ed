package handlers

import (
	"net/http"

	"github.com/gigcred/backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PublicHandler struct {
	userService *services.UserService
}

func NewPublicHandler(userService *services.UserService) *PublicHandler {
	return &PublicHandler{userService: userService}
}

// GetPublicProfile returns the client-visible subset of a freelancer's
// profile. Contact details stay private.
// GET /public/profiles/:id
func (h *PublicHandler) GetPublicProfile(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile ID"})
		return
	}

	user, err := h.userService.GetUserByID(profileID)
	if err != nil || !user.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                user.ID,
		"name":              user.Name,
		"role":              user.Role,
		"location":          user.Location,
		"bio":               user.Bio,
		"skills":            user.Skills,
		"experience_years":  user.ExperienceYears,
		"credibility_score": user.CredibilityScore,
		"is_bank_connected": user.IsBankConnected,
		"member_since":      user.CreatedAt,
	})
}

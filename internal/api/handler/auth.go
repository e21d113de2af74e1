package handler

import (
	"net/http"

	"github.com/kangmariz/barangay-complaint-corner/internal/auth"

	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"`
}

// Signup creates a resident account and returns a logged-in session.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fullName, username and password are required"})
		return
	}

	session, err := h.Auth.Signup(req.FullName, req.Username, req.Password, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	session, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Logout revokes the current session. Safe to call twice.
func (h *Handler) Logout(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		if err := h.Auth.Logout(token); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "You've been successfully logged out"})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// UpdateProfile merges the submitted fields into the current profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var update auth.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}

	user, err := h.Auth.UpdateProfile(currentUser(c), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ChangePassword rotates the account password after verifying the old one.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currentPassword and newPassword are required"})
		return
	}

	if err := h.Auth.ChangePassword(currentUser(c), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Your password has been updated"})
}

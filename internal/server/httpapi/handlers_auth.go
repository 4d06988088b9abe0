package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mpetrov/taskkeeper/internal/api"
)

func (s *Server) handleSignup(c *gin.Context) {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Message: "invalid request body"})
		return
	}

	resp, err := s.users.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "user signed up", "user_id", resp.User.ID)
	respondData(c, http.StatusCreated, resp)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Message: "invalid request body"})
		return
	}

	resp, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

func (s *Server) handleMe(c *gin.Context) {
	user, err := s.users.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var patch api.UpdateProfileRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Message: "invalid request body"})
		return
	}

	user, err := s.users.UpdateProfile(c.Request.Context(), currentUserID(c), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

func (s *Server) handleChangePassword(c *gin.Context) {
	var req api.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Message: "invalid request body"})
		return
	}

	if err := s.users.ChangePassword(c.Request.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "password updated")
}

func (s *Server) handleDeleteAccount(c *gin.Context) {
	userID := currentUserID(c)
	if err := s.users.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "account deleted", "user_id", userID)
	respondMessage(c, http.StatusOK, "account deleted")
}

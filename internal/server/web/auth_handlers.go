package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) login(c *gin.Context) {
	ctx := c.Request.Context()

	var form loginForm
	if err := bindJSON(c, &form); err != nil {
		jsonMsg(c, http.StatusBadRequest, msgRequiredFieldsMissing)
		return
	}
	form.Email = trimmed(form.Email)
	if err := form.Validate(); err != nil {
		jsonMsg(c, http.StatusBadRequest, msgRequiredFieldsMissing)
		return
	}

	userID, err := s.deps.Credentials.Verify(ctx, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.logger.Warn(ctx, "failed login", "remote_ip", c.ClientIP())
			jsonMsg(c, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		s.logger.Error(ctx, "login failed", "error", err)
		jsonMsg(c, http.StatusInternalServerError, msgDatabaseError)
		return
	}

	token, err := s.deps.Sessions.Create(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "session create failed", "error", err, "user_id", userID)
		jsonMsg(c, http.StatusInternalServerError, msgDatabaseError)
		return
	}

	s.setSessionCookie(c, token)
	s.logger.Info(ctx, "user logged in", "user_id", userID)
	jsonMsg(c, http.StatusOK, msgLoggedIn)
}

func (s *HTTPServer) updatePassword(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c)

	var form passwordForm
	if err := bindJSON(c, &form); err != nil {
		jsonMsg(c, http.StatusBadRequest, msgMissingFields)
		return
	}
	if err := form.Validate(); err != nil {
		jsonMsg(c, http.StatusBadRequest, msgMissingFields)
		return
	}

	if err := s.deps.Credentials.UpdatePassword(ctx, userID, form.Password); err != nil {
		switch {
		case errors.Is(err, common.ErrMissingFields):
			jsonMsg(c, http.StatusBadRequest, msgMissingFields)
		case errors.Is(err, common.ErrorNotFound):
			// the session outlived its user
			s.clearSessionCookie(c)
			jsonMsg(c, http.StatusBadRequest, msgNotAuthenticated)
		default:
			s.logger.Error(ctx, "password update failed", "error", err, "user_id", userID)
			jsonMsg(c, http.StatusInternalServerError, msgDatabaseError)
		}
		return
	}

	// every session of the user, this one included, is gone now
	s.clearSessionCookie(c)
	s.logger.Info(ctx, "password updated", "user_id", userID)
	jsonMsg(c, http.StatusOK, msgPasswordUpdated)
}

func (s *HTTPServer) logout(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c)

	if err := s.deps.Sessions.InvalidateAll(ctx, userID); err != nil {
		s.logger.Error(ctx, "logout failed", "error", err, "user_id", userID)
		jsonMsg(c, http.StatusInternalServerError, msgDatabaseError)
		return
	}

	s.clearSessionCookie(c)
	s.logger.Info(ctx, "user logged out", "user_id", userID)
	jsonMsg(c, http.StatusOK, msgLoggedOut)
}

func (s *HTTPServer) register(c *gin.Context) {
	ctx := c.Request.Context()
	tokenID := c.Param("id")

	var form registerForm
	if err := bindJSON(c, &form); err != nil {
		jsonMsg(c, http.StatusBadRequest, msgRequiredFieldsMissing)
		return
	}
	form.Email = trimmed(form.Email)
	if err := form.Validate(); err != nil {
		if errors.Is(err, errInvalidEmail) {
			jsonMsg(c, http.StatusBadRequest, msgInvalidEmail)
			return
		}
		jsonMsg(c, http.StatusBadRequest, msgRequiredFieldsMissing)
		return
	}

	err := s.deps.Registration.Register(ctx, tokenID, form.Email, form.Password)
	switch {
	case err == nil:
		s.logger.Info(ctx, "registration completed")
		jsonMsg(c, http.StatusOK, msgRegistered)
	case errors.Is(err, common.ErrMissingFields):
		jsonMsg(c, http.StatusBadRequest, msgRequiredFieldsMissing)
	case errors.Is(err, common.ErrInvalidToken):
		jsonMsg(c, http.StatusBadRequest, msgInvalidToken)
	case errors.Is(err, common.ErrConflict):
		jsonMsg(c, http.StatusConflict, msgTokenConflict)
	case errors.Is(err, common.ErrEmailTaken):
		jsonMsg(c, http.StatusConflict, msgEmailTaken)
	default:
		s.logger.Error(ctx, "registration failed", "error", err)
		jsonMsg(c, http.StatusInternalServerError, msgDatabaseError)
	}
}

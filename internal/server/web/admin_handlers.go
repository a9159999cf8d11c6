package web

import (
	"net/http"

	"github.com/dmitrijs2005/helpdesk/internal/server/models"
	"github.com/gin-gonic/gin"
)

// invite provisions a pending user and returns the registration token.
func (s *HTTPServer) invite(c *gin.Context) {
	ctx := c.Request.Context()

	var form inviteForm
	if err := bindJSON(c, &form); err != nil {
		jsonMsg(c, http.StatusBadRequest, msgRequiredFieldsMissing)
		return
	}
	form.Surname, form.Name = trimmed(form.Surname), trimmed(form.Name)
	if err := form.Validate(); err != nil {
		jsonMsg(c, http.StatusBadRequest, msgRequiredFieldsMissing)
		return
	}

	inv, err := s.deps.Registration.Invite(ctx, form.Surname, form.Name)
	if err != nil {
		s.logger.Error(ctx, "invite failed", "error", err)
		jsonMsg(c, http.StatusInternalServerError, msgDatabaseError)
		return
	}

	s.logger.Info(ctx, "user invited", "user_id", inv.UserID, "by", currentUser(c))
	jsonMsgObj(c, http.StatusOK, msgInvited, gin.H{
		"userId":  inv.UserID,
		"tokenId": inv.TokenID,
	})
}

// settings shows the account page; administrators also get the list of
// open invitations.
func (s *HTTPServer) settings(c *gin.Context) {
	ctx := c.Request.Context()

	admin, err := s.deps.Authorization.IsAdmin(ctx, currentUser(c))
	if err != nil {
		s.logger.Error(ctx, "role lookup failed", "error", err)
		jsonMsg(c, http.StatusInternalServerError, msgDatabaseError)
		return
	}

	pending := []*models.PendingRegistration{}
	if admin {
		if pending, err = s.deps.Registration.Pending(ctx); err != nil {
			s.logger.Error(ctx, "pending invitations lookup failed", "error", err)
			jsonMsg(c, http.StatusInternalServerError, msgDatabaseError)
			return
		}
	}

	jsonMsgObj(c, http.StatusOK, "", gin.H{
		"admin": admin,
		"users": pendingView(pending),
	})
}

type pendingUser struct {
	UserID  string `json:"userId"`
	Surname string `json:"surname"`
	Name    string `json:"name"`
	TokenID string `json:"tokenId"`
}

func pendingView(list []*models.PendingRegistration) []pendingUser {
	out := make([]pendingUser, 0, len(list))
	for _, p := range list {
		out = append(out, pendingUser{UserID: p.UserID, Surname: p.Surname, Name: p.Name, TokenID: p.TokenID})
	}
	return out
}

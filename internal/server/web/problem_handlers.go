package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) createProblem(c *gin.Context) {
	ctx := c.Request.Context()

	var form problemForm
	if err := bindJSON(c, &form); err != nil {
		jsonMsg(c, http.StatusBadRequest, msgRequiredFieldsMissing)
		return
	}
	form.Name, form.Category = trimmed(form.Name), trimmed(form.Category)
	if err := form.Validate(); err != nil {
		if errors.Is(err, common.ErrInvalidCategory) {
			jsonMsg(c, http.StatusBadRequest, msgInvalidCategory)
			return
		}
		jsonMsg(c, http.StatusBadRequest, msgRequiredFieldsMissing)
		return
	}

	p, err := s.deps.Problems.Create(ctx, currentUser(c), form.Name, form.Description, form.Category)
	switch {
	case err == nil:
		s.logger.Info(ctx, "problem created", "problem_id", p.ID, "creator_id", p.CreatorID)
		jsonMsgObj(c, http.StatusOK, msgProblemCreated, gin.H{"problemId": p.ID})
	case errors.Is(err, common.ErrMissingFields):
		jsonMsg(c, http.StatusBadRequest, msgRequiredFieldsMissing)
	case errors.Is(err, common.ErrInvalidCategory):
		jsonMsg(c, http.StatusBadRequest, msgInvalidCategory)
	default:
		s.logger.Error(ctx, "problem create failed", "error", err)
		jsonMsg(c, http.StatusInternalServerError, msgDatabaseError)
	}
}

func (s *HTTPServer) updateProblemStatus(c *gin.Context) {
	ctx := c.Request.Context()

	var form statusForm
	if err := bindJSON(c, &form); err != nil {
		jsonMsg(c, http.StatusBadRequest, msgRequiredFieldsMissing)
		return
	}
	if err := form.Validate(); err != nil {
		s.writeStatusError(c, err)
		return
	}

	if err := s.deps.Problems.UpdateStatus(ctx, int64(form.ID), form.Status); err != nil {
		s.writeStatusError(c, err)
		return
	}

	s.logger.Info(ctx, "problem status updated", "problem_id", int64(form.ID), "status", form.Status, "by", currentUser(c))
	jsonMsg(c, http.StatusOK, msgStatusUpdated)
}

func (s *HTTPServer) writeStatusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrMissingProblemID):
		jsonMsg(c, http.StatusBadRequest, msgProblemIDRequired)
	case errors.Is(err, common.ErrMissingStatus):
		jsonMsg(c, http.StatusBadRequest, msgStatusRequired)
	case errors.Is(err, common.ErrInvalidStatus):
		jsonMsg(c, http.StatusBadRequest, msgInvalidStatus)
	case errors.Is(err, common.ErrorNotFound):
		jsonMsg(c, http.StatusNotFound, msgProblemNotFound)
	default:
		s.logger.Error(c.Request.Context(), "problem status update failed", "error", err)
		jsonMsg(c, http.StatusInternalServerError, msgDatabaseError)
	}
}

func (s *HTTPServer) listProblems(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := s.deps.Problems.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "problem list failed", "error", err)
		jsonMsg(c, http.StatusInternalServerError, msgDatabaseError)
		return
	}

	jsonMsgObj(c, http.StatusOK, "", gin.H{
		"problems":      list,
		"totalProblems": len(list),
	})
}

func (s *HTTPServer) dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	d, err := s.deps.Problems.Dashboard(ctx)
	if err != nil {
		s.logger.Error(ctx, "dashboard failed", "error", err)
		jsonMsg(c, http.StatusInternalServerError, msgDatabaseError)
		return
	}

	jsonMsgObj(c, http.StatusOK, "", gin.H{
		"chartData":             d.ByStatus,
		"problemsCreatedToday":  d.CreatedToday,
		"problemsResolvedToday": d.ResolvedToday,
		"categoryCounts":        d.ByCategory,
	})
}

package server

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// SessionState is the body of every successful API call.
type SessionState struct {
	ID string `json:"id"`
	// OK reports the outcome of a navigation or submit call.
	OK      *bool       `json:"ok,omitempty"`
	Message string      `json:"message,omitempty"`
	View    render.View `json:"view"`
}

// FieldRequest sets one field.
type FieldRequest struct {
	Value string `json:"value"`
}

// PasteRequest appends pasted text to the name.
type PasteRequest struct {
	Text string `json:"text"`
}

type apiHandler func(c context.Context, ctx *app.RequestContext, sess *session)

// apiSession resolves :id and serialises access to its controller.
func (s *Server) apiSession(fn apiHandler) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		sess, err := s.store.get(ctx.Param("id"))
		if err != nil {
			apiError(ctx, consts.StatusNotFound, err)
			return
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		fn(c, ctx, sess)
	}
}

func (s *Server) apiCreate(c context.Context, ctx *app.RequestContext) {
	sess := s.store.create()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.writeState(c, ctx, consts.StatusCreated, sess, nil, "")
}

func (s *Server) apiGet(c context.Context, ctx *app.RequestContext, sess *session) {
	s.writeState(c, ctx, consts.StatusOK, sess, nil, "")
}

func (s *Server) apiDelete(_ context.Context, ctx *app.RequestContext) {
	if !s.store.delete(ctx.Param("id")) {
		apiError(ctx, consts.StatusNotFound, ErrSessionNotFound)
		return
	}
	ctx.SetStatusCode(consts.StatusNoContent)
}

func (s *Server) apiSetField(c context.Context, ctx *app.RequestContext, sess *session) {
	var req FieldRequest
	if err := json.Unmarshal(ctx.Request.Body(), &req); err != nil {
		apiError(ctx, consts.StatusBadRequest, err)
		return
	}
	field := wizard.Field(ctx.Param("field"))
	if err := s.catalog.CheckValue(field, req.Value); err != nil {
		apiError(ctx, consts.StatusBadRequest, err)
		return
	}
	if err := sess.ctrl.Set(field, req.Value); err != nil {
		apiError(ctx, consts.StatusBadRequest, err)
		return
	}
	s.writeState(c, ctx, consts.StatusOK, sess, nil, "")
}

func (s *Server) apiPaste(c context.Context, ctx *app.RequestContext, sess *session) {
	var req PasteRequest
	if err := json.Unmarshal(ctx.Request.Body(), &req); err != nil {
		apiError(ctx, consts.StatusBadRequest, err)
		return
	}
	sess.ctrl.OnPaste(req.Text)
	s.writeState(c, ctx, consts.StatusOK, sess, nil, "")
}

func (s *Server) apiNext(c context.Context, ctx *app.RequestContext, sess *session) {
	ok := sess.ctrl.NextStep()
	status := consts.StatusOK
	if !ok && sess.ctrl.Errors().Any() {
		status = consts.StatusUnprocessableEntity
	}
	s.writeState(c, ctx, status, sess, &ok, "")
}

func (s *Server) apiPrev(c context.Context, ctx *app.RequestContext, sess *session) {
	ok := sess.ctrl.PrevStep()
	s.writeState(c, ctx, consts.StatusOK, sess, &ok, "")
}

func (s *Server) apiSubmit(c context.Context, ctx *app.RequestContext, sess *session) {
	ok, err := sess.ctrl.Submit(c)
	switch {
	case errors.Is(err, wizard.ErrNotFinalStep), errors.Is(err, wizard.ErrAlreadySubmitted):
		apiError(ctx, consts.StatusConflict, err)
	case err != nil:
		s.logger.Error().Err(err).Str("session", sess.id).Msg("submission failed")
		apiError(ctx, consts.StatusBadGateway, err)
	case !ok:
		s.writeState(c, ctx, consts.StatusUnprocessableEntity, sess, &ok, "")
	default:
		s.writeState(c, ctx, consts.StatusOK, sess, &ok, sess.ctrl.SuccessMessage())
	}
}

func (s *Server) writeState(c context.Context, ctx *app.RequestContext, status int, sess *session, ok *bool, message string) {
	view, err := s.orch.View(c, orchestrator.Request{Controller: sess.ctrl})
	if err != nil {
		apiError(ctx, consts.StatusInternalServerError, err)
		return
	}
	body, err := json.Marshal(SessionState{
		ID:      sess.id,
		OK:      ok,
		Message: message,
		View:    view,
	})
	if err != nil {
		apiError(ctx, consts.StatusInternalServerError, err)
		return
	}
	ctx.Data(status, "application/json; charset=utf-8", body)
}

func apiError(ctx *app.RequestContext, status int, err error) {
	ctx.AbortWithStatusJSON(status, utils.H{"error": err.Error()})
}

package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	csrfField = "csrf"

	flashInvalidAge   = "Age must be a whole number."
	flashSubmitFailed = "We could not save your answers. Please try again."
)

// formHandler runs one wizard action for a browser post and returns where to
// redirect next.
type formHandler func(c context.Context, ctx *app.RequestContext, sess *session) string

func (s *Server) landing(c context.Context, ctx *app.RequestContext) {
	s.respond(c, ctx, orchestrator.Request{})
}

func (s *Server) wizardPage(c context.Context, ctx *app.RequestContext) {
	sess, err := s.store.get(string(ctx.Cookie(SessionCookie)))
	if err != nil {
		sess = s.store.create()
		s.setSessionCookie(ctx, sess.id)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.respond(c, ctx, orchestrator.Request{
		Controller: sess.ctrl,
		RenderOptions: render.RenderOptions{
			Flash:  sess.takeFlash(),
			Hidden: render.MergeHiddenFields(nil, render.CSRFToken(csrfField, sess.csrf)),
		},
	})
}

// formAction loads the cookie session, rejects forged or stale posts and
// redirects after fn.
func (s *Server) formAction(fn formHandler) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		sess, err := s.store.get(string(ctx.Cookie(SessionCookie)))
		if err != nil {
			ctx.Redirect(consts.StatusFound, []byte(wizard.PathWizard))
			return
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()

		if !s.checkCSRF(ctx, sess) {
			return
		}

		// A post from a page rendered for another step (browser back button)
		// is dropped so it cannot overwrite answers of the current step.
		if posted := ctx.PostForm("step"); posted != "" && posted != strconv.Itoa(sess.ctrl.Step()) {
			s.logger.Debug().Str("session", sess.id).Str("posted_step", posted).Msg("stale form post ignored")
			ctx.Redirect(consts.StatusSeeOther, []byte(wizard.PathWizard))
			return
		}

		target := fn(c, ctx, sess)
		ctx.Redirect(consts.StatusSeeOther, []byte(target))
	}
}

// checkCSRF aborts with 403 unless the post carries the session's token.
func (s *Server) checkCSRF(ctx *app.RequestContext, sess *session) bool {
	token := ctx.PostForm(csrfField)
	if subtle.ConstantTimeCompare([]byte(token), []byte(sess.csrf)) == 1 {
		return true
	}
	s.logger.Warn().Str("session", sess.id).Msg("form post with bad csrf token")
	ctx.AbortWithStatus(consts.StatusForbidden)
	return false
}

// applyForm copies the posted values of the current step into the controller.
// Secrets left blank keep what was stored, since they are never echoed back.
func (s *Server) applyForm(ctx *app.RequestContext, sess *session) {
	ctrl := sess.ctrl
	for _, f := range wizard.StepFor(ctrl.Step()).Fields {
		if !ctx.PostArgs().Has(string(f)) {
			continue
		}
		value := ctx.PostForm(string(f))
		if f.Secret() && value == "" && ctrl.Data().Value(f) != "" {
			continue
		}
		if err := s.catalog.CheckValue(f, value); err != nil {
			s.logger.Warn().Err(err).Str("field", string(f)).Msg("form value rejected")
			continue
		}
		if err := ctrl.Set(f, value); err != nil {
			if errors.Is(err, wizard.ErrInvalidAge) {
				sess.flash = flashInvalidAge
				continue
			}
			s.logger.Warn().Err(err).Str("field", string(f)).Msg("form value rejected")
		}
	}
}

func (s *Server) postField(_ context.Context, ctx *app.RequestContext, sess *session) string {
	f := wizard.Field(ctx.PostForm("field"))
	if err := s.catalog.CheckValue(f, ctx.PostForm("value")); err != nil {
		s.logger.Warn().Err(err).Str("field", string(f)).Msg("form value rejected")
		return wizard.PathWizard
	}
	if err := sess.ctrl.Set(f, ctx.PostForm("value")); err != nil {
		if errors.Is(err, wizard.ErrInvalidAge) {
			sess.flash = flashInvalidAge
		}
	}
	return wizard.PathWizard
}

func (s *Server) postPaste(_ context.Context, ctx *app.RequestContext, sess *session) string {
	sess.ctrl.OnPaste(ctx.PostForm("text"))
	return wizard.PathWizard
}

func (s *Server) postNext(_ context.Context, ctx *app.RequestContext, sess *session) string {
	s.applyForm(ctx, sess)
	sess.ctrl.NextStep()
	return wizard.PathWizard
}

func (s *Server) postPrev(_ context.Context, ctx *app.RequestContext, sess *session) string {
	s.applyForm(ctx, sess)
	sess.ctrl.PrevStep()
	return wizard.PathWizard
}

func (s *Server) postSubmit(c context.Context, ctx *app.RequestContext, sess *session) string {
	s.applyForm(ctx, sess)
	ok, err := sess.ctrl.Submit(c)
	switch {
	case ok, errors.Is(err, wizard.ErrAlreadySubmitted):
		sess.flash = sess.ctrl.SuccessMessage()
	case errors.Is(err, wizard.ErrNotFinalStep):
	case err != nil:
		s.logger.Error().Err(err).Str("session", sess.id).Msg("submission failed")
		sess.flash = flashSubmitFailed
	}
	return wizard.PathWizard
}

// postHome leaves the wizard. The answers are discarded with the session.
func (s *Server) postHome(_ context.Context, ctx *app.RequestContext) {
	target := wizard.PathHome
	if sess, err := s.store.get(string(ctx.Cookie(SessionCookie))); err == nil {
		sess.mu.Lock()
		if !s.checkCSRF(ctx, sess) {
			sess.mu.Unlock()
			return
		}
		sess.ctrl.GoToHome()
		if path := sess.takeNavigation(); path != "" {
			target = path
		}
		sess.mu.Unlock()
		s.store.delete(sess.id)
	}
	s.clearSessionCookie(ctx)
	ctx.Redirect(consts.StatusSeeOther, []byte(target))
}

// respond renders req with the renderer the Accept header asks for, HTML by
// default.
func (s *Server) respond(c context.Context, ctx *app.RequestContext, req orchestrator.Request) {
	req.Accept = render.ParseAccept(string(ctx.GetHeader("Accept")))
	res, err := s.orch.Render(c, req)
	if err != nil {
		s.logger.Error().Err(err).Msg("render failed")
		ctx.AbortWithStatus(consts.StatusInternalServerError)
		return
	}
	ctx.Data(consts.StatusOK, res.ContentType, res.Body)
}

func (s *Server) setSessionCookie(ctx *app.RequestContext, id string) {
	ctx.SetCookie(SessionCookie, id, int(s.ttl.Seconds()), "/", "", protocol.CookieSameSiteLaxMode, false, true)
}

func (s *Server) clearSessionCookie(ctx *app.RequestContext) {
	ctx.SetCookie(SessionCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, false, true)
}

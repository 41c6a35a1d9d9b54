package server

import (
	"context"
	"io/fs"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/goliatone/go-formwizard/pkg/renderers/html"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const apiPrefix = "/api"

func (s *Server) routes() {
	h := s.hertz
	if len(s.corsOrigins) > 0 {
		h.Use(corsFor(s.corsOrigins))
	}
	h.Use(recovery(s.logger), accessLog(s.logger))

	h.GET("/healthz", s.health)
	h.GET("/openapi.json", s.openAPI)
	h.GET(StylesheetPath, s.stylesheet)

	h.GET(wizard.PathHome, s.landing)
	h.GET(wizard.PathWizard, s.wizardPage)
	form := h.Group(wizard.PathWizard)
	form.POST("/field", s.formAction(s.postField))
	form.POST("/paste", s.formAction(s.postPaste))
	form.POST("/next", s.formAction(s.postNext))
	form.POST("/prev", s.formAction(s.postPrev))
	form.POST("/submit", s.formAction(s.postSubmit))
	form.POST("/home", s.postHome)

	api := h.Group(apiPrefix)
	api.POST("/sessions", s.apiCreate)
	api.GET("/sessions/:id", s.apiSession(s.apiGet))
	api.DELETE("/sessions/:id", s.apiDelete)
	api.PUT("/sessions/:id/fields/:field", s.apiSession(s.apiSetField))
	api.POST("/sessions/:id/paste", s.apiSession(s.apiPaste))
	api.POST("/sessions/:id/next", s.apiSession(s.apiNext))
	api.POST("/sessions/:id/prev", s.apiSession(s.apiPrev))
	api.POST("/sessions/:id/submit", s.apiSession(s.apiSubmit))

	// Unknown paths land on the home page.
	h.NoRoute(func(c context.Context, ctx *app.RequestContext) {
		ctx.Redirect(consts.StatusFound, []byte(wizard.PathHome))
	})
}

func (s *Server) health(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, utils.H{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

func (s *Server) stylesheet(_ context.Context, ctx *app.RequestContext) {
	data, err := fs.ReadFile(html.AssetsFS(), html.StylesheetName)
	if err != nil {
		ctx.AbortWithStatus(consts.StatusNotFound)
		return
	}
	ctx.Header("Cache-Control", "public, max-age=3600")
	ctx.Data(consts.StatusOK, "text/css; charset=utf-8", data)
}

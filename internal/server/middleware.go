package server

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
	"github.com/rs/zerolog"
)

// accessLog writes one structured line per request.
func accessLog(logger zerolog.Logger) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)

		status := ctx.Response.StatusCode()
		event := logger.Info()
		if status >= consts.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", ctx.ClientIP()).
			Str("method", string(ctx.Method())).
			Str("path", string(ctx.Path())).
			Msg("request")
	}
}

// recovery turns a handler panic into a 500 and logs the stack.
func recovery(logger zerolog.Logger) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Str("path", string(ctx.Path())).
					Msg("panic recovered")
				ctx.AbortWithStatusJSON(consts.StatusInternalServerError, utils.H{
					"error": "internal server error",
				})
			}
		}()
		ctx.Next(c)
	}
}

// corsFor allows the JSON API to be called from the listed origins.
func corsFor(origins []string) app.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	})
}

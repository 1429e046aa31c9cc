package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tonelab-collective/booking/internal/modules/serializer"
)

// AdminCookie carries the opaque admin session token.
const AdminCookie = "admin_auth"

// SessionVerifier checks an admin session token. service.AdminService satisfies it.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// AdminAuth rejects requests without a live admin session cookie.
func AdminAuth(v SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := otel.Tracer("middleware").Start(c.Request.Context(), "admin_auth",
			trace.WithAttributes(attribute.String("middleware", "admin_auth")))

		token, err := c.Cookie(AdminCookie)
		if err != nil || token == "" {
			span.SetAttributes(attribute.Bool("authenticated", false))
			span.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr(""))
			return
		}

		ok, err := v.Verify(ctx, token)
		if err != nil {
			span.RecordError(err)
			span.End()
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.Err("Session check failed", "", err))
			return
		}
		if !ok {
			span.SetAttributes(attribute.Bool("authenticated", false))
			span.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr(""))
			return
		}

		span.SetAttributes(attribute.Bool("authenticated", true))
		span.End()
		c.Set("admin", true)
		c.Next()
	}
}

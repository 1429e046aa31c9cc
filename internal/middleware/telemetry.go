package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tonelab-collective/booking/internal/telemetry"
)

func OtelTracing(serviceName string) gin.HandlerFunc {
	return telemetry.GinMiddleware(serviceName)
}

func TraceID() gin.HandlerFunc {
	return telemetry.TraceIDMiddleware()
}

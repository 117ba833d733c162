package handler

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/taskboard/internal/logging"
	"github.com/kube-rca/taskboard/internal/token"
)

const (
	bearerPrefix  = "Bearer "
	subjectKeyGin = "auth_subject"

	msgAuthHeaderInvalid = "Authorization header missing or invalid"
	msgInvalidToken      = "Invalid token"
	msgInternalError     = "Internal server error"
)

type tokenVerifier interface {
	Verify(tokenStr string) (token.Claims, error)
}

type subjectKey struct{}

// WithSubject returns a copy of ctx carrying the authenticated subject.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFromContext returns the subject stored by AuthMiddleware.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey{}).(string)
	return subject, ok && subject != ""
}

// Subject returns the authenticated subject for c, checking the gin keys
// first and then the request context.
func Subject(c *gin.Context) (string, bool) {
	if value, ok := c.Get(subjectKeyGin); ok {
		if subject, ok := value.(string); ok && subject != "" {
			return subject, true
		}
	}
	return SubjectFromContext(c.Request.Context())
}

// AuthMiddleware gates protected routes. A missing header and a header
// without the case-sensitive "Bearer " prefix get the same 401; a token that
// fails verification gets "Invalid token". On success the subject is put on
// the request context and the downstream response passes through untouched.
func AuthMiddleware(verifier tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.String(http.StatusUnauthorized, msgAuthHeaderInvalid)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(header[len(bearerPrefix):])
		if err != nil {
			c.String(http.StatusUnauthorized, msgInvalidToken)
			c.Abort()
			return
		}

		c.Set(subjectKeyGin, claims.Subject)
		c.Request = c.Request.WithContext(WithSubject(c.Request.Context(), claims.Subject))
		c.Next()
	}
}

// RequestLogger writes one line per request after the chain has run.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if subject, ok := Subject(c); ok {
			args = append(args, "subject", subject)
		}
		log.Info(c.Request.Context(), "http request", args...)
	}
}

// Recovery turns a panic into a plain 500 and logs it.
func Recovery(log logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, err any) {
		log.Error(c.Request.Context(), "panic recovered", "error", err, "path", c.Request.URL.Path)
		c.String(http.StatusInternalServerError, msgInternalError)
		c.Abort()
	})
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	U "github.com/vayron-digital/modulyn-one-sub000/util"
)

// Recovery is the page-level boundary. A panic anywhere below it is
// caught, tagged with a fresh opaque error id, logged with its stack
// and answered with a retryable fallback. Each catch generates a new
// id so repeated crashes stay distinguishable.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				errorID := newErrorID()
				logBoundaryError(c, "page", c.FullPath(), errorID, recovered)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":    "Something went wrong. Please retry.",
					"error_id": errorID,
					"support":  "support@" + C.GetConfig().APPDomain,
				})
			}
		}()

		c.Next()
	}
}

// WrapWidget is the component-level boundary. A panic inside the
// wrapped handler degrades that widget's payload instead of failing
// the whole page response.
func WrapWidget(name string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				errorID := newErrorID()
				logBoundaryError(c, "widget", name, errorID, recovered)

				c.JSON(http.StatusOK, gin.H{
					"widget":   name,
					"error":    "Widget unavailable.",
					"error_id": errorID,
				})
			}
		}()

		handler(c)
	}
}

// newErrorID - time-ordered + random opaque id, unique per catch.
func newErrorID() string {
	return "err_" + xid.New().String()
}

func logBoundaryError(c *gin.Context, boundary, name, errorID string, recovered interface{}) {
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("%v", recovered)
	}

	log.WithFields(log.Fields{
		"error_id":   errorID,
		"boundary":   boundary,
		"name":       name,
		"request_id": U.GetScopeByKeyAsString(c, SCOPE_REQUEST_ID),
		"method":     c.Request.Method,
		"url":        c.Request.URL.String(),
		"stack":      string(debug.Stack()),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}).WithError(err).Error("Recovered from panic.")

	// Network reporting stays unwired without a DSN.
	if C.IsSentryEnabled() {
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("error_id", errorID)
			scope.SetTag("boundary", boundary)
			sentry.CaptureException(err)
		})
	}
}

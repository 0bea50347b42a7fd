package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/taskdesk/taskdesk/pkg/composables"
	"github.com/taskdesk/taskdesk/pkg/configuration"
	"github.com/taskdesk/taskdesk/pkg/constants"
)

type responseCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
}

func (w *responseCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseCaptureWriter) Write(b []byte) (int, error) {
	if !w.statusWritten {
		w.statusCode = http.StatusOK
		w.statusWritten = true
	}
	return w.ResponseWriter.Write(b)
}

// RequestID returns the inbound request id, generating one when the fronting
// proxy did not set the configured header.
func RequestID(w http.ResponseWriter, r *http.Request) string {
	header := strings.TrimSpace(configuration.Use().RequestIDHeader)
	if header == "" {
		header = constants.RequestIDHeader
	}
	requestID := strings.TrimSpace(r.Header.Get(header))
	if requestID == "" {
		requestID = uuid.NewString()
		w.Header().Set(header, requestID)
	}
	return requestID
}

// WithLogger attaches a request-scoped logrus entry to the context and logs
// each request with its duration and response status.
func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := RequestID(w, r)

			entry := logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			capture := &responseCaptureWriter{ResponseWriter: w}
			next.ServeHTTP(capture, r.WithContext(composables.WithLogger(r.Context(), entry)))

			entry.WithFields(logrus.Fields{
				"status":   capture.statusCode,
				"duration": time.Since(start).String(),
			}).Info("request completed")
		})
	}
}

package middleware

import (
	"mime"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/reelyactive/barnacles-azureblobstorage/pkg/utils"
)

// RestrictHandlerWithHeaderName only lets requests through that carry the secret in the named header.
// An empty secret disables the check.
func RestrictHandlerWithHeaderName(secret string, name string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" && r.Header.Get(name) != secret {
				utils.RespondWithError(w, http.StatusUnauthorized, "You are not authorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RestrictHandler(secret string) func(next http.Handler) http.Handler {
	return RestrictHandlerWithHeaderName(secret, "x-secret")
}

func EnforceJSONHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-Type")

		if contentType != "" {
			mt, _, err := mime.ParseMediaType(contentType)
			if err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Malformed Content-Type header")
				return
			}

			if mt != "application/json" {
				utils.RespondWithError(w, http.StatusUnsupportedMediaType, "Content-Type header must be application/json")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func LogRequest(logContext logrus.FieldLogger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logContext.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"remoteAddr": r.RemoteAddr,
			}).Debug("request")
			next.ServeHTTP(w, r)
		})
	}
}

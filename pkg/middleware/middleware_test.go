package middleware_test

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	logrusTest "github.com/sirupsen/logrus/hooks/test"

	. "github.com/reelyactive/barnacles-azureblobstorage/pkg/middleware"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

var _ = Describe("Middleware", func() {
	var recorder *httptest.ResponseRecorder

	BeforeEach(func() {
		recorder = httptest.NewRecorder()
	})

	Describe("restricting with a secret", func() {
		It("rejects a missing secret", func() {
			req := httptest.NewRequest(http.MethodPost, "/raddec", nil)
			RestrictHandler("change")(ok).ServeHTTP(recorder, req)
			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("lets the right secret through", func() {
			req := httptest.NewRequest(http.MethodPost, "/raddec", nil)
			req.Header.Set("x-secret", "change")
			RestrictHandler("change")(ok).ServeHTTP(recorder, req)
			Expect(recorder.Code).To(Equal(http.StatusTeapot))
		})

		It("is open when no secret is configured", func() {
			req := httptest.NewRequest(http.MethodPost, "/raddec", nil)
			RestrictHandler("")(ok).ServeHTTP(recorder, req)
			Expect(recorder.Code).To(Equal(http.StatusTeapot))
		})
	})

	Describe("enforcing json", func() {
		It("rejects other media types", func() {
			req := httptest.NewRequest(http.MethodPost, "/raddec", nil)
			req.Header.Set("Content-Type", "text/plain")
			EnforceJSONHandler(ok).ServeHTTP(recorder, req)
			Expect(recorder.Code).To(Equal(http.StatusUnsupportedMediaType))
		})

		It("accepts json with a charset", func() {
			req := httptest.NewRequest(http.MethodPost, "/raddec", nil)
			req.Header.Set("Content-Type", "application/json; charset=utf-8")
			EnforceJSONHandler(ok).ServeHTTP(recorder, req)
			Expect(recorder.Code).To(Equal(http.StatusTeapot))
		})
	})

	It("logs each request at debug level", func() {
		logger, hook := logrusTest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)

		req := httptest.NewRequest(http.MethodPost, "/raddec", nil)
		LogRequest(logger)(ok).ServeHTTP(recorder, req)

		Expect(hook.Entries).To(HaveLen(1))
		Expect(hook.LastEntry().Data["path"]).To(Equal("/raddec"))
	})
})

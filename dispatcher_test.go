package ofxconnect_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/rockstardevs/ofxconnect"
)

var _ = Describe("HTTPDispatcher", func() {
	var (
		server  *httptest.Server
		handler http.HandlerFunc
	)
	BeforeEach(func() {
		handler = func(w http.ResponseWriter, r *http.Request) {}
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler(w, r)
		}))
	})
	AfterEach(func() {
		server.Close()
	})

	Describe("Dispatch()", func() {
		It("should POST the document with OFX headers", func() {
			var (
				method  string
				headers http.Header
				body    []byte
			)
			handler = func(w http.ResponseWriter, r *http.Request) {
				method, headers = r.Method, r.Header
				body, _ = io.ReadAll(r.Body)
				w.Header().Set("Content-Type", ofxconnect.MediaType)
				_, _ = w.Write([]byte("<OFX></OFX>"))
			}
			d := ofxconnect.NewHTTPDispatcher(server.Client(), "ofxconnect-test")
			reply, err := d.Dispatch(context.Background(), server.URL, []byte("OFXHEADER:100\r\n\r\n<OFX></OFX>"))
			Expect(err).To(BeNil())
			Expect(reply.StatusCode).To(Equal(http.StatusOK))
			Expect(string(reply.Body)).To(Equal("<OFX></OFX>"))

			Expect(method).To(Equal(http.MethodPost))
			Expect(headers.Get("User-Agent")).To(Equal("ofxconnect-test"))
			Expect(headers.Get("Accept")).To(Equal("application/x-ofx"))
			Expect(headers.Get("Content-Type")).To(Equal("application/x-ofx"))
			Expect(string(body)).To(Equal("OFXHEADER:100\r\n\r\n<OFX></OFX>"))
		})
		It("should default the user agent", func() {
			var agent string
			handler = func(w http.ResponseWriter, r *http.Request) { agent = r.UserAgent() }
			_, err := ofxconnect.NewHTTPDispatcher(nil, "").Dispatch(context.Background(), server.URL, nil)
			Expect(err).To(BeNil())
			Expect(agent).To(Equal(ofxconnect.DefaultUserAgent))
		})
		It("should surface non-2xx statuses", func() {
			handler = func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "maintenance", http.StatusServiceUnavailable)
			}
			reply, err := ofxconnect.NewHTTPDispatcher(server.Client(), "").Dispatch(context.Background(), server.URL, nil)
			Expect(reply).To(BeNil())
			var transportErr *ofxconnect.TransportError
			Expect(errors.As(err, &transportErr)).To(BeTrue())
			Expect(transportErr.StatusCode).To(Equal(http.StatusServiceUnavailable))
			Expect(transportErr.URL).To(Equal(server.URL))
			Expect(err).To(MatchError("error - " + server.URL + " returned HTTP status 503"))
		})
		It("should report connection failures", func() {
			url := server.URL
			server.Close()
			_, err := ofxconnect.NewHTTPDispatcher(nil, "").Dispatch(context.Background(), url, nil)
			var transportErr *ofxconnect.TransportError
			Expect(errors.As(err, &transportErr)).To(BeTrue())
			Expect(transportErr.StatusCode).To(Equal(0))
		})
		It("should honour cancellation", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := ofxconnect.NewHTTPDispatcher(server.Client(), "").Dispatch(ctx, server.URL, nil)
			var transportErr *ofxconnect.TransportError
			Expect(errors.As(err, &transportErr)).To(BeTrue())
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})
	})
})

package upstream_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/saasrevops/revenue-gateway/internal"
	"github.com/saasrevops/revenue-gateway/internal/upstream"
)

func TestUpstream(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Upstream Client Suite")
}

var _ = Describe("Client", func() {
	var (
		client      *upstream.Client
		server      *httptest.Server
		lastRequest *http.Request
		respond     func(w http.ResponseWriter, r *http.Request)
		logger      *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		respond = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"r-1","name":"admin"}`))
		}
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastRequest = r.Clone(r.Context())
			respond(w, r)
		}))
		client = upstream.NewClient(upstream.Config{BaseURL: server.URL}, logger)
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("request forwarding", func() {
		It("should forward the bearer token from the context", func() {
			ctx := internal.ContextWithToken(context.Background(), "caller-token")

			var out map[string]string
			err := client.Get(ctx, "/admin/roles/r-1", &out)

			Expect(err).ToNot(HaveOccurred())
			Expect(lastRequest.Header.Get("Authorization")).To(Equal("Bearer caller-token"))
		})

		It("should reuse the correlation id from the context", func() {
			ctx := internal.ContextWithCorrelationID(context.Background(), "corr-123")

			err := client.Get(ctx, "/admin/roles/r-1", nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(lastRequest.Header.Get("x-correlation-id")).To(Equal("corr-123"))
		})

		It("should generate a correlation id when the context has none", func() {
			err := client.Get(context.Background(), "/admin/roles/r-1", nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(lastRequest.Header.Get("x-correlation-id")).ToNot(BeEmpty())
		})

		It("should send a JSON body on POST", func() {
			var received map[string]string
			respond = func(w http.ResponseWriter, r *http.Request) {
				json.NewDecoder(r.Body).Decode(&received)
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"id":"r-2"}`))
			}

			var out map[string]string
			err := client.Post(context.Background(), "/admin/roles", map[string]string{"name": "ops"}, &out)

			Expect(err).ToNot(HaveOccurred())
			Expect(lastRequest.Header.Get("Content-Type")).To(Equal("application/json"))
			Expect(received).To(HaveKeyWithValue("name", "ops"))
			Expect(out).To(HaveKeyWithValue("id", "r-2"))
		})

		It("should tolerate an empty success body", func() {
			respond = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}

			err := client.Delete(context.Background(), "/admin/roles/r-1")

			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("error handling", func() {
		It("should parse the error envelope into an APIError", func() {
			respond = func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"message":"role not found","correlation_id":"corr-up-1"}`))
			}

			err := client.Get(context.Background(), "/admin/roles/missing", nil)

			Expect(err).To(HaveOccurred())
			apiErr, ok := upstream.IsAPIError(err)
			Expect(ok).To(BeTrue())
			Expect(apiErr.StatusCode).To(Equal(http.StatusNotFound))
			Expect(apiErr.Message).To(Equal("role not found"))
			Expect(apiErr.CorrelationID).To(Equal("corr-up-1"))
			Expect(apiErr.Error()).To(ContainSubstring("corr-up-1"))
		})

		It("should fall back to the raw body when the envelope is absent", func() {
			respond = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("upstream exploded"))
			}

			err := client.Get(context.Background(), "/payments", nil)

			apiErr, ok := upstream.IsAPIError(err)
			Expect(ok).To(BeTrue())
			Expect(apiErr.StatusCode).To(Equal(http.StatusBadGateway))
			Expect(apiErr.Message).To(Equal("upstream exploded"))
		})

		It("should keep the sent correlation id when the body has none", func() {
			respond = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}
			ctx := internal.ContextWithCorrelationID(context.Background(), "corr-sent")

			err := client.Get(ctx, "/payments", nil)

			apiErr, ok := upstream.IsAPIError(err)
			Expect(ok).To(BeTrue())
			Expect(apiErr.CorrelationID).To(Equal("corr-sent"))
			Expect(apiErr.Message).To(Equal(http.StatusText(http.StatusInternalServerError)))
		})

		It("should return a plain error when the host is unreachable", func() {
			unreachable := upstream.NewClient(upstream.Config{BaseURL: "http://127.0.0.1:1"}, logger)

			err := unreachable.Get(context.Background(), "/ping", nil)

			Expect(err).To(HaveOccurred())
			_, ok := upstream.IsAPIError(err)
			Expect(ok).To(BeFalse())
		})
	})
})

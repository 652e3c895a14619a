package auth_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/saasrevops/revenue-gateway/internal"
	"github.com/saasrevops/revenue-gateway/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

func signedToken(subject string, roles ...string) string {
	claims := &auth.Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: subject,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	Expect(err).ToNot(HaveOccurred())
	return token
}

var _ = Describe("Claims", func() {
	Describe("DecodeClaims", func() {
		It("should decode roles and subject without verifying the signature", func() {
			token := signedToken("user-1", auth.RoleAdmin, auth.RoleSales)

			claims, err := auth.DecodeClaims(token)

			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Subject).To(Equal("user-1"))
			Expect(claims.Roles).To(ConsistOf(auth.RoleAdmin, auth.RoleSales))
		})

		It("should reject a malformed token", func() {
			_, err := auth.DecodeClaims("not-a-jwt")

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("HasAnyRole", func() {
		It("should match any of the given roles", func() {
			claims := &auth.Claims{Roles: []string{auth.RoleOps}}

			Expect(claims.HasAnyRole(auth.RoleFinance, auth.RoleOps)).To(BeTrue())
			Expect(claims.HasAnyRole(auth.RoleAdmin)).To(BeFalse())
		})

		It("should deny when the token carries no roles", func() {
			claims := &auth.Claims{}

			Expect(claims.HasAnyRole(auth.RoleAdmin, auth.RoleSales, auth.RoleOps, auth.RoleFinance)).To(BeFalse())
		})
	})
})

var _ = Describe("Guard", func() {
	var (
		guard   *auth.Guard
		next    http.Handler
		reached bool
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		guard = auth.NewGuard(logger)
		reached = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		})
	})

	Describe("Authenticate", func() {
		It("should reject a request without a token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
			w := httptest.NewRecorder()

			guard.Authenticate(next).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(reached).To(BeFalse())
		})

		It("should reject a malformed token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
			req.Header.Set("Authorization", "Bearer garbage")
			w := httptest.NewRecorder()

			guard.Authenticate(next).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(reached).To(BeFalse())
		})

		It("should store the token and claims in the request context", func() {
			token := signedToken("user-2", auth.RoleSales)
			var gotToken string
			var gotClaims *auth.Claims

			inspect := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotToken = internal.TokenFromContext(r.Context())
				gotClaims, _ = auth.ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			guard.Authenticate(inspect).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotToken).To(Equal(token))
			Expect(gotClaims).ToNot(BeNil())
			Expect(gotClaims.Subject).To(Equal("user-2"))
		})
	})

	Describe("RequireAnyRole", func() {
		authenticated := func(roles ...string) *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/roles", nil)
			req.Header.Set("Authorization", "Bearer "+signedToken("user-3", roles...))
			return req
		}

		It("should pass a caller holding a required role", func() {
			chain := guard.Authenticate(guard.RequireAnyRole(auth.RoleAdmin)(next))
			w := httptest.NewRecorder()

			chain.ServeHTTP(w, authenticated(auth.RoleAdmin))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(reached).To(BeTrue())
		})

		It("should deny a caller without any required role", func() {
			chain := guard.Authenticate(guard.RequireAnyRole(auth.RoleFinance, auth.RoleOps)(next))
			w := httptest.NewRecorder()

			chain.ServeHTTP(w, authenticated(auth.RoleSales))

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(reached).To(BeFalse())
		})

		It("should reject when no claims made it into the context", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/roles", nil)

			guard.RequireAnyRole(auth.RoleAdmin)(next).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(reached).To(BeFalse())
		})
	})
})

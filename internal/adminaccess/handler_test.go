package adminaccess_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/saasrevops/revenue-gateway/internal/adminaccess"
	"github.com/saasrevops/revenue-gateway/internal/cache"
)

var _ = Describe("AdminAccess Handler", func() {
	var (
		handler    *adminaccess.Handler
		mockClient *mockAdminClient
		router     *chi.Mux
	)

	BeforeEach(func() {
		mockClient = newMockAdminClient()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store := cache.NewStore(128, time.Minute)
		bus := cache.NewBus(logger)
		service := adminaccess.NewService(mockClient, store, bus, logger)
		handler = adminaccess.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/admin/roles", handler.ListRoles)
		router.Post("/admin/roles", handler.CreateRole)
		router.Get("/admin/roles/{id}", handler.GetRole)
		router.Delete("/admin/roles/{id}", handler.DeleteRole)
		router.Get("/admin/roles/{id}/permissions/available", handler.AvailablePermissions)

		mockClient.roles = []adminaccess.Role{
			{ID: "r-1", Name: "admin", IsSystem: true},
			{ID: "r-2", Name: "sales"},
		}
		mockClient.permissions = []adminaccess.Permission{
			{ID: "p-1", Resource: "quotes", Action: "read"},
		}
	})

	It("should list roles wrapped in a JSON object", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/roles", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response struct {
			Roles []adminaccess.Role `json:"roles"`
		}
		err := json.NewDecoder(w.Body).Decode(&response)
		Expect(err).NotTo(HaveOccurred())
		Expect(response.Roles).To(HaveLen(2))
	})

	It("should create a role from a JSON body", func() {
		body := strings.NewReader(`{"name":"ops","description":"operations"}`)
		req := httptest.NewRequest(http.MethodPost, "/admin/roles", body)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))

		var role adminaccess.Role
		err := json.NewDecoder(w.Body).Decode(&role)
		Expect(err).NotTo(HaveOccurred())
		Expect(role.Name).To(Equal("ops"))
	})

	It("should reject a malformed create body", func() {
		req := httptest.NewRequest(http.MethodPost, "/admin/roles", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should map a validation failure to 400", func() {
		req := httptest.NewRequest(http.MethodPost, "/admin/roles", strings.NewReader(`{"description":"no name"}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should map a system role delete to 409", func() {
		req := httptest.NewRequest(http.MethodDelete, "/admin/roles/r-1", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusConflict))

		var response struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		err := json.NewDecoder(w.Body).Decode(&response)
		Expect(err).NotTo(HaveOccurred())
		Expect(response.Error.Message).To(ContainSubstring("system roles"))
	})

	It("should acknowledge a regular role delete", func() {
		req := httptest.NewRequest(http.MethodDelete, "/admin/roles/r-2", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("deleted"))
		Expect(mockClient.deleteRoleCalls).To(Equal(1))
	})

	It("should list available permissions for a role", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/roles/r-2/permissions/available", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response struct {
			Permissions []adminaccess.Permission `json:"permissions"`
		}
		err := json.NewDecoder(w.Body).Decode(&response)
		Expect(err).NotTo(HaveOccurred())
		Expect(response.Permissions).To(HaveLen(1))
	})
})

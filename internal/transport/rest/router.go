package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/saasrevops/revenue-gateway/internal"
	"github.com/saasrevops/revenue-gateway/internal/adminaccess"
	"github.com/saasrevops/revenue-gateway/internal/auth"
	"github.com/saasrevops/revenue-gateway/internal/catalog"
	"github.com/saasrevops/revenue-gateway/internal/ledger"
	"github.com/saasrevops/revenue-gateway/internal/payments"
	"github.com/saasrevops/revenue-gateway/internal/revenue"
	"github.com/saasrevops/revenue-gateway/internal/transport/middleware"
	"github.com/saasrevops/revenue-gateway/internal/transport/swagger"
)

// RouterDeps carries everything RegisterAllRoutes needs to wire the gateway.
type RouterDeps struct {
	Config             *internal.Config
	Upstream           UpstreamPinger
	Guard              *auth.Guard
	AdminAccessHandler *adminaccess.Handler
	CatalogHandler     *catalog.Handler
	RevenueHandler     *revenue.Handler
	PaymentsHandler    *payments.Handler
	LedgerHandler      *ledger.Handler
	Logger             *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.Upstream, deps.Config.Upstream.HealthPath)

	// Apply global middleware
	router.Use(middleware.CORS(deps.Config.Server.AllowedOrigins))
	router.Use(middleware.CorrelationID)
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	if deps.Config.Observability.Metrics.Enabled {
		router.Handle(deps.Config.Observability.Metrics.Path, promhttp.Handler())
	}

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Everything else needs a bearer token
		r.Group(func(pr chi.Router) {
			pr.Use(deps.Guard.Authenticate)

			// Admin area: roles, permissions, user-role assignments
			if deps.AdminAccessHandler != nil {
				pr.Route("/admin", func(ar chi.Router) {
					ar.Use(deps.Guard.RequireAnyRole(auth.RoleAdmin))

					ar.Route("/roles", func(rr chi.Router) {
						rr.Get("/", deps.AdminAccessHandler.ListRoles)
						rr.Post("/", deps.AdminAccessHandler.CreateRole)
						rr.Get("/{id}", deps.AdminAccessHandler.GetRole)
						rr.Patch("/{id}", deps.AdminAccessHandler.UpdateRole)
						rr.Delete("/{id}", deps.AdminAccessHandler.DeleteRole)

						rr.Get("/{id}/permissions", deps.AdminAccessHandler.ListRolePermissions)
						rr.Get("/{id}/permissions/available", deps.AdminAccessHandler.AvailablePermissions)
						rr.Post("/{id}/permissions", deps.AdminAccessHandler.AttachPermission)
						rr.Delete("/{id}/permissions/{permID}", deps.AdminAccessHandler.DetachPermission)
					})

					ar.Get("/permissions", deps.AdminAccessHandler.ListPermissions)

					ar.Route("/user-roles", func(ur chi.Router) {
						ur.Get("/", deps.AdminAccessHandler.ListAssignments)
						ur.Post("/", deps.AdminAccessHandler.AssignRole)
						ur.Delete("/{id}", deps.AdminAccessHandler.UnassignRole)
					})
				})
			}

			// Catalog area: products, pricebooks
			if deps.CatalogHandler != nil {
				pr.Route("/catalog", func(cr chi.Router) {
					cr.Use(deps.Guard.RequireAnyRole(auth.RoleAdmin, auth.RoleSales))

					cr.Route("/products", func(pdr chi.Router) {
						pdr.Get("/", deps.CatalogHandler.ListProducts)
						pdr.Post("/", deps.CatalogHandler.CreateProduct)
						pdr.Get("/{id}", deps.CatalogHandler.GetProduct)
						pdr.Patch("/{id}", deps.CatalogHandler.UpdateProduct)
						pdr.Delete("/{id}", deps.CatalogHandler.DeleteProduct)
					})

					cr.Route("/pricebooks", func(pbr chi.Router) {
						pbr.Get("/", deps.CatalogHandler.ListPricebooks)
						pbr.Post("/", deps.CatalogHandler.CreatePricebook)
						pbr.Get("/{id}", deps.CatalogHandler.GetPricebook)
						pbr.Patch("/{id}", deps.CatalogHandler.UpdatePricebook)
						pbr.Delete("/{id}", deps.CatalogHandler.DeletePricebook)

						pbr.Get("/{id}/items", deps.CatalogHandler.ListPricebookItems)
						pbr.Post("/{id}/items", deps.CatalogHandler.CreatePricebookItem)
					})
				})
			}

			// Revenue area: quotes, orders, contracts
			if deps.RevenueHandler != nil {
				pr.Group(func(rr chi.Router) {
					rr.Use(deps.Guard.RequireAnyRole(auth.RoleSales, auth.RoleOps))

					rr.Route("/quotes", func(qr chi.Router) {
						qr.Get("/", deps.RevenueHandler.ListQuotes)
						qr.Post("/", deps.RevenueHandler.CreateQuote)
						qr.Get("/{id}", deps.RevenueHandler.GetQuote)
						qr.Post("/{id}/send", deps.RevenueHandler.SendQuote)
						qr.Post("/{id}/accept", deps.RevenueHandler.AcceptQuote)
					})

					rr.Route("/orders", func(or chi.Router) {
						or.Get("/", deps.RevenueHandler.ListOrders)
						or.Get("/{id}", deps.RevenueHandler.GetOrder)
					})

					rr.Route("/contracts", func(ctr chi.Router) {
						ctr.Get("/", deps.RevenueHandler.ListContracts)
						ctr.Post("/", deps.RevenueHandler.CreateContract)
						ctr.Get("/{id}", deps.RevenueHandler.GetContract)
						ctr.Post("/{id}/activate", deps.RevenueHandler.ActivateContract)
						ctr.Post("/{id}/terminate", deps.RevenueHandler.TerminateContract)
					})
				})
			}

			// Finance area: payments and journal entries
			pr.Group(func(fr chi.Router) {
				fr.Use(deps.Guard.RequireAnyRole(auth.RoleFinance, auth.RoleOps))

				if deps.PaymentsHandler != nil {
					fr.Route("/payments", func(pyr chi.Router) {
						pyr.Get("/", deps.PaymentsHandler.ListPayments)
						pyr.Get("/{id}", deps.PaymentsHandler.GetPayment)
						pyr.Post("/{id}/allocate", deps.PaymentsHandler.AllocatePayment)
						pyr.Post("/{id}/refunds", deps.PaymentsHandler.CreateRefund)
					})
				}

				if deps.LedgerHandler != nil {
					fr.Route("/journal-entries", func(jr chi.Router) {
						jr.Get("/", deps.LedgerHandler.ListJournalEntries)
						jr.Get("/{id}", deps.LedgerHandler.GetJournalEntry)
						jr.Post("/{id}/reverse", deps.LedgerHandler.ReverseJournalEntry)
					})
				}
			})
		})
	})
}

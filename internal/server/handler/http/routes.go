package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/regenefi/storefront/internal/middleware"
)

// Handlers bundles the handler set mounted by NewRouter.
type Handlers struct {
	Cart      *CartHandler
	Auth      *AuthHandler
	Catalog   *CatalogHandler
	Blog      *BlogHandler
	// Wholesale is nil when no Admin API token is configured; the
	// route is left unmounted.
	Wholesale *WholesaleHandler
}

// NewRouter wires the REST surface. Account routes require a bearer token;
// everything else is public.
func NewRouter(h Handlers, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.Catalog.List)
		r.Get("/products/{handle}", h.Catalog.Get)

		r.Get("/blog", h.Blog.List)
		r.Get("/blog/{handle}", h.Blog.Get)

		r.Get("/cart", h.Cart.Get)

		r.Group(func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))

			r.Post("/cart", h.Cart.Create)
			r.Post("/cart/lines", h.Cart.AddLine)
			r.Put("/cart/lines", h.Cart.UpdateLine)
			r.Delete("/cart/lines", h.Cart.RemoveLine)

			r.Post("/auth/login", h.Auth.Login)
			r.Post("/auth/register", h.Auth.Register)

			if h.Wholesale != nil {
				r.Post("/wholesale", h.Wholesale.Create)
			}
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuth)

			r.Get("/account", h.Auth.Profile)
			r.Put("/account", h.Auth.UpdateProfile)
			r.Post("/account/addresses", h.Auth.CreateAddress)
			r.Put("/account/addresses", h.Auth.UpdateAddress)
			r.Delete("/account/addresses", h.Auth.DeleteAddress)
			r.Post("/account/addresses/default", h.Auth.SetDefaultAddress)
			r.Get("/account/orders", h.Auth.Order)
		})
	})

	return r
}

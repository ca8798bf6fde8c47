// Package http wires the storefront routes: the SPA host, the JSON API and
// the admin API.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"urbantide.com/store/internal/http/flash"
	"urbantide.com/store/internal/http/handlers"
	adminhandlers "urbantide.com/store/internal/http/handlers/admin"
	"urbantide.com/store/internal/http/middleware"
	"urbantide.com/store/internal/modules/admin"
	"urbantide.com/store/internal/modules/auth"
	"urbantide.com/store/internal/modules/catalog"
	"urbantide.com/store/internal/modules/checkout"
	"urbantide.com/store/internal/modules/coupon"
	"urbantide.com/store/internal/modules/promo"
)

const maxUploadMemory = 32 << 20

// Deps is everything the router needs; cmd/web builds it.
type Deps struct {
	Logger    *slog.Logger
	DistDir   string
	Session   middleware.SessionCfg
	Flash     *flash.Codec
	Auth      *auth.Provider
	Catalog   *catalog.Service
	Assembler *checkout.Assembler
	Coupon    *coupon.Evaluator
	Admin     *admin.Service
	Promo     *promo.Rotator

	// UploadsPrefix and UploadsDir serve locally stored images; empty when
	// images live in S3.
	UploadsPrefix string
	UploadsDir    string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = maxUploadMemory

	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.ErrorHandler(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.FlashMiddleware(d.Flash),
		middleware.Session(d.Auth, d.Session, d.Logger),
	)

	static := handlers.NewStaticHandler(d.DistDir)
	authH := handlers.NewAuthHandlers(d.Auth, d.Flash, d.Session)
	catalogH := handlers.NewCatalogHandler(d.Catalog, d.Assembler, d.Coupon, d.Logger)
	promoH := handlers.NewPromoHandler(d.Promo)
	adminH := adminhandlers.NewProductsHandler(d.Admin)

	r.GET("/health", static.Health)
	r.POST("/logout", authH.Logout)

	// Client routes gated on the server too.
	r.GET("/checkout", middleware.RequireAuth(d.Flash), static.Index)
	r.GET("/admin", middleware.RequireAdmin(d.Flash), static.Index)
	r.GET("/admin/*rest", middleware.RequireAdmin(d.Flash), static.Index)

	if d.UploadsPrefix != "" && d.UploadsDir != "" {
		r.Static(d.UploadsPrefix, d.UploadsDir)
	}

	api := r.Group("/api")
	{
		api.GET("/session", authH.Session)
		api.POST("/auth/signup", authH.SignUp)
		api.POST("/auth/login", authH.Login)
		api.POST("/auth/logout", authH.Logout)

		api.GET("/categories", catalogH.Categories)
		api.GET("/sizes", catalogH.Sizes)
		api.GET("/promo", promoH.Current)
		api.GET("/contact", catalogH.Contact)

		api.GET("/products", catalogH.List)
		api.GET("/products/featured", catalogH.Featured)
		api.GET("/products/:id", catalogH.Detail)
		api.POST("/coupons/apply", catalogH.ApplyCoupon)
	}

	adm := api.Group("/admin", middleware.RequireAdmin(d.Flash))
	{
		adm.GET("/products", adminH.List)
		adm.POST("/products", adminH.Create)
		adm.DELETE("/products", adminH.DeleteAll)
		adm.PUT("/products/:id", adminH.Update)
		adm.DELETE("/products/:id", adminH.ConfirmDelete)
		adm.POST("/products/:id/delete", adminH.MarkDelete)
		adm.DELETE("/products/:id/delete", adminH.CancelDelete)
		adm.DELETE("/products/:id/images", adminH.RemoveImage)
		adm.PUT("/products/:id/images/primary", adminH.SetPrimaryImage)
		adm.POST("/sync", adminH.Sync)
		adm.POST("/setup", adminH.Setup)
		adm.POST("/uploads", adminH.Upload)
	}

	r.NoRoute(static.Fallback)
	return r
}

package http

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dianlent/apotik-online-sub001/internal/http/handlers"
	"github.com/dianlent/apotik-online-sub001/internal/http/middleware"
	"github.com/dianlent/apotik-online-sub001/internal/mailer"
	cartmod "github.com/dianlent/apotik-online-sub001/internal/modules/cart"
	"github.com/dianlent/apotik-online-sub001/internal/modules/catalog"
	"github.com/dianlent/apotik-online-sub001/internal/modules/members"
	"github.com/dianlent/apotik-online-sub001/internal/modules/orders"
	"github.com/dianlent/apotik-online-sub001/internal/modules/payments"
	"github.com/dianlent/apotik-online-sub001/internal/modules/pos"
	"github.com/dianlent/apotik-online-sub001/internal/modules/settings"
	"github.com/dianlent/apotik-online-sub001/internal/storage"
)

type RouterConfig struct {
	JWTSecret      string
	AllowedOrigins []string
	Images         storage.Storage
	Mailer         mailer.Service
	MailFrom       string
}

func NewRouter(logger *slog.Logger, db *gorm.DB, cfg RouterConfig) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	// ErrorHandler wraps Recovery so a recovered panic still renders JSON
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.Recovery(logger))

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	// services
	settingsRepo := settings.NewRepo(db)
	catalogRepo := catalog.NewRepo(db)
	cartRepo := cartmod.NewRepo(db)
	memberSvc := members.NewService(db)
	orderSvc := orders.NewService(db)
	orderRepo := orders.NewRepo(db)
	orderAdmin := orders.NewAdminService(db)
	paymentSvc := payments.NewService(db, settingsRepo, orderSvc)
	webhookSvc := payments.NewWebhookService(db)
	webhookSvc.SetLogger(logger)
	if cfg.Mailer != nil {
		webhookSvc.SetReceiptMailer(cfg.Mailer, cfg.MailFrom)
	}
	posSvc := pos.NewService(db, orderSvc, paymentSvc)

	// handlers
	authH := handlers.NewAuthHandler(memberSvc, cfg.JWTSecret)
	productH := handlers.NewProductHandler(catalogRepo, cfg.Images)
	categoryH := handlers.NewCategoryHandler(catalogRepo)
	cartH := handlers.NewCartHandler(cartRepo)
	checkoutH := handlers.NewCheckoutHandler(cartRepo, memberSvc, orderSvc)
	orderH := handlers.NewOrderHandler(orderRepo, orderAdmin)
	paymentH := handlers.NewPaymentHandler(paymentSvc)
	callbackH := handlers.NewCallbackHandler(logger, paymentSvc, webhookSvc)
	posH := handlers.NewPOSHandler(posSvc)
	settingsH := handlers.NewSettingsHandler(settingsRepo)

	api := r.Group("/api")

	// public
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.GET("/products", productH.List)
	api.GET("/products/:slug", productH.Get)
	api.GET("/categories", categoryH.List)

	// payment bridge: status/QR are unauthenticated polls keyed by reference;
	// callbacks are authenticated by signature, not by bearer token
	api.POST("/payments", paymentH.Create)
	api.GET("/payments/status", paymentH.Status)
	api.GET("/payments/qr", paymentH.QR)
	api.POST("/payments/callback/:provider", callbackH.Handle)

	// member
	auth := api.Group("", middleware.RequireAuth(cfg.JWTSecret))
	auth.GET("/profile", authH.Profile)
	auth.PUT("/profile", authH.UpdateProfile)
	auth.GET("/cart", cartH.Get)
	auth.POST("/cart/items", cartH.AddItem)
	auth.PUT("/cart/items/:product_id", cartH.UpdateItem)
	auth.DELETE("/cart/items/:product_id", cartH.RemoveItem)
	auth.DELETE("/cart", cartH.Clear)
	auth.POST("/checkout", checkoutH.Post)
	auth.GET("/orders", orderH.List)
	auth.GET("/orders/:id", orderH.Get)

	// cashier terminal
	posGroup := api.Group("/pos",
		middleware.RequireAuth(cfg.JWTSecret),
		middleware.RequireRole(members.RoleCashier, members.RoleAdmin))
	posGroup.POST("/sales", posH.CreateSale)
	posGroup.GET("/summary", posH.Summary)

	// back office
	admin := api.Group("/admin",
		middleware.RequireAuth(cfg.JWTSecret),
		middleware.RequireRole(members.RoleAdmin))
	admin.GET("/products", productH.AdminList)
	admin.POST("/products", productH.Create)
	admin.PUT("/products/:id", productH.Update)
	admin.PUT("/products/:id/stock", productH.AdjustStock)
	admin.POST("/products/:id/image", productH.UploadImage)
	admin.DELETE("/products/:id", productH.Delete)
	admin.POST("/categories", categoryH.Create)
	admin.PUT("/categories/:id", categoryH.Update)
	admin.DELETE("/categories/:id", categoryH.Delete)
	admin.GET("/orders", orderH.AdminList)
	admin.GET("/orders/:id", orderH.AdminGet)
	admin.POST("/orders/:id/transition", orderH.Transition)
	admin.GET("/settings", settingsH.Get)
	admin.PUT("/settings", settingsH.Put)

	// local image serving when the storage driver is "local"
	if dir := os.Getenv("LOCAL_UPLOAD_DIR"); dir != "" || strings.EqualFold(os.Getenv("STORAGE_DRIVER"), "local") || os.Getenv("STORAGE_DRIVER") == "" {
		if dir == "" {
			dir = "./storage/products"
		}
		r.Static("/uploads/products", dir)
	}

	return r
}

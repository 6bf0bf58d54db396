package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tinymillion/backend/internal/interfaces/http/handler"
)

// Handlers bundles every HTTP handler mounted by Mount
type Handlers struct {
	System     *handler.SystemHandler
	SEO        *handler.SEOHandler
	User       *handler.UserHandler
	Product    *handler.ProductHandler
	Cart       *handler.CartHandler
	Order      *handler.OrderHandler
	Newsletter *handler.NewsletterHandler
	MiniStore  *handler.MiniStoreHandler
	SubAdmin   *handler.SubAdminHandler
	Webhook    *handler.WebhookHandler
	// Docs serves the swagger UI; nil leaves /swagger unmounted
	Docs gin.HandlerFunc
}

// Guards holds the access middleware applied per route group. A nil guard
// is skipped.
type Guards struct {
	Auth      gin.HandlerFunc
	Admin     gin.HandlerFunc
	SubAdmin  gin.HandlerFunc
	AuthLimit gin.HandlerFunc
	Docs      gin.HandlerFunc
}

// Mount registers the whole storefront API on engine
func Mount(engine *gin.Engine, h Handlers, g Guards) {
	root := NewRouter(engine, WithPrefix(""))
	root.Register(systemRoutes(h, g))
	root.Register(webhookRoutes(h))
	root.Register(NewDomainGroup("legacy-admin", "/admin").
		GET("/mini-store", h.MiniStore.LegacyDirectory))
	root.Setup()

	api := NewRouter(engine, WithPrefix("/api"))
	api.Register(NewDomainGroup("health", "").GET("/health", h.System.APIHealth))
	api.Register(userRoutes(h, g))
	api.Register(productRoutes(h, g))
	api.Register(cartRoutes(h, g))
	api.Register(orderRoutes(h, g))
	api.Register(NewDomainGroup("newsletter", "/newsletter").
		POST("/subscribe", h.Newsletter.Subscribe))
	api.Register(miniStoreRoutes(h, g))
	api.Register(subAdminRoutes(h, g))
	api.Setup()
}

func systemRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("system", "").
		GET("/", h.System.Root).
		GET("/health", h.System.Health).
		GET("/sitemap.xml", h.SEO.Sitemap).
		GET("/robots.txt", h.SEO.Robots)
	if h.Docs != nil {
		dg.GET("/swagger/*any", g.Docs, h.Docs)
	}
	return dg
}

func webhookRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("webhook", "/webhook").
		POST("/stripe", h.Webhook.Stripe).
		POST("/razorpay", h.Webhook.Razorpay)
}

func userRoutes(h Handlers, g Guards) *DomainGroup {
	return NewDomainGroup("user", "/user").
		POST("/register", g.AuthLimit, h.User.Register).
		POST("/login", g.AuthLimit, h.User.Login).
		POST("/admin", g.AuthLimit, h.User.AdminLogin).
		POST("/logout", g.Auth, h.User.Logout)
}

func productRoutes(h Handlers, g Guards) *DomainGroup {
	return NewDomainGroup("product", "/product").
		POST("/add", g.Admin, h.Product.Add).
		GET("/list", h.Product.List).
		POST("/remove", g.Admin, h.Product.Remove).
		POST("/single", h.Product.Single).
		GET("/trending", h.Product.Trending)
}

func cartRoutes(h Handlers, g Guards) *DomainGroup {
	return NewDomainGroup("cart", "/cart").
		Use(g.Auth).
		POST("/add", h.Cart.Add).
		POST("/update", h.Cart.Update).
		POST("/get", h.Cart.Get).
		POST("/merge", h.Cart.Merge)
}

func orderRoutes(h Handlers, g Guards) *DomainGroup {
	return NewDomainGroup("order", "/order").
		POST("/place", g.Auth, h.Order.Place).
		POST("/stripe", g.Auth, h.Order.PlaceStripe).
		POST("/razorpay", g.Auth, h.Order.PlaceRazorpay).
		POST("/verifyStripe", g.Auth, h.Order.VerifyStripe).
		POST("/verifyRazorpay", g.Auth, h.Order.VerifyRazorpay).
		POST("/userorders", g.Auth, h.Order.UserOrders).
		POST("/list", g.Admin, h.Order.List).
		POST("/status", g.Admin, h.Order.UpdateStatus)
}

func miniStoreRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("ministores", "/ministores").
		GET("", h.MiniStore.PublicList).
		GET("/store/:slug", h.MiniStore.PublicStore).
		POST("/auth/subadmin/login", g.AuthLimit, h.SubAdmin.Login).
		// legacy mutations
		POST("", g.Admin, h.MiniStore.LegacyCreate).
		PATCH("/:id/toggle", g.Admin, h.MiniStore.LegacyToggle).
		DELETE("/:id", g.Admin, h.MiniStore.LegacyDelete)

	dg.Group("ministores-admin", "/admin", g.Admin).
		POST("/create", h.MiniStore.Create).
		GET("/all", h.MiniStore.List).
		GET("/:id", h.MiniStore.Get).
		PUT("/:id", h.MiniStore.Update).
		DELETE("/:id", h.MiniStore.Delete).
		GET("/:id/activity", h.MiniStore.Activity).
		PATCH("/:id/toggle", h.MiniStore.Toggle)

	dg.Group("ministores-subadmin", "/subadmin/mystore", g.SubAdmin).
		GET("", h.SubAdmin.MyStore).
		PUT("", h.SubAdmin.UpdateMyStore).
		GET("/products", h.SubAdmin.MyProducts).
		POST("/products", h.SubAdmin.AddProduct).
		POST("/products/create", h.SubAdmin.CreateProduct).
		DELETE("/products/:productId", h.SubAdmin.RemoveProduct).
		GET("/orders", h.SubAdmin.MyOrders)

	return dg
}

func subAdminRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("subadmin", "/subadmin").
		POST("/auth/login", g.AuthLimit, h.SubAdmin.Login)

	dg.Group("subadmin-store", "/mystore", g.SubAdmin).
		GET("", h.SubAdmin.MyStore).
		PUT("", h.SubAdmin.UpdateMyStore).
		GET("/products", h.SubAdmin.MyProducts).
		POST("/products", h.SubAdmin.AddProduct).
		POST("/products/create", h.SubAdmin.CreateProduct).
		PUT("/products/:productId", h.SubAdmin.UpdateProduct).
		DELETE("/products/:productId", h.SubAdmin.DeleteProduct).
		GET("/orders", h.SubAdmin.MyOrders)

	return dg
}

package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"haccp/internal/domain"
	"haccp/internal/handler"
	"haccp/internal/middleware"
	"haccp/internal/service"
)

// Services are the services middleware needs to authorize requests.
type Services struct {
	Auth    service.AuthService
	Rbac    service.RbacService
	Markets service.MarketService
}

// Handlers groups every HTTP handler mounted by Setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Tenant     *handler.TenantHandler
	Market     *handler.MarketHandler
	Staff      *handler.StaffHandler
	Rbac       *handler.RbacHandler
	Section    *handler.SectionHandler
	Form       *handler.FormHandler
	Entry      *handler.EntryHandler
	Attachment *handler.AttachmentHandler
	Doku       *handler.DokuHandler
	Period     *handler.PeriodHandler
	Health     *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(svc Services, h Handlers, allowedOrigins []string, swagger bool) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Session routes stay reachable when the selected market was deactivated,
	// so the caller can switch away from it.
	session := v1.Group("")
	session.Use(middleware.AuthMiddleware(svc.Auth), middleware.TenantGuard())
	session.GET("/me", h.Auth.Me)
	session.GET("/me/markets", h.Auth.Markets)
	session.PUT("/me/market", h.Auth.SwitchMarket)

	// Protected routes - require valid JWT and an accessible market
	protected := session.Group("")
	protected.Use(middleware.MarketGuard(svc.Markets))
	protected.PUT("/me/pin", h.Staff.ChangeOwnPIN)
	protected.GET("/tenant", h.Tenant.Get)
	protected.GET("/periods", h.Period.Resolve)

	forms := protected.Group("/forms")
	forms.GET("", h.Form.ListVisible)
	forms.GET("/:id", h.Form.GetVisible)
	forms.POST("/:id/entries", h.Entry.Submit)
	forms.GET("/:id/instances/:ref", h.Entry.GetInstance)
	forms.GET("/:id/calendar", h.Entry.Calendar)

	entries := protected.Group("/entries")
	entries.GET("/:id", h.Entry.GetEntry)
	entries.POST("/:id/attachments", h.Attachment.Upload)
	entries.GET("/:id/attachments", h.Attachment.ListByEntry)

	protected.GET("/attachments/:id/url", h.Attachment.DownloadURL)

	doku := protected.Group("/doku")
	doku.GET("", h.Doku.Overview)
	doku.GET("/sections", h.Section.ListVisible)
	doku.GET("/export.csv", h.Doku.ExportCSV)
	doku.GET("/export.xlsx", h.Doku.ExportXLSX)

	// Market administration - ADMIN of the selected market or tenant-wide
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(svc.Rbac, domain.RoleAdmin))

	staff := admin.Group("/staff")
	staff.POST("", h.Staff.Create)
	staff.GET("", h.Staff.List)
	staff.GET("/:id", h.Staff.GetByID)
	staff.PUT("/:id", h.Staff.Update)
	staff.PUT("/:id/pin", h.Staff.ResetPIN)
	staff.DELETE("/:id", h.Staff.Delete)

	adminForms := admin.Group("/forms")
	adminForms.POST("", h.Form.Create)
	adminForms.GET("", h.Form.ListAll)
	adminForms.GET("/:id", h.Form.GetByID)
	adminForms.PUT("/:id", h.Form.Update)
	adminForms.DELETE("/:id", h.Form.Delete)

	sections := admin.Group("/doku-sections")
	sections.POST("", h.Section.Create)
	sections.GET("", h.Section.ListAll)
	sections.GET("/:id", h.Section.GetByID)
	sections.PUT("/:id", h.Section.Update)
	sections.DELETE("/:id", h.Section.Delete)

	admin.DELETE("/attachments/:id", h.Attachment.Delete)

	// Tenant-wide administration - SUPERADMIN only
	super := protected.Group("")
	super.Use(middleware.RequireRole(svc.Rbac, domain.RoleSuperAdmin))
	super.PUT("/tenant", h.Tenant.Update)

	markets := super.Group("/admin/markets")
	markets.POST("", h.Market.Create)
	markets.GET("", h.Market.List)
	markets.GET("/:id", h.Market.GetByID)
	markets.PUT("/:id", h.Market.Update)
	markets.DELETE("/:id", h.Market.Delete)

	rbac := super.Group("/admin/rbac")
	rbac.GET("", h.Rbac.List)
	rbac.POST("", h.Rbac.Grant)
	rbac.DELETE("/:id", h.Rbac.Revoke)

	return r
}

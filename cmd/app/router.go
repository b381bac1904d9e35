package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"storefront/cmd/fx/middleware_fx"
	"storefront/internal/api/controllers"
	"storefront/internal/config"
	"storefront/internal/services"
	"storefront/pkg/middleware"
	"storefront/pkg/utils"
)

type RouterParams struct {
	fx.In

	Cfg      *config.Config
	Log      *zap.Logger
	JWT      *utils.JWTManager
	Limiters middleware_fx.Limiters
	Roles    services.AccountServiceInterface

	Health         *controllers.HealthController
	Assets         *controllers.AssetController
	Accounts       *controllers.AccountController
	Plans          *controllers.PlanController
	Coupons        *controllers.CouponController
	PaymentMethods *controllers.PaymentMethodController
	Orders         *controllers.OrderController
	Payments       *controllers.PaymentController
	Subscriptions  *controllers.SubscriptionController
	Dashboard      *controllers.DashboardController
}

func ProvideRouter(p RouterParams) (*gin.Engine, error) {
	if p.Cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// ClientIP keys the rate limiters; forwarded headers count only from these hops.
	if err := r.SetTrustedProxies(p.Cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Log))
	r.Use(middleware.Recovery(p.Log))
	r.Use(middleware.CORSMiddleware(p.Cfg.CORSOrigins))
	r.Use(p.Limiters.Global.Middleware())

	RegisterRoutes(r, p)

	return r, nil
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/health", p.Health.Health)
	r.GET("/assets/*key", p.Assets.ServeAsset)

	accountsGroup := r.Group("/accounts", p.Limiters.Auth.Middleware())
	accountsGroup.POST("/register", p.Accounts.Register)
	accountsGroup.POST("/login", p.Accounts.Login)
	accountsGroup.POST("/forgot-password", p.Accounts.ForgotPassword)
	accountsGroup.POST("/reset-password", p.Accounts.ResetPassword)

	r.GET("/plans", p.Plans.ListPlans)
	r.GET("/plans/:id", p.Plans.GetPlan)
	r.GET("/payment-methods", p.PaymentMethods.ListActive)

	auth := r.Group("", middleware.JWTAuthMiddleware(p.JWT))

	me := auth.Group("/me")
	me.GET("", p.Accounts.GetProfile)
	me.PUT("", p.Accounts.UpdateProfile)
	me.PUT("/password", p.Accounts.ChangePassword)
	me.GET("/dashboard", p.Dashboard.GetMyDashboard)
	me.GET("/subscription", p.Subscriptions.GetMySubscription)

	auth.POST("/coupons/validate", p.Coupons.ValidateCoupon)

	orders := auth.Group("/orders")
	orders.POST("", p.Orders.CreateOrder)
	orders.GET("", p.Orders.ListMyOrders)
	orders.GET("/:id", p.Orders.GetOrder)
	orders.POST("/:id/cancel", p.Orders.CancelOrder)
	orders.POST("/:id/payments", p.Payments.SubmitPayment)

	admin := auth.Group("/admin", middleware.RoleMiddleware("admin", p.Roles))
	admin.GET("/dashboard", p.Dashboard.GetDashboard)

	admin.GET("/users", p.Accounts.ListUsers)
	admin.PATCH("/users/:id/role", p.Accounts.SetRole)

	admin.GET("/plans", p.Plans.AdminListPlans)
	admin.GET("/plans/:id", p.Plans.AdminGetPlan)
	admin.POST("/plans", p.Plans.CreatePlan)
	admin.PUT("/plans/:id", p.Plans.UpdatePlan)
	admin.DELETE("/plans/:id", p.Plans.DeletePlan)
	admin.POST("/plans/:id/image", p.Plans.UploadImage)

	admin.GET("/coupons", p.Coupons.ListCoupons)
	admin.POST("/coupons", p.Coupons.CreateCoupon)
	admin.PUT("/coupons/:id", p.Coupons.UpdateCoupon)
	admin.DELETE("/coupons/:id", p.Coupons.DeleteCoupon)

	admin.GET("/payment-methods", p.PaymentMethods.ListAll)
	admin.POST("/payment-methods", p.PaymentMethods.Create)
	admin.PUT("/payment-methods/:id", p.PaymentMethods.Update)
	admin.DELETE("/payment-methods/:id", p.PaymentMethods.Delete)

	admin.GET("/orders", p.Orders.AdminListOrders)
	admin.GET("/orders/:id", p.Orders.AdminGetOrder)
	admin.PATCH("/orders/:id/status", p.Orders.UpdateStatus)
}

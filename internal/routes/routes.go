package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/authz"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/handlers"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	verifyHandler *handlers.VerifyHandler,
	spotHandler *handlers.SpotHandler,
	facilityHandler *handlers.FacilityHandler,
	listingHandler *handlers.ListingHandler,
	bookingHandler *handlers.BookingHandler,
	accessHandler *handlers.AccessHandler,
	disputeHandler *handlers.DisputeHandler,
	reportHandler *handlers.ReportHandler,
	integrationsHandler *handlers.IntegrationsHandler, // may be nil when no bot token is configured
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.Refresh)
	r.POST("/register", userHandler.Register)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	// USERS
	users := r.Group("/users")
	{
		users.GET("/me", userHandler.Me)
		users.PUT("/me", userHandler.UpdateMe)
		users.POST("/switch-role", userHandler.SwitchRole)
		users.GET("/", userHandler.List)
		users.DELETE("/:id", userHandler.Delete)
	}

	// PHONE VERIFICATION
	verify := r.Group("/verify/phone")
	{
		verify.POST("/send", verifyHandler.SendCode)
		verify.POST("/resend", verifyHandler.SendCode)
		verify.POST("/confirm", verifyHandler.ConfirmCode)
	}

	// SPOTS
	spots := r.Group("/spots")
	{
		spots.GET("/", spotHandler.List)
		spots.GET("/:id", spotHandler.Get)
		spots.POST("/", spotHandler.Create)
		spots.PUT("/:id", spotHandler.Update)
		spots.DELETE("/:id", spotHandler.Delete)
	}

	// COMMERCIAL FACILITIES
	facilities := r.Group("/facilities")
	{
		facilities.GET("/", facilityHandler.List)
		facilities.GET("/:id", facilityHandler.Get)
		facilities.POST("/", facilityHandler.Create)
		facilities.DELETE("/:id", facilityHandler.Delete)
		facilities.GET("/:id/slots", facilityHandler.ListSlots)
		facilities.POST("/:id/slots", facilityHandler.CreateSlots)
	}

	// PRIVATE LISTINGS
	listings := r.Group("/listings")
	{
		listings.GET("/", listingHandler.List)
		listings.GET("/mine", listingHandler.Mine)
		listings.GET("/:id", listingHandler.Get)
		listings.POST("/", listingHandler.Create)
		listings.PUT("/:id", listingHandler.Update)
		listings.DELETE("/:id", listingHandler.Delete)
		listings.GET("/:id/pricing-intelligence", listingHandler.PricingIntelligence)
	}

	// BOOKINGS
	bookings := r.Group("/bookings")
	{
		bookings.POST("/", bookingHandler.Create)
		bookings.GET("/", bookingHandler.History)
		bookings.GET("/active", bookingHandler.Active)
		bookings.GET("/:id", bookingHandler.Get)
		bookings.POST("/:id/confirm", bookingHandler.Confirm)
		bookings.POST("/:id/end", bookingHandler.End)
		bookings.POST("/:id/cancel", bookingHandler.Cancel)
		bookings.GET("/:id/activity", bookingHandler.Activity)

		// access-code entry; the sixth digit submits on its own
		bookings.POST("/:id/access", accessHandler.Open)
		bookings.GET("/:id/access", accessHandler.Status)
		bookings.DELETE("/:id/access", accessHandler.Dismiss)
		bookings.POST("/:id/access/digits", accessHandler.Press)
		bookings.DELETE("/:id/access/digits", accessHandler.DeleteDigit)
		bookings.GET("/:id/access/attempts", accessHandler.Attempts)
	}

	// DISPUTES
	disputes := r.Group("/disputes")
	{
		disputes.POST("/", disputeHandler.Create)
		disputes.GET("/", disputeHandler.List)
		disputes.PUT("/:id", disputeHandler.Update)
	}

	// REPORTS (hosts)
	reports := r.Group("/reports", middleware.RequireRoles(authz.RoleHost, authz.RoleAdmin))
	{
		reports.GET("/host", reportHandler.HostSummary)
	}

	if integrationsHandler != nil {
		integr := r.Group("/integrations")
		{
			integr.PUT("/telegram", integrationsHandler.LinkTelegram)
		}
	}

	return r
}

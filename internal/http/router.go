// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cabway/internal/http/handlers"
	"cabway/internal/http/middleware"
	"cabway/internal/modules/booking"
	"cabway/internal/modules/fleet"
	"cabway/internal/modules/transit"
	"cabway/internal/modules/user"
)

type RouterDeps struct {
	Transit *transit.Service
	Fleet   *fleet.Service
	Booking *booking.Service
	Users   *user.Service
	Tokens  middleware.TokenValidator
	Log     *logrus.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.Logging(deps.Log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	userHandler := handlers.NewUserHandler(deps.Users)
	r.POST("/api/signup", userHandler.Signup)
	r.POST("/api/login", userHandler.Login)

	authed := r.Group("/api", middleware.Auth(deps.Tokens))
	admin := middleware.RequireAdmin()

	transitHandler := handlers.NewTransitHandler(deps.Transit)
	authed.POST("/routes/shortest", transitHandler.PlanRoute)
	authed.GET("/locations", transitHandler.ListLocations)
	authed.POST("/locations", admin, transitHandler.CreateLocation)
	authed.PUT("/locations/:id", admin, transitHandler.RenameLocation)
	authed.DELETE("/locations/:id", admin, transitHandler.DeleteLocation)
	authed.GET("/transit/routes", transitHandler.ListRoutes)
	authed.POST("/transit/routes", admin, transitHandler.CreateRoute)
	authed.PUT("/transit/routes/:id", admin, transitHandler.UpdateRoute)
	authed.DELETE("/transit/routes/:id", admin, transitHandler.DeleteRoute)

	fleetHandler := handlers.NewFleetHandler(deps.Fleet)
	authed.GET("/cabs", fleetHandler.List)
	authed.GET("/cabs/:id", fleetHandler.Get)
	authed.POST("/cabs", admin, fleetHandler.Create)
	authed.PUT("/cabs/:id", admin, fleetHandler.Update)
	authed.DELETE("/cabs/:id", admin, fleetHandler.Delete)

	bookingHandler := handlers.NewBookingHandler(deps.Booking, deps.Fleet)
	authed.POST("/bookings/quote", bookingHandler.Quote)
	authed.POST("/bookings", bookingHandler.Create)
	authed.GET("/bookings", bookingHandler.ListMine)
	authed.GET("/bookings/:id", bookingHandler.Get)
	authed.PUT("/bookings/:id/status", bookingHandler.ChangeStatus)
	authed.GET("/admin/bookings", admin, bookingHandler.ListAll)
	authed.GET("/admin/users", admin, userHandler.ListAll)

	driver := authed.Group("/driver", middleware.RequireDriver())
	driver.GET("/cab", fleetHandler.GetMyCab)
	driver.POST("/cab", fleetHandler.RegisterMyCab)
	driver.PUT("/cab", fleetHandler.UpdateMyCab)
	driver.GET("/bookings", bookingHandler.ListForMyCab)

	return r
}

package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	config "github.com/phillip/lbd-events-go/config"
	controllers "github.com/phillip/lbd-events-go/controllers"
	middleware "github.com/phillip/lbd-events-go/middleware"
	repositories "github.com/phillip/lbd-events-go/repositories"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, events repositories.EventRepository, admins repositories.AdminRepository, log *zap.Logger) {
	// public
	r.POST("/auth/login", controllers.Login(cfg, admins, log))
	r.GET("/events", controllers.ListEvents(events, log))
	r.GET("/events/:id", controllers.GetEvent(events, log))

	// protected
	auth := middleware.AuthMiddleware(cfg, admins, log)

	r.GET("/auth/me", auth, controllers.Me(admins, log))

	r.POST("/events", auth, controllers.CreateEvent(events, log))
	r.PATCH("/events/:id", auth, controllers.UpdateEvent(events, log))
	r.PATCH("/events/:id/stats", auth, controllers.UpdateEventStats(events, log))
	r.DELETE("/events/:id", auth, controllers.DeleteEvent(events, log))

	team := r.Group("/admins")
	team.Use(auth)
	{
		team.POST("", controllers.CreateAdmin(admins, log))
		team.GET("", controllers.ListAdmins(admins, log))
		team.PATCH("/:id/active", controllers.SetAdminActive(admins, log))
	}

	r.POST("/upload", auth, controllers.UploadImage(log))
	r.DELETE("/upload", auth, controllers.DeleteImage(log))
	r.POST("/send-admin-credentials", auth, controllers.SendCredentialsEmail(log))
}

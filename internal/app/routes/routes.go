package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/diasporahub/internal/app/controllers"
	"github.com/yigit/diasporahub/internal/middleware"
	"github.com/yigit/diasporahub/internal/pkg/websocket"
)

// Controllers groups the handlers mounted by SetupRouter. Auth and the
// authenticated profile routes are only mounted when AuthController is set.
type Controllers struct {
	System    *controllers.SystemController
	Location  *controllers.LocationController
	Thread    *controllers.ThreadController
	Directory *controllers.DirectoryController
	Event     *controllers.EventController
	Feed      *controllers.FeedController
	Profile   *controllers.ProfileController
	Auth      *controllers.AuthController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	wsHandler *websocket.Handler,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", c.System.Health)
	v1.GET("/app/manifest", c.System.AppManifest)

	// Change notifications
	v1.GET("/ws", wsHandler.HandleConnection)

	communities := v1.Group("/communities")
	{
		communities.GET("", c.Location.ListCommunities)
		communities.GET("/:id", c.Location.GetCommunity)
	}

	location := v1.Group("/location")
	{
		location.GET("", c.Location.GetLocation)
		location.PUT("", c.Location.SaveLocation)
		location.DELETE("", c.Location.ClearLocation)
		location.PUT("/community", c.Location.SetCommunity)
		location.PUT("/area", c.Location.SetArea)
	}

	threads := v1.Group("/threads")
	{
		threads.GET("", c.Thread.ListThreads)
		threads.POST("", c.Thread.CreateThread)
		threads.GET("/:id", c.Thread.GetThread)
		threads.POST("/:id/messages", c.Thread.SendMessage)
	}

	v1.GET("/groups", c.Directory.ListGroups)
	v1.GET("/students/requests", c.Directory.ListHelpRequests)
	v1.GET("/marketplace/listings", c.Directory.ListListings)

	events := v1.Group("/events")
	{
		events.GET("", c.Event.ListEvents)
		events.POST("", c.Event.CreateEvent)
		events.GET("/:id", c.Event.GetEvent)
		events.DELETE("/:id", c.Event.DeleteEvent)
		events.GET("/:id/calendar.ics", c.Event.DownloadCalendar)
	}

	posts := v1.Group("/posts")
	{
		posts.GET("", c.Feed.ListPosts)
		posts.POST("", c.Feed.CreatePost)
		posts.POST("/:id/like", c.Feed.ToggleLike)
		posts.DELETE("/:id", c.Feed.DeletePost)
	}

	profile := v1.Group("/profile")
	{
		profile.GET("", c.Profile.GetProfile)
		profile.PUT("", c.Profile.UpdateProfile)
	}

	if c.Auth == nil || authMiddleware == nil {
		return
	}

	// --- Backend routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.Auth.SignUp)
		auth.POST("/signin", c.Auth.SignIn)
		auth.POST("/exchange", c.Auth.ExchangeCode)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.POST("/signout", c.Auth.SignOut)
	}

	me := v1.Group("/me")
	me.Use(authMiddleware.JWTAuth())
	{
		me.GET("", c.Auth.Me)
		me.GET("/profile", c.Profile.GetRemoteProfile)
		me.PUT("/profile", c.Profile.UpsertRemoteProfile)
		me.POST("/profile/sync", c.Profile.SyncProfile)
	}
}

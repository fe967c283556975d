// main.go
package main

import (
	"encoding/gob"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tanzeelak/tea-rater-frontend/controllers"
	"github.com/tanzeelak/tea-rater-frontend/logger"
	"github.com/tanzeelak/tea-rater-frontend/middleware"
	"github.com/tanzeelak/tea-rater-frontend/services"
	"github.com/tanzeelak/tea-rater-frontend/websocket"
)

// envOr reads an environment variable with a local-testing fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("main: no .env file found, using process environment")
	}

	env := envOr("ENV", "development")
	logger.SetLogLevel(env)
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Read configuration from environment variables
	upstreamURL := envOr("UPSTREAM_API_URL", "http://localhost:8080")
	applicationURL := envOr("APPLICATION_URL", "http://localhost:8090")
	websocketURL := envOr("WEBSOCKET_URL", "ws://localhost:8090/refresh-updates")
	port := envOr("PORT", "8090")

	controllers.SetConfig(applicationURL, websocketURL)

	// Wire services: one API client, one owned session object, one
	// flight aggregator shared by all controllers.
	api := services.NewTeaAPIClient(upstreamURL)
	sessionService := services.NewSessionService(api)
	flightService := services.NewFlightService(api)

	authController := controllers.NewAuthController(sessionService)
	dashboardController := controllers.NewDashboardController(sessionService, flightService, api)
	ratingController := controllers.NewRatingController(flightService, api)
	teaController := controllers.NewTeaController(flightService, api)

	// Initialize the router
	router := gin.Default()

	// Add this route for health checks
	router.GET("/health", controllers.Health)

	// Initialize session store; the flow cursor stores a tea id slice,
	// which gob needs registered.
	gob.Register([]int{})
	store := cookie.NewStore([]byte(envOr("SESSION_SECRET", "tea-rater-dev-secret")))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("tearater", store))

	// Load HTML templates
	router.LoadHTMLGlob("templates/*.html")

	// Public routes
	router.GET("/login", authController.ShowLoginPage)
	router.POST("/login", authController.PerformLogin)
	router.GET("/register", authController.ShowRegisterPage)
	router.POST("/register", authController.PerformRegister)
	router.GET("/logout", authController.Logout)
	router.GET("/heartbeat", gin.WrapF(HeartbeatHandler))

	// Protected routes
	protected := router.Group("/", middleware.AuthRequired)
	{
		protected.GET("/", dashboardController.Index)
		protected.GET("/summary", dashboardController.ShowSummary)
		protected.GET("/refresh-updates", dashboardController.RefreshUpdates)

		protected.GET("/flights/:id", dashboardController.ShowFlight)
		protected.GET("/flights/:id/qrcode", dashboardController.FlightQRCode)
		protected.GET("/flights/:id/rate/:teaID", ratingController.ShowRatingForm)
		protected.POST("/flights/:id/rate/:teaID", ratingController.SubmitRating)

		protected.GET("/rate/:teaID", ratingController.ShowRatingForm)
		protected.POST("/rate/:teaID", ratingController.SubmitRating)

		protected.GET("/ratings/:id/edit", ratingController.ShowEditForm)
		protected.POST("/ratings/:id/edit", ratingController.SubmitEdit)

		protected.GET("/create-flight", ratingController.ShowCreateFlight)
		protected.POST("/create-flight", ratingController.CreateFlight)
		protected.GET("/cancel-flow", ratingController.CancelFlow)

		protected.GET("/register-tea", teaController.ShowRegisterTea)
		protected.POST("/register-tea", teaController.RegisterTea)
	}

	// Start the refresh fan-out and heartbeat cleanup
	go websocket.HandleMessages()
	go CleanupRoutine()

	// Start the server
	if err := router.Run(":" + port); err != nil {
		logger.Error.Printf("Failed to run server: %v", err)
		os.Exit(1)
	}
}

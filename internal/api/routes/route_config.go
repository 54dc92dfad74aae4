package routes

import (
	"Food-Surplus-Backend/internal/api/handlers"
	"Food-Surplus-Backend/internal/middleware"
	"Food-Surplus-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	FoodHandler    handlers.FoodHandler
	RequestHandler handlers.RequestHandler
	ReviewHandler  handlers.ReviewHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Foods()
	c.Requests()
	c.Reviews()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Patch("/change-role", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.ChangeRole)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Foods() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	foods := c.App.Group("/api/v1/foods")

	foods.Get("", c.FoodHandler.GetFoods)
	// registered before /:id so "my" is not taken for an id
	foods.Get("/my", auth, c.FoodHandler.GetMyFoods)
	foods.Get("/:id", c.FoodHandler.GetFoodByID)
	foods.Post("", auth, c.FoodHandler.CreateFood)
	foods.Put("/:id", auth, c.FoodHandler.UpdateFood)
	foods.Delete("/:id", auth, c.FoodHandler.DeleteFood)

	foods.Post("/:foodId/request", auth, c.RequestHandler.CreateRequest)
	foods.Get("/:foodId/requests", auth, c.RequestHandler.GetFoodWithRequests)
}

func (c *Config) Requests() {
	requests := c.App.Group("/api/v1/requests", c.Middleware.AuthMiddleware(c.JWTService))

	requests.Get("/my", c.RequestHandler.GetMyRequests)
	requests.Get("/received", c.RequestHandler.GetReceivedRequests)
	requests.Put("/:id/approve", c.RequestHandler.ApproveRequest)
	requests.Put("/:id/reject", c.RequestHandler.RejectRequest)

	notifications := requests.Group("/notifications")
	notifications.Get("/donor", c.RequestHandler.GetDonorNotifications)
	notifications.Get("/receiver", c.RequestHandler.GetReceiverNotifications)
	notifications.Put("/donor/seen", c.RequestHandler.MarkDonorSeen)
	notifications.Put("/receiver/seen", c.RequestHandler.MarkReceiverSeen)
}

func (c *Config) Reviews() {
	reviews := c.App.Group("/api/v1/reviews")

	reviews.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.ReviewHandler.CreateReview)
	reviews.Get("/donor/:userId", c.ReviewHandler.GetReviewsByDonor)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

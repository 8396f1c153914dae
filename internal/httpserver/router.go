package httpserver

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	authmw "github.com/hantagam/qrmenu/internal/middleware/auth"
)

// AdminSections are the server-rendered admin page prefixes behind the
// redirecting guard; /admin itself is the login page and stays open.
var AdminSections = []string{"dashboard", "orders", "restaurant"}

type Deps struct {
	AuthHandler       *AuthHTTP
	CategoryHandler   *CategoryHTTP
	MealHandler       *MealHTTP
	OrderHandler      *OrderHTTP
	ImageHandler      *ImageHTTP
	EventsHandler     *EventsHTTP
	RestaurantHandler *RestaurantHTTP
	DeliveryHandler   *DeliveryHTTP
	SearchHandler     *SearchHTTP
	Guard             *authmw.Guard

	// ImageRoot is served as static files under /images.
	ImageRoot string
	// AdminPagesRoot holds the built admin pages; one folder per
	// section in AdminSections plus the login index.
	AdminPagesRoot string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/auth/login", d.AuthHandler.Login)
	e.GET("/auth/verify", d.AuthHandler.Verify)
	e.POST("/auth/logout", d.AuthHandler.LogOut)

	api := e.Group("/api")

	// public customer surface
	api.GET("/category", d.CategoryHandler.GetCategories)
	api.GET("/meals", d.MealHandler.GetMeals)
	api.GET("/meals/:id", d.MealHandler.GetMeal)
	api.GET("/restaurant/:id", d.RestaurantHandler.GetRestaurant)
	api.GET("/restaurant/:id/categories", d.RestaurantHandler.GetMenu)
	api.GET("/delivery", d.DeliveryHandler.GetFee)
	api.POST("/delivery", d.DeliveryHandler.GetFee)
	api.GET("/search", d.SearchHandler.SearchMeals)
	api.POST("/orders", d.OrderHandler.CreateOrder)
	api.GET("/images/events", d.EventsHandler.Stream)

	if d.ImageRoot != "" {
		e.Static("/images", d.ImageRoot)
	}

	if d.AdminPagesRoot != "" {
		e.Static("/admin", d.AdminPagesRoot)
		for _, section := range AdminSections {
			g := e.Group("/admin/"+section, d.Guard.RedirectToLogin("/admin"))
			g.Static("", filepath.Join(d.AdminPagesRoot, section))
		}
	}

	// admin surface, guarded before any handler runs
	admin := api.Group("", d.Guard.RequireAdmin)
	admin.POST("/category", d.CategoryHandler.CreateCategory)
	admin.PATCH("/category/:id", d.CategoryHandler.PatchCategory)
	admin.DELETE("/category/:id", d.CategoryHandler.DeleteCategory)
	admin.POST("/meals", d.MealHandler.CreateMeal)
	admin.PATCH("/meals/:id", d.MealHandler.PatchMeal)
	admin.DELETE("/meals/:id", d.MealHandler.DeleteMeal)
	admin.GET("/orders", d.OrderHandler.GetOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.PatchOrderStatus)
	admin.DELETE("/orders/clear", d.OrderHandler.ClearOrders)
	admin.POST("/images", d.ImageHandler.Upload)
	admin.GET("/images", d.ImageHandler.List)
	admin.DELETE("/images", d.ImageHandler.Delete)
}

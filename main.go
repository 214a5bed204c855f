package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jfmanager/web/api"
	"github.com/jfmanager/web/controller"
	"github.com/jfmanager/web/session"
	"github.com/jfmanager/web/store"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	baseURL := os.Getenv("JFM_API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000/api/v1"
	}

	tokenFile := os.Getenv("JFM_TOKEN_FILE")
	if tokenFile == "" {
		tokenFile = ".jfm-tokens.json"
	}

	sess, err := session.Open(tokenFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}

	client := api.NewClient(baseURL, sess)

	authStore := store.NewAuthStore(client, sess)
	membersStore := store.NewMembersStore(client)
	parentsStore := store.NewParentsStore(client)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authStore.Initialize(ctx); err != nil {
		log.Warn().Err(err).Msg("stored session invalid, starting anonymous")
	}
	cancel()

	web := &controller.WebController{
		API:     client,
		Auth:    authStore,
		Members: membersStore,
		Parents: parentsStore,
	}
	inventory := &controller.InventoryController{API: client}

	r := gin.Default()
	r.LoadHTMLGlob("templates/*")
	r.Use(controller.Guard(authStore))

	r.GET("/login", web.LoginPage)
	r.POST("/login", web.Login)
	r.POST("/logout", web.Logout)

	r.GET("/", web.Dashboard)

	r.GET("/members", web.MembersPage)
	r.POST("/members/create", web.MemberCreate)
	r.GET("/members/:id", web.MemberDetailPage)
	r.POST("/members/:id/edit", web.MemberEdit)
	r.POST("/members/:id/delete", web.MemberDelete)

	r.GET("/parents", web.ParentsPage)
	r.POST("/parents/create", web.ParentCreate)
	r.POST("/parents/:id/edit", web.ParentEdit)

	r.GET("/profile", web.ProfilePage)
	r.POST("/profile", web.ProfileUpdate)
	r.GET("/settings", web.SettingsPage)
	r.GET("/servicebook", web.ServicebookPage)
	r.GET("/orders", web.OrdersPage)
	r.GET("/qualifications", web.QualificationsPage)
	r.GET("/qualifications/calculate-expiry", web.CalculateExpiry)

	r.GET("/inventory", inventory.InventoryPage)
	r.GET("/inventory/transactions/new", inventory.TransactionFormPage)
	r.POST("/inventory/transactions/new", inventory.TransactionCreate)
	r.GET("/inventory/search/items", inventory.SearchItems)
	r.GET("/inventory/search/locations", inventory.SearchLocations)
	r.GET("/inventory/stock", inventory.StockInfo)
	r.GET("/inventory/categories/:id/fields", inventory.CategoryFields)

	port := os.Getenv("JFM_PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

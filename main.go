package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dailyflo/dailyflo/database"
	"github.com/dailyflo/dailyflo/digest"
	"github.com/dailyflo/dailyflo/utils"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// Config holds all configuration parameters
type Config struct {
	AllowedUsers     string
	DatabasePath     string
	Port             int
	RateLimit        int
	RateWindowSec    int
	MailjetKeyPublic string
	MailjetKeyPrivat string
	DigestSender     string
	DigestSenderName string
	DigestRecipient  string
	DigestToName     string
}

var config Config

func init() {
	flag.StringVar(&config.AllowedUsers, "allowed-users", "", "Comma-separated list of allowed users in the format 'username:password'")
	flag.StringVar(&config.DatabasePath, "database-path", "", "Path to the SQLite database file")
	flag.IntVar(&config.Port, "port", 8080, "Port to run the server on")
	flag.IntVar(&config.RateLimit, "rate-limit", 30, "Maximum mutating requests per window (0 disables)")
	flag.IntVar(&config.RateWindowSec, "rate-window", 60, "Rate limit window in seconds")

	// Mailjet settings for the agenda digest email
	flag.StringVar(&config.MailjetKeyPublic, "mailjet-api-key-public", "", "The public API key for Mailjet")
	flag.StringVar(&config.MailjetKeyPrivat, "mailjet-api-key-private", "", "The private API key for Mailjet")
	flag.StringVar(&config.DigestSender, "digest-sender", "", "Sender address for the agenda digest email")
	flag.StringVar(&config.DigestSenderName, "digest-sender-name", "Dailyflo", "Sender display name for the digest email")
	flag.StringVar(&config.DigestRecipient, "digest-recipient", "", "Default recipient of the agenda digest email")
	flag.StringVar(&config.DigestToName, "digest-recipient-name", "", "Recipient display name for the digest email")
}

// collaboratorMiddleware hands the store and mailer to the handlers
// through the request context.
func collaboratorMiddleware(store *database.Store, mailer digest.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.KeyStore, store)
		c.Set(utils.KeyMailer, mailer)
		c.Next()
	}
}

func setupRouter(allowedUsers gin.Accounts, store *database.Store, mailer digest.Sender) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	app := gin.Default()

	api := app.Group("/api", gin.BasicAuth(allowedUsers))
	api.Use(collaboratorMiddleware(store, mailer))

	api.GET("/tasks", HandleListTasks)
	api.GET("/tasks/:id", HandleGetTask)
	api.GET("/lists", HandleListLists)
	api.GET("/agenda", HandleAgenda)
	api.GET("/recommend", HandleRecommend)

	v1 := api.Group("/v1")
	v1.Use(utils.RateLimitMiddleware(time.Duration(config.RateWindowSec)*time.Second, config.RateLimit))

	v1.POST("/tasks", HandleCreateTask)
	v1.PATCH("/tasks/:id", HandleUpdateTask)
	v1.DELETE("/tasks/:id", HandleDeleteTask)
	v1.POST("/tasks/:id/complete", HandleCompleteTask)
	v1.POST("/lists", HandleCreateList)
	v1.POST("/quick_add", HandleQuickAdd)
	v1.POST("/digest", HandleDigest)

	return app
}

func main() {
	log.Infof("Server starting time: %s", time.Now().Format(time.RFC3339))
	flag.Parse()

	if config.AllowedUsers == "" {
		log.Fatal("No allowed users provided. Use --allowed-users flag to specify them.")
	}
	if config.DatabasePath == "" {
		log.Fatal("No database path provided. Use --database-path flag to specify it.")
	}

	store, err := database.Open(config.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	mailer := &digest.Mailer{
		APIKeyPublic:  config.MailjetKeyPublic,
		APIKeyPrivate: config.MailjetKeyPrivat,
		Sender:        config.DigestSender,
		SenderName:    config.DigestSenderName,
	}

	allowedUserMap, allowedUsersStrings := utils.ParseAllowedUsers(config.AllowedUsers)
	if len(allowedUserMap) == 0 {
		log.Fatal("No valid users found in the allowed users list.")
	}
	log.Infof("Allowed users (hidden passwords): %s", allowedUsersStrings)

	app := setupRouter(allowedUserMap, store, mailer)
	listenAddr := fmt.Sprintf(":%d", config.Port)
	log.Infof("Gin has started in %s mode on %s", gin.Mode(), listenAddr)

	if err := app.Run(listenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

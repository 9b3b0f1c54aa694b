package main

import (
	"flag"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"wtfBlog/cache"
	"wtfBlog/crud"
	"wtfBlog/http"
	"wtfBlog/storage"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're running in production.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	flag.Parse()

	// Load configuration from a .config.json file if present, otherwise use
	// the default dev setup.
	config := LoadConfig(*productionBool)

	// Set up the global logger.
	logger, err := newLogger(config.IsProd())
	must(err)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err = Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.HMACKey, config.Pepper),
		crud.WithOAuth(),
		crud.WithGroup(),
		crud.WithPost(),
		crud.WithComment(),
		crud.WithFollow(),
		crud.WithFeed(),
	)
	must(err)

	// The image file service and the feed cache.
	imageService := storage.NewImageService()
	feedCache := cache.NewRedis(config.Redis.Addr())
	defer feedCache.Close()

	// Create an oauth config object for doing oauth with Github.
	githubOAuth := oauth2.Config{
		ClientID:     config.Github.ID,
		ClientSecret: config.Github.Secret,
		RedirectURL:  config.Github.RedirectURL,
		Endpoint:     github.Endpoint,
	}

	// Set up a webserver.
	server := http.NewServer(config.IsProd(), config.CSRFKey, githubOAuth, services, imageService, feedCache)

	// Serve the app.
	server.Run(config.Port)
}

// newLogger picks the zap preset matching the environment.
func newLogger(isProd bool) (*zap.Logger, error) {
	if isProd {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}

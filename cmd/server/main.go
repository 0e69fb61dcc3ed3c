package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/gbpflow/configs"
	"github.com/maheshrc27/gbpflow/internal/api/handlers"
	"github.com/maheshrc27/gbpflow/internal/api/middleware"
	job "github.com/maheshrc27/gbpflow/internal/jobs"
	"github.com/maheshrc27/gbpflow/internal/queue"
	"github.com/maheshrc27/gbpflow/internal/repository"
	"github.com/maheshrc27/gbpflow/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	asynqClient := asynq.NewClient(redisConn)
	defer asynqClient.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    25 * 1024 * 1024, // 25 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	postRepo := repository.NewPostRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	gbService := service.NewGoogleBusinessService(*cfg)
	aiService, err := service.NewAIService(context.Background(), *cfg)
	if err != nil {
		log.Fatalf("Failed to initialize AI service: %v", err)
	}

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	locationService := service.NewLocationService(userRepo, locationRepo, gbService)
	postService := service.NewPostService(locationRepo, postRepo)
	reviewService := service.NewReviewService(locationRepo, reviewRepo, userRepo, gbService, aiService)
	r2Service := service.NewR2Service(*cfg)
	mediaService := service.NewMediaService(*r2Service)

	enqueuer := queue.NewClient(asynqClient)
	queueW := queue.NewQueue(db, userRepo, locationRepo, postRepo, reviewRepo, gbService, aiService, enqueuer)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Post("/auth/register", auth.Register)
	app.Post("/auth/login", auth.Login)
	app.Get("/auth/google/callback", auth.GoogleCallback)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	api.Get("/auth/google/connect", auth.GoogleConnect)

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)
	api.Delete("/user", user.RemoveUser)

	location := handlers.NewLocationHandler(locationService)
	api.Get("/locations", location.ListLocations)
	api.Post("/locations", location.CreateLocation)
	api.Post("/locations/sync", location.SyncLocations)
	api.Get("/locations/:id", location.GetLocation)
	api.Put("/locations/:id", location.UpdateLocation)
	api.Delete("/locations/:id", location.RemoveLocation)

	post := handlers.NewPostHandler(postService, enqueuer)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts", post.CreatePost)
	api.Post("/posts/generate", post.GeneratePost)
	api.Get("/posts/:id", post.GetPost)
	api.Put("/posts/:id", post.UpdatePost)
	api.Delete("/posts/:id", post.RemovePost)
	api.Post("/posts/:id/publish", post.PublishPost)

	review := handlers.NewReviewHandler(reviewService, locationService, enqueuer)
	api.Get("/reviews", review.ListReviews)
	api.Post("/reviews/sync", review.SyncReviews)
	api.Get("/reviews/:id", review.GetReview)
	api.Put("/reviews/:id", review.UpdateReview)
	api.Post("/reviews/:id/reply", review.ReplyToReview)
	api.Post("/reviews/:id/generate-reply", review.GenerateReply)

	media := handlers.NewMediaHandler(mediaService)
	api.Post("/media/upload", media.UploadMedia)

	// cron sweeps
	sweepJob := job.NewSweepJob(queueW, enqueuer)

	c := cron.New()
	c.AddFunc("@every 00h01m00s", sweepJob.PublishScheduledPosts)
	c.AddFunc("@every 00h30m00s", sweepJob.SyncReviews)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)
		mux.HandleFunc(queue.TaskTypeGeneratePost, queueW.HandleGeneratePostTask)
		mux.HandleFunc(queue.TaskTypeSyncReviews, queueW.HandleSyncReviewsTask)
		mux.HandleFunc(queue.TaskTypeSyncAll, queueW.HandleSyncAllTask)
		mux.HandleFunc(queue.TaskTypeReviewReply, queueW.HandleReviewReplyTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}

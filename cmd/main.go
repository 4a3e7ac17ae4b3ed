package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"github.com/gramseva/portal/internal/config"
	"github.com/gramseva/portal/internal/db"
	"github.com/gramseva/portal/internal/handlers"
	"github.com/gramseva/portal/internal/middleware"
	"github.com/gramseva/portal/internal/models"
	"github.com/gramseva/portal/internal/services"
	"github.com/gramseva/portal/internal/storage"
	"github.com/gramseva/portal/internal/utils"
)

func main() {
	cfg := config.MustLoad()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to MongoDB and make sure the unique indexes exist before
	// serving; registration correctness depends on them.
	mongoDB := db.ConnectMongoDB(cfg.MongoURI, cfg.MongoDB)
	if err := db.EnsureIndexes(mongoDB); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}
	log.Info("connected to MongoDB")

	var (
		store storage.Store
		err   error
	)
	switch cfg.StorageBackend {
	case "minio":
		store, err = storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	default:
		store, err = storage.NewDiskStore(cfg.UploadDir)
	}
	if err != nil {
		log.Fatalf("failed to initialize %s storage: %v", cfg.StorageBackend, err)
	}
	log.Infof("attachment storage backend: %s", cfg.StorageBackend)

	janitor := utils.NewJanitor(store, log, 2)
	defer janitor.Close()

	secret := []byte(cfg.JWTSecret)
	authService := services.NewAuthService(mongoDB, secret, log)
	userService := services.NewUserService(mongoDB)
	noticeService := services.NewNoticeService(mongoDB)
	complaintService := services.NewComplaintService(mongoDB)
	schemeService := services.NewSchemeService(mongoDB)
	jobService := services.NewJobService(mongoDB)
	workService := services.NewWorkService(mongoDB)

	authHandler := handlers.NewAuthHandler(authService, store, janitor)
	profileHandler := handlers.NewProfileHandler(userService)
	userHandler := handlers.NewUserHandler(userService, janitor)
	noticeHandler := handlers.NewNoticeHandler(noticeService, store, janitor)
	complaintHandler := handlers.NewComplaintHandler(complaintService)
	schemeHandler := handlers.NewSchemeHandler(schemeService, store, janitor)
	jobHandler := handlers.NewJobHandler(jobService, store, janitor)
	workHandler := handlers.NewWorkHandler(workService, store, janitor)

	// Room for a work record with five 5MB images.
	app := fiber.New(fiber.Config{BodyLimit: 32 * 1024 * 1024})
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	if cfg.StorageBackend == "disk" {
		app.Static("/uploads", cfg.UploadDir)
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to GramSeva Portal API"})
	})

	protect := middleware.Protect(authService, secret)
	sarpanchOnly := middleware.RequireRoles(models.RoleSarpanch)
	peopleOnly := middleware.RequireRoles(models.RolePeople)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register/sarpanch", authHandler.RegisterSarpanch)
	auth.Post("/register/people", authHandler.RegisterPeople)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", protect, authHandler.Me)

	profile := api.Group("/profile", protect)
	profile.Get("/me", profileHandler.GetMe)
	profile.Put("/me", profileHandler.UpdateMe)
	profile.Put("/change-password", authHandler.ChangePassword)

	users := api.Group("/users", protect, sarpanchOnly)
	users.Get("/people", userHandler.ListPeople)
	users.Get("/people/:id", userHandler.GetPerson)
	users.Put("/people/:id", userHandler.UpdatePerson)
	users.Delete("/people/:id", userHandler.DeletePerson)

	notices := api.Group("/notices", protect)
	notices.Post("/", sarpanchOnly, noticeHandler.Add)
	notices.Get("/", noticeHandler.List)
	notices.Get("/:id", noticeHandler.Get)
	notices.Delete("/:id", sarpanchOnly, noticeHandler.Delete)

	complaints := api.Group("/complaints", protect)
	complaints.Post("/", peopleOnly, complaintHandler.Submit)
	complaints.Get("/my-complaints", peopleOnly, complaintHandler.MyComplaints)
	complaints.Get("/village", sarpanchOnly, complaintHandler.VillageComplaints)
	complaints.Put("/reply/:id", sarpanchOnly, complaintHandler.Reply)
	complaints.Put("/viewed/:id", sarpanchOnly, complaintHandler.MarkViewed)

	schemes := api.Group("/schemes", protect)
	schemes.Post("/", sarpanchOnly, schemeHandler.Add)
	schemes.Get("/", schemeHandler.List)
	schemes.Delete("/:id", sarpanchOnly, schemeHandler.Delete)

	jobs := api.Group("/jobs", protect)
	jobs.Post("/", sarpanchOnly, jobHandler.Add)
	jobs.Get("/", jobHandler.List)
	jobs.Delete("/:id", sarpanchOnly, jobHandler.Delete)

	works := api.Group("/works", protect)
	works.Post("/", sarpanchOnly, workHandler.Add)
	works.Get("/", workHandler.List)
	works.Delete("/:id", sarpanchOnly, workHandler.Delete)

	log.Fatal(app.Listen(":" + cfg.Port))
}

package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"os/signal"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"kriyaConnectAPI/handlers"
	"kriyaConnectAPI/internal/challenge"
	"kriyaConnectAPI/internal/coinbank"
	"kriyaConnectAPI/internal/config"
	"kriyaConnectAPI/internal/progress"
	"kriyaConnectAPI/internal/push"
	"kriyaConnectAPI/middleware"
	"kriyaConnectAPI/services"

	_ "net/http/pprof"
)

var (
	cfg             *config.Config
	dbPool          *pgxpool.Pool
	firestoreClient *firestore.Client

	userService         *services.UserService
	challengeService    *services.ChallengeService
	progressService     *services.ProgressService
	leaderboardService  *services.LeaderboardService
	cardService         *services.CardService
	directoryService    *services.DirectoryService
	notificationService *services.NotificationService
	reminderScheduler   *services.ReminderScheduler
	fcmService          *push.FCMService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	clerk.SetKey(cfg.ClerkSecretKey)
	log.Println("Clerk initialized successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to parse database URL: ", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool: ", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database: ", err)
	}

	log.Println("Successfully connected to Postgres")

	fbApp, err := newFirebaseApp(ctx)
	if err != nil {
		log.Fatal("Failed to initialize Firebase: ", err)
	}

	firestoreClient, err = fbApp.Firestore(ctx)
	if err != nil {
		log.Fatal("Failed to initialize Firestore: ", err)
	}
	log.Println("Firestore initialized successfully")

	challengeRepo := challenge.NewFirestoreRepository(firestoreClient)
	progressRepo := progress.NewFirestoreRepository(firestoreClient)
	coinbankRepo := coinbank.NewFirestoreRepository(firestoreClient)

	userService = services.NewUserService(dbPool)
	notificationService = services.NewNotificationService(dbPool)
	challengeService = services.NewChallengeService(challengeRepo)
	progressService = services.NewProgressService(challengeRepo, progressRepo, coinbankRepo, userService)
	progressService.SetMilestoneNotifier(notificationService)
	leaderboardService = services.NewLeaderboardService(coinbankRepo)
	cardService = services.NewCardService(coinbankRepo)
	directoryService = services.NewDirectoryService(dbPool)
	reminderScheduler = services.NewReminderScheduler(notificationService)

	fcmService, err = push.NewFCMService(fbApp)
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func newFirebaseApp(ctx context.Context) (*firebase.App, error) {
	if cfg.FirebaseCredentialsJSON != "" {
		creds, err := base64.StdEncoding.DecodeString(cfg.FirebaseCredentialsJSON)
		if err != nil {
			return nil, err
		}
		return firebase.NewApp(ctx, nil, option.WithCredentialsJSON(creds))
	}
	return firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
		if err := firestoreClient.Close(); err != nil {
			log.Printf("Firestore close error: %v", err)
		}
	}()

	userHandler := handlers.NewUserHandler(userService)
	challengeHandler := handlers.NewChallengeHandler(challengeService, progressService, userService)
	attendanceHandler := handlers.NewAttendanceHandler(progressService, userService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService, userService)
	cardHandler := handlers.NewCardHandler(cardService, userService)
	directoryHandler := handlers.NewDirectoryHandler(directoryService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	webhookHandler := handlers.NewWebhookHandler(userService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "kriyaConnect-api"}`))
	}).Methods("GET")

	r.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	api := r.PathPrefix("/api/v1").Subrouter()

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/delete-account", userHandler.DeleteAccount).Methods("DELETE")
	protected.HandleFunc("/user/id-card", cardHandler.GetIDCard).Methods("GET")

	protected.HandleFunc("/challenges", challengeHandler.ListChallenges).Methods("GET")
	protected.HandleFunc("/challenges", challengeHandler.CreateChallenge).Methods("POST")
	protected.HandleFunc("/challenges/progress", challengeHandler.GetUserProgress).Methods("GET")
	protected.HandleFunc("/challenges/{challengeId}", challengeHandler.GetChallenge).Methods("GET")
	protected.HandleFunc("/challenges/{challengeId}/complete", challengeHandler.CompleteChallenge).Methods("POST")

	protected.HandleFunc("/attendance/members", attendanceHandler.ListMembers).Methods("GET")
	protected.HandleFunc("/attendance", attendanceHandler.MarkGroupAttendance).Methods("POST")

	protected.HandleFunc("/leaderboards", leaderboardHandler.GetLeaderboards).Methods("GET")
	protected.HandleFunc("/level", leaderboardHandler.GetMemberLevel).Methods("GET")

	protected.HandleFunc("/directory", directoryHandler.BrowseListings).Methods("GET")
	protected.HandleFunc("/directory", directoryHandler.CreateListing).Methods("POST")
	protected.HandleFunc("/directory/{listingId}", directoryHandler.RemoveListing).Methods("DELETE")

	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")
	protected.HandleFunc("/notifications/preferences", notificationHandler.GetPreferences).Methods("GET")
	protected.HandleFunc("/notifications/preferences", notificationHandler.UpdatePreferences).Methods("PUT")

	reminderScheduler.Start()
	defer reminderScheduler.Stop()

	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := ":" + cfg.Port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server: ", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal: ", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}

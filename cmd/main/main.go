package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"www.github.com/Wanderer0074348/ShadowRoute/src/chat"
	"www.github.com/Wanderer0074348/ShadowRoute/src/config"
	"www.github.com/Wanderer0074348/ShadowRoute/src/confidence"
	"www.github.com/Wanderer0074348/ShadowRoute/src/eval"
	"www.github.com/Wanderer0074348/ShadowRoute/src/handlers"
	"www.github.com/Wanderer0074348/ShadowRoute/src/inference"
	"www.github.com/Wanderer0074348/ShadowRoute/src/middleware"
	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
	"www.github.com/Wanderer0074348/ShadowRoute/src/readiness"
	"www.github.com/Wanderer0074348/ShadowRoute/src/router"
	"www.github.com/Wanderer0074348/ShadowRoute/src/shadow"
	"www.github.com/Wanderer0074348/ShadowRoute/src/store"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	} else {
		log.Println("✅ Loaded .env file")
	}
}

func main() {
	if os.Getenv("TEACHER_API_KEY") == "" {
		log.Fatal("❌ TEACHER_API_KEY not set in environment or .env file")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("✓ Config loaded successfully")

	pairStore, err := store.NewRedisPairStore(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer pairStore.Close()
	log.Printf("✓ Redis connected")

	teacherClient, err := inference.NewTeacherClient(&cfg.Teacher)
	if err != nil {
		log.Fatalf("Failed to initialize teacher client: %v", err)
	}
	log.Printf("✓ Teacher client ready: %s", cfg.Teacher.Model)

	studentClient, err := inference.NewStudentClient(&cfg.Student)
	if err != nil {
		log.Fatalf("Failed to initialize student client: %v", err)
	}
	defer studentClient.Close()
	log.Printf("✓ Student client ready: %s (%s)", cfg.Student.Model, cfg.Student.Endpoint)

	embedder := eval.NewOpenAIEmbedder(cfg.Embedding.APIKey, cfg.Embedding.Model)
	similarity := eval.NewSimilarityEvaluator(embedder)

	metricsOracle := readiness.NewMetricsOracle(
		cfg.Readiness.MinSamples,
		cfg.Readiness.MinSimilarity,
		cfg.Readiness.MinConfidence,
		cfg.Readiness.WindowSize,
	)
	gate := readiness.NewGate(metricsOracle)

	splits := router.NewTrafficSplitTable()
	for rawIntent, percent := range cfg.Shadow.InitialSplits {
		intent := models.ParseIntent(rawIntent)
		if intent == models.IntentUnknown {
			log.Printf("⚠️  ignoring initial split for unknown intent %q", rawIntent)
			continue
		}
		if err := splits.SetSplit(intent, percent); err != nil {
			log.Fatalf("Invalid initial split for %s: %v", intent, err)
		}
	}

	stats := router.NewRoutingStatistics()
	mode := models.ParseMode(cfg.Shadow.Mode)
	modelRouter := router.NewModelRouter(mode, gate, splits, stats, nil)
	log.Printf("✓ Model router initialized (mode: %s)", mode)

	pairQueue := shadow.NewPairQueue(cfg.Shadow.QueueSize, pairStore, similarity, metricsOracle)
	pairQueue.Start()
	defer pairQueue.Close()

	orchestrator := shadow.NewOrchestrator(
		modelRouter,
		confidence.NewHeuristicPredictor(),
		studentClient,
		pairQueue,
		cfg.Teacher.Model,
		cfg.Student.Model,
		cfg.Student.Timeout,
	)
	log.Printf("✓ Shadow orchestrator ready")

	sessionStore := chat.NewSessionStore(pairStore.Client(), cfg.Redis.SessionTTL)

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	chatHandler := handlers.NewChatHandler(orchestrator, teacherClient, sessionStore)
	adminHandler := handlers.NewAdminHandler(modelRouter)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", chatHandler.HealthCheck)
		v1.POST("/chat", chatHandler.HandleChat)

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAdminToken(cfg.Admin.Token))
		{
			admin.GET("/routing/splits", adminHandler.GetSplits)
			admin.PUT("/routing/splits", adminHandler.SetSplit)
			admin.GET("/routing/stats", adminHandler.GetStats)
			admin.POST("/routing/stats/reset", adminHandler.ResetStats)
			admin.GET("/routing/mode", adminHandler.GetMode)
			admin.PUT("/routing/mode", adminHandler.SetMode)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Printf("🚀 ShadowRoute running on port %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func corsMiddleware() gin.HandlerFunc {
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	var allowedOrigins []string

	if allowedOriginsEnv != "" {
		allowedOrigins = strings.Split(allowedOriginsEnv, ",")
		for i := range allowedOrigins {
			allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
		}
	} else {
		allowedOrigins = []string{
			"http://localhost:3000",
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Requests without an Origin header (curl, health checks) pass through
		if origin == "" {
			c.Next()
			return
		}

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		if !allowed {
			c.AbortWithStatus(403)
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

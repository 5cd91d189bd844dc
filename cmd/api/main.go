package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wanderplan/wanderplan-api/internal/config"
	"github.com/wanderplan/wanderplan-api/internal/logging"
	miniorepo "github.com/wanderplan/wanderplan-api/internal/repository/minio"
	"github.com/wanderplan/wanderplan-api/internal/repository/mongodb"
	"github.com/wanderplan/wanderplan-api/internal/repository/ports"
	"github.com/wanderplan/wanderplan-api/internal/service"
	transport "github.com/wanderplan/wanderplan-api/internal/transport/http"
	"github.com/wanderplan/wanderplan-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongodb connect: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(shutdownCtx); err != nil {
			log.Printf("mongodb disconnect: %v", err)
		}
	}()
	db := client.Database(cfg.MongoDatabase)

	userRepo := mongodb.NewUserRepo(db)
	tripRepo := mongodb.NewTripRepo(db)
	destRepo := mongodb.NewDestinationRepo(db)

	var storage ports.ObjectStorage
	if cfg.MinIOEndpoint != "" {
		minioClient, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("minio connect: %v", err)
		}
		storage = miniorepo.NewStorage(minioClient, cfg.MinIOPublicURL)
	} else {
		log.Println("MINIO_ENDPOINT not set, photo uploads disabled")
	}

	tokens := util.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, cfg.GoogleAudience)
	tripService := service.NewTripService(tripRepo, destRepo, userRepo)
	destService := service.NewDestinationService(tripRepo, destRepo)
	attractionService := service.NewAttractionService(tripRepo, destRepo, storage, service.AttractionServiceConfig{
		PhotoBucket:       cfg.MinIOBucketPhotos,
		PhotoMaxBytes:     cfg.PhotoMaxBytes,
		PhotoMaxDimension: cfg.PhotoMaxDimension,
	})

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterSwagger(e)
	transport.RegisterAuth(e, authService)
	transport.RegisterTrips(e, authService, tripService)
	transport.RegisterDestinations(e, authService, destService)
	transport.RegisterAttractions(e, authService, attractionService)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-todo/configs"
	"go-todo/internal/domain/gateway/queue"
	"go-todo/internal/infra/aws"
	"go-todo/internal/infra/storage"
	"go-todo/pkg/log"
	"go-todo/pkg/msg"
	"go-todo/pkg/resource"
)

func main() {
	if err := configs.Load(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	defer log.Sync()
	log.Info(msg.GetMessage("app.start"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init storage
	backendName := resource.GetStringOrDefault("app.storage.backend", storage.BackendFile)
	storageKey := resource.GetStringOrDefault("app.storage.key", "@todos")
	backend, err := storage.Open(ctx, backendName)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer backend.Close()
	log.Info(msg.GetMessage("storage.backend", backendName, storageKey))

	if backend.Redis != nil && resource.GetBool("app.storage.redis.writer-lock.enabled") {
		lease, err := storage.AcquireWriterLease(ctx, backend.Redis, storageKey,
			resource.GetDuration("app.storage.redis.writer-lock.ttl"),
			resource.GetDuration("app.storage.redis.writer-lock.refresh-interval"))
		if err != nil {
			log.Fatal(err.Error())
		}
		defer lease.Release(context.WithoutCancel(ctx))
		go func() {
			if err := <-lease.Lost(); err != nil && ctx.Err() == nil {
				log.Error(msg.GetMessage("storage.lock.lost", storageKey, err))
				stop()
			}
		}()
	}

	// Init events
	var publisher queue.EventPublisher = queue.NoopPublisher{}
	if resource.GetBool("app.events.enabled") {
		cloud := aws.CloudConfigFromProperties()
		awsConfig, err := aws.LoadConfig(ctx, cloud)
		if err != nil {
			log.Fatal(err.Error())
		}
		publisher = aws.NewSQSEventPublisher(aws.NewSqsClient(awsConfig, cloud.Endpoint),
			resource.GetString("app.events.queue-name"))
	}

	app, err := newApplication(ctx, backend, storageKey, publisher)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer app.close()
	e := app.echo

	// Start Routes
	port := resource.GetStringOrDefault("app.server.port", "8080")
	go func() {
		log.Info(msg.GetMessage("app.started", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stop"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(err.Error())
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"contentbot/analyzer"
	"contentbot/api"
	"contentbot/config"
	"contentbot/deduplication"
	"contentbot/export"
	"contentbot/ingest"
	"contentbot/notify"
	"contentbot/releasewatch"
	"contentbot/requeststore"
	"contentbot/search"
	"contentbot/similarity"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Request store
	storeCfg := requeststore.NewStoreConfigFromEnv()
	store, err := requeststore.NewStore(storeCfg)
	if err != nil {
		log.Fatalf("Failed to connect to request store: %v", err)
	}
	defer store.Close()

	// Duplicate detection
	dedupCfg := deduplication.DeduplicatorConfig{
		Engine:        similarity.EngineConfig{Threshold: config.DuplicateThreshold},
		Threshold:     config.DuplicateThreshold,
		MaxCandidates: config.MaxCandidates,
		Embeddings:    deduplication.NewDefaultEmbeddingsProvider(os.Getenv("COHERE_EMBED_MODEL")),
	}
	if os.Getenv("BLOOM_ENABLED") == "true" {
		bloomCfg := deduplication.NewBloomConfigFromEnv()
		dedupCfg.BloomConfig = &bloomCfg
	}
	dedup, err := deduplication.NewDeduplicator(store, dedupCfg)
	if err != nil {
		log.Fatalf("Failed to initialize deduplicator: %v", err)
	}
	defer dedup.Close()
	if dedupCfg.Embeddings != nil {
		log.Printf("Embeddings confirmation enabled (model: %s)", dedupCfg.Embeddings.ModelName())
	}

	// Lifecycle events
	var publisher notify.Publisher = notify.NopPublisher{}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		topic := os.Getenv("KAFKA_EVENTS_TOPIC")
		if topic == "" {
			topic = "request-events"
		}
		kafkaPublisher, err := notify.NewKafkaPublisher(notify.KafkaPublisherConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   topic,
		})
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// Message pipeline
	intentAnalyzer := analyzer.New(analyzer.Lexicon{})
	pipeline, err := ingest.NewPipeline(intentAnalyzer, dedup, store, publisher)
	if err != nil {
		log.Fatalf("Failed to build ingest pipeline: %v", err)
	}

	// Kafka message consumer
	if os.Getenv("KAFKA_BROKERS") != "" {
		consumerCfg := ingest.NewConsumerConfigFromEnv(&ingest.ChatMessageHandler{Pipeline: pipeline})
		consumer, err := ingest.NewConsumer(consumerCfg)
		if err != nil {
			log.Fatalf("Failed to create Kafka consumer: %v", err)
		}
		defer consumer.Close()
		if err := consumer.Start(ctx); err != nil {
			log.Fatalf("Failed to start Kafka consumer: %v", err)
		}
	}

	// Search tally shares the store's Redis instance
	tally := search.NewRedisTally(redis.NewClient(&redis.Options{
		Addr:     storeCfg.Addr,
		Password: storeCfg.Password,
		DB:       storeCfg.DB,
	}))

	// Release watcher
	if feeds := os.Getenv("RELEASE_FEEDS"); feeds != "" {
		var feedURLs []string
		for _, feed := range strings.Split(feeds, ",") {
			if feed = strings.TrimSpace(feed); feed != "" {
				feedURLs = append(feedURLs, ResolveFeedURL(feed))
			}
		}
		watcher, err := releasewatch.NewWatcher(store, publisher, releasewatch.WatcherConfig{
			FeedURLs:       feedURLs,
			Interval:       config.ReleaseCheckInterval,
			MatchThreshold: config.ReleaseMatchThreshold,
			MaxPerFeed:     config.MaxReleasesPerFeed,
		})
		if err != nil {
			log.Fatalf("Failed to create release watcher: %v", err)
		}
		go watcher.Run(ctx)
	}

	// Backlog snapshots
	if os.Getenv("EXPORT_BUCKET") != "" {
		exporter, err := export.NewExporter(ctx, store, export.NewExporterConfigFromEnv())
		if err != nil {
			log.Fatalf("Failed to create backlog exporter: %v", err)
		}
		go exporter.Run(ctx, config.ExportInterval)
	}

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := api.NewRouter(api.Deps{
		Analyzer:  intentAnalyzer,
		Dedup:     dedup,
		Store:     store,
		Pipeline:  pipeline,
		Tally:     tally,
		Publisher: publisher,
	})
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /health")
	log.Println("  POST /api/analyze")
	log.Println("  POST /api/analyze/message")
	log.Println("  POST /api/duplicates/check")
	log.Println("  POST /api/duplicates/similar")
	log.Println("  POST /api/requests")
	log.Println("  GET  /api/requests/:id")
	log.Println("  GET  /api/requests")
	log.Println("  POST /api/requests/:id/fulfill")
	log.Println("  POST /api/requests/:id/reject")
	log.Println("  POST /api/search")
	log.Println("  GET  /api/search/popular")

	server := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

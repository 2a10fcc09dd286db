package bootstrap

import (
	"context"
	"fmt"
	"time"

	"retro-board-be/internal/config"
	"retro-board-be/internal/pkg/logger"
	"retro-board-be/internal/repository/memory"
	"retro-board-be/internal/repository/unitofwork"
	"retro-board-be/internal/service"
	"retro-board-be/pkg/cluster"
	"retro-board-be/pkg/embedding"
	"retro-board-be/pkg/events"
	"retro-board-be/pkg/insight/layout"
	"retro-board-be/pkg/llm/factory"
	"retro-board-be/pkg/lock"

	pktNats "retro-board-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const identityCacheTTL = 5 * time.Minute

type Container struct {
	ClusteringService service.IClusteringService
	ActionItemService service.IActionItemService
	DirectoryService  service.IDirectoryService

	Encoder *embedding.OllamaEncoder

	// Background Services (nil when events go to NATS)
	ConsumerService service.IConsumerService

	closers []func()
}

// Close releases the connections opened by NewContainer.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// 2. Event Bus
	var publisher events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS, using in-process bus", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}
	if publisher == nil {
		pubSub := events.NewGoChannelBus(watermill.NewStdLogger(false, false))
		c.closers = append(c.closers, func() { _ = pubSub.Close() })
		publisher = events.NewGoChannelPublisher(pubSub, cfg.Insight.EventTopic)
		c.ConsumerService = service.NewConsumerService(pubSub, cfg.Insight.EventTopic, uowFactory, sysLogger)
	}

	// 3. Generation lock
	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{
				"error": err.Error(),
			})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			sysLogger.Warn("Bootstrap", "Redis unreachable, using in-process generation lock", map[string]interface{}{
				"error": err.Error(),
			})
			_ = rdb.Close()
		} else {
			locker = lock.NewRedisLocker(rdb, "retro-insight:lock:")
			c.closers = append(c.closers, func() { _ = rdb.Close() })
		}
	}
	locker = lock.WithRetry(locker, time.Duration(cfg.Insight.GenerationLockWait)*time.Millisecond)

	// 4. AI Providers
	c.Encoder = embedding.NewOllamaEncoder(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.EmbeddingModel,
		time.Duration(cfg.Ai.EmbedTimeoutSecond)*time.Second,
	)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMHost,
		time.Duration(cfg.Ai.LLMTimeoutSeconds)*time.Second,
	)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}

	engine, err := cluster.New(cfg.Insight.ClusterEps, cfg.Insight.ClusterMinSamples)
	if err != nil {
		c.Close()
		return nil, err
	}

	sysLogger.Info("Bootstrap", "Providers configured", map[string]interface{}{
		"embedding_model": cfg.Ai.EmbeddingModel,
		"llm_provider":    cfg.Ai.LLMProvider,
		"llm_model":       cfg.Ai.LLMModel,
		"eps":             cfg.Insight.ClusterEps,
		"min_samples":     cfg.Insight.ClusterMinSamples,
	})

	// 5. Services
	c.DirectoryService = service.NewDirectoryService(
		uowFactory,
		memory.NewIdentityCache(identityCacheTTL),
		cfg.Insight.ServiceUsername,
		sysLogger,
	)
	c.ClusteringService = service.NewClusteringService(uowFactory, c.Encoder, engine, publisher, sysLogger)
	c.ActionItemService = service.NewActionItemService(
		uowFactory,
		llmProvider,
		c.DirectoryService,
		layout.NewRow(),
		locker,
		time.Duration(cfg.Insight.GenerationLockTTL)*time.Second,
		publisher,
		sysLogger,
	)

	return c, nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"mindtrack-chi/common/database"
	mqttcommon "mindtrack-chi/common/mqtt"
	rediscommon "mindtrack-chi/common/redis"
	"mindtrack-chi/internal/aggregator"
	"mindtrack-chi/internal/alert"
	"mindtrack-chi/internal/config"
	"mindtrack-chi/internal/fusion"
	httpapi "mindtrack-chi/internal/http"
	"mindtrack-chi/internal/pipeline"
	"mindtrack-chi/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ChiService CHI 服务：流水线 + 缓存 + 聚合 + HTTP + 告警监控
type ChiService struct {
	config      *config.Config
	logger      *zap.Logger
	redisClient *redis.Client
	db          *sql.DB
	mqttClient  *mqttcommon.Client
	source      aggregator.StateSource
	aggregator  *aggregator.Aggregator
	router      *httpapi.Router
	monitor     *MonitorService
	server      *Server
}

// NewChiService 创建 CHI 服务
func NewChiService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ChiService, error) {
	// 1. 权重与流水线
	weights, err := fusion.ParseWeights(cfg.CHI.Weights)
	if err != nil {
		return nil, fmt.Errorf("invalid CHI_WEIGHTS: %w", err)
	}
	engine, err := fusion.NewEngine(weights)
	if err != nil {
		return nil, err
	}
	p := pipeline.NewPipeline(engine, logger)

	s := &ChiService{config: cfg, logger: logger}
	s.source = aggregator.FromPipeline(p)

	// 2. Redis：状态快照缓存 + 告警流
	if cfg.RedisEnabled {
		s.redisClient = rediscommon.NewRedisClient(&cfg.Redis)
		if err := rediscommon.Ping(ctx, s.redisClient); err != nil {
			s.close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		cache := aggregator.NewStateCache(aggregator.NewRedisKVStore(s.redisClient), cfg.CHI.Cache.Prefix, weights.Tag(), cfg.CacheTTL(), logger)
		s.source = aggregator.NewCachingSource(s.source, cache, logger)
	}

	s.aggregator = aggregator.NewAggregator(s.source, logger,
		aggregator.WithConcurrency(cfg.CHI.Concurrency),
	)

	// 3. PostgreSQL：规则告警日志
	var alertRepo *repository.RuleAlertRepository
	if cfg.DBEnabled {
		s.db, err = database.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		alertRepo = repository.NewRuleAlertRepository(s.db, logger)
		if err := alertRepo.EnsureSchema(ctx); err != nil {
			s.close()
			return nil, err
		}
	}

	// 4. MQTT：告警推送
	if cfg.MQTTEnabled {
		s.mqttClient, err = mqttcommon.NewClient(&cfg.MQTT)
		if err != nil {
			s.close()
			return nil, err
		}
	}

	// 5. HTTP
	var lister httpapi.AlertLister
	switch {
	case alertRepo != nil:
		lister = alertRepo
	case s.redisClient != nil:
		lister = alert.NewStreamReader(s.redisClient, cfg.Monitor.Stream, logger)
	}
	s.router = httpapi.NewRouter(logger)
	s.router.RegisterCHIRoutes(httpapi.NewCHIHandler(s.source, s.aggregator, engine.Weights(), lister, logger))
	s.server = NewServer(cfg.HTTP.Addr, s.router, logger)

	// 6. 告警监控
	if cfg.Monitor.Enabled {
		var store AlertStore
		if alertRepo != nil {
			store = alertRepo
		}
		s.monitor = NewMonitorService(s.source, store, s.publishers(), cfg.MonitorInterval(), logger)
	}

	logger.Info("CHI service initialized",
		zap.String("weights", weights.String()),
		zap.Bool("redis_enabled", cfg.RedisEnabled),
		zap.Bool("db_enabled", cfg.DBEnabled),
		zap.Bool("mqtt_enabled", cfg.MQTTEnabled),
		zap.Bool("monitor_enabled", cfg.Monitor.Enabled),
	)
	return s, nil
}

func (s *ChiService) publishers() alert.Publisher {
	var pubs alert.MultiPublisher
	if s.redisClient != nil {
		pubs = append(pubs, alert.NewStreamPublisher(s.redisClient, s.config.Monitor.Stream, s.logger))
	}
	if s.mqttClient != nil {
		pubs = append(pubs, alert.NewMQTTPublisher(s.mqttClient, s.config.MQTT.Topic, s.config.MQTT.QoS, s.logger))
	}
	if len(pubs) == 0 {
		return nil
	}
	return pubs
}

// Handler HTTP 路由
func (s *ChiService) Handler() http.Handler {
	return s.router
}

// Aggregator 日/周/月聚合器
func (s *ChiService) Aggregator() *aggregator.Aggregator {
	return s.aggregator
}

// Monitor 告警监控（未启用时为 nil）
func (s *ChiService) Monitor() *MonitorService {
	return s.monitor
}

// Start 启动监控（如启用）并阻塞运行 HTTP 服务
func (s *ChiService) Start(ctx context.Context) error {
	if s.monitor != nil {
		go func() {
			if err := s.monitor.Start(ctx); err != nil {
				s.logger.Error("CHI monitor stopped", zap.Error(err))
			}
		}()
	}

	if err := s.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 停止服务并释放连接
func (s *ChiService) Stop(ctx context.Context) error {
	err := s.server.Stop(ctx)
	s.close()
	return err
}

func (s *ChiService) close() {
	if s.mqttClient != nil {
		s.mqttClient.Disconnect()
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Warn("Failed to close database", zap.Error(err))
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Warn("Failed to close redis", zap.Error(err))
		}
	}
}

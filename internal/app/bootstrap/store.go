package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	appconfig "github.com/wolfman30/lead-manager/internal/config"
	"github.com/wolfman30/lead-manager/internal/leads"
	"github.com/wolfman30/lead-manager/internal/supabase"
	"github.com/wolfman30/lead-manager/pkg/logging"
)

// AWSConfigLoader supplies SDK config only to the backends that need it.
type AWSConfigLoader func(ctx context.Context) (aws.Config, error)

// LeadStore is the selected backend plus whatever must be closed on shutdown.
type LeadStore struct {
	Store   leads.Store
	Backend string
	Cached  bool
	closers []func()
}

// Close releases pools and clients in reverse order of creation.
func (s *LeadStore) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// BuildLeadStore selects the backend named by LEADS_BACKEND and, when Redis is
// reachable, wraps it with the list cache.
func BuildLeadStore(ctx context.Context, cfg *appconfig.Config, loadAWS AWSConfigLoader, logger *logging.Logger) (*LeadStore, error) {
	if cfg == nil {
		return nil, errors.New("bootstrap: config required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	out := &LeadStore{Backend: cfg.LeadsBackend}

	switch cfg.LeadsBackend {
	case appconfig.BackendSupabase:
		client, err := supabase.NewClient(supabase.Config{
			URL:     cfg.SupabaseURL,
			AnonKey: cfg.SupabaseAnonKey,
			Timeout: cfg.SupabaseTimeout,
		}, logger.WithComponent("supabase"))
		if err != nil {
			return nil, fmt.Errorf("bootstrap: supabase client: %w", err)
		}
		out.Store = leads.NewPostgRESTStore(client, cfg.LeadsTable)

	case appconfig.BackendPostgres:
		pool := ConnectPostgresPool(ctx, cfg.DatabaseURL, logger)
		if pool == nil {
			return nil, errors.New("bootstrap: postgres unavailable")
		}
		out.closers = append(out.closers, pool.Close)
		out.Store = leads.NewPostgresStore(pool, cfg.LeadsTable)

	case appconfig.BackendDynamoDB:
		if loadAWS == nil {
			return nil, errors.New("bootstrap: aws config loader required for dynamodb")
		}
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: aws config: %w", err)
		}
		out.Store = leads.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.LeadsTable)

	case appconfig.BackendMemory:
		out.Store = leads.NewInMemoryStore()

	default:
		return nil, fmt.Errorf("bootstrap: unknown leads backend %q", cfg.LeadsBackend)
	}

	if redisClient := BuildRedisClient(ctx, cfg, logger, true); redisClient != nil {
		out.closers = append(out.closers, func() { _ = redisClient.Close() })
		out.Store = leads.NewCachedStore(out.Store, redisClient, cfg.LeadsTable, cfg.LeadCacheTTL, logger.WithComponent("lead-cache"))
		out.Cached = true
	}

	logger.Info("lead store ready", "backend", out.Backend, "table", cfg.LeadsTable, "cached", out.Cached)
	return out, nil
}

package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/statlinehq/statline/internal/cache"
	"github.com/statlinehq/statline/internal/llm"
	"github.com/statlinehq/statline/internal/model"
	"github.com/statlinehq/statline/internal/provider"
	"github.com/statlinehq/statline/internal/util"
	"github.com/statlinehq/statline/internal/worker"
)

// Build wires the real providers into an engine from configuration.
// Tests inject fakes through NewEngine instead.
func Build(cfg *model.Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := util.NewHTTPClient(util.HTTPOptions{
		Timeout:    cfg.Providers.Timeout,
		HTTPProxy:  cfg.HTTP.HTTPProxy,
		HTTPSProxy: cfg.HTTP.HTTPSProxy,
		NoProxy:    cfg.HTTP.NoProxy,
	})
	limiter := worker.NewLimiter(cfg.Providers.RatePerSecond, cfg.Providers.RateBurst)
	robots := util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.Providers.Timeout)

	espn := provider.NewESPN(client, cfg.Providers.ESPNBaseURL, cfg.HTTP.UserAgent,
		cfg.Providers.LookbackDays, logger)
	bdl := provider.NewBallDontLie(client, cfg.Providers.BDLBaseURL, cfg.Providers.BDLAPIKey,
		cfg.HTTP.UserAgent, logger)
	community := provider.NewCommunity(client, cfg.Providers.CommunityURL, cfg.HTTP.UserAgent,
		cfg.Providers.RespectRobots, robots, limiter, logger)
	archive := provider.NewArchive(cfg.Providers.ArchiveDir, logger)

	byID := map[string]provider.Provider{
		string(model.ProviderESPN):        espn,
		string(model.ProviderBallDontLie): bdl,
		string(model.ProviderCommunity):   community,
		string(model.ProviderArchive):     archive,
	}

	ordered := make([]provider.Provider, 0, len(cfg.Providers.Order))
	for _, id := range cfg.Providers.Order {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown provider in chain order: %s", id)
		}
		ordered = append(ordered, p)
	}
	chain := provider.NewChain(cfg.Providers.Timeout, logger, ordered...)

	var store *cache.StatStore
	if cfg.Cache.Enabled {
		store = cache.NewStatStore(cache.NewMemoryCache(cfg.Cache.TTL), cfg.Cache.TTL)
	}

	// A broken LLM config disables phrasing but never the pipeline.
	llmProvider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		logger.Warn("LLM phrasing disabled", zap.Error(err))
		llmProvider = nil
	}

	return NewEngine(cfg, Deps{
		Fetcher:  chain,
		Store:    store,
		Schedule: espn,
		Averages: bdl,
		Leaders:  espn,
		Trends:   bdl,
		Phraser:  llm.NewPhraser(llmProvider, logger),
		Logger:   logger,
	}), nil
}

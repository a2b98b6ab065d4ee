package resolve

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/rulekit/internal/logging"
	"github.com/yaklabco/rulekit/pkg/rules"
)

// emptySettings is substituted when a caller passes nil settings, so the
// calculator itself can keep its strict non-nil contract. A single shared
// instance keeps cache lookups for "no overrides" stable across calls.
//
//nolint:gochecknoglobals // Shared sentinel for the nil-settings case.
var emptySettings = rules.NewRulesSettings()

// Provider computes effective rule configurations through a cache.
// The lookup, computation, and cache insert happen under one lock, so
// concurrent analyses of the same language share a single computation.
type Provider struct {
	mu         sync.Mutex
	calculator *Calculator
	cache      *Cache
	logger     *log.Logger
}

// NewProvider creates a provider with a fresh cache.
func NewProvider(logger *log.Logger) *Provider {
	if logger == nil {
		logger = logging.Default()
	}
	return &Provider{
		calculator: NewCalculator(logger),
		cache:      NewCache(logger),
		logger:     logger,
	}
}

// EffectiveConfig returns the effective config for the given inputs,
// reusing the cached result when both inputs are the same instances as the
// previous call for this language. A nil settings argument is treated as
// "no overrides".
func (p *Provider) EffectiveConfig(languageKey string, defaults *rules.Config, settings *rules.RulesSettings) (*rules.Config, error) {
	if settings == nil {
		settings = emptySettings
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if effective, ok := p.cache.Find(languageKey, defaults, settings); ok {
		return effective, nil
	}

	effective, err := p.calculator.EffectiveConfig(languageKey, defaults, settings)
	if err != nil {
		return nil, err
	}

	p.cache.Add(languageKey, defaults, settings, effective)
	return effective, nil
}

// CacheCount returns the number of cached effective configs.
func (p *Provider) CacheCount() int {
	return p.cache.Count()
}

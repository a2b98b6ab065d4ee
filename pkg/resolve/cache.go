package resolve

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/rulekit/internal/logging"
	"github.com/yaklabco/rulekit/pkg/rules"
)

// Cache stores one effective config per language key, keyed on the
// identity of both inputs that produced it.
//
// Both the default config and the settings are compared by pointer
// identity: callers must pass the same *rules.Config and *rules.RulesSettings
// instances to mean "the same inputs". A lookup whose inputs do not match
// the stored entry evicts the stale entry before reporting a miss, so a
// superseded effective config never lingers.
//
// All operations are guarded by an internal mutex; lookup-evict and add are
// each atomic with respect to concurrent callers.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	logger  *log.Logger
}

type cacheEntry struct {
	defaults  *rules.Config
	settings  *rules.RulesSettings
	effective *rules.Config
}

// NewCache creates an empty cache.
func NewCache(logger *log.Logger) *Cache {
	if logger == nil {
		logger = logging.Default()
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		logger:  logger,
	}
}

// Find returns the cached effective config for languageKey when the stored
// entry was computed from exactly the given defaults and settings
// instances. When the language has an entry computed from different
// inputs, that entry is evicted and Find reports a miss.
func (c *Cache) Find(languageKey string, defaults *rules.Config, settings *rules.RulesSettings) (*rules.Config, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[languageKey]
	if !ok {
		return nil, false
	}
	if entry.defaults != defaults || entry.settings != settings {
		delete(c.entries, languageKey)
		c.logger.Debug("evicted stale effective config",
			logging.FieldLanguage, languageKey,
			logging.FieldCacheCount, len(c.entries))
		return nil, false
	}
	return entry.effective, true
}

// Add stores the effective config for languageKey, replacing any existing
// entry for that language.
func (c *Cache) Add(languageKey string, defaults *rules.Config, settings *rules.RulesSettings, effective *rules.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[languageKey] = cacheEntry{
		defaults:  defaults,
		settings:  settings,
		effective: effective,
	}
}

// Count returns the number of cached entries.
func (c *Cache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

package resolve_test

import (
	"testing"

	"github.com/yaklabco/rulekit/pkg/resolve"
	"github.com/yaklabco/rulekit/pkg/rules"
)

func TestCache_MissOnEmpty(t *testing.T) {
	t.Parallel()

	cache := resolve.NewCache(nil)

	if _, ok := cache.Find("c", testDefaults(), rules.NewRulesSettings()); ok {
		t.Error("empty cache should miss")
	}
	if cache.Count() != 0 {
		t.Errorf("Count = %d, want 0", cache.Count())
	}
}

func TestCache_HitOnSameInstances(t *testing.T) {
	t.Parallel()

	cache := resolve.NewCache(nil)
	defaults := testDefaults()
	settings := rules.NewRulesSettings()
	effective := &rules.Config{LanguageKey: "c"}

	cache.Add("c", defaults, settings, effective)

	got, ok := cache.Find("c", defaults, settings)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != effective {
		t.Error("hit must return the stored instance")
	}

	// A second identical lookup still hits and returns the same instance.
	got2, ok := cache.Find("c", defaults, settings)
	if !ok || got2 != effective {
		t.Error("repeated lookup must return the same instance")
	}
	if cache.Count() != 1 {
		t.Errorf("Count = %d, want 1", cache.Count())
	}
}

func TestCache_EvictsOnDefaultsMismatch(t *testing.T) {
	t.Parallel()

	cache := resolve.NewCache(nil)
	defaults := testDefaults()
	settings := rules.NewRulesSettings()

	cache.Add("c", defaults, settings, &rules.Config{LanguageKey: "c"})

	// A structurally identical but distinct defaults instance is a
	// different input: the stale entry must be removed, not just skipped.
	if _, ok := cache.Find("c", testDefaults(), settings); ok {
		t.Error("expected miss for a different defaults instance")
	}
	if cache.Count() != 0 {
		t.Errorf("Count = %d after eviction, want 0", cache.Count())
	}
}

func TestCache_EvictsOnSettingsMismatch(t *testing.T) {
	t.Parallel()

	cache := resolve.NewCache(nil)
	defaults := testDefaults()
	settings := rules.NewRulesSettings()

	cache.Add("c", defaults, settings, &rules.Config{LanguageKey: "c"})

	if _, ok := cache.Find("c", defaults, rules.NewRulesSettings()); ok {
		t.Error("expected miss for a different settings instance")
	}
	if cache.Count() != 0 {
		t.Errorf("Count = %d after eviction, want 0", cache.Count())
	}
}

func TestCache_AddOverwrites(t *testing.T) {
	t.Parallel()

	cache := resolve.NewCache(nil)
	defaults := testDefaults()
	settings := rules.NewRulesSettings()

	first := &rules.Config{LanguageKey: "c"}
	second := &rules.Config{LanguageKey: "c"}
	cache.Add("c", defaults, settings, first)
	cache.Add("c", defaults, settings, second)

	got, ok := cache.Find("c", defaults, settings)
	if !ok || got != second {
		t.Error("Add must overwrite the existing slot")
	}
	if cache.Count() != 1 {
		t.Errorf("Count = %d, want 1", cache.Count())
	}
}

func TestCache_IndependentLanguageSlots(t *testing.T) {
	t.Parallel()

	cache := resolve.NewCache(nil)
	settings := rules.NewRulesSettings()
	cDefaults := testDefaults()
	cppDefaults := &rules.Config{LanguageKey: "cpp", Rules: map[string]rules.Rule{}}

	cache.Add("c", cDefaults, settings, &rules.Config{LanguageKey: "c"})
	cache.Add("cpp", cppDefaults, settings, &rules.Config{LanguageKey: "cpp"})

	if cache.Count() != 2 {
		t.Fatalf("Count = %d, want 2", cache.Count())
	}

	// Evicting "c" leaves "cpp" untouched.
	cache.Find("c", testDefaults(), settings)
	if cache.Count() != 1 {
		t.Errorf("Count = %d after evicting one language, want 1", cache.Count())
	}
	if _, ok := cache.Find("cpp", cppDefaults, settings); !ok {
		t.Error("cpp entry should survive eviction of the c entry")
	}
}

func TestProvider_CachesComputation(t *testing.T) {
	t.Parallel()

	provider := resolve.NewProvider(nil)
	defaults := testDefaults()
	settings := rules.NewRulesSettings()

	first, err := provider.EffectiveConfig("c", defaults, settings)
	if err != nil {
		t.Fatalf("EffectiveConfig returned error: %v", err)
	}
	second, err := provider.EffectiveConfig("c", defaults, settings)
	if err != nil {
		t.Fatalf("EffectiveConfig returned error: %v", err)
	}

	if first != second {
		t.Error("identical inputs must return the cached instance, not a recomputation")
	}
	if provider.CacheCount() != 1 {
		t.Errorf("CacheCount = %d, want 1", provider.CacheCount())
	}
}

func TestProvider_NilSettingsMeansNoOverrides(t *testing.T) {
	t.Parallel()

	provider := resolve.NewProvider(nil)
	defaults := testDefaults()

	first, err := provider.EffectiveConfig("c", defaults, nil)
	if err != nil {
		t.Fatalf("EffectiveConfig returned error: %v", err)
	}
	if !first.IsActive("rule1") || first.IsActive("rule3") {
		t.Error("nil settings must behave as empty overrides")
	}

	// nil settings map to a stable internal snapshot, so the cache hits.
	second, err := provider.EffectiveConfig("c", defaults, nil)
	if err != nil {
		t.Fatalf("EffectiveConfig returned error: %v", err)
	}
	if first != second {
		t.Error("repeated nil-settings lookups must hit the cache")
	}
}

func TestProvider_RecomputesAfterSettingsChange(t *testing.T) {
	t.Parallel()

	provider := resolve.NewProvider(nil)
	defaults := testDefaults()
	settings := rules.NewRulesSettings()

	first, err := provider.EffectiveConfig("c", defaults, settings)
	if err != nil {
		t.Fatalf("EffectiveConfig returned error: %v", err)
	}

	changed := rules.NewRulesSettings()
	changed.Rules["c:rule1"] = rules.RuleConfig{Level: rules.LevelOff}

	second, err := provider.EffectiveConfig("c", defaults, changed)
	if err != nil {
		t.Fatalf("EffectiveConfig returned error: %v", err)
	}

	if first == second {
		t.Error("changed settings must trigger recomputation")
	}
	if second.IsActive("rule1") {
		t.Error("recomputed config must reflect the new settings")
	}
	if provider.CacheCount() != 1 {
		t.Errorf("CacheCount = %d, want 1 (stale entry replaced)", provider.CacheCount())
	}
}

package adaptation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/2beens/trainingcoach/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	rulesCacheKey  = "adaptation-rules::system-default"
	minCacheSizeMB = 1
	megabyte       = 1024 * 1024
)

type rulesSource interface {
	ListSystemDefaults(ctx context.Context) ([]Rule, error)
}

// RuleStore serves rule table snapshots, cached for ttl.
type RuleStore struct {
	source rulesSource
	cache  *freecache.Cache
	ttl    time.Duration
}

func NewRuleStore(source rulesSource, cacheSizeMB int, ttl time.Duration) *RuleStore {
	if cacheSizeMB < minCacheSizeMB {
		cacheSizeMB = minCacheSizeMB
	}
	return &RuleStore{
		source: source,
		cache:  freecache.NewCache(cacheSizeMB * megabyte),
		ttl:    ttl,
	}
}

// Table returns the current snapshot. A failing source degrades to an empty
// table, which resolves every level to the neutral rule.
func (s *RuleStore) Table(ctx context.Context) RuleTable {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.training.rules.table")
	defer span.End()

	if cached, err := s.cache.Get([]byte(rulesCacheKey)); err == nil {
		var rules []Rule
		if err := json.Unmarshal(cached, &rules); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return toTable(rules)
		} else {
			log.Errorf("unmarshal cached adaptation rules: %s", err)
		}
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	rules, err := s.source.ListSystemDefaults(ctx)
	if err != nil {
		log.Errorf("load adaptation rules, falling back to neutral: %s", err)
		span.RecordError(err)
		return RuleTable{}
	}

	encoded, err := json.Marshal(rules)
	if err != nil {
		log.Errorf("marshal adaptation rules for cache: %s", err)
		return toTable(rules)
	}
	if err := s.cache.Set([]byte(rulesCacheKey), encoded, int(s.ttl.Seconds())); err != nil {
		log.Errorf("cache adaptation rules: %s", err)
	}

	return toTable(rules)
}

// Invalidate drops the cached snapshot so the next Table call reloads it.
func (s *RuleStore) Invalidate() {
	s.cache.Del([]byte(rulesCacheKey))
}

func toTable(rules []Rule) RuleTable {
	table := make(RuleTable, len(rules))
	for _, r := range rules {
		if _, seen := table[r.Level]; seen {
			log.Warnf("duplicate system default adaptation rule for level [%s], keeping the first", r.Level)
			continue
		}
		table[r.Level] = r
	}
	return table
}

package cache

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"surveydash/internal/model"
)

// ReportCache holds built analytics reports keyed by survey ID.
// Reports returned from the cache are shared and must be treated as read-only.
//
// Every Invalidate advances the survey's generation. A builder captures the
// generation before loading data and stores through SetIfCurrent, which drops
// the report when an invalidation happened in between.
type ReportCache interface {
	Get(ctx context.Context, surveyID string) (*model.AnalyticsReport, error)
	Set(ctx context.Context, report *model.AnalyticsReport) error
	SetIfCurrent(ctx context.Context, report *model.AnalyticsReport, gen uint64) (bool, error)
	Generation(surveyID string) uint64
	Invalidate(ctx context.Context, surveyID string) error
}

type reportCache struct {
	local  *gocache.Cache
	client *redis.Client // nil when running without redis
	ttl    time.Duration

	mu   sync.Mutex
	gens map[string]uint64
}

// NewReportCache creates a two-tier report cache: an in-process tier backed
// by an optional redis tier shared between instances. client may be nil.
func NewReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	return &reportCache{
		local:  gocache.New(ttl, 2*ttl),
		client: client,
		ttl:    ttl,
		gens:   make(map[string]uint64),
	}
}

func (c *reportCache) reportKey(surveyID string) string {
	return fmt.Sprintf("survey:%s:report", surveyID)
}

func (c *reportCache) Get(ctx context.Context, surveyID string) (*model.AnalyticsReport, error) {
	if v, ok := c.local.Get(surveyID); ok {
		return v.(*model.AnalyticsReport), nil
	}
	if c.client == nil {
		return nil, nil
	}
	gen := c.Generation(surveyID)

	data, err := c.client.Get(ctx, c.reportKey(surveyID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	report, err := decodeReport(data)
	if err != nil {
		return nil, fmt.Errorf("decode cached report %s: %w", surveyID, err)
	}
	c.mu.Lock()
	if c.gens[surveyID] == gen {
		c.local.Set(surveyID, report, gocache.DefaultExpiration)
	}
	c.mu.Unlock()
	return report, nil
}

func (c *reportCache) Set(ctx context.Context, report *model.AnalyticsReport) error {
	c.local.Set(report.SurveyID, report, gocache.DefaultExpiration)
	if c.client == nil {
		return nil
	}

	data, err := encodeReport(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.reportKey(report.SurveyID), data, c.ttl).Err()
}

func (c *reportCache) Generation(surveyID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[surveyID]
}

// SetIfCurrent stores the report only while the survey is still at gen.
// The redis write is undone when an invalidation lands while it is in flight.
func (c *reportCache) SetIfCurrent(ctx context.Context, report *model.AnalyticsReport, gen uint64) (bool, error) {
	c.mu.Lock()
	if c.gens[report.SurveyID] != gen {
		c.mu.Unlock()
		return false, nil
	}
	c.local.Set(report.SurveyID, report, gocache.DefaultExpiration)
	c.mu.Unlock()

	if c.client == nil {
		return true, nil
	}

	data, err := encodeReport(report)
	if err != nil {
		return true, err
	}
	key := c.reportKey(report.SurveyID)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return true, err
	}
	if c.Generation(report.SurveyID) != gen {
		return false, c.client.Del(ctx, key).Err()
	}
	return true, nil
}

func (c *reportCache) Invalidate(ctx context.Context, surveyID string) error {
	c.mu.Lock()
	c.gens[surveyID]++
	c.local.Delete(surveyID)
	c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.reportKey(surveyID)).Err()
}

// Payloads reuse the json field names so the redis entries stay readable
// with generic msgpack tooling.
func encodeReport(report *model.AnalyticsReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeReport(data []byte) (*model.AnalyticsReport, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	var report model.AnalyticsReport
	if err := dec.Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}

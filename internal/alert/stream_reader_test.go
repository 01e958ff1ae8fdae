package alert

import (
	"context"
	"testing"

	"mindtrack-chi/common/config"
	rediscommon "mindtrack-chi/common/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStreamReader_ListRuleAlerts(t *testing.T) {
	mr := miniredis.RunT(t)
	client := rediscommon.NewRedisClient(&config.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	pub := NewStreamPublisher(client, "chi:alerts", zap.NewNop())

	today, err := BuildRuleAlerts(sampleState())
	require.NoError(t, err)
	next := sampleState()
	next.Date = "2024-03-11"
	tomorrow, err := BuildRuleAlerts(next)
	require.NoError(t, err)

	for _, a := range append(today, tomorrow...) {
		require.NoError(t, pub.Publish(ctx, a))
	}
	// 重试导致的重复投递
	require.NoError(t, pub.Publish(ctx, today[0]))
	_, err = rediscommon.PublishToStream(ctx, client, "chi:alerts", map[string]interface{}{"data": "{bad"})
	require.NoError(t, err)

	reader := NewStreamReader(client, "chi:alerts", zap.NewNop())

	got, err := reader.ListRuleAlerts(ctx, "2024-03-10", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "KR2", got[0].RuleID)
	assert.Equal(t, "KR3", got[1].RuleID)
	assert.Equal(t, today[1].AlertID, got[1].AlertID)

	got, err = reader.ListRuleAlerts(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-03-10", got[0].Date)
	assert.Equal(t, "2024-03-11", got[1].Date)
	assert.Equal(t, "KR3", got[1].RuleID)
}

func TestStreamReader_EmptyStream(t *testing.T) {
	mr := miniredis.RunT(t)
	client := rediscommon.NewRedisClient(&config.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	got, err := NewStreamReader(client, "chi:alerts", zap.NewNop()).ListRuleAlerts(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"mindtrack-chi/internal/config"
	"mindtrack-chi/internal/fusion"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	os.Clearenv()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestNewChiService_Defaults(t *testing.T) {
	cfg := loadTestConfig(t)

	svc, err := NewChiService(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, svc.Monitor())

	req := httptest.NewRequest(http.MethodGet, "/chi/api/v1/state/2024-03-10", nil)
	w := httptest.NewRecorder()
	svc.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":2000`)
}

func TestNewChiService_InvalidWeights(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.CHI.Weights = "sleep=50,biometric=25,facial=20,voice=15,behavioral=5"

	_, err := NewChiService(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewChiService_RedisCacheAndStream(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := loadTestConfig(t)
	cfg.RedisEnabled = true
	cfg.Redis.Addr = mr.Addr()
	cfg.Monitor.Enabled = true

	svc, err := NewChiService(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(svc.close)

	_, err = svc.Aggregator().Daily(context.Background(), "2024-03-10")
	require.NoError(t, err)
	assert.True(t, mr.Exists("chi:state:"+fusion.DefaultWeights.Tag()+":2024-03-10"))

	require.NotNil(t, svc.Monitor())
	n, err := svc.Monitor().ProcessDate(context.Background(), "2024-03-10")
	require.NoError(t, err)
	if n > 0 {
		assert.True(t, mr.Exists("chi:alerts"))
	}

	// 未启用数据库时告警查询读取告警流
	req := httptest.NewRequest(http.MethodGet, "/chi/api/v1/alerts?date=2024-03-10", nil)
	w := httptest.NewRecorder()
	svc.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code   int `json:"code"`
		Result struct {
			Total int `json:"total"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2000, resp.Code)
	assert.Equal(t, n, resp.Result.Total)
}

func TestNewChiService_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := loadTestConfig(t)
	cfg.RedisEnabled = true
	cfg.Redis.Addr = addr

	_, err := NewChiService(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

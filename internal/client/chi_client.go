package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	httpapi "mindtrack-chi/internal/http"
	"mindtrack-chi/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const apiPrefix = "/chi/api/v1"

// CHIClient mindtrack-chi HTTP API 客户端
type CHIClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewCHIClient 创建客户端
func NewCHIClient(baseURL string, timeout time.Duration, logger *zap.Logger) *CHIClient {
	if timeout <= 0 {
		timeout = 30 * time.Second // 月度导出需要计算两个月
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")

	return &CHIClient{httpClient: client, logger: logger}
}

// get 发起 GET 请求并解开 Result 包装
func get[T any](ctx context.Context, c *CHIClient, path string, query map[string]string) (T, error) {
	var out httpapi.Result[T]
	var zero T

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(&out).
		Get(path)
	if err != nil {
		return zero, fmt.Errorf("failed to call %s: %w", path, err)
	}
	if resp.IsError() {
		c.logger.Debug("CHI API returned HTTP error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
		)
		return zero, fmt.Errorf("CHI API %s: HTTP %d", path, resp.StatusCode())
	}
	if out.Code != httpapi.ResultSuccess {
		return zero, fmt.Errorf("CHI API error: %s (code: %d)", out.Message, out.Code)
	}
	return out.Result, nil
}

// State 单日完整状态
func (c *CHIClient) State(ctx context.Context, date string) (*models.SystemState, error) {
	state, err := get[models.SystemState](ctx, c, apiPrefix+"/state/"+date, nil)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Daily 日视图
func (c *CHIClient) Daily(ctx context.Context, date string) (*models.DailySummary, error) {
	summary, err := get[models.DailySummary](ctx, c, apiPrefix+"/daily/"+date, nil)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Weekly 周视图，endDate 为空时由服务端取今天
func (c *CHIClient) Weekly(ctx context.Context, endDate string) (*models.WeeklySummary, error) {
	query := map[string]string{}
	if endDate != "" {
		query["endDate"] = endDate
	}
	summary, err := get[models.WeeklySummary](ctx, c, apiPrefix+"/weekly", query)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Monthly 月视图
func (c *CHIClient) Monthly(ctx context.Context, offset int) (*models.MonthlySummary, error) {
	query := map[string]string{"offset": strconv.Itoa(offset)}
	summary, err := get[models.MonthlySummary](ctx, c, apiPrefix+"/monthly", query)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Weights 服务端生效的权重表
func (c *CHIClient) Weights(ctx context.Context) (*httpapi.WeightsView, error) {
	view, err := get[httpapi.WeightsView](ctx, c, apiPrefix+"/weights", nil)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

type alertPage struct {
	Items []*models.RuleAlert `json:"items"`
	Total int                 `json:"total"`
}

// Alerts 已记录的规则告警；date 为空时不按日期过滤
func (c *CHIClient) Alerts(ctx context.Context, date string, limit int) ([]*models.RuleAlert, error) {
	query := map[string]string{"limit": strconv.Itoa(limit)}
	if date != "" {
		query["date"] = date
	}
	page, err := get[alertPage](ctx, c, apiPrefix+"/alerts", query)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// ExportMonthly 下载月视图 Excel
func (c *CHIClient) ExportMonthly(ctx context.Context, offset int) ([]byte, error) {
	path := apiPrefix + "/monthly/export"
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("offset", strconv.Itoa(offset)).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("CHI API %s: HTTP %d", path, resp.StatusCode())
	}

	// 失败时服务端返回 JSON 包装
	if strings.HasPrefix(resp.Header().Get("Content-Type"), "application/json") {
		var out httpapi.Result[any]
		if err := json.Unmarshal(resp.Body(), &out); err != nil {
			return nil, fmt.Errorf("failed to unmarshal export response: %w", err)
		}
		return nil, fmt.Errorf("CHI API error: %s (code: %d)", out.Message, out.Code)
	}

	c.logger.Debug("Monthly export downloaded", zap.Int("bytes", len(resp.Body())))
	return resp.Body(), nil
}

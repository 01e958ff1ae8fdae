package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"mindtrack-chi/internal/aggregator"
	"mindtrack-chi/internal/fusion"
	"mindtrack-chi/internal/models"

	"go.uber.org/zap"
)

// AlertLister 规则告警查询（由 repository.RuleAlertRepository 实现）
type AlertLister interface {
	ListRuleAlerts(ctx context.Context, date string, limit int) ([]*models.RuleAlert, error)
}

// CHIHandler CHI 查询接口
type CHIHandler struct {
	source  aggregator.StateSource
	agg     *aggregator.Aggregator
	weights fusion.Weights
	alerts  AlertLister // 可为 nil（未启用告警日志库）
	logger  *zap.Logger
}

// NewCHIHandler 创建 CHI 查询接口
func NewCHIHandler(
	source aggregator.StateSource,
	agg *aggregator.Aggregator,
	weights fusion.Weights,
	alerts AlertLister,
	logger *zap.Logger,
) *CHIHandler {
	return &CHIHandler{
		source:  source,
		agg:     agg,
		weights: weights,
		alerts:  alerts,
		logger:  logger,
	}
}

// WeightsView 权重表响应
type WeightsView struct {
	Weights map[models.Modality]int `json:"weights"`
	Text    string                  `json:"text"`
	Total   int                     `json:"total"`
}

func (h *CHIHandler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Warn("CHI request failed", zap.String("op", op), zap.Error(err))
	writeJSON(w, http.StatusOK, Fail(err.Error()))
}

// Health 存活检查
func (h *CHIHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// GetState 单日完整状态
func (h *CHIHandler) GetState(w http.ResponseWriter, r *http.Request, date string) {
	state, err := h.source.StateForDate(r.Context(), date)
	if err != nil {
		h.fail(w, "state", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(state))
}

// GetDaily 日视图
func (h *CHIHandler) GetDaily(w http.ResponseWriter, r *http.Request, date string) {
	summary, err := h.agg.Daily(r.Context(), date)
	if err != nil {
		h.fail(w, "daily", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(summary))
}

// GetWeekly 周视图，endDate 缺省为今天
func (h *CHIHandler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	summary, err := h.agg.Weekly(r.Context(), r.URL.Query().Get("endDate"))
	if err != nil {
		h.fail(w, "weekly", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(summary))
}

// GetMonthly 月视图，offset 缺省为 0（本月）
func (h *CHIHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	offset, err := parseOffset(r.URL.Query().Get("offset"))
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid offset"))
		return
	}
	summary, err := h.agg.Monthly(r.Context(), offset)
	if err != nil {
		h.fail(w, "monthly", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(summary))
}

// ExportMonthly 导出月视图 Excel
func (h *CHIHandler) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	offset, err := parseOffset(r.URL.Query().Get("offset"))
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid offset"))
		return
	}
	summary, err := h.agg.Monthly(r.Context(), offset)
	if err != nil {
		h.fail(w, "monthly_export", err)
		return
	}

	excelData, err := GenerateMonthlyReport(summary)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(fmt.Sprintf("failed to generate export: %v", err)))
		return
	}

	filename := fmt.Sprintf("chi-%d-%02d.xlsx", summary.Year, monthNumber(summary))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(excelData)
}

// GetWeights 当前生效的融合权重
func (h *CHIHandler) GetWeights(w http.ResponseWriter, r *http.Request) {
	view := WeightsView{
		Weights: make(map[models.Modality]int, len(models.Modalities)),
		Text:    h.weights.String(),
		Total:   h.weights.Total(),
	}
	for _, m := range models.Modalities {
		view.Weights[m] = h.weights.Percent(m)
	}
	writeJSON(w, http.StatusOK, Ok(view))
}

// GetAlerts 已记录的规则告警，?date=YYYY-MM-DD&limit=N
func (h *CHIHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	if h.alerts == nil {
		writeJSON(w, http.StatusOK, Fail("alert log is not enabled"))
		return
	}
	q := r.URL.Query()
	alerts, err := h.alerts.ListRuleAlerts(r.Context(), q.Get("date"), parseInt(q.Get("limit"), 50))
	if err != nil {
		h.fail(w, "alerts", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": alerts, "total": len(alerts)}))
}

// monthNumber 月视图对应的月份数字
func monthNumber(summary *models.MonthlySummary) int {
	if len(summary.StartDate) >= 7 {
		return parseInt(summary.StartDate[5:7], 0)
	}
	return 0
}

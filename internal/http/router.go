package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

const apiPrefix = "/chi/api/v1"

// Router 使用标准库 http.ServeMux
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// getOnly 非 GET 请求返回 405
func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}

// RegisterCHIRoutes 注册 CHI 查询路由
func (r *Router) RegisterCHIRoutes(h *CHIHandler) {
	r.Handle("/healthz", getOnly(h.Health))

	// state/{date}
	r.Handle(apiPrefix+"/state/", getOnly(func(w http.ResponseWriter, req *http.Request) {
		date, ok := pathParam(req.URL.Path, apiPrefix+"/state/")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.GetState(w, req, date)
	}))

	// daily/{date}
	r.Handle(apiPrefix+"/daily/", getOnly(func(w http.ResponseWriter, req *http.Request) {
		date, ok := pathParam(req.URL.Path, apiPrefix+"/daily/")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.GetDaily(w, req, date)
	}))

	r.Handle(apiPrefix+"/weekly", getOnly(h.GetWeekly))
	r.Handle(apiPrefix+"/monthly", getOnly(h.GetMonthly))
	r.Handle(apiPrefix+"/monthly/export", getOnly(h.ExportMonthly))
	r.Handle(apiPrefix+"/weights", getOnly(h.GetWeights))
	r.Handle(apiPrefix+"/alerts", getOnly(h.GetAlerts))
}

package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
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

// trailingID 提取 prefix 之后的单段路径参数；多段或为空返回 false
func trailingID(path, prefix string) (string, bool) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// RegisterPointRoutes 点位管理路由
func (r *Router) RegisterPointRoutes(h *PointsHandler) {
	r.Handle("/admin/api/v1/points", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	r.Handle("/admin/api/v1/points/", func(w http.ResponseWriter, req *http.Request) {
		id, ok := trailingID(req.URL.Path, "/admin/api/v1/points/")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch req.Method {
		case http.MethodGet:
			h.Get(w, req, id)
		case http.MethodPatch:
			h.Update(w, req, id)
		case http.MethodDelete:
			h.Delete(w, req, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

// RegisterListRoutes 清单路由（管理 + 待办选择器）
func (r *Router) RegisterListRoutes(h *ListsHandler) {
	r.Handle("/admin/api/v1/lists", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	r.Handle("/admin/api/v1/lists/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/admin/api/v1/lists/")
		if id, found := strings.CutSuffix(rest, "/copy"); found && !strings.Contains(id, "/") && id != "" {
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.Copy(w, req, id)
			return
		}
		id, ok := trailingID(req.URL.Path, "/admin/api/v1/lists/")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch req.Method {
		case http.MethodGet:
			h.Get(w, req, id)
		case http.MethodPatch:
			h.Update(w, req, id)
		case http.MethodDelete:
			h.Delete(w, req, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	r.Handle("/data/api/v1/lists/workable", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Workable(w, req)
	})
}

// RegisterEntryRoutes 数据录入路由
func (r *Router) RegisterEntryRoutes(h *EntryHandler) {
	r.Handle("/data/api/v1/entry/sessions", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.StartSession(w, req)
	})
	r.Handle("/data/api/v1/entry/sessions/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/data/api/v1/entry/sessions/")
		if id, found := strings.CutSuffix(rest, "/entries"); found && id != "" && !strings.Contains(id, "/") {
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.UpdateEntry(w, req, id)
			return
		}
		if id, found := strings.CutSuffix(rest, "/complete"); found && id != "" && !strings.Contains(id, "/") {
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.MarkComplete(w, req, id)
			return
		}
		if id, found := strings.CutSuffix(rest, "/submit"); found && id != "" && !strings.Contains(id, "/") {
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.Submit(w, req, id)
			return
		}
		id, ok := trailingID(req.URL.Path, "/data/api/v1/entry/sessions/")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if req.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.EndSession(w, req, id)
	})
}

// RegisterSubmissionRoutes 审核路由
func (r *Router) RegisterSubmissionRoutes(h *SubmissionsHandler) {
	r.Handle("/review/api/v1/submissions", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.List(w, req)
	})
	r.Handle("/review/api/v1/submissions/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/review/api/v1/submissions/")
		if id, found := strings.CutSuffix(rest, "/review"); found && id != "" && !strings.Contains(id, "/") {
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.Review(w, req, id)
			return
		}
		id, ok := trailingID(req.URL.Path, "/review/api/v1/submissions/")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Get(w, req, id)
	})
}

// RegisterReadingRoutes 读数查询/删除/导出路由
func (r *Router) RegisterReadingRoutes(h *ReadingsHandler) {
	r.Handle("/admin/api/v1/readings", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.List(w, req)
	})
	r.Handle("/admin/api/v1/readings/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Export(w, req)
	})
	r.Handle("/admin/api/v1/readings/", func(w http.ResponseWriter, req *http.Request) {
		id, ok := trailingID(req.URL.Path, "/admin/api/v1/readings/")
		if !ok || id == "export" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if req.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Delete(w, req, id)
	})
}

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindcare/backend/internal/model/disease"
	"github.com/zhouzirui/mindcare/backend/pkg/utils"
)

// Handler 疾病资料库的HTTP处理器
type Handler struct {
	diseases disease.Store
}

// New 创建资料库处理器
func New(diseases disease.Store) *Handler {
	return &Handler{diseases: diseases}
}

// RegisterRoutes 注册资料库相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/diseases", h.handleSearch)
	r.Get("/diseases/categories", h.handleCategories)
	r.Get("/diseases/{id}", h.handleGet)
}

// handleSearch 按名称或分类检索
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	utils.RespondJSON(w, http.StatusOK, h.diseases.Search(query.Get("search"), query.Get("category")))
}

func (h *Handler) handleCategories(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, disease.Categories())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	item, ok := h.diseases.FindByID(chi.URLParam(r, "id"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "disease not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

package prediction

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindcare/backend/internal/service/prediction"
	"github.com/zhouzirui/mindcare/backend/pkg/utils"
)

// Handler 风险预测的HTTP处理器
type Handler struct {
	svc *prediction.Service
}

// New 创建预测处理器
func New(svc *prediction.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册预测相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/predict/diabetes", h.handleDiabetes)
	r.Post("/predict/heart", h.handleHeart)
}

func (h *Handler) handleDiabetes(w http.ResponseWriter, r *http.Request) {
	var input prediction.DiabetesInput
	if err := utils.DecodeJSON(w, r, &input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.PredictDiabetes(input)
	respond(w, result, err)
}

func (h *Handler) handleHeart(w http.ResponseWriter, r *http.Request) {
	var input prediction.HeartInput
	if err := utils.DecodeJSON(w, r, &input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.PredictHeart(input)
	respond(w, result, err)
}

func respond(w http.ResponseWriter, result prediction.Result, err error) {
	switch {
	case errors.Is(err, prediction.ErrInvalidInput):
		utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, "prediction failed")
	default:
		utils.RespondJSON(w, http.StatusOK, result)
	}
}

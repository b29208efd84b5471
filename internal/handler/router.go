package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/mindcare/backend/internal/handler/chat"
	"github.com/zhouzirui/mindcare/backend/internal/handler/library"
	"github.com/zhouzirui/mindcare/backend/internal/handler/prediction"
	middlewarePkg "github.com/zhouzirui/mindcare/backend/internal/middleware"
	"github.com/zhouzirui/mindcare/backend/internal/model/disease"
	chatService "github.com/zhouzirui/mindcare/backend/internal/service/chat"
	predictionService "github.com/zhouzirui/mindcare/backend/internal/service/prediction"
	"github.com/zhouzirui/mindcare/backend/pkg/utils"
)

// Dependencies 汇总路由需要的服务。
type Dependencies struct {
	Chat       *chatService.Service
	Diseases   disease.Store
	Prediction *predictionService.Service
	Verifier   middlewarePkg.TokenVerifier
	SignInURL  string
	Logger     *zap.SugaredLogger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	chatHandler := chat.New(deps.Chat, deps.Logger)
	libraryHandler := library.New(deps.Diseases)
	predictionHandler := prediction.New(deps.Prediction)

	r.Route("/api", func(api chi.Router) {
		libraryHandler.RegisterRoutes(api)
		predictionHandler.RegisterRoutes(api)

		api.Route("/chat", func(cr chi.Router) {
			chatHandler.RegisterPublicRoutes(cr)

			// 助手页面需要登录，未登录时跳转到登录页
			cr.Group(func(protected chi.Router) {
				protected.Use(middlewarePkg.RequireUser(deps.Verifier, deps.SignInURL))
				chatHandler.RegisterRoutes(protected)
			})
		})
	})

	return r
}

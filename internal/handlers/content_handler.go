// internal/handlers/content_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/playboiyetti/MIRROR-MIND/internal/model"
	"github.com/playboiyetti/MIRROR-MIND/internal/service"
	"github.com/playboiyetti/MIRROR-MIND/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ContentHandler struct {
	service service.ContentService
	logger  *slog.Logger
}

func NewContentHandler(s service.ContentService, logger *slog.Logger) *ContentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentHandler{
		service: s,
		logger:  logger,
	}
}

// GetCategories はカテゴリ一覧を返します。
func (h *ContentHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCategories"))

	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		logger.Error("Error listing categories in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if categories == nil {
		categories = []*model.Category{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, categories, logger)
}

// GetQuestionsByCategory は指定カテゴリの質問カード一覧を返します。
func (h *ContentHandler) GetQuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuestionsByCategory"))

	categoryID := chi.URLParam(r, "category_id")
	if categoryID == "" {
		appErr := model.NewAppError("INVALID_URL_PARAM", "category_idが指定されていません。", "category_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("category_id", categoryID))

	questions, err := h.service.GetQuestionsByCategory(r.Context(), categoryID)
	if err != nil {
		logger.Error("Error listing questions in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if questions == nil {
		questions = []*model.Question{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, questions, logger)
}

// internal/handlers/progress_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/playboiyetti/MIRROR-MIND/internal/middleware"
	"github.com/playboiyetti/MIRROR-MIND/internal/model"
	"github.com/playboiyetti/MIRROR-MIND/internal/service"
	"github.com/playboiyetti/MIRROR-MIND/internal/webutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewProgressHandler(s service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{
		service: s,
		logger:  logger,
	}
}

func (h *ProgressHandler) userID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return userID, true
}

// PostReflection はリフレクションを保存する唯一の書き込みハンドラです。
func (h *ProgressHandler) PostReflection(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostReflection"))

	userID, ok := h.userID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.PostReflectionRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))

			// 最初のエラーを代表としてクライアントに返す
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	result, err := h.service.SaveReflection(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error saving reflection in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Reflection saved successfully", slog.String("reflection_id", result.Reflection.ID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, result, logger)
}

// GetProfile はプロフィール (アバター段階込み) を返します。
func (h *ProgressHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProfile"))

	userID, ok := h.userID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	profile, err := h.service.GetOrCreateProfile(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting profile from service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.NewProfileResponse(profile), logger)
}

// GetDashboard は進捗画面向けの一括ビューを返します。
func (h *ProgressHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDashboard"))

	userID, ok := h.userID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	dashboard, err := h.service.GetDashboard(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting dashboard from service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, dashboard, logger)
}

// GetCategoryProgress はカテゴリ進捗を最終アクセス降順で返します。
func (h *ProgressHandler) GetCategoryProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCategoryProgress"))

	userID, ok := h.userID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	progresses, err := h.service.GetCategoryProgress(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing category progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if progresses == nil {
		progresses = []*model.CategoryProgressResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, progresses, logger)
}

// GetRecentReflections はリフレクション履歴を新しい順に返します。
// limit クエリパラメータで件数を制限できます。
func (h *ProgressHandler) GetRecentReflections(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetRecentReflections"))

	userID, ok := h.userID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			logger.Warn("Invalid limit query parameter", slog.String("limit", limitStr))
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "limitの形式が正しくありません。", "limit", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		limit = parsed
	}

	reflections, err := h.service.GetRecentReflections(r.Context(), userID, limit)
	if err != nil {
		logger.Error("Error listing reflections in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if reflections == nil {
		reflections = []*model.Reflection{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, reflections, logger)
}

// GetAchievements は解除済み実績を解除日時の新しい順に返します。
func (h *ProgressHandler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetAchievements"))

	userID, ok := h.userID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	achievements, err := h.service.GetAchievements(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing achievements in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if achievements == nil {
		achievements = []*model.Achievement{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, achievements, logger)
}

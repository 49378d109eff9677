// internal/handlers/progress_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/playboiyetti/MIRROR-MIND/internal/config"
	"github.com/playboiyetti/MIRROR-MIND/internal/handlers"
	"github.com/playboiyetti/MIRROR-MIND/internal/middleware"
	"github.com/playboiyetti/MIRROR-MIND/internal/model"
	"github.com/playboiyetti/MIRROR-MIND/internal/service/mocks"
)

// テスト共通の固定ユーザー (認証無効のシングルユーザーデプロイを再現)
const testUserIDStr = "00000000-0000-0000-0000-000000000000"

func testAuthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Enabled = false
	cfg.App.DefaultUserID = testUserIDStr
	return cfg
}

func newProgressTestRouter(h *handlers.ProgressHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.UserAuthMiddleware(testAuthConfig()))
	r.Get("/api/v1/profile", h.GetProfile)
	r.Get("/api/v1/dashboard", h.GetDashboard)
	r.Get("/api/v1/category-progress", h.GetCategoryProgress)
	r.Get("/api/v1/reflections", h.GetRecentReflections)
	r.Post("/api/v1/reflections", h.PostReflection)
	r.Get("/api/v1/achievements", h.GetAchievements)
	return r
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProgressHandler_PostReflection(t *testing.T) {
	userID := uuid.MustParse(testUserIDStr)

	validReqBody := model.PostReflectionRequest{
		QuestionID:     "q_1",
		CategoryID:     "self_image_identity",
		CategoryName:   "Self-Image & Identity",
		QuestionText:   "What is the biggest mask you wear in public?",
		ReflectionText: "I pretend everything is fine.",
		IntensityLevel: 4,
	}

	expectedResult := &model.SaveReflectionResponse{
		Reflection: &model.Reflection{
			ID:             uuid.New(),
			UserID:         userID,
			QuestionID:     validReqBody.QuestionID,
			CategoryID:     validReqBody.CategoryID,
			ReflectionText: validReqBody.ReflectionText,
			IntensityLevel: validReqBody.IntensityLevel,
			CreatedAt:      time.Now(),
		},
		Profile: &model.ProfileResponse{
			ID:               userID,
			TotalReflections: 1,
			CurrentStreak:    1,
			LongestStreak:    1,
			AvatarStage:      0,
		},
		CategoryProgress:  []*model.CategoryProgressResponse{},
		RecentReflections: []*model.Reflection{},
		Achievements:      []*model.Achievement{},
		NewlyUnlocked:     []*model.Achievement{},
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *mocks.MockProgressService)
		expectedStatus int
		expectError    bool
	}{
		{
			name: "正常系: 有効なリクエストで201",
			body: validReqBody,
			setupMock: func(m *mocks.MockProgressService) {
				m.On("SaveReflection", mock.Anything, userID, &validReqBody).
					Return(expectedResult, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectError:    false,
		},
		{
			name:           "異常系: reflection_textが空で400",
			body:           model.PostReflectionRequest{QuestionID: "q_1", CategoryID: "c", CategoryName: "C", QuestionText: "Q"},
			setupMock:      func(m *mocks.MockProgressService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name: "異常系: intensity_levelが範囲外(6)で400",
			body: model.PostReflectionRequest{
				QuestionID: "q_1", CategoryID: "c", CategoryName: "C",
				QuestionText: "Q", ReflectionText: "text", IntensityLevel: 6,
			},
			setupMock:      func(m *mocks.MockProgressService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name:           "異常系: 不正なJSONボディで400",
			body:           "{not json",
			setupMock:      func(m *mocks.MockProgressService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name: "異常系: Serviceが内部エラーを返したら500",
			body: validReqBody,
			setupMock: func(m *mocks.MockProgressService) {
				m.On("SaveReflection", mock.Anything, userID, &validReqBody).
					Return(nil, model.NewAppError("INTERNAL_SERVER_ERROR", "リフレクションの保存に失敗しました。", "", model.ErrInternalServer)).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := mocks.NewMockProgressService(t)
			tt.setupMock(mockService)
			handler := handlers.NewProgressHandler(mockService, testLogger())
			router := newProgressTestRouter(handler)

			var bodyBytes []byte
			switch b := tt.body.(type) {
			case string:
				bodyBytes = []byte(b)
			default:
				var err error
				bodyBytes, err = json.Marshal(b)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reflections", bytes.NewReader(bodyBytes))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectError {
				var errResp model.APIErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.NotEmpty(t, errResp.Error.Code)
				assert.NotEmpty(t, errResp.Error.Message)
			} else {
				var got model.SaveReflectionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, expectedResult.Reflection.ID, got.Reflection.ID)
				assert.Equal(t, 1, got.Profile.TotalReflections)
			}
		})
	}
}

func TestProgressHandler_GetProfile(t *testing.T) {
	userID := uuid.MustParse(testUserIDStr)

	tests := []struct {
		name           string
		setupMock      func(m *mocks.MockProgressService)
		expectedStatus int
	}{
		{
			name: "正常系: プロフィールを返す",
			setupMock: func(m *mocks.MockProgressService) {
				profile := &model.UserProfile{
					ID:               userID,
					TotalReflections: 25,
					CurrentStreak:    3,
					LongestStreak:    8,
				}
				m.On("GetOrCreateProfile", mock.Anything, userID).Return(profile, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "異常系: Serviceエラーで500",
			setupMock: func(m *mocks.MockProgressService) {
				m.On("GetOrCreateProfile", mock.Anything, userID).
					Return(nil, model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィールの取得に失敗しました。", "", errors.New("db error"))).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := mocks.NewMockProgressService(t)
			tt.setupMock(mockService)
			handler := handlers.NewProgressHandler(mockService, testLogger())
			router := newProgressTestRouter(handler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var got model.ProfileResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, 25, got.TotalReflections)
				// 25件はアバター段階1 (閾値20以上50未満)
				assert.Equal(t, 1, got.AvatarStage)
			}
		})
	}
}

func TestProgressHandler_GetDashboard(t *testing.T) {
	userID := uuid.MustParse(testUserIDStr)

	mockService := mocks.NewMockProgressService(t)
	dashboard := &model.DashboardResponse{
		Profile:           &model.ProfileResponse{ID: userID, TotalReflections: 5, CurrentStreak: 2},
		CategoryProgress:  []*model.CategoryProgressResponse{{CategoryID: "personal_values", QuestionsCompleted: 5, TotalQuestions: 30}},
		RecentReflections: []*model.Reflection{},
		Achievements:      []*model.Achievement{},
	}
	mockService.On("GetDashboard", mock.Anything, userID).Return(dashboard, nil).Once()

	handler := handlers.NewProgressHandler(mockService, testLogger())
	router := newProgressTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got model.DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 5, got.Profile.TotalReflections)
	require.Len(t, got.CategoryProgress, 1)
	assert.Equal(t, "personal_values", got.CategoryProgress[0].CategoryID)
}

func TestProgressHandler_GetRecentReflections(t *testing.T) {
	userID := uuid.MustParse(testUserIDStr)

	tests := []struct {
		name           string
		url            string
		setupMock      func(m *mocks.MockProgressService)
		expectedStatus int
	}{
		{
			name: "正常系: limit指定なしは0でServiceに委譲",
			url:  "/api/v1/reflections",
			setupMock: func(m *mocks.MockProgressService) {
				m.On("GetRecentReflections", mock.Anything, userID, 0).
					Return([]*model.Reflection{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "正常系: limit=5が渡る",
			url:  "/api/v1/reflections?limit=5",
			setupMock: func(m *mocks.MockProgressService) {
				m.On("GetRecentReflections", mock.Anything, userID, 5).
					Return([]*model.Reflection{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: limitが数値でなければ400",
			url:            "/api/v1/reflections?limit=abc",
			setupMock:      func(m *mocks.MockProgressService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "異常系: limitが0以下なら400",
			url:            "/api/v1/reflections?limit=-1",
			setupMock:      func(m *mocks.MockProgressService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := mocks.NewMockProgressService(t)
			tt.setupMock(mockService)
			handler := handlers.NewProgressHandler(mockService, testLogger())
			router := newProgressTestRouter(handler)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestProgressHandler_GetAchievements(t *testing.T) {
	userID := uuid.MustParse(testUserIDStr)

	mockService := mocks.NewMockProgressService(t)
	achievements := []*model.Achievement{
		{
			ID:              uuid.New(),
			UserID:          userID,
			AchievementType: model.AchievementFirstReflection,
			AchievementName: "First Step",
			Description:     "Completed your first reflection",
			UnlockedAt:      time.Now(),
		},
	}
	mockService.On("GetAchievements", mock.Anything, userID).Return(achievements, nil).Once()

	handler := handlers.NewProgressHandler(mockService, testLogger())
	router := newProgressTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/achievements", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []*model.Achievement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, model.AchievementFirstReflection, got[0].AchievementType)
}

//go:generate mockery --name ProgressService --structname MockProgressService --filename mock_progress_service.go --output ./mocks --outpkg mocks
// internal/service/progress_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/playboiyetti/MIRROR-MIND/internal/config"
	"github.com/playboiyetti/MIRROR-MIND/internal/middleware"
	"github.com/playboiyetti/MIRROR-MIND/internal/model"
	"github.com/playboiyetti/MIRROR-MIND/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService は進捗・連続記録・実績の一連の更新を調停します。
// SaveReflection が唯一の書き込み経路で、カスケード全体を1トランザクションで実行します。
type ProgressService interface {
	GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
	UpdateStreak(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
	SaveReflection(ctx context.Context, userID uuid.UUID, req *model.PostReflectionRequest) (*model.SaveReflectionResponse, error)
	GetDashboard(ctx context.Context, userID uuid.UUID) (*model.DashboardResponse, error)
	GetCategoryProgress(ctx context.Context, userID uuid.UUID) ([]*model.CategoryProgressResponse, error)
	GetRecentReflections(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Reflection, error)
	GetAchievements(ctx context.Context, userID uuid.UUID) ([]*model.Achievement, error)
}

type progressService struct {
	db              *gorm.DB
	profileRepo     repository.ProfileRepository
	reflectionRepo  repository.ReflectionRepository
	categoryRepo    repository.CategoryProgressRepository
	achievementRepo repository.AchievementRepository
	cfg             *config.Config
	now             func() time.Time // テストで差し替えるための時計
}

func NewProgressService(
	db *gorm.DB,
	profileRepo repository.ProfileRepository,
	reflectionRepo repository.ReflectionRepository,
	categoryRepo repository.CategoryProgressRepository,
	achievementRepo repository.AchievementRepository,
	cfg *config.Config,
) ProgressService {
	return &progressService{
		db:              db,
		profileRepo:     profileRepo,
		reflectionRepo:  reflectionRepo,
		categoryRepo:    categoryRepo,
		achievementRepo: achievementRepo,
		cfg:             cfg,
		now:             time.Now,
	}
}

func (s *progressService) GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	return s.getOrCreateProfile(ctx, s.db, userID)
}

// getOrCreateProfile は存在しなければカウンタ0のプロフィールを作成します。
// 同時作成で競合した場合は作成をあきらめて再読み込みします。
func (s *progressService) getOrCreateProfile(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserProfile, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	profile, err := s.profileRepo.Find(ctx, db, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to find user profile", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィールの取得に失敗しました。", "", err)
	}

	newProfile := &model.UserProfile{ID: userID}
	if createErr := s.profileRepo.Create(ctx, db, newProfile); createErr != nil {
		// 競合 (並行作成) の可能性があるので読み直す
		profile, findErr := s.profileRepo.Find(ctx, db, userID)
		if findErr == nil {
			return profile, nil
		}
		logger.Error("Failed to create user profile", "error", createErr)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィールの作成に失敗しました。", "", createErr)
	}

	logger.Info("User profile created")
	return newProfile, nil
}

func (s *progressService) UpdateStreak(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	var updated *model.UserProfile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.getOrCreateProfile(ctx, tx, userID)
		if err != nil {
			return err
		}
		updated, err = s.advanceStreakTx(ctx, tx, profile)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// advanceStreakTx は純粋関数 AdvanceStreak の結果を永続化します。
// 同日2回目以降は書き込みを行わず、プロフィールをそのまま返します。
func (s *progressService) advanceStreakTx(ctx context.Context, tx *gorm.DB, profile *model.UserProfile) (*model.UserProfile, error) {
	logger := middleware.GetLogger(ctx).With("user_id", profile.ID)

	state := StreakState{
		CurrentStreak:    profile.CurrentStreak,
		LongestStreak:    profile.LongestStreak,
		LastActivityDate: profile.LastActivityDate,
	}
	newState, changed := AdvanceStreak(state, s.now())
	if !changed {
		return profile, nil
	}

	err := s.profileRepo.UpdateStreak(ctx, tx, profile.ID,
		newState.CurrentStreak, newState.LongestStreak, *newState.LastActivityDate)
	if err != nil {
		logger.Error("Failed to persist streak update", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "連続記録の更新に失敗しました。", "", err)
	}

	profile.CurrentStreak = newState.CurrentStreak
	profile.LongestStreak = newState.LongestStreak
	profile.LastActivityDate = newState.LastActivityDate
	logger.Info("Streak updated", "current_streak", profile.CurrentStreak, "longest_streak", profile.LongestStreak)
	return profile, nil
}

func (s *progressService) SaveReflection(ctx context.Context, userID uuid.UUID, req *model.PostReflectionRequest) (*model.SaveReflectionResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "category_id", req.CategoryID)

	var saved *model.Reflection
	var newlyUnlocked []*model.Achievement

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.getOrCreateProfile(ctx, tx, userID); err != nil {
			return err
		}

		intensity := req.IntensityLevel
		if intensity <= 0 {
			intensity = 1
		}
		reflection := &model.Reflection{
			ID:             uuid.New(),
			UserID:         userID,
			QuestionID:     req.QuestionID,
			CategoryID:     req.CategoryID,
			QuestionText:   req.QuestionText,
			ReflectionText: req.ReflectionText,
			IntensityLevel: intensity,
			CreatedAt:      s.now(),
		}
		if err := s.reflectionRepo.Create(ctx, tx, reflection); err != nil {
			logger.Error("Failed to insert reflection", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "リフレクションの保存に失敗しました。", "", err)
		}

		if err := s.profileRepo.IncrementTotalReflections(ctx, tx, userID); err != nil {
			logger.Error("Failed to increment total reflections", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カウンタの更新に失敗しました。", "", err)
		}

		if err := s.upsertCategoryProgressTx(ctx, tx, userID, req.CategoryID, req.CategoryName); err != nil {
			return err
		}

		profile, err := s.profileRepo.Find(ctx, tx, userID)
		if err != nil {
			logger.Error("Failed to reload profile in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィールの再取得に失敗しました。", "", err)
		}

		if _, err := s.advanceStreakTx(ctx, tx, profile); err != nil {
			return err
		}

		newlyUnlocked, err = s.evaluateAchievementsTx(ctx, tx, profile)
		if err != nil {
			return err
		}

		saved = reflection
		return nil // コミット
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Transaction failed for SaveReflection", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "リフレクションの保存に失敗しました。", "", err)
	}

	// read-after-write: 提示層向けに更新後のビューをまとめて返す
	dashboard, err := s.GetDashboard(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("Reflection saved",
		"reflection_id", saved.ID.String(),
		"total_reflections", dashboard.Profile.TotalReflections,
		"current_streak", dashboard.Profile.CurrentStreak,
		"newly_unlocked", len(newlyUnlocked),
	)

	if newlyUnlocked == nil {
		newlyUnlocked = []*model.Achievement{}
	}
	return &model.SaveReflectionResponse{
		Reflection:        saved,
		Profile:           dashboard.Profile,
		CategoryProgress:  dashboard.CategoryProgress,
		RecentReflections: dashboard.RecentReflections,
		Achievements:      dashboard.Achievements,
		NewlyUnlocked:     newlyUnlocked,
	}, nil
}

// upsertCategoryProgressTx はカテゴリ進捗の作成または加算を行います。
func (s *progressService) upsertCategoryProgressTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, categoryID, categoryName string) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "category_id", categoryID)

	_, err := s.categoryRepo.FindByCategory(ctx, tx, userID, categoryID)
	if errors.Is(err, model.ErrNotFound) {
		progress := &model.CategoryProgress{
			ID:                 uuid.New(),
			UserID:             userID,
			CategoryID:         categoryID,
			CategoryName:       categoryName,
			QuestionsCompleted: 1,
			TotalQuestions:     s.cfg.App.TotalQuestionsPerCategory,
			LastAccessed:       s.now(),
		}
		if createErr := s.categoryRepo.Create(ctx, tx, progress); createErr != nil {
			logger.Error("Failed to create category progress", "error", createErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ進捗の作成に失敗しました。", "", createErr)
		}
		return nil
	}
	if err != nil {
		logger.Error("Failed to find category progress", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ進捗の確認中にエラーが発生しました。", "", err)
	}

	if err := s.categoryRepo.IncrementCompleted(ctx, tx, userID, categoryID, s.now()); err != nil {
		logger.Error("Failed to increment category progress", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ進捗の更新に失敗しました。", "", err)
	}
	return nil
}

// evaluateAchievementsTx は全ルールを再評価し、未解除のものだけを解除します。
// 引数の profile はカウンタ加算・連続記録更新を反映済みであること。
func (s *progressService) evaluateAchievementsTx(ctx context.Context, tx *gorm.DB, profile *model.UserProfile) ([]*model.Achievement, error) {
	logger := middleware.GetLogger(ctx).With("user_id", profile.ID)

	var unlocked []*model.Achievement
	for _, rule := range SatisfiedRules(profile) {
		_, err := s.achievementRepo.FindByType(ctx, tx, profile.ID, rule.Type)
		if err == nil {
			continue // 解除済み
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check achievement", "error", err, "achievement_type", string(rule.Type))
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "実績の確認中にエラーが発生しました。", "", err)
		}

		achievement := &model.Achievement{
			ID:              uuid.New(),
			UserID:          profile.ID,
			AchievementType: rule.Type,
			AchievementName: rule.Name,
			Description:     rule.Description,
			UnlockedAt:      s.now(),
		}
		if createErr := s.achievementRepo.Create(ctx, tx, achievement); createErr != nil {
			// 並行解除との競合は既に解除済みとして扱う
			if errors.Is(createErr, model.ErrConflict) {
				continue
			}
			logger.Error("Failed to unlock achievement", "error", createErr, "achievement_type", string(rule.Type))
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "実績の解除に失敗しました。", "", createErr)
		}
		logger.Info("Achievement unlocked", "achievement_type", string(rule.Type))
		unlocked = append(unlocked, achievement)
	}
	return unlocked, nil
}

func (s *progressService) GetDashboard(ctx context.Context, userID uuid.UUID) (*model.DashboardResponse, error) {
	profile, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	categoryProgress, err := s.GetCategoryProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.GetRecentReflections(ctx, userID, s.cfg.App.RecentReflectionsLimit)
	if err != nil {
		return nil, err
	}

	achievements, err := s.GetAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.DashboardResponse{
		Profile:           model.NewProfileResponse(profile),
		CategoryProgress:  categoryProgress,
		RecentReflections: recent,
		Achievements:      achievements,
	}, nil
}

func (s *progressService) GetCategoryProgress(ctx context.Context, userID uuid.UUID) ([]*model.CategoryProgressResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	progresses, err := s.categoryRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to list category progress", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ進捗の取得に失敗しました。", "", err)
	}

	responses := make([]*model.CategoryProgressResponse, 0, len(progresses))
	for _, p := range progresses {
		responses = append(responses, model.NewCategoryProgressResponse(p))
	}
	return responses, nil
}

func (s *progressService) GetRecentReflections(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Reflection, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if limit <= 0 {
		limit = s.cfg.App.RecentReflectionsLimit
	}
	reflections, err := s.reflectionRepo.FindRecentByUser(ctx, s.db, userID, limit)
	if err != nil {
		logger.Error("Failed to list recent reflections", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "リフレクション履歴の取得に失敗しました。", "", err)
	}
	return reflections, nil
}

func (s *progressService) GetAchievements(ctx context.Context, userID uuid.UUID) ([]*model.Achievement, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	achievements, err := s.achievementRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to list achievements", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "実績の取得に失敗しました。", "", err)
	}
	return achievements, nil
}

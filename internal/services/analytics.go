package services

import (
  "context"
  "fmt"
  "math"
  "time"

  "gorm.io/gorm"

  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/repos"
  "github.com/skillpath/backend/internal/types"
)

type GoalCount struct {
  CareerGoal string `json:"career_goal"`
  Count      int64  `json:"count"`
}

type GoalCompletion struct {
  Goal           string  `json:"goal"`
  CompletionRate float64 `json:"completion_rate"`
  TotalPaths     int64   `json:"total_paths"`
  TotalUsers     int64   `json:"total_users"`
}

type TypeCount struct {
  Type  string `json:"type"`
  Count int64  `json:"count"`
}

type DateCount struct {
  Date  string `json:"date"`
  Count int64  `json:"count"`
}

type TrendingSkill struct {
  CareerGoal     string  `json:"career_goal"`
  Count          int64   `json:"count"`
  CompletionRate float64 `json:"completion_rate"`
}

type AnalyticsReport struct {
  TotalUsers            int64              `json:"total_users"`
  TotalPaths            int64              `json:"total_paths"`
  TotalFeedback         int64              `json:"total_feedback"`
  TotalResources        int64              `json:"total_resources"`
  OverallCompletionRate float64            `json:"overall_completion_rate"`
  TopGoals              []*GoalCount       `json:"top_goals"`
  CompletionByGoal      []*GoalCompletion  `json:"completion_by_goal"`
  UserGrowth            []*DateCount       `json:"user_growth"`
  PathGrowth            []*DateCount       `json:"path_growth"`
  ResourcesByType       []*TypeCount       `json:"resources_by_type"`
  ActiveUsers           int64              `json:"active_users"`
  RecentPaths           []*types.SkillPath `json:"recent_paths"`
  RecentUsers           []*types.User      `json:"recent_users"`
  AvgStepsPerPath       float64            `json:"avg_steps_per_path"`
  AvgResourcesPerStep   float64            `json:"avg_resources_per_step"`
  TrendingSkills        []*TrendingSkill   `json:"trending_skills"`
  GeneratedAt           time.Time          `json:"generated_at"`
}

type AnalyticsService interface {
  GetAnalytics(ctx context.Context) (*AnalyticsReport, error)
}

// analyticsService queries the db handle directly: the report is all
// cross-entity aggregates, which the per-entity repos are too narrow for.
type analyticsService struct {
  db  *gorm.DB
  log *logger.Logger

  feedbackRepo repos.FeedbackRepo
}

func NewAnalyticsService(db *gorm.DB, baseLog *logger.Logger, feedbackRepo repos.FeedbackRepo) AnalyticsService {
  return &analyticsService{
    db:           db,
    log:          baseLog.With("service", "AnalyticsService"),
    feedbackRepo: feedbackRepo,
  }
}

func round1(x float64) float64 {
  return math.Round(x*10) / 10
}

func (s *analyticsService) GetAnalytics(ctx context.Context) (*AnalyticsReport, error) {
  db := s.db.WithContext(ctx)
  report := &AnalyticsReport{GeneratedAt: time.Now().UTC()}

  if err := db.Model(&types.User{}).Count(&report.TotalUsers).Error; err != nil {
    return nil, fmt.Errorf("Failed to count users: %w", err)
  }
  if err := db.Model(&types.SkillPath{}).Count(&report.TotalPaths).Error; err != nil {
    return nil, fmt.Errorf("Failed to count paths: %w", err)
  }
  totalFeedback, err := s.feedbackRepo.CountAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to count feedback: %w", err)
  }
  report.TotalFeedback = totalFeedback
  if err := db.Model(&types.Resource{}).Count(&report.TotalResources).Error; err != nil {
    return nil, fmt.Errorf("Failed to count resources: %w", err)
  }

  var totalSteps int64
  if err := db.Model(&types.PathStep{}).Count(&totalSteps).Error; err != nil {
    return nil, fmt.Errorf("Failed to count steps: %w", err)
  }
  var completedSteps int64
  if err := db.Model(&types.Progress{}).Where("status = ?", types.ProgressStatusDone).Count(&completedSteps).Error; err != nil {
    return nil, fmt.Errorf("Failed to count completed steps: %w", err)
  }
  if totalSteps > 0 {
    report.OverallCompletionRate = round1(float64(completedSteps) / float64(totalSteps) * 100)
  }

  if err := db.Model(&types.SkillPath{}).
    Select("career_goal, COUNT(id) AS count").
    Group("career_goal").
    Order("count DESC").
    Limit(10).
    Scan(&report.TopGoals).Error; err != nil {
    return nil, fmt.Errorf("Failed to aggregate top goals: %w", err)
  }

  topFive := report.TopGoals
  if len(topFive) > 5 {
    topFive = topFive[:5]
  }
  for _, goal := range topFive {
    completion, cErr := s.goalCompletion(db, goal.CareerGoal)
    if cErr != nil {
      return nil, cErr
    }
    report.CompletionByGoal = append(report.CompletionByGoal, completion)
  }

  thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)
  if err := db.Model(&types.User{}).
    Select("DATE(created_at) AS date, COUNT(id) AS count").
    Where("created_at >= ?", thirtyDaysAgo).
    Group("DATE(created_at)").
    Order("date").
    Scan(&report.UserGrowth).Error; err != nil {
    return nil, fmt.Errorf("Failed to aggregate user growth: %w", err)
  }
  if err := db.Model(&types.SkillPath{}).
    Select("DATE(created_at) AS date, COUNT(id) AS count").
    Where("created_at >= ?", thirtyDaysAgo).
    Group("DATE(created_at)").
    Order("date").
    Scan(&report.PathGrowth).Error; err != nil {
    return nil, fmt.Errorf("Failed to aggregate path growth: %w", err)
  }

  if err := db.Model(&types.Resource{}).
    Select("type, COUNT(id) AS count").
    Group("type").
    Scan(&report.ResourcesByType).Error; err != nil {
    return nil, fmt.Errorf("Failed to aggregate resources by type: %w", err)
  }

  activeUsers, err := s.activeUsers(db)
  if err != nil {
    return nil, err
  }
  report.ActiveUsers = activeUsers

  if err := db.Model(&types.SkillPath{}).Order("created_at DESC").Limit(5).Find(&report.RecentPaths).Error; err != nil {
    return nil, fmt.Errorf("Failed to load recent paths: %w", err)
  }
  if err := db.Model(&types.User{}).Order("created_at DESC").Limit(5).Find(&report.RecentUsers).Error; err != nil {
    return nil, fmt.Errorf("Failed to load recent users: %w", err)
  }

  if report.TotalPaths > 0 {
    report.AvgStepsPerPath = round1(float64(totalSteps) / float64(report.TotalPaths))
  }
  var totalLinks int64
  if err := db.Model(&types.StepResource{}).Count(&totalLinks).Error; err != nil {
    return nil, fmt.Errorf("Failed to count step resources: %w", err)
  }
  if totalSteps > 0 {
    report.AvgResourcesPerStep = round1(float64(totalLinks) / float64(totalSteps))
  }

  trending, err := s.trendingSkills(db, thirtyDaysAgo)
  if err != nil {
    return nil, err
  }
  report.TrendingSkills = trending

  return report, nil
}

func (s *analyticsService) goalCompletion(db *gorm.DB, goal string) (*GoalCompletion, error) {
  out := &GoalCompletion{Goal: goal}

  if err := db.Model(&types.SkillPath{}).Where("career_goal = ?", goal).Count(&out.TotalPaths).Error; err != nil {
    return nil, fmt.Errorf("Failed to count paths for goal: %w", err)
  }
  if err := db.Model(&types.SkillPath{}).
    Where("career_goal = ?", goal).
    Distinct("user_id").
    Count(&out.TotalUsers).Error; err != nil {
    return nil, fmt.Errorf("Failed to count users for goal: %w", err)
  }

  var goalSteps int64
  if err := db.Model(&types.PathStep{}).
    Joins("JOIN skill_path ON skill_path.id = path_step.skill_path_id").
    Where("skill_path.career_goal = ?", goal).
    Count(&goalSteps).Error; err != nil {
    return nil, fmt.Errorf("Failed to count steps for goal: %w", err)
  }
  var goalCompleted int64
  if err := db.Model(&types.Progress{}).
    Joins("JOIN path_step ON path_step.id = progress.step_id").
    Joins("JOIN skill_path ON skill_path.id = path_step.skill_path_id").
    Where("skill_path.career_goal = ? AND progress.status = ?", goal, types.ProgressStatusDone).
    Count(&goalCompleted).Error; err != nil {
    return nil, fmt.Errorf("Failed to count completed steps for goal: %w", err)
  }
  if goalSteps > 0 {
    out.CompletionRate = round1(float64(goalCompleted) / float64(goalSteps) * 100)
  }
  return out, nil
}

// activeUsers sums users who created a path in the last week with users who
// touched progress in the last week. A user doing both is counted twice;
// the figure is an engagement index, not a distinct head count.
func (s *analyticsService) activeUsers(db *gorm.DB) (int64, error) {
  sevenDaysAgo := time.Now().UTC().AddDate(0, 0, -7)

  var recentPathUsers int64
  if err := db.Model(&types.SkillPath{}).
    Where("created_at >= ?", sevenDaysAgo).
    Distinct("user_id").
    Count(&recentPathUsers).Error; err != nil {
    return 0, fmt.Errorf("Failed to count recent path users: %w", err)
  }

  var recentProgressUsers int64
  if err := db.Model(&types.SkillPath{}).
    Joins("JOIN path_step ON path_step.skill_path_id = skill_path.id").
    Joins("JOIN progress ON progress.step_id = path_step.id").
    Where("progress.updated_at >= ?", sevenDaysAgo).
    Distinct("skill_path.user_id").
    Count(&recentProgressUsers).Error; err != nil {
    return 0, fmt.Errorf("Failed to count recent progress users: %w", err)
  }

  return recentPathUsers + recentProgressUsers, nil
}

func (s *analyticsService) trendingSkills(db *gorm.DB, since time.Time) ([]*TrendingSkill, error) {
  var recent []*GoalCount
  if err := db.Model(&types.SkillPath{}).
    Select("career_goal, COUNT(id) AS count").
    Where("created_at >= ?", since).
    Group("career_goal").
    Order("count DESC").
    Limit(5).
    Scan(&recent).Error; err != nil {
    return nil, fmt.Errorf("Failed to aggregate trending skills: %w", err)
  }

  out := make([]*TrendingSkill, 0, len(recent))
  for _, skill := range recent {
    completion, err := s.goalCompletion(db, skill.CareerGoal)
    if err != nil {
      return nil, err
    }
    out = append(out, &TrendingSkill{
      CareerGoal:     skill.CareerGoal,
      Count:          skill.Count,
      CompletionRate: completion.CompletionRate,
    })
  }
  return out, nil
}

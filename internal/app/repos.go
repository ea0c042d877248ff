package app

import (
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
)

type Repos struct {
	User              repos.UserRepo
	UserToken         repos.UserTokenRepo
	Profile           repos.ProfileRepo
	Challenge         repos.ChallengeRepo
	ChallengeProgress repos.ChallengeProgressRepo
	EarnedBadge       repos.EarnedBadgeRepo
	BadgeDefinition   repos.BadgeDefinitionRepo
	History           repos.HistoryRepo
	TaskStatistics    repos.TaskStatisticsRepo
	GlobalStatistics  repos.GlobalStatisticsRepo
	Task              repos.TaskRepo
	Workspace         repos.WorkspaceRepo
	Pomodoro          repos.PomodoroRepo
	StoreItem         repos.StoreItemRepo
	Plant             repos.PlantRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		UserToken:         repos.NewUserTokenRepo(db, log),
		Profile:           repos.NewProfileRepo(db, log),
		Challenge:         repos.NewChallengeRepo(db, log),
		ChallengeProgress: repos.NewChallengeProgressRepo(db, log),
		EarnedBadge:       repos.NewEarnedBadgeRepo(db, log),
		BadgeDefinition:   repos.NewBadgeDefinitionRepo(db, log),
		History:           repos.NewHistoryRepo(db, log),
		TaskStatistics:    repos.NewTaskStatisticsRepo(db, log),
		GlobalStatistics:  repos.NewGlobalStatisticsRepo(db, log),
		Task:              repos.NewTaskRepo(db, log),
		Workspace:         repos.NewWorkspaceRepo(db, log),
		Pomodoro:          repos.NewPomodoroRepo(db, log),
		StoreItem:         repos.NewStoreItemRepo(db, log),
		Plant:             repos.NewPlantRepo(db, log),
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/annafors/planera/internal/cli"
	"github.com/annafors/planera/internal/config"
	"github.com/annafors/planera/internal/db"
	"github.com/annafors/planera/internal/repository"
	"github.com/annafors/planera/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("PLANERA_CONFIG"))
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	planRepo := repository.NewSQLiteYearPlanRepo(database)
	periodRepo := repository.NewSQLitePeriodRepo(database)
	objectiveRepo := repository.NewSQLiteObjectiveRepo(database)
	meetingRepo := repository.NewSQLiteMeetingRepo(database)
	activityRepo := repository.NewSQLiteMeetingActivityRepo(database)
	libraryRepo := repository.NewSQLiteActivityLibraryRepo(database)
	ruleRepo := repository.NewSQLiteDistributionRuleRepo(database)
	achievementRepo := repository.NewSQLiteAchievementRepo(database)
	reminderRepo := repository.NewSQLiteReminderRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if os.Getenv("PLANERA_VERBOSE") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Plans:   service.NewPlanService(planRepo, uow, nil, observers...),
		Periods: service.NewPeriodService(periodRepo, planRepo, meetingRepo, uow, nil),
		Objectives: service.NewObjectiveService(
			objectiveRepo, planRepo, achievementRepo, nil),
		Meetings: service.NewMeetingService(
			meetingRepo, planRepo, activityRepo, objectiveRepo, nil),
		Library: service.NewLibraryService(libraryRepo, nil),
		Distribution: service.NewDistributionService(
			ruleRepo, planRepo, periodRepo, meetingRepo, activityRepo, uow, nil, observers...),
		Achievements: service.NewAchievementService(
			achievementRepo, objectiveRepo, planRepo, nil, observers...),
		Reminders: service.NewReminderService(reminderRepo, meetingRepo, planRepo, nil),

		OrgID:            cfg.Org.ID,
		ActorID:          cfg.Org.Actor,
		DefaultLocation:  cfg.Defaults.Location,
		DefaultStartTime: cfg.Defaults.StartTime,
		DefaultEndTime:   cfg.Defaults.EndTime,
	}

	// Detect interactive terminal for wizard entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/openvelo/clubraces/external/icalfeed"
	"github.com/openvelo/clubraces/external/jobqueue"
	"github.com/openvelo/clubraces/internal/config"
	"github.com/openvelo/clubraces/internal/domain/club"
	"github.com/openvelo/clubraces/internal/domain/pointscore"
	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/domain/rawdata"
	"github.com/openvelo/clubraces/internal/domain/rider"
	repocache "github.com/openvelo/clubraces/internal/infrastructure/repository/cache"
	"github.com/openvelo/clubraces/internal/infrastructure/repository/memory"
	"github.com/openvelo/clubraces/internal/infrastructure/repository/postgres"
	"github.com/openvelo/clubraces/internal/interfaces/httpapi"
	"github.com/openvelo/clubraces/internal/platform/cache"
	"github.com/openvelo/clubraces/internal/usecase"
)

// repositories bundles every store the services need, regardless of which
// storage driver backs them.
type repositories struct {
	clubs       club.Repository
	courses     race.CourseRepository
	races       race.Repository
	results     race.ResultRepository
	staff       race.StaffRepository
	riders      rider.Repository
	memberships rider.MembershipRepository
	grades      rider.GradeRepository
	pointScores pointscore.Repository
	tallies     pointscore.TallyRepository
	raw         rawdata.Repository
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	repos, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	promotionSvc := usecase.NewPromotionService(repos.grades, repos.results, usecase.PromotionConfig{
		WindowDays:     cfg.PromotionWindowDays,
		WinThreshold:   cfg.PromotionWinThreshold,
		PlaceThreshold: cfg.PromotionPlaceThreshold,
		TopGrade:       cfg.PromotionTopGrade,
	})
	tallySvc := usecase.NewTallyService(repos.pointScores, repos.tallies, repos.races, repos.results, promotionSvc)

	clubSvc := usecase.NewClubService(repos.clubs, repos.races, repos.results, repos.riders, nil)
	gradingSvc := usecase.NewGradingService(repos.clubs, repos.riders, repos.grades)
	uploadSvc := usecase.NewUploadService(
		repos.clubs,
		repos.riders,
		repos.memberships,
		repos.grades,
		repos.races,
		repos.results,
		repos.pointScores,
		tallySvc,
		repos.raw,
		nil,
	)
	recalcSvc := usecase.NewRecalcService(repos.clubs, repos.pointScores, tallySvc, nil)
	rosterSvc := usecase.NewRosterService(repos.races, repos.staff, repos.riders)

	var feed usecase.RaceFeedProvider
	if cfg.ICalEnabled {
		feed = icalfeed.NewClient(icalfeed.ClientConfig{Timeout: cfg.ICalTimeout})
	}
	scheduleSvc := usecase.NewScheduleService(repos.clubs, repos.races, repos.courses, feed, cfg.DefaultGrading)

	queue := usecase.NewNoopJobQueue()
	if cfg.QStashToken != "" {
		queue = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
		}, logger)
	}
	dispatchSvc := usecase.NewDispatchService(repos.clubs, queue, usecase.DispatchConfig{
		RecalcInterval:  cfg.DispatchRecalcInterval,
		HarvestInterval: cfg.DispatchHarvestInterval,
	}, nil)

	handler := httpapi.NewHandler(
		clubSvc,
		gradingSvc,
		tallySvc,
		uploadSvc,
		recalcSvc,
		scheduleSvc,
		rosterSvc,
		dispatchSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return newPostgresRepositories(cfg)
	default:
		return newMemoryRepositories()
	}
}

func newMemoryRepositories() (repositories, error) {
	raceRepo := memory.NewRaceRepository(memory.SeedRaces())
	membershipRepo := memory.NewMembershipRepository(memory.SeedMemberships())
	pointScoreRepo := memory.NewPointScoreRepository(memory.SeedPointScores(), raceRepo)

	ctx := context.Background()
	for _, rc := range memory.SeedRaces() {
		if err := pointScoreRepo.AddRace(ctx, memory.PointScoreIDWaratahSeason, rc.ID); err != nil {
			return repositories{}, fmt.Errorf("seed point score races: %w", err)
		}
	}

	return repositories{
		clubs:       memory.NewClubRepository(memory.SeedClubs()),
		courses:     memory.NewCourseRepository(memory.SeedCourses()),
		races:       raceRepo,
		results:     memory.NewResultRepository(nil, raceRepo),
		staff:       memory.NewStaffRepository(nil, raceRepo),
		riders:      memory.NewRiderRepository(memory.SeedRiders(), membershipRepo),
		memberships: membershipRepo,
		grades:      memory.NewGradeRepository(memory.SeedGrades()),
		pointScores: pointScoreRepo,
		tallies:     memory.NewTallyRepository(),
		raw:         memory.NewRawDataRepository(),
	}, nil
}

func newPostgresRepositories(cfg config.Config) (repositories, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("connect to postgres: %w", err)
	}

	var (
		clubRepo   club.Repository       = postgres.NewClubRepository(db)
		courseRepo race.CourseRepository = postgres.NewCourseRepository(db)
	)
	if cfg.CacheTTL > 0 {
		store := cache.NewStore(cfg.CacheTTL)
		clubRepo = repocache.NewClubRepository(clubRepo, store)
		courseRepo = repocache.NewCourseRepository(courseRepo, store)
	}

	return repositories{
		clubs:       clubRepo,
		courses:     courseRepo,
		races:       postgres.NewRaceRepository(db),
		results:     postgres.NewResultRepository(db),
		staff:       postgres.NewStaffRepository(db),
		riders:      postgres.NewRiderRepository(db),
		memberships: postgres.NewMembershipRepository(db),
		grades:      postgres.NewGradeRepository(db),
		pointScores: postgres.NewPointScoreRepository(db),
		tallies:     postgres.NewTallyRepository(db),
		raw:         postgres.NewRawDataRepository(db),
	}, nil
}

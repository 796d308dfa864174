package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/okian/gridiron/internal/domain/calibration"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/tuning"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// CalibrationInput is a batch of seasons played under one tuning snapshot.
type CalibrationInput struct {
	Teams   []model.Team
	Tuning  tuning.Parameters
	Seasons int
	Seed    uint64
}

// Calibrate plays in.Seasons seasons, observes each league and evaluates the
// batch against the service's bands. Seasons run concurrently; observations
// are kept in season order so the report does not depend on scheduling.
// Calibration seasons are never published to Standings or Last.
func (s *Service) Calibrate(ctx context.Context, in CalibrationInput) (calibration.Report, error) {
	if in.Seasons < 1 {
		return calibration.Report{}, model.NewConfigurationError("seasons", "must be positive, got %d", in.Seasons)
	}

	obs := make([]calibration.Observation, in.Seasons)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i := range in.Seasons {
		g.Go(func() error {
			res, _, err := s.playSeason(gctx, SeasonInput{
				Season: i + 1,
				Teams:  in.Teams,
				Tuning: in.Tuning,
				Seed:   in.Seed,
			})
			if err != nil {
				return err
			}
			obs[i] = calibration.Observe(res.Book, len(res.Games))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return calibration.Report{}, fmt.Errorf("calibration: %w", err)
	}

	report := calibration.Evaluate(obs, in.Tuning, s.bands)
	log := s.logger.Named("calibration")
	for _, l := range report.Lines {
		metrics.UpdateCalibration(string(l.Band.Metric), l.Observed, l.InBand)
		if l.InBand {
			continue
		}
		fields := []logger.Field{
			logger.String("metric", string(l.Band.Metric)),
			logger.Float64("observed", l.Observed),
			logger.Float64("lo", l.Band.Lo),
			logger.Float64("hi", l.Band.Hi),
		}
		if l.Suggestion != nil {
			fields = append(fields,
				logger.String("knob", l.Suggestion.Knob),
				logger.Float64("suggested", l.Suggestion.Suggested),
			)
		}
		log.Warn(ctx, "metric out of band", fields...)
	}
	log.Info(ctx, "calibration finished",
		logger.Int("seasons", report.Seasons),
		logger.Int("games", report.Games),
		logger.Int("out_of_band", len(report.OutOfBand())),
	)
	return report, nil
}

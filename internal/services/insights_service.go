package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"shopsight/internal/dataset"
	apperrors "shopsight/internal/errors"
	"shopsight/internal/insights"
)

// InsightsService runs the personalization flow against the full, unfiltered
// dataset. Dashboard filters never narrow the matching population.
type InsightsService struct {
	table    *dataset.Table
	validate *validator.Validate
	logger   *slog.Logger
}

// NewInsightsService creates an insights service over a loaded table.
func NewInsightsService(table *dataset.Table, logger *slog.Logger) *InsightsService {
	return &InsightsService{
		table:    table,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With(slog.String("service", "insights")),
	}
}

// GetInsights validates the profile and returns the personalized report.
// A profile that matches no shopper data is not an error: the report comes
// back with the no-data state and a message.
func (s *InsightsService) GetInsights(ctx context.Context, profile insights.Profile) (*insights.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(profile); err != nil {
		return nil, apperrors.NewAppValidationError(validationMessage(err))
	}

	report := insights.Match(s.table, profile)

	s.logger.InfoContext(ctx, "insights generated",
		slog.Int("age", profile.Age),
		slog.String("income_level", profile.IncomeLevel),
		slog.String("channel", profile.Channel),
		slog.String("match", string(report.Match)),
		slog.Int("segment_size", report.SegmentSize),
	)

	return report, nil
}

// GetReport validates the profile and renders the plain-text report.
func (s *InsightsService) GetReport(ctx context.Context, profile insights.Profile) (string, error) {
	report, err := s.GetInsights(ctx, profile)
	if err != nil {
		return "", err
	}
	return report.Text(), nil
}

// validationMessage flattens validator field errors into one readable line.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "gte", "lte":
			parts = append(parts, fmt.Sprintf("%s must be between 1 and 120", strings.ToLower(fe.Field())))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
		}
	}
	return strings.Join(parts, "; ")
}

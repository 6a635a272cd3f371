package menu

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/veenakrishnan01/menu-analyser/internal/analyses"
	"github.com/veenakrishnan01/menu-analyser/internal/analysis"
	"github.com/veenakrishnan01/menu-analyser/internal/extract"
	"github.com/veenakrishnan01/menu-analyser/internal/notify"
	"github.com/veenakrishnan01/menu-analyser/internal/quota"
	"github.com/veenakrishnan01/menu-analyser/internal/validate"
)

// RejectedError is a content-validation rejection. It carries the reason
// code and a message the user can act on.
type RejectedError struct {
	Reason  validate.ReasonCode
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

// Submission is one menu analysis request.
type Submission struct {
	Source       extract.Source
	BusinessName string
}

// Service runs the intake pipeline: resolve the source to text, validate it,
// analyse it, then commit quota and persist the record. Quota is only spent
// on submissions that produce a result; rejected or failed ones are free.
type Service struct {
	resolver  *extract.Resolver
	validator *validate.Validator
	engine    *analysis.Engine
	quotas    *quota.Manager
	records   analyses.Repository
	notifier  notify.Notifier
	log       *logrus.Logger
}

func NewService(
	resolver *extract.Resolver,
	validator *validate.Validator,
	engine *analysis.Engine,
	quotas *quota.Manager,
	records analyses.Repository,
	notifier notify.Notifier,
	log *logrus.Logger,
) *Service {
	return &Service{
		resolver:  resolver,
		validator: validator,
		engine:    engine,
		quotas:    quotas,
		records:   records,
		notifier:  notifier,
		log:       log,
	}
}

// Analyze runs the full pipeline for one submission. Persistence failures
// after a successful analysis are logged but do not fail the request; the
// user already has their result.
func (s *Service) Analyze(ctx context.Context, userID, userEmail string, sub Submission) (analysis.Result, error) {
	if err := s.quotas.Allow(ctx, userID); err != nil {
		return analysis.Result{}, err
	}

	extracted, err := s.resolver.Resolve(ctx, sub.Source)
	if err != nil {
		return analysis.Result{}, err
	}

	var verdict validate.Result
	if extracted.OriginKind == extract.SourceImage {
		verdict = s.validator.CheckImage(extracted.Content)
	} else {
		verdict = s.validator.Check(extracted.Content)
	}
	if !verdict.Valid {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"reason":  verdict.Reason,
			"origin":  extracted.OriginKind,
		}).Info("menu content rejected")
		return analysis.Result{}, &RejectedError{Reason: verdict.Reason, Message: verdict.Message}
	}

	result, err := s.engine.Analyze(ctx, extracted.Content)
	if err != nil {
		return analysis.Result{}, err
	}

	if err := s.quotas.Commit(ctx, userID); err != nil {
		s.log.WithError(err).WithField("user_id", userID).
			Error("failed to record quota usage")
	}

	record := buildRecord(userID, sub, extracted, result)
	if err := s.records.Save(ctx, record); err != nil {
		s.log.WithError(err).WithField("user_id", userID).
			Error("failed to persist analysis record")
	}

	s.notifier.AnalysisCompleted(userEmail, sub.BusinessName, result.RevenueScore)

	return result, nil
}

func buildRecord(userID string, sub Submission, extracted extract.ExtractedText, result analysis.Result) *analyses.Record {
	record := &analyses.Record{
		UserID:       userID,
		BusinessName: sub.BusinessName,
		Results:      result,
		RevenueScore: result.RevenueScore,
	}

	switch extracted.OriginKind {
	case extract.SourceURL:
		record.MenuSource = analyses.SourceURL
		record.MenuURL = extracted.OriginDescriptor
	case extract.SourceText:
		record.MenuSource = analyses.SourceText
	default:
		record.MenuSource = analyses.SourceFile
		record.MenuFileName = extracted.OriginDescriptor
	}
	return record
}

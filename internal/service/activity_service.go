package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/yakoovad/mergington-activities/internal/model"
	"github.com/yakoovad/mergington-activities/internal/observability"
	"github.com/yakoovad/mergington-activities/internal/repository"
	"github.com/yakoovad/mergington-activities/pkg/logger"
	"go.uber.org/zap"
)

type ActivityService struct {
	activities repository.ActivityRepository
}

func NewActivityService() *ActivityService {
	return &ActivityService{}
}

func (s *ActivityService) WithActivityRepo(r repository.ActivityRepository) *ActivityService {
	s.activities = r
	return s
}

func (s *ActivityService) ListActivities(ctx context.Context) (model.Directory, *Error) {
	l := logger.FromContext(ctx)
	l.Debug("listing activities")

	activities, err := s.activities.List(ctx)
	if err != nil {
		l.Error("failed to list activities", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to list activities")
	}

	directory := make(model.Directory, len(activities))
	for _, a := range activities {
		directory[a.Name] = &model.Activity{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Participants,
		}
		observability.RecordRosterSize(a.Name, len(a.Participants))
	}

	return directory, nil
}

func (s *ActivityService) Signup(ctx context.Context, activityName, email string) (*model.SignupResult, *Error) {
	l := logger.FromContext(ctx)
	l.Info("signing up participant",
		zap.String("activity", activityName),
		zap.String("email", email))

	activity, err := s.activities.AddParticipant(ctx, activityName, email)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("activity not found", zap.String("activity", activityName))
		observability.RecordSignup(observability.OutcomeNotFound)
		return nil, NewError(ErrorCodeNotFound, "Activity not found")
	}
	if errors.Is(err, repository.ErrAlreadyRegistered) {
		l.Warn("participant already signed up",
			zap.String("activity", activityName),
			zap.String("email", email))
		observability.RecordSignup(observability.OutcomeDuplicate)
		return nil, NewError(ErrorCodeAlreadySignedUp,
			fmt.Sprintf("%s already signed up for %s", email, activityName))
	}
	if err != nil {
		l.Error("failed to sign up participant",
			zap.String("activity", activityName),
			zap.String("email", email),
			zap.Error(err))
		observability.RecordSignup(observability.OutcomeError)
		return nil, NewError(ErrorCodeUnspecified, "failed to sign up")
	}

	observability.RecordSignup(observability.OutcomeOK)
	observability.RecordRosterSize(activity.Name, len(activity.Participants))

	return &model.SignupResult{
		Message: fmt.Sprintf("Signed up %s for %s", email, activityName),
	}, nil
}

func (s *ActivityService) Unregister(ctx context.Context, activityName, email string) (*model.SignupResult, *Error) {
	l := logger.FromContext(ctx)
	l.Info("unregistering participant",
		zap.String("activity", activityName),
		zap.String("email", email))

	activity, err := s.activities.RemoveParticipant(ctx, activityName, email)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("activity not found", zap.String("activity", activityName))
		observability.RecordUnregister(observability.OutcomeNotFound)
		return nil, NewError(ErrorCodeNotFound, "Activity not found")
	}
	if errors.Is(err, repository.ErrNotRegistered) {
		l.Warn("participant not registered",
			zap.String("activity", activityName),
			zap.String("email", email))
		observability.RecordUnregister(observability.OutcomeNotRegistered)
		return nil, NewError(ErrorCodeNotRegistered,
			fmt.Sprintf("%s not registered for %s", email, activityName))
	}
	if err != nil {
		l.Error("failed to unregister participant",
			zap.String("activity", activityName),
			zap.String("email", email),
			zap.Error(err))
		observability.RecordUnregister(observability.OutcomeError)
		return nil, NewError(ErrorCodeUnspecified, "failed to unregister")
	}

	observability.RecordUnregister(observability.OutcomeOK)
	observability.RecordRosterSize(activity.Name, len(activity.Participants))

	return &model.SignupResult{
		Message: fmt.Sprintf("Unregistered %s from %s", email, activityName),
	}, nil
}

package service

import (
	"context"
	"fmt"
	"log"

	"github.com/startlistclub/flightjournal/internal/domain"
)

// ProgressSummary is the lesson rollup sent to a pilot
type ProgressSummary struct {
	Program           string `json:"program"`
	LessonsTotal      int    `json:"lessons_total"`
	LessonsCompleted  int    `json:"lessons_completed"`
	LessonsInProgress int    `json:"lessons_in_progress"`
	Message           string `json:"message"`
	MessageID         string `json:"message_id,omitempty"`
}

// ProgressNotifier texts pilots a summary of their curriculum progress
type ProgressNotifier struct {
	loader    *TrainingDataLoader
	pilotRepo domain.PilotRepository
	sms       domain.SMSSender
	policy    domain.InProgressPolicy
	localizer func(locale string) Localizer
}

func NewProgressNotifier(
	loader *TrainingDataLoader,
	pilotRepo domain.PilotRepository,
	sms domain.SMSSender,
	policy domain.InProgressPolicy,
	localizer func(locale string) Localizer,
) *ProgressNotifier {
	return &ProgressNotifier{
		loader:    loader,
		pilotRepo: pilotRepo,
		sms:       sms,
		policy:    policy,
		localizer: localizer,
	}
}

// Summarize rolls the pilot's lessons up without sending anything
func (n *ProgressNotifier) Summarize(ctx context.Context, pilotID, programID, locale string) (*ProgressSummary, error) {
	data, err := n.loader.Load(ctx, pilotID, "", programID)
	if err != nil {
		return nil, err
	}

	tr := n.localizer(locale)
	program := NewProjector(n.policy, tr).Program(data)

	summary := &ProgressSummary{
		Program:      data.TrainingProgram.ShortName,
		LessonsTotal: len(program.Lessons),
	}
	for _, lesson := range program.Lessons {
		switch lesson.Status {
		case domain.StatusCompleted:
			summary.LessonsCompleted++
		case domain.StatusNotStarted:
		default:
			summary.LessonsInProgress++
		}
	}

	summary.Message, err = tr.Tf("%s: %d/%d lessons completed, %d in progress",
		summary.Program, summary.LessonsCompleted, summary.LessonsTotal, summary.LessonsInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to format progress summary: %w", err)
	}
	return summary, nil
}

// SendProgressSummary texts the summary to the pilot's mobile phone
func (n *ProgressNotifier) SendProgressSummary(ctx context.Context, pilotID, programID, locale string) (*ProgressSummary, error) {
	pilot, err := n.pilotRepo.GetByID(ctx, pilotID)
	if err != nil {
		return nil, err
	}
	if pilot.MobilePhone == "" {
		return nil, domain.ErrNoMobilePhone
	}

	summary, err := n.Summarize(ctx, pilotID, programID, locale)
	if err != nil {
		return nil, err
	}

	summary.MessageID, err = n.sms.SendSMS(ctx, pilot.MobilePhone, summary.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to send progress sms: %w", err)
	}

	log.Printf("📱 Progress summary sent to pilot %s (message %s)", pilotID, summary.MessageID)
	return summary, nil
}

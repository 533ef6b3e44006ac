package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/startlistclub/flightjournal/internal/domain"
)

// ExportResult points at an uploaded training log snapshot
type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ExportService archives rendered training logs in object storage
type ExportService struct {
	trainingLog *TrainingLogService
	store       domain.ExportStore
}

func NewExportService(trainingLog *TrainingLogService, store domain.ExportStore) *ExportService {
	return &ExportService{trainingLog: trainingLog, store: store}
}

// ExportTrainingLog builds the training log and uploads it as JSON under
// training-logs/{pilotID}/{ulid}.json
func (s *ExportService) ExportTrainingLog(ctx context.Context, req TrainingLogRequest) (*ExportResult, error) {
	trainingLog, err := s.trainingLog.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(trainingLog, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode training log: %w", err)
	}

	key := fmt.Sprintf("training-logs/%s/%s.json", req.PilotID, generateULID())
	url, err := s.store.Upload(ctx, body, key, "application/json")
	if err != nil {
		return nil, err
	}

	return &ExportResult{Key: key, URL: url}, nil
}

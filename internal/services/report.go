package services

import (
	"context"

	"labstock/internal/dto"
	"labstock/internal/repositories"

	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	GetInventoryReport(ctx context.Context) ([]dto.InventoryReportRowDTO, uint64, error)
}

type ReportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{reportRepo: reportRepo, logger: logger}
}

func (s *ReportService) GetInventoryReport(ctx context.Context) ([]dto.InventoryReportRowDTO, uint64, error) {
	report, err := s.reportRepo.GetInventoryReport(ctx)
	if err != nil {
		return nil, 0, err
	}
	return report, uint64(len(report)), nil
}

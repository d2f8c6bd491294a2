package dashboard

import (
	"context"

	"go-nexushr/internal/employee"
	"go-nexushr/internal/shared/contextutil"

	"go.uber.org/zap"
)

// RecordSource yields the current employee list, normally the roster.
type RecordSource interface {
	Records(ctx context.Context) ([]employee.EmployeeResponse, error)
}

type Service interface {
	Stats(ctx context.Context) (StatsResponse, error)
	Charts(ctx context.Context) (ChartsResponse, error)
	ActiveEmployees(ctx context.Context, q string) ([]employee.EmployeeResponse, error)
}

type service struct {
	source RecordSource
	logger *zap.Logger
}

func NewService(source RecordSource, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.L()
	}
	return &service{source: source, logger: logger.Named("dashboard.service")}
}

func (s *service) records(ctx context.Context) ([]employee.EmployeeResponse, error) {
	records, err := s.source.Records(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("load dashboard records failed", zap.Error(err))
		return nil, err
	}
	return records, nil
}

func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	records, err := s.records(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	return Stats(records), nil
}

func (s *service) Charts(ctx context.Context) (ChartsResponse, error) {
	records, err := s.records(ctx)
	if err != nil {
		return ChartsResponse{}, err
	}
	return ChartsResponse{
		WorkloadByDepartment: WorkloadByDepartment(records),
		DepartmentHeadcount:  DepartmentHeadcount(records),
		RoleDistribution:     RoleDistribution(records),
	}, nil
}

func (s *service) ActiveEmployees(ctx context.Context, q string) ([]employee.EmployeeResponse, error) {
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	return employee.Filter(records, employee.FilterActive, q), nil
}

package export

import (
	"context"
	"time"

	"go-nexushr/internal/employee"
	"go-nexushr/internal/shared/contextutil"

	"go.uber.org/zap"
)

const defaultTeamFilename = "Reporte_Equipo"

// RecordSource yields the current employee list.
type RecordSource interface {
	Records(ctx context.Context) ([]employee.EmployeeResponse, error)
}

// EmployeeFinder loads a single record.
type EmployeeFinder interface {
	GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error)
}

// TeamQuery selects and names a team report. Title defaults to
// "Reporte General" or "Reporte <status>".
type TeamQuery struct {
	Status string `form:"status"`
	Q      string `form:"q"`
	Title  string `form:"title"`
}

func (q TeamQuery) title() string {
	if q.Title != "" {
		return q.Title
	}
	if q.Status == "" || q.Status == employee.FilterAll {
		return "Reporte General"
	}
	return "Reporte " + q.Status
}

type Service interface {
	TeamCSV(ctx context.Context, q TeamQuery) (Document, error)
	TeamXLSX(ctx context.Context, q TeamQuery) (Document, error)
	TeamPDF(ctx context.Context, q TeamQuery) (Document, error)
	EmployeeCSV(ctx context.Context, id string) (Document, error)
	EmployeePDF(ctx context.Context, id string) (Document, error)
}

type service struct {
	source RecordSource
	finder EmployeeFinder
	logger *zap.Logger
	now    func() time.Time
}

func NewService(source RecordSource, finder EmployeeFinder, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.L()
	}
	return &service{
		source: source,
		finder: finder,
		logger: logger.Named("export.service"),
		now:    time.Now,
	}
}

func (s *service) team(ctx context.Context, q TeamQuery) ([]employee.EmployeeResponse, error) {
	records, err := s.source.Records(ctx)
	if err != nil {
		return nil, err
	}
	return employee.Filter(records, q.Status, q.Q), nil
}

func (s *service) TeamCSV(ctx context.Context, q TeamQuery) (Document, error) {
	records, err := s.team(ctx, q)
	if err != nil {
		return Document{}, err
	}

	body, err := WriteCSV(records, s.now())
	if err != nil {
		return Document{}, err
	}
	s.logExport(ctx, "csv", len(records))
	return Document{Filename: defaultTeamFilename + ".csv", ContentType: ContentTypeCSV, Body: body}, nil
}

func (s *service) TeamXLSX(ctx context.Context, q TeamQuery) (Document, error) {
	records, err := s.team(ctx, q)
	if err != nil {
		return Document{}, err
	}

	body, err := WriteXLSX(records, s.now())
	if err != nil {
		return Document{}, err
	}
	s.logExport(ctx, "xlsx", len(records))
	return Document{Filename: defaultTeamFilename + ".xlsx", ContentType: ContentTypeXLSX, Body: body}, nil
}

func (s *service) TeamPDF(ctx context.Context, q TeamQuery) (Document, error) {
	records, err := s.team(ctx, q)
	if err != nil {
		return Document{}, err
	}

	title := q.title()
	body, err := WriteTeamPDF(records, title, s.now())
	if err != nil {
		return Document{}, err
	}
	s.logExport(ctx, "pdf", len(records))
	return Document{Filename: SafeFilename(title) + ".pdf", ContentType: ContentTypePDF, Body: body}, nil
}

func (s *service) EmployeeCSV(ctx context.Context, id string) (Document, error) {
	r, err := s.finder.GetByID(ctx, id)
	if err != nil {
		return Document{}, err
	}

	body, err := WriteCSV([]employee.EmployeeResponse{r}, s.now())
	if err != nil {
		return Document{}, err
	}
	return Document{
		Filename:    "Reporte_Personal_" + SafeFilename(r.Name) + ".csv",
		ContentType: ContentTypeCSV,
		Body:        body,
	}, nil
}

func (s *service) EmployeePDF(ctx context.Context, id string) (Document, error) {
	r, err := s.finder.GetByID(ctx, id)
	if err != nil {
		return Document{}, err
	}

	body, err := WriteEmployeePDF(r, s.now())
	if err != nil {
		return Document{}, err
	}
	return Document{
		Filename:    "Ficha_" + SafeFilename(r.Name) + ".pdf",
		ContentType: ContentTypePDF,
		Body:        body,
	}, nil
}

func (s *service) logExport(ctx context.Context, format string, rows int) {
	contextutil.GetLogger(ctx, s.logger).Info("team export generated",
		zap.String("format", format),
		zap.Int("rows", rows),
	)
}

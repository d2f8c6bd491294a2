package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	employeeerrors "go-nexushr/internal/employee/errors"
	"go-nexushr/internal/events"
	"go-nexushr/internal/messaging/kafka"
	"go-nexushr/internal/shared/audit"
	"go-nexushr/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeListKey = "employees:list"
	// EmployeeListGenKey is bumped by every write. Cached lists live under a
	// key derived from it, so a list read before a write can never be served
	// after it.
	EmployeeListGenKey = "employees:list:gen"
	employeeListTTL    = 10 * time.Minute
)

func ListCacheKey(gen int64) string {
	return fmt.Sprintf("%s:v%d", EmployeeListKey, gen)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)
	ListFresh(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	AdjustWorkload(ctx context.Context, id string, delta int) (EmployeeResponse, error)
	SetWorkload(ctx context.Context, id string, workload int) (EmployeeResponse, error)
	Disable(ctx context.Context, id string) (EmployeeResponse, error)
	Enable(ctx context.Context, id string) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	Repair(ctx context.Context) (RepairResponse, error)
}

type ServiceOption func(*service)

// WithOutbox queues a change event in the same transaction as every write.
func WithOutbox(outbox kafka.OutboxRepository) ServiceOption {
	return func(s *service) { s.outbox = outbox }
}

// WithCache enables the Redis list cache.
func WithCache(rdb *redis.Client) ServiceOption {
	return func(s *service) { s.rdb = rdb }
}

// WithCatalog rejects roles and departments outside c.
func WithCatalog(c Catalog) ServiceOption {
	return func(s *service) { s.catalog = &c }
}

// WithAudit records disable, enable, delete and repair as audit events.
func WithAudit(a audit.Logger) ServiceOption {
	return func(s *service) { s.audit = a }
}

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *service) {
		if l != nil {
			s.logger = l.Named("employee.service")
		}
	}
}

type service struct {
	db      *sql.DB
	repo    Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	catalog *Catalog
	audit   audit.Logger
	sf      *singleflight.Group
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(db *sql.DB, repo Repository, opts ...ServiceOption) Service {
	s := &service{
		db:     db,
		repo:   repo,
		sf:     &singleflight.Group{},
		audit:  audit.Nop{},
		logger: zap.L().Named("employee.service"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := s.log(ctx)
	req.Name = strings.TrimSpace(req.Name)
	log.Debug("create employee requested",
		zap.String("name", req.Name),
		zap.String("department", req.Department),
		zap.Int("workload", req.Workload),
	)

	if err := s.validateForm(req.Name, req.Role, req.Department); err != nil {
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:         uuid.New(),
		Name:       req.Name,
		Role:       strings.TrimSpace(req.Role),
		Department: strings.TrimSpace(req.Department),
	}
	empl.SetWorkload(req.Workload)

	err := s.inTx(ctx, func(qtx Repository, tx *sql.Tx) error {
		if err := qtx.Create(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}
		return s.enqueueChange(ctx, tx, events.ChangeInsert, empl)
	})
	if err != nil {
		log.Error("create employee failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateList(ctx)
	log.Info("create employee success", zap.String("employee_id", empl.ID.String()))
	return mapToResponse(*empl), nil
}

func (s *service) List(ctx context.Context) ([]EmployeeResponse, error) {
	cacheKey, cacheable := s.listCacheKey(ctx)
	if cacheable {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.findAll(ctx)
		if err != nil {
			return nil, err
		}

		if cacheable {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, employeeListTTL).Err(); err != nil {
					s.log(ctx).Warn("cache employee list failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.log(ctx).Error("list employees failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

// ListFresh reads the store directly. The roster uses it for refetches,
// which must reflect the store and not the cache.
func (s *service) ListFresh(ctx context.Context) ([]EmployeeResponse, error) {
	resp, err := s.findAll(ctx)
	if err != nil {
		s.log(ctx).Error("list employees failed", zap.Error(err))
		return nil, err
	}
	return resp, nil
}

func (s *service) findAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

// listCacheKey resolves the key for the current list generation. The cache
// is skipped when Redis is off or the generation cannot be read.
func (s *service) listCacheKey(ctx context.Context) (string, bool) {
	if s.rdb == nil {
		return EmployeeListKey, false
	}

	gen, err := s.rdb.Get(ctx, EmployeeListGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.log(ctx).Warn("read employee list generation failed", zap.Error(err))
		return EmployeeListKey, false
	}
	return ListCacheKey(gen), true
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log(ctx).Warn("get employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateForm(req.Name, req.Role, req.Department); err != nil {
		return EmployeeResponse{}, err
	}

	return s.mutate(ctx, id, "update", func(empl *Employee) {
		empl.Name = req.Name
		empl.Role = strings.TrimSpace(req.Role)
		empl.Department = strings.TrimSpace(req.Department)
		// Disabled survives a form edit.
		empl.SetWorkload(req.Workload)
	})
}

func (s *service) AdjustWorkload(ctx context.Context, id string, delta int) (EmployeeResponse, error) {
	return s.mutate(ctx, id, "adjust workload", func(empl *Employee) {
		empl.AdjustWorkload(delta)
	})
}

func (s *service) SetWorkload(ctx context.Context, id string, workload int) (EmployeeResponse, error) {
	return s.mutate(ctx, id, "set workload", func(empl *Employee) {
		empl.SetWorkload(workload)
	})
}

func (s *service) Disable(ctx context.Context, id string) (EmployeeResponse, error) {
	resp, err := s.mutate(ctx, id, "disable", func(empl *Employee) {
		empl.Disable()
	})
	if err == nil {
		s.audit.Log(ctx, audit.Entry{
			Action:  "EMPLOYEE_DISABLED",
			Message: "employee disabled",
			Meta:    map[string]any{"employee_id": id, "name": resp.Name},
		})
	}
	return resp, err
}

func (s *service) Enable(ctx context.Context, id string) (EmployeeResponse, error) {
	resp, err := s.mutate(ctx, id, "enable", func(empl *Employee) {
		empl.Enable()
	})
	if err == nil {
		s.audit.Log(ctx, audit.Entry{
			Action:  "EMPLOYEE_ENABLED",
			Message: "employee enabled",
			Meta:    map[string]any{"employee_id": id, "status": resp.Status},
		})
	}
	return resp, err
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := s.log(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	err := s.inTx(ctx, func(qtx Repository, tx *sql.Tx) error {
		if err := qtx.Delete(ctx, id); err != nil {
			return mapRepositoryError(err)
		}
		return s.enqueueChange(ctx, tx, events.ChangeDelete, &Employee{ID: uuid.MustParse(id)})
	})
	if err != nil {
		log.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	s.invalidateList(ctx)
	s.audit.Log(ctx, audit.Entry{
		Action:  "EMPLOYEE_DELETED",
		Message: "employee deleted",
		Meta:    map[string]any{"employee_id": id},
	})
	log.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// Repair backfills records written by older clients: missing department,
// role or status.
func (s *service) Repair(ctx context.Context) (RepairResponse, error) {
	log := s.log(ctx)

	fixed := 0
	err := s.inTx(ctx, func(qtx Repository, tx *sql.Tx) error {
		broken, err := qtx.FindNeedingRepair(ctx)
		if err != nil {
			return mapRepositoryError(err)
		}

		for i := range broken {
			empl := &broken[i]
			if strings.TrimSpace(empl.Department) == "" {
				empl.Department = FallbackDepartment
			}
			if strings.TrimSpace(empl.Role) == "" {
				empl.Role = FallbackRole
			}
			empl.SetWorkload(empl.Workload)

			if err := qtx.Update(ctx, empl); err != nil {
				return mapRepositoryError(err)
			}
			if err := s.enqueueChange(ctx, tx, events.ChangeUpdate, empl); err != nil {
				return err
			}
			fixed++
		}
		return nil
	})
	if err != nil {
		log.Error("repair employees failed", zap.Error(err))
		return RepairResponse{}, err
	}

	if fixed > 0 {
		s.invalidateList(ctx)
	}
	s.audit.Log(ctx, audit.Entry{
		Action:  "EMPLOYEES_REPAIRED",
		Message: "data repair finished",
		Meta:    map[string]any{"fixed": fixed},
	})
	log.Info("repair employees finished", zap.Int("fixed", fixed))
	return RepairResponse{Fixed: fixed}, nil
}

// mutate is the locked read-modify-write shared by every single-row update.
func (s *service) mutate(ctx context.Context, id, op string, apply func(*Employee)) (EmployeeResponse, error) {
	log := s.log(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	log.Debug(op+" employee requested", zap.String("employee_id", id))

	var empl *Employee
	err := s.inTx(ctx, func(qtx Repository, tx *sql.Tx) error {
		var err error
		empl, err = qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}

		apply(empl)

		if err := qtx.Update(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}
		return s.enqueueChange(ctx, tx, events.ChangeUpdate, empl)
	})
	if err != nil {
		log.Warn(op+" employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateList(ctx)
	log.Info(op+" employee success",
		zap.String("employee_id", id),
		zap.Int("workload", empl.Workload),
		zap.String("status", string(empl.Status)),
	)
	return mapToResponse(*empl), nil
}

func (s *service) inTx(ctx context.Context, fn func(qtx Repository, tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapRepositoryError(err)
	}
	defer tx.Rollback()

	if err := fn(s.repo.WithTx(tx), tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) enqueueChange(ctx context.Context, tx *sql.Tx, kind string, empl *Employee) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeeChangedEvent{
		EventType:  kind,
		RequestID:  rid,
		EmployeeID: empl.ID.String(),
		OccurredAt: s.now().UTC(),
	}
	if kind != events.ChangeDelete {
		event.Record = &events.EmployeeSnapshot{
			ID:         empl.ID.String(),
			Name:       empl.Name,
			Role:       empl.Role,
			Department: empl.Department,
			Workload:   empl.Workload,
			Status:     string(empl.Status),
		}
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   empl.ID.String(),
		EventType:     kind,
		Topic:         events.EmployeeChangesTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateList(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, EmployeeListGenKey).Err(); err != nil {
		s.log(ctx).Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", EmployeeListGenKey),
		)
	}
}

func (s *service) validateForm(name, role, department string) error {
	if name == "" {
		return employeeerrors.ErrNameRequired
	}
	if s.catalog == nil {
		return nil
	}
	if role = strings.TrimSpace(role); role != "" && !s.catalog.HasRole(role) {
		return employeeerrors.ErrUnknownRole
	}
	if department = strings.TrimSpace(department); department != "" && !s.catalog.HasDepartment(department) {
		return employeeerrors.ErrUnknownDepartment
	}
	return nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	status := empl.Status
	if status == "" {
		status = DeriveStatus(empl.Workload, empl.Disabled)
	}
	resp := EmployeeResponse{
		ID:         empl.ID.String(),
		Name:       empl.Name,
		Role:       empl.Role,
		Department: empl.Department,
		Workload:   ClampWorkload(empl.Workload),
		Status:     status,
		Disabled:   empl.Disabled,
	}
	if !empl.CreatedAt.IsZero() {
		resp.CreatedAt = empl.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

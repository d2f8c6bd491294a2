package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-nexushr/internal/employee"
	employeeerrors "go-nexushr/internal/employee/errors"
	"go-nexushr/internal/events"
	"go-nexushr/internal/shared/apperror"
	"go-nexushr/internal/shared/contextutil"

	employeeMock "go-nexushr/internal/employee/mock"
	"go-nexushr/internal/messaging/kafka"
	kafkaMock "go-nexushr/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	redismock redismock.ClientMock
	outbox    *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T, opts ...employee.ServiceOption) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	opts = append([]employee.ServiceOption{
		employee.WithOutbox(outboxRepo),
		employee.WithCache(dbRedis),
	}, opts...)
	svc := employee.NewService(db, repo, opts...)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		outbox:    outboxRepo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

// expectLockedRead wires WithTx and the FOR UPDATE read of one row.
func (d *serviceDeps) expectLockedRead(ctx context.Context, empl *employee.Employee, err error) {
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.repo.EXPECT().FindByIDForUpdate(ctx, empl.ID.String()).Return(empl, err)
}

func (d *serviceDeps) expectOutbox(t *testing.T, kind string, check func(ev events.EmployeeChangedEvent)) {
	t.Helper()
	d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
	d.outbox.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, kind, e.EventType)
			assert.Equal(t, events.EmployeeChangesTopic, e.Topic)
			assert.Equal(t, kafka.OutboxStatusPending, e.Status)

			var ev events.EmployeeChangedEvent
			assert.NoError(t, json.Unmarshal(e.Payload, &ev))
			assert.Equal(t, e.AggregateID, ev.EmployeeID)
			if check != nil {
				check(ev)
			}
			return nil
		})
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success clamps workload and derives status", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := contextutil.WithRequestID(ctx, "rid-1")

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "Ana Pérez", e.Name)
				assert.Equal(t, 100, e.Workload)
				assert.Equal(t, employee.StatusWarning, e.Status)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.ChangeInsert, e.EventType)
				assert.Equal(t, "rid-1", e.RequestID)
				assert.Equal(t, "employee", e.AggregateType)
				return nil
			})
		deps.redismock.ExpectIncr(employee.EmployeeListGenKey).SetVal(1)

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			Name:       "  Ana Pérez ",
			Role:       "Developer",
			Department: "IT",
			Workload:   140,
		})

		assert.NoError(t, err)
		assert.Equal(t, 100, resp.Workload)
		assert.Equal(t, employee.StatusWarning, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("zero workload starts inactive", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.expectOutbox(t, events.ChangeInsert, func(ev events.EmployeeChangedEvent) {
			assert.Equal(t, "Inactive", ev.Record.Status)
		})
		deps.redismock.ExpectIncr(employee.EmployeeListGenKey).SetVal(1)

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "Luis", Workload: -5})
		assert.NoError(t, err)
		assert.Equal(t, 0, resp.Workload)
		assert.Equal(t, employee.StatusInactive, resp.Status)
	})

	t.Run("blank name", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "   "})
		assert.ErrorIs(t, err, employeeerrors.ErrNameRequired)
	})

	t.Run("role outside the catalog", func(t *testing.T) {
		deps := setupServiceTest(t, employee.WithCatalog(employee.DefaultCatalog))

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "Ana", Role: "Astronaut"})
		assert.ErrorIs(t, err, employeeerrors.ErrUnknownRole)
	})

	t.Run("store error rolls back and keeps the message", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("JWT expired"))

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "Ana", Workload: 10})

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 502, httpErr.Status)
		assert.Equal(t, apperror.CodeRemoteStore, httpErr.Code)
		assert.Equal(t, "JWT expired", httpErr.Message)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_List(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := []employee.Employee{
		{ID: uuid.New(), Name: "Ana", Role: "Developer", Department: "IT", Workload: 50, Status: employee.StatusActive, CreatedAt: created},
		// Legacy row written without status.
		{ID: uuid.New(), Name: "Bea", Workload: 95, CreatedAt: created},
	}

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.redismock.ExpectGet(employee.EmployeeListGenKey).RedisNil()
		deps.redismock.ExpectGet(employee.ListCacheKey(0)).RedisNil()
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(rows, nil)

		expected := []employee.EmployeeResponse{
			{ID: rows[0].ID.String(), Name: "Ana", Role: "Developer", Department: "IT", Workload: 50, Status: employee.StatusActive, CreatedAt: "2025-03-01T09:00:00Z"},
			{ID: rows[1].ID.String(), Name: "Bea", Workload: 95, Status: employee.StatusWarning, CreatedAt: "2025-03-01T09:00:00Z"},
		}
		jsonData, _ := json.Marshal(expected)
		deps.redismock.ExpectSet(employee.ListCacheKey(0), jsonData, 10*time.Minute).SetVal("OK")

		resp, err := deps.service.List(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		deps := setupServiceTest(t)

		cached := []employee.EmployeeResponse{{ID: "1", Name: "Ana", Workload: 20, Status: employee.StatusActive}}
		jsonData, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(employee.EmployeeListGenKey).SetVal("4")
		deps.redismock.ExpectGet(employee.ListCacheKey(4)).SetVal(string(jsonData))

		resp, err := deps.service.List(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
	})

	t.Run("store failure", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.redismock.ExpectGet(employee.EmployeeListGenKey).RedisNil()
		deps.redismock.ExpectGet(employee.ListCacheKey(0)).RedisNil()
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("permission denied for table employees"))

		_, err := deps.service.List(ctx)
		assert.Equal(t, "permission denied for table employees", apperror.ToHTTP(err).Message)
	})

	t.Run("generation unreadable skips the cache", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.redismock.ExpectGet(employee.EmployeeListGenKey).SetErr(errors.New("redis down"))
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(rows, nil)

		resp, err := deps.service.List(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("write during a read is never served stale", func(t *testing.T) {
		deps := setupServiceTest(t)
		gone := employee.Employee{ID: uuid.New(), Name: "Gone", Workload: 30, Status: employee.StatusActive}
		staleJSON, _ := json.Marshal([]employee.EmployeeResponse{{ID: gone.ID.String(), Name: "Gone", Workload: 30, Status: employee.StatusActive}})

		// Generation 5 is read, then a delete commits and bumps it before the
		// first read caches its rows.
		deps.redismock.ExpectGet(employee.EmployeeListGenKey).SetVal("5")
		deps.redismock.ExpectGet(employee.ListCacheKey(5)).RedisNil()
		deps.redismock.ExpectIncr(employee.EmployeeListGenKey).SetVal(6)
		deps.redismock.ExpectSet(employee.ListCacheKey(5), staleJSON, 10*time.Minute).SetVal("OK")
		deps.redismock.ExpectGet(employee.EmployeeListGenKey).SetVal("6")
		deps.redismock.ExpectGet(employee.ListCacheKey(6)).RedisNil()
		deps.redismock.ExpectSet(employee.ListCacheKey(6), []byte("[]"), 10*time.Minute).SetVal("OK")

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(gomock.Any(), gone.ID.String()).Return(nil)
		deps.expectOutbox(t, events.ChangeDelete, nil)

		gomock.InOrder(
			deps.repo.EXPECT().FindAll(gomock.Any()).
				DoAndReturn(func(ctx context.Context) ([]employee.Employee, error) {
					assert.NoError(t, deps.service.Delete(ctx, gone.ID.String()))
					return []employee.Employee{gone}, nil
				}),
			deps.repo.EXPECT().FindAll(gomock.Any()).Return([]employee.Employee{}, nil),
		)

		first, err := deps.service.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, first, 1)

		second, err := deps.service.List(ctx)
		assert.NoError(t, err)
		assert.Empty(t, second)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}

func TestEmployeeService_ListFresh(t *testing.T) {
	deps := setupServiceTest(t)
	rows := []employee.Employee{{ID: uuid.New(), Name: "Ana", Workload: 20, Status: employee.StatusActive}}

	deps.repo.EXPECT().FindAll(gomock.Any()).Return(rows, nil)

	resp, err := deps.service.ListFresh(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "Ana", resp[0].Name)
	// No cache reads or writes expected.
	assert.NoError(t, deps.redismock.ExpectationsWereMet())
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByID(ctx, "abc")
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()

		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_AdjustWorkload(t *testing.T) {
	ctx := context.Background()

	t.Run("delta is clamped and status re-derived", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := &employee.Employee{ID: uuid.New(), Name: "Ana", Workload: 85, Status: employee.StatusActive}

		expectTx(t, deps.sqlMock, true)
		deps.expectLockedRead(ctx, empl, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, 100, e.Workload)
				assert.Equal(t, employee.StatusWarning, e.Status)
				return nil
			})
		deps.expectOutbox(t, events.ChangeUpdate, func(ev events.EmployeeChangedEvent) {
			assert.Equal(t, 100, ev.Record.Workload)
		})
		deps.redismock.ExpectIncr(employee.EmployeeListGenKey).SetVal(1)

		resp, err := deps.service.AdjustWorkload(ctx, empl.ID.String(), 30)

		assert.NoError(t, err)
		assert.Equal(t, 100, resp.Workload)
		assert.Equal(t, employee.StatusWarning, resp.Status)
	})

	t.Run("down to zero goes inactive", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := &employee.Employee{ID: uuid.New(), Name: "Ana", Workload: 10, Status: employee.StatusActive}

		expectTx(t, deps.sqlMock, true)
		deps.expectLockedRead(ctx, empl, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.expectOutbox(t, events.ChangeUpdate, nil)
		deps.redismock.ExpectIncr(employee.EmployeeListGenKey).SetVal(1)

		resp, err := deps.service.AdjustWorkload(ctx, empl.ID.String(), -10)

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.Workload)
		assert.Equal(t, employee.StatusInactive, resp.Status)
	})

	t.Run("missing row", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := &employee.Employee{ID: uuid.New()}

		expectTx(t, deps.sqlMock, false)
		deps.expectLockedRead(ctx, empl, gorm.ErrRecordNotFound)

		_, err := deps.service.AdjustWorkload(ctx, empl.ID.String(), 10)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("check constraint violation", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := &employee.Employee{ID: uuid.New(), Name: "Ana", Workload: 50}

		expectTx(t, deps.sqlMock, false)
		deps.expectLockedRead(ctx, empl, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(&pgconn.PgError{
			Code:           "23514",
			ConstraintName: "chk_employees_workload_range",
		})

		_, err := deps.service.AdjustWorkload(ctx, empl.ID.String(), 10)
		assert.ErrorIs(t, err, employeeerrors.ErrWorkloadOutOfRange)
	})

	t.Run("serialization failure is a conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := &employee.Employee{ID: uuid.New(), Name: "Ana", Workload: 50}

		expectTx(t, deps.sqlMock, false)
		deps.expectLockedRead(ctx, empl, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "40001"})

		_, err := deps.service.AdjustWorkload(ctx, empl.ID.String(), 10)
		assert.Equal(t, 409, apperror.ToHTTP(err).Status)
	})
}

func TestEmployeeService_DisableEnable(t *testing.T) {
	ctx := context.Background()

	t.Run("disable keeps workload", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := &employee.Employee{ID: uuid.New(), Name: "Ana", Workload: 60, Status: employee.StatusActive}

		expectTx(t, deps.sqlMock, true)
		deps.expectLockedRead(ctx, empl, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.expectOutbox(t, events.ChangeUpdate, nil)
		deps.redismock.ExpectIncr(employee.EmployeeListGenKey).SetVal(1)

		resp, err := deps.service.Disable(ctx, empl.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, 60, resp.Workload)
		assert.Equal(t, employee.StatusInactive, resp.Status)
	})

	t.Run("enable with zero workload stays inactive", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := &employee.Employee{ID: uuid.New(), Name: "Ana", Workload: 0, Disabled: true, Status: employee.StatusInactive}

		expectTx(t, deps.sqlMock, true)
		deps.expectLockedRead(ctx, empl, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.expectOutbox(t, events.ChangeUpdate, nil)
		deps.redismock.ExpectIncr(employee.EmployeeListGenKey).SetVal(1)

		resp, err := deps.service.Enable(ctx, empl.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, employee.StatusInactive, resp.Status)
	})

	t.Run("enable restores derived status", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := &employee.Employee{ID: uuid.New(), Name: "Ana", Workload: 95, Disabled: true, Status: employee.StatusInactive}

		expectTx(t, deps.sqlMock, true)
		deps.expectLockedRead(ctx, empl, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.expectOutbox(t, events.ChangeUpdate, nil)
		deps.redismock.ExpectIncr(employee.EmployeeListGenKey).SetVal(1)

		resp, err := deps.service.Enable(ctx, empl.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, employee.StatusWarning, resp.Status)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("form edit keeps the disabled flag", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := &employee.Employee{ID: uuid.New(), Name: "Ana", Workload: 40, Disabled: true, Status: employee.StatusInactive}

		expectTx(t, deps.sqlMock, true)
		deps.expectLockedRead(ctx, empl, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "Ana María", e.Name)
				assert.Equal(t, "Design", e.Department)
				assert.True(t, e.Disabled)
				return nil
			})
		deps.expectOutbox(t, events.ChangeUpdate, nil)
		deps.redismock.ExpectIncr(employee.EmployeeListGenKey).SetVal(1)

		resp, err := deps.service.Update(ctx, empl.ID.String(), employee.UpdateEmployeeRequest{
			Name: "Ana María", Role: "Designer", Department: "Design", Workload: 70,
		})

		assert.NoError(t, err)
		assert.Equal(t, 70, resp.Workload)
		assert.Equal(t, employee.StatusInactive, resp.Status)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success emits delete without record", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, id).Return(nil)
		deps.expectOutbox(t, events.ChangeDelete, func(ev events.EmployeeChangedEvent) {
			assert.Nil(t, ev.Record)
			assert.Equal(t, id, ev.EmployeeID)
		})
		deps.redismock.ExpectIncr(employee.EmployeeListGenKey).SetVal(1)

		assert.NoError(t, deps.service.Delete(ctx, id))
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, id).Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, deps.service.Delete(ctx, id), employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Repair(t *testing.T) {
	ctx := context.Background()

	t.Run("fills missing fields", func(t *testing.T) {
		deps := setupServiceTest(t)
		broken := []employee.Employee{
			{ID: uuid.New(), Name: "Ana", Workload: 40},
			{ID: uuid.New(), Name: "Bea", Role: "QA", Workload: 0, Status: employee.StatusActive},
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindNeedingRepair(ctx).Return(broken, nil)

		var updated []employee.Employee
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				updated = append(updated, *e)
				return nil
			}).
			Times(2)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox).Times(2)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(2)
		deps.redismock.ExpectIncr(employee.EmployeeListGenKey).SetVal(1)

		resp, err := deps.service.Repair(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.Fixed)
		assert.Equal(t, "General", updated[0].Department)
		assert.Equal(t, "Personal", updated[0].Role)
		assert.Equal(t, employee.StatusActive, updated[0].Status)
		assert.Equal(t, "QA", updated[1].Role)
		assert.Equal(t, employee.StatusInactive, updated[1].Status)
	})

	t.Run("nothing to fix leaves the cache", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindNeedingRepair(ctx).Return(nil, nil)

		resp, err := deps.service.Repair(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.Fixed)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}

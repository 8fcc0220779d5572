package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/dbmetrics"
	"github.com/gatacompleta/GCA-AppointmentService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения уникальности
const pqUniqueViolation = "23505"

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись вместе с её услугами.
// Если в контексте передана активная транзакция (через context.Value), использует её -
// создание записи с проверкой доступности выполняется в сериализуемой транзакции,
// и вставка должна видеть заблокированные строки.
// Уникальный индекс по session_id превращает повторную отправку одной сессии
// в ErrDuplicateSession вместо второй записи.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"session_id",
			"client_id",
			"company_id",
			"appointment_date",
			"start_time",
			"end_time",
			"status",
			"notes",
		).
		Values(
			appointment.SessionID,
			appointment.ClientID,
			appointment.CompanyID,
			appointment.Date,
			appointment.StartTime,
			appointment.EndTime,
			appointment.Status,
			appointment.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateSession
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	for _, item := range appointment.Items {
		if err := r.createItem(ctx, executor, appointment.ID, item); err != nil {
			return nil, err
		}
	}

	return appointment, nil
}

// createItem вставляет одну услугу записи
func (r *Repository) createItem(ctx context.Context, executor DBExecutor, appointmentID int64, item *domain.AppointmentItem) error {
	query, args, err := psqlbuilder.Insert("appointment_items").
		Columns(
			"appointment_id",
			"service_id",
			"employee_id",
			"start_time",
			"end_time",
			"duration_minutes",
			"service_name",
			"service_price",
		).
		Values(
			appointmentID,
			item.ServiceID,
			item.EmployeeID,
			item.StartTime,
			item.EndTime,
			item.DurationMinutes,
			item.ServiceName,
			item.ServicePrice,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createItem - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: createItem - execute insert: %v", ErrExecQuery, err)
	}

	item.AppointmentID = appointmentID
	item.CreatedAt = createdAt.Time

	return nil
}

// GetByID получает запись по ID вместе с её услугами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := appointmentColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	items, err := r.loadItems(ctx, executor, []int64{appointment.ID})
	if err != nil {
		return nil, err
	}
	appointment.Items = items[appointment.ID]

	return appointment, nil
}

// GetByClientID получает список записей клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := appointmentColumns().
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("appointment_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.collectAppointments(ctx, executor, rows)
}

// GetByCompanyWithFilter получает записи компании с гибкой фильтрацией:
// по периоду (StartDate, EndDate), статусу и включению неактивных записей.
// Для конкретной даты (StartDate == EndDate) сортировка по времени начала,
// иначе - сначала новые.
func (r *Repository) GetByCompanyWithFilter(ctx context.Context, filter domain.CompanyAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := appointmentColumns().
		Where(squirrel.Eq{"company_id": filter.CompanyID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.collectAppointments(ctx, executor, rows)
}

// GetBusyIntervals получает занятые интервалы исполнителей компании на дату:
// услуги активных записей с привязкой к исполнителю и времени.
// Опционально фильтрует по списку исполнителей.
// Если используется транзакция, строки услуг блокируются (FOR UPDATE) -
// это сериализует параллельное создание записей на пересекающиеся интервалы.
func (r *Repository) GetBusyIntervals(ctx context.Context, companyID int64, date time.Time, employeeIDs []int64) ([]*domain.BusyInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(
		"i.employee_id",
		"i.service_id",
		"i.start_time",
		"i.end_time",
	).
		From("appointment_items i").
		Join("appointments a ON a.id = i.appointment_id").
		Where(squirrel.Eq{"a.company_id": companyID}).
		Where(squirrel.Eq{"a.appointment_date": date}).
		Where(squirrel.Eq{"a.status": activeStatusStrings}).
		OrderBy("i.start_time ASC")

	if len(employeeIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"i.employee_id": employeeIDs})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF i")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusyIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusyIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]*domain.BusyInterval, 0)
	for rows.Next() {
		var interval domain.BusyInterval
		if err := rows.Scan(
			&interval.EmployeeID,
			&interval.ServiceID,
			&interval.StartTime,
			&interval.EndTime,
		); err != nil {
			return nil, fmt.Errorf("%w: GetBusyIntervals - scan interval: %v", ErrScanRow, err)
		}
		intervals = append(intervals, &interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBusyIntervals - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Cancel отменяет запись с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// appointmentColumns общий select по полям таблицы записей
func appointmentColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"session_id",
		"client_id",
		"company_id",
		"appointment_date",
		"start_time",
		"end_time",
		"status",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).From("appointments")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует одну строку таблицы записей
func (r *Repository) scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.SessionID,
		&appointment.ClientID,
		&appointment.CompanyID,
		&appointment.Date,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.Status,
		&appointment.Notes,
		&appointment.CancellationReason,
		&appointment.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan appointment: %v", ErrScanRow, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

// collectAppointments сканирует список записей и подгружает их услуги
func (r *Repository) collectAppointments(ctx context.Context, executor DBExecutor, rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	ids := make([]int64, 0)

	for rows.Next() {
		appointment, err := r.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
		ids = append(ids, appointment.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return appointments, nil
	}

	items, err := r.loadItems(ctx, executor, ids)
	if err != nil {
		return nil, err
	}

	for _, appointment := range appointments {
		appointment.Items = items[appointment.ID]
	}

	return appointments, nil
}

// loadItems загружает услуги для набора записей одним запросом
func (r *Repository) loadItems(ctx context.Context, executor DBExecutor, appointmentIDs []int64) (map[int64][]*domain.AppointmentItem, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"service_id",
		"employee_id",
		"start_time",
		"end_time",
		"duration_minutes",
		"service_name",
		"service_price",
		"created_at",
	).
		From("appointment_items").
		Where(squirrel.Eq{"appointment_id": appointmentIDs}).
		OrderBy("appointment_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make(map[int64][]*domain.AppointmentItem)
	for rows.Next() {
		var item domain.AppointmentItem
		var createdAt sql.NullTime

		if err := rows.Scan(
			&item.ID,
			&item.AppointmentID,
			&item.ServiceID,
			&item.EmployeeID,
			&item.StartTime,
			&item.EndTime,
			&item.DurationMinutes,
			&item.ServiceName,
			&item.ServicePrice,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: loadItems - scan item: %v", ErrScanRow, err)
		}

		item.CreatedAt = createdAt.Time
		items[item.AppointmentID] = append(items[item.AppointmentID], &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

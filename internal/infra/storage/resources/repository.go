package resources

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// inactiveBookingStatuses статусы бронирований, не занимающих ресурсы
var inactiveBookingStatuses = []string{"cancelled_by_user", "cancelled_by_company", "no_show"}

// Repository репозиторий данных о ресурсах (грузчики, водители, конфликты бронирований)
// Движок доступности читает эти таблицы; владеет ими подсистема управления ресурсами
type Repository struct {
	db      DBExecutor
	metrics MetricsRecorder
}

// NewRepository создает новый экземпляр репозитория ресурсов
// metrics может быть nil
func NewRepository(db DBExecutor, metrics MetricsRecorder) *Repository {
	return &Repository{db: db, metrics: metrics}
}

// observe записывает длительность и исход запроса к БД
func (r *Repository) observe(operation string, started time.Time, err error) {
	if r.metrics != nil {
		r.metrics.ObserveUpstream(operation, time.Since(started), err)
	}
}

// CountResourcesByWeekday возвращает предагрегированное количество активных
// ресурсов каждого типа по дням недели
// Одна выборка на все различные дни недели месяца - вместо запроса на каждый день
func (r *Repository) CountResourcesByWeekday(ctx context.Context, weekdays []domain.Weekday) (_ map[domain.Weekday]domain.ResourceCounts, err error) {
	started := time.Now()
	defer func() { r.observe("db.count_resources_by_weekday", started, err) }()

	counts := make(map[domain.Weekday]domain.ResourceCounts, len(weekdays))
	if len(weekdays) == 0 {
		return counts, nil
	}

	moverCounts, err := r.countByWeekday(ctx, "mover_availability", "movers", "mover_id", weekdays)
	if err != nil {
		return nil, fmt.Errorf("CountResourcesByWeekday - movers: %w", err)
	}

	driverCounts, err := r.countByWeekday(ctx, "driver_availability", "drivers", "driver_id", weekdays)
	if err != nil {
		return nil, fmt.Errorf("CountResourcesByWeekday - drivers: %w", err)
	}

	for _, day := range weekdays {
		counts[day] = domain.ResourceCounts{
			Movers:  moverCounts[day],
			Drivers: driverCounts[day],
		}
	}

	return counts, nil
}

// countByWeekday считает активные ресурсы с расписанием на указанные дни недели
func (r *Repository) countByWeekday(ctx context.Context, availabilityTable, resourceTable, fkColumn string, weekdays []domain.Weekday) (map[domain.Weekday]int, error) {
	days := make([]string, len(weekdays))
	for i, d := range weekdays {
		days[i] = string(d)
	}

	query, args, err := psqlbuilder.Select(
		"a.day_of_week",
		fmt.Sprintf("COUNT(DISTINCT a.%s)", fkColumn),
	).
		From(fmt.Sprintf("%s a", availabilityTable)).
		Join(fmt.Sprintf("%s r ON r.id = a.%s", resourceTable, fkColumn)).
		Where(squirrel.Eq{"r.is_active": true, "a.day_of_week": days}).
		GroupBy("a.day_of_week").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: countByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: countByWeekday - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.Weekday]int, len(weekdays))
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("%w: countByWeekday - scan row: %v", ErrScanRow, err)
		}
		counts[domain.Weekday(day)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: countByWeekday - iterate rows: %v", ErrExecQuery, err)
	}

	return counts, nil
}

// GetDailySnapshot возвращает полный срез данных о ресурсах на дату:
// ростеры с расписаниями на этот день недели и конфликты активных бронирований
// excludeAppointmentID позволяет исключить конфликты собственной заявки
// (редактирование своей записи не должно блокировать саму себя)
func (r *Repository) GetDailySnapshot(ctx context.Context, date time.Time, excludeAppointmentID *int64) (_ *domain.DailySnapshot, err error) {
	started := time.Now()
	defer func() { r.observe("db.get_daily_snapshot", started, err) }()

	day := domain.DayOfWeek(date)

	movers, err := r.fetchRoster(ctx, "mover_availability", "movers", "mover_id", domain.ResourceMover, day)
	if err != nil {
		return nil, fmt.Errorf("GetDailySnapshot - movers: %w", err)
	}

	drivers, err := r.fetchRoster(ctx, "driver_availability", "drivers", "driver_id", domain.ResourceDriver, day)
	if err != nil {
		return nil, fmt.Errorf("GetDailySnapshot - drivers: %w", err)
	}

	moverConflicts, driverConflicts, err := r.fetchBookingConflicts(ctx, date, excludeAppointmentID)
	if err != nil {
		return nil, fmt.Errorf("GetDailySnapshot - conflicts: %w", err)
	}

	return &domain.DailySnapshot{
		Date:            domain.StartOfDayUTC(date),
		Movers:          movers,
		Drivers:         drivers,
		MoverConflicts:  moverConflicts,
		DriverConflicts: driverConflicts,
	}, nil
}

// fetchRoster загружает активные ресурсы с диапазонами доступности на день недели
func (r *Repository) fetchRoster(ctx context.Context, availabilityTable, resourceTable, fkColumn string, resourceType domain.ResourceType, day domain.Weekday) ([]domain.Resource, error) {
	query, args, err := psqlbuilder.Select(
		"r.id",
		"r.name",
		"a.start_time",
		"a.end_time",
	).
		From(fmt.Sprintf("%s a", availabilityTable)).
		Join(fmt.Sprintf("%s r ON r.id = a.%s", resourceTable, fkColumn)).
		Where(squirrel.Eq{"r.is_active": true, "a.day_of_week": string(day)}).
		OrderBy("r.id", "a.start_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: fetchRoster - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: fetchRoster - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []domain.Resource
	byID := make(map[int64]int)

	for rows.Next() {
		var (
			id         int64
			name       string
			start, end types.TimeString
		)
		if err := rows.Scan(&id, &name, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: fetchRoster - scan row: %v", ErrScanRow, err)
		}

		idx, ok := byID[id]
		if !ok {
			result = append(result, domain.Resource{
				ID:      id,
				Name:    name,
				Type:    resourceType,
				Pattern: domain.AvailabilityPattern{},
			})
			idx = len(result) - 1
			byID[id] = idx
		}

		result[idx].Pattern[day] = append(result[idx].Pattern[day], domain.TimeRange{Start: start, End: end})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: fetchRoster - iterate rows: %v", ErrExecQuery, err)
	}

	return result, nil
}

// fetchBookingConflicts загружает окна активных бронирований на дату,
// сгруппированные по назначенным ресурсам
func (r *Repository) fetchBookingConflicts(ctx context.Context, date time.Time, excludeAppointmentID *int64) (map[int64][]domain.BookingConflict, map[int64][]domain.BookingConflict, error) {
	builder := psqlbuilder.Select(
		"ba.resource_type",
		"ba.resource_id",
		"b.service_start",
		"b.service_end",
	).
		From("bookings b").
		Join("booking_assignments ba ON ba.booking_id = b.id").
		Where(squirrel.Eq{"b.service_date": domain.StartOfDayUTC(date).Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"b.status": inactiveBookingStatuses})

	if excludeAppointmentID != nil {
		builder = builder.Where(squirrel.NotEq{"b.id": *excludeAppointmentID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: fetchBookingConflicts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: fetchBookingConflicts - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	moverConflicts := make(map[int64][]domain.BookingConflict)
	driverConflicts := make(map[int64][]domain.BookingConflict)

	for rows.Next() {
		var (
			resourceType string
			conflict     domain.BookingConflict
		)
		if err := rows.Scan(&resourceType, &conflict.ResourceID, &conflict.ServiceStart, &conflict.ServiceEnd); err != nil {
			return nil, nil, fmt.Errorf("%w: fetchBookingConflicts - scan row: %v", ErrScanRow, err)
		}

		switch domain.ResourceType(resourceType) {
		case domain.ResourceMover:
			moverConflicts[conflict.ResourceID] = append(moverConflicts[conflict.ResourceID], conflict)
		case domain.ResourceDriver:
			driverConflicts[conflict.ResourceID] = append(driverConflicts[conflict.ResourceID], conflict)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: fetchBookingConflicts - iterate rows: %v", ErrExecQuery, err)
	}

	return moverConflicts, driverConflicts, nil
}

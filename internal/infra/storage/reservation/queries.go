package reservation

import (
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/psqlbuilder"
)

func insertQuery(reservation *domain.Reservation) squirrel.InsertBuilder {
	return psqlbuilder.Insert(table).
		Columns(
			"date",
			"start_time",
			"guests",
			"first_name",
			"last_name",
			"email",
			"phone",
			"status",
			"special_requests",
			"internal_notes",
		).
		Values(
			dateArg(reservation.Date),
			string(reservation.StartTime),
			reservation.Guests,
			reservation.FirstName,
			reservation.LastName,
			reservation.Email,
			reservation.Phone,
			string(reservation.Status),
			reservation.SpecialRequests,
			reservation.InternalNotes,
		).
		Suffix("RETURNING id, created_at, updated_at")
}

func listQuery(filter domain.ReservationFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("date DESC", "start_time DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": dateArg(*filter.Date)})
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		pattern := "%" + escapeLike(strings.TrimSpace(*filter.Search)) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
		})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}

	return selectBuilder
}

// activeByDateQuery не отмененные бронирования даты. forUpdate блокирует строки до конца транзакции
func activeByDateQuery(date time.Time, forUpdate bool) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"date": dateArg(date)}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("start_time ASC")

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}
	return selectBuilder
}

func updateQuery(id int64, upd domain.ReservationUpdate) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("date", dateArg(upd.Date)).
		Set("start_time", string(upd.StartTime)).
		Set("guests", upd.Guests).
		Set("status", string(upd.Status)).
		Set("internal_notes", upd.InternalNotes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))
}

func countByDateRangeQuery(from, to time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select("date", "COUNT(*)").
		From(table).
		Where(squirrel.GtOrEq{"date": dateArg(from)}).
		Where(squirrel.LtOrEq{"date": dateArg(to)}).
		GroupBy("date")
}

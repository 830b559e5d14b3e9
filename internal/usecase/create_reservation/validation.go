package create_reservation

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Validate прогоняет весь конвейер проверок над уже загруженными бронированиями.
// Чистая функция: результат зависит только от аргументов.
func Validate(
	req *Request,
	existing []*domain.Reservation,
	cfg domain.RestaurantConfig,
	now time.Time,
) (*domain.Reservation, error) {
	parsed, err := ParseRequest(req, cfg, now)
	if err != nil {
		return nil, err
	}

	if err := CheckCapacity(parsed, existing, cfg); err != nil {
		return nil, err
	}

	return parsed.Draft(), nil
}

// ParseRequest проверки, не требующие данных о других бронированиях.
// Останавливается на первой ошибке, порядок:
// поля -> формат -> размер компании -> время до прихода -> горизонт -> выходной.
func ParseRequest(req *Request, cfg domain.RestaurantConfig, now time.Time) (*ParsedRequest, error) {
	now = now.In(cfg.Location)

	// 1. Обязательные поля
	fields := normalize(req)
	if missing := missingFields(fields); len(missing) > 0 {
		return nil, domain.Reject(domain.CodeMissingFields,
			"please fill in all required fields: %s", strings.Join(missing, ", "))
	}

	// 2. Формат даты и времени
	date, err := time.ParseInLocation(domain.DateFormat, fields.Date, cfg.Location)
	if err != nil {
		return nil, domain.Reject(domain.CodeInvalidFormat, "date must be YYYY-MM-DD, got %q", fields.Date)
	}

	startTime, err := types.NewTimeStringFromString(fields.Time)
	if err != nil {
		return nil, domain.Reject(domain.CodeInvalidFormat, "time must be HH:MM, got %q", fields.Time)
	}

	// 3. Размер компании
	party, err := domain.ParsePartySize(fields.Guests)
	if err != nil {
		return nil, err
	}
	if err := party.Check(cfg.MaxPartySize); err != nil {
		return nil, err
	}

	// 4. Минимальное время до прихода считается от текущего момента, а не от открытия
	start := startTime.On(date)
	if start.Sub(now) < cfg.MinLead() {
		return nil, domain.Reject(domain.CodeTooSoon,
			"reservations must be made at least %d hours in advance", cfg.MinLeadHours)
	}

	// 5. Горизонт бронирования
	maxDate := domain.DateOnly(now).AddDate(0, 0, cfg.MaxAdvanceDays)
	if date.After(maxDate) {
		return nil, domain.Reject(domain.CodeTooFarAhead,
			"reservations can be made at most %d days in advance", cfg.MaxAdvanceDays)
	}

	// 6. Выходной день
	if cfg.IsClosedOn(date) {
		return nil, domain.Reject(domain.CodeClosedDay,
			"the restaurant is closed on %ss", strings.ToLower(cfg.ClosedWeekday.String()))
	}

	return &ParsedRequest{
		Date:            date,
		StartTime:       startTime,
		Guests:          party.Guests,
		FirstName:       fields.FirstName,
		LastName:        fields.LastName,
		Email:           fields.Email,
		Phone:           fields.Phone,
		SpecialRequests: fields.SpecialRequests,
	}, nil
}

// CheckCapacity сумма пересекающихся компаний плюс новая не должна превышать вместимость
func CheckCapacity(p *ParsedRequest, existing []*domain.Reservation, cfg domain.RestaurantConfig) error {
	overlapping := domain.OverlappingGuests(p.StartsAt(), cfg.TableDuration(), existing)
	if overlapping+p.Guests > cfg.Capacity {
		left := cfg.Capacity - overlapping
		if left < 0 {
			left = 0
		}
		return domain.Reject(domain.CodeNoCapacity,
			"no table available at %s for %d guests (%d seats left)", p.StartTime, p.Guests, left)
	}
	return nil
}

// normalize обрезает пробелы; пустые пожелания превращаются в nil
func normalize(req *Request) Request {
	out := Request{
		Date:      strings.TrimSpace(req.Date),
		Time:      strings.TrimSpace(req.Time),
		Guests:    strings.TrimSpace(req.Guests),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
	}
	if req.SpecialRequests != nil {
		if s := strings.TrimSpace(*req.SpecialRequests); s != "" {
			out.SpecialRequests = &s
		}
	}
	return out
}

func missingFields(req Request) []string {
	required := []struct {
		name  string
		value string
	}{
		{"date", req.Date},
		{"time", req.Time},
		{"guests", req.Guests},
		{"first_name", req.FirstName},
		{"last_name", req.LastName},
		{"email", req.Email},
		{"phone", req.Phone},
	}

	missing := make([]string, 0)
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

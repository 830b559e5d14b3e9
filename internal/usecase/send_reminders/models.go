package send_reminders

import "time"

const (
	resultSent   = "sent"
	resultFailed = "failed"
)

// Response итог рассылки напоминаний
type Response struct {
	Date   time.Time // Дата бронирований, о которых напомнили
	Total  int
	Sent   int
	Failed int
}

package models

// MealWindowResponse окно приема гостей
type MealWindowResponse struct {
	Meal  string `json:"meal"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// SettingsResponse публичные правила бронирования ресторана
type SettingsResponse struct {
	Name                   string               `json:"name"`
	Timezone               string               `json:"timezone"`
	Capacity               int                  `json:"capacity"`
	TableDurationMinutes   int                  `json:"tableDurationMinutes"`
	MinLeadHours           int                  `json:"minLeadHours"`
	MaxAdvanceDays         int                  `json:"maxAdvanceDays"`
	ClosedWeekday          string               `json:"closedWeekday"`
	SlotGranularityMinutes int                  `json:"slotGranularityMinutes"`
	MaxPartySize           int                  `json:"maxPartySize"`
	OverflowPartySize      string               `json:"overflowPartySize"` // значение "больше максимума" в форме
	Windows                []MealWindowResponse `json:"windows"`
	BookableFrom           string               `json:"bookableFrom"`  // первая дата, YYYY-MM-DD
	BookableUntil          string               `json:"bookableUntil"` // последняя дата, YYYY-MM-DD
}

package models

// CategoryCount is one row of the top-categories aggregation.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Statistics is the read-only blocking aggregate.
type Statistics struct {
	TotalBlockedToday int             `json:"total_blocked_today"`
	TotalBlockedWeek  int             `json:"total_blocked_week"`
	TotalBlockedMonth int             `json:"total_blocked_month"`
	TotalBlockedAll   int             `json:"total_blocked_all"`
	TotalSpamNumbers  int             `json:"total_spam_numbers"`
	TopCategories     []CategoryCount `json:"top_categories"`
}

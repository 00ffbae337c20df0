package reminder

// Category and action identifiers shared with the delivery channels.
// These are wire values: changing one breaks every pending reminder
// already scheduled with the old id.
const (
	CategoryDailyIntention   = "DAILY_INTENTION"
	CategoryWeeklyIntention  = "WEEKLY_INTENTION"
	CategoryMonthlyIntention = "MONTHLY_INTENTION"
	CategoryGeneralReminder  = "GENERAL_REMINDER"

	ActionSetIntention = "SET_INTENTION_ACTION"
	ActionSkip         = "SKIP_ACTION"
	// ActionDefaultOpen is the implicit action when the user opens a
	// reminder without choosing a button.
	ActionDefaultOpen = "DEFAULT_OPEN_ACTION"
)

// ReplyCategory reports whether the category accepts a free-text
// reply plus a skip action.
func ReplyCategory(categoryID string) bool {
	switch categoryID {
	case CategoryDailyIntention, CategoryWeeklyIntention, CategoryMonthlyIntention:
		return true
	default:
		return false
	}
}

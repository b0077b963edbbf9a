package models

// Summary is the fixed-shape structured reply produced by the summary relay.
type Summary struct {
	WeeklySummary        string   `json:"weekly_summary"`
	EmotionalPatterns    []string `json:"emotional_patterns"`
	WeeklyThemes         []string `json:"weekly_themes"`
	LimitingBeliefs      []string `json:"limiting_beliefs"`
	StrengthsAndProgress []string `json:"strengths_and_progress"`
	CoachingInsights     []string `json:"coaching_insights"`
	ReflectionQuestions  []string `json:"reflection_questions"`
	NextWeekFocus        []string `json:"next_week_focus"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

package transport

// RegisterRequest creates or updates a user identity.
type RegisterRequest struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type LogoutRequest struct {
	SessionID string `json:"session_id"`
}

// ActivityCreateRequest is the add-operation payload: activity data minus
// id, owner, status and timestamps.
type ActivityCreateRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Date              string   `json:"date"`
	Time              string   `json:"time"`
	Type              string   `json:"type"`
	Priority          string   `json:"priority"`
	Category          string   `json:"category"`
	Frequency         string   `json:"frequency"`
	EndDate           string   `json:"end_date"`
	WeekDays          []string `json:"week_days"`
	EstimatedDuration int      `json:"estimated_duration"`
}

type MetricValueRequest struct {
	Value float64 `json:"value"`
}

type MetricDeltaRequest struct {
	Amount float64 `json:"amount"`
}

package transport

// RegisterRequest creates an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest authenticates by email and password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest rotates a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TaskRequest creates or updates a task. Duration fields are minutes.
type TaskRequest struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	ManualDuration *int   `json:"manual_duration"`
	Category       string `json:"category"`
	Priority       string `json:"priority"`
	DueDate        string `json:"due_date"` // "2006-01-02"
	Completed      bool   `json:"completed"`
}

// ScheduleRequest places a task on the grid. Exactly one of Time or the drop
// geometry (Hour + OffsetPx + RowHeightPx) must be supplied; an empty Date
// means today.
type ScheduleRequest struct {
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Hour        *int     `json:"hour"`
	OffsetPx    *float64 `json:"offset_px"`
	RowHeightPx *float64 `json:"row_height_px"`
}

// EstimateRequest previews a duration estimate.
type EstimateRequest struct {
	Description string `json:"description"`
}

// ProfileUpdateRequest edits display fields.
type ProfileUpdateRequest struct {
	Name        string            `json:"name"`
	AvatarURL   string            `json:"avatar_url"`
	Preferences map[string]string `json:"preferences"`
}

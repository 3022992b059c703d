package models

// WaitlistEntry is an email captured by the landing page form
type WaitlistEntry struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

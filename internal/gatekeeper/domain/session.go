package domain

import "time"

// Session is a provider-issued session as this service sees it.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
	ExpiresAt   time.Time
}

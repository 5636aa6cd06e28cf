package entity

import "time"

// Session is an issued access/refresh token pair.
type Session struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

package model

import "time"

// AdminLoginRequest is the payload of POST /api/admin/login
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminToken is returned on a successful login.
type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// VisitorStats is shown on the admin screen.
type VisitorStats struct {
	Date          string `json:"date"`
	Key           string `json:"key"`
	VisitorsToday int64  `json:"visitorsToday"`
}

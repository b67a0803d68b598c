package domain

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID  int64 `json:"userId"`
	IsAdmin bool  `json:"isAdmin"`
}

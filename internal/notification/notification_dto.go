package notification

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type Notification struct {
	ID        upstream.ID `json:"id"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Type      string      `json:"notification_type"`
	Priority  string      `json:"priority"`
	IsRead    bool        `json:"is_read"`
	ActionURL *string     `json:"action_url,omitempty"`
	CreatedAt string      `json:"created_at,omitempty"`
}

type Filter struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Priority   string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
}

func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.UnreadOnly {
		v.Set("is_read", "false")
	}
	if f.Type != "" {
		v.Set("notification_type", strings.ToLower(f.Type))
	}
	if f.Priority != "" {
		v.Set("priority", f.Priority)
	}
	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return v
}

func (f Filter) CacheString() string {
	return f.Values().Encode()
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

// unreadCountPayload accepts both field names the HR API has used.
type unreadCountPayload struct {
	Count       *int `json:"count"`
	UnreadCount *int `json:"unread_count"`
}

func (p unreadCountPayload) value() int {
	switch {
	case p.UnreadCount != nil:
		return *p.UnreadCount
	case p.Count != nil:
		return *p.Count
	}
	return 0
}

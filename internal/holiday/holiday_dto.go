package holiday

import "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

type Holiday struct {
	ID          upstream.ID `json:"id"`
	Name        string      `json:"name"`
	Date        string      `json:"date"`
	Type        string      `json:"holiday_type,omitempty"`
	Description string      `json:"description,omitempty"`
	IsOptional  bool        `json:"is_optional"`
}

type Query struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

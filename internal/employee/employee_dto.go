package employee

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"
)

type Employee struct {
	ID          upstream.ID   `json:"id"`
	EmployeeID  string        `json:"employee_id,omitempty"`
	Username    string        `json:"username,omitempty"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Email       string        `json:"email,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	Designation string        `json:"designation,omitempty"`
	Department  string        `json:"department,omitempty"`
	Category    string        `json:"category,omitempty"`
	ReportsTo   *upstream.Ref `json:"reports_to,omitempty"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type Filter struct {
	Search     string `form:"search"`
	Department string `form:"department"`
	Category   string `form:"category"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
}

func (f Filter) Values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(f.Search); s != "" {
		v.Set("search", s)
	}
	if f.Department != "" {
		v.Set("department", f.Department)
	}
	if f.Category != "" {
		v.Set("category", strings.ToLower(f.Category))
	}
	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return v
}

func (f Filter) CacheString() string {
	return f.Values().Encode()
}

// UpdateProfileRequest is a partial update of the caller's own profile.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=100"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Address   *string `json:"address,omitempty" binding:"omitempty,max=500"`
	Bio       *string `json:"bio,omitempty" binding:"omitempty,max=1000"`
}

func (r UpdateProfileRequest) empty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Phone == nil && r.Address == nil && r.Bio == nil
}

// Section is an optional profile sub-resource. The HR API answers 404 for
// sections a tenant has not enabled.
type Section string

const (
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionExperience     Section = "experience"
	SectionCertifications Section = "certifications"
	SectionProjects       Section = "projects"
	SectionPerformance    Section = "performance"
	SectionGoals          Section = "goals"
	SectionActivities     Section = "activities"
)

var Sections = []Section{
	SectionEducation,
	SectionSkills,
	SectionExperience,
	SectionCertifications,
	SectionProjects,
	SectionPerformance,
	SectionGoals,
	SectionActivities,
}

func ParseSection(s string) (Section, bool) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, true
		}
	}
	return "", false
}

type DashboardResponse struct {
	Profile  Employee                      `json:"profile"`
	Sections map[Section][]json.RawMessage `json:"sections"`
}

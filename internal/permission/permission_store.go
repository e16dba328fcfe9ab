package permission

import (
	"sort"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
)

// Store holds one session's permission set and role. Checks short-circuit
// to true for admin roles before the enforcer is consulted.
type Store struct {
	mu       sync.RWMutex
	enforcer *casbin.Enforcer
	perms    []string
	role     string
}

func NewStore() (*Store, error) {
	e, err := newEnforcer()
	if err != nil {
		return nil, err
	}
	return &Store{enforcer: e}, nil
}

// Load replaces the set and role. Duplicate and blank tokens are dropped.
func (s *Store) Load(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	seen := make(map[string]struct{}, len(snap.Permissions))
	perms := make([]string, 0, len(snap.Permissions))
	for _, tok := range snap.Permissions {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		obj, act := splitToken(tok)
		if _, err := s.enforcer.AddPolicy(sessionSubject, obj, act); err != nil {
			return err
		}
		perms = append(perms, tok)
	}
	sort.Strings(perms)

	s.perms = perms
	s.role = strings.TrimSpace(snap.Role)
	return nil
}

// ClearPermissions empties the set but keeps the role.
func (s *Store) ClearPermissions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enforcer.ClearPolicy()
	s.perms = nil
}

func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enforcer.ClearPolicy()
	s.perms = nil
	s.role = ""
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	perms := make([]string, len(s.perms))
	copy(perms, s.perms)
	return Snapshot{Permissions: perms, Role: s.role}
}

func (s *Store) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAdminLocked()
}

func (s *Store) isAdminLocked() bool {
	switch strings.ToLower(s.role) {
	case RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

func (s *Store) HasPermission(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.isAdminLocked() {
		return true
	}
	return s.enforceLocked(token)
}

func (s *Store) HasAnyPermission(tokens ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.isAdminLocked() {
		return true
	}
	for _, tok := range tokens {
		if s.enforceLocked(tok) {
			return true
		}
	}
	return false
}

func (s *Store) HasAllPermissions(tokens ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.isAdminLocked() {
		return true
	}
	for _, tok := range tokens {
		if !s.enforceLocked(tok) {
			return false
		}
	}
	return true
}

func (s *Store) Flags() Flags {
	return Flags{
		CanManageEvents:         s.HasAnyPermission(TokenEventsCreate, TokenEventsUpdate, TokenEventsDelete),
		CanApproveLeave:         s.HasAnyPermission(TokenLeaveApprove, TokenLeaveReject),
		CanManageHR:             s.HasAnyPermission(TokenHRManage, TokenEmployeesUpdate),
		CanViewStaff:            s.HasPermission(TokenEmployeesView),
		CanManageReimbursements: s.HasAnyPermission(TokenReimbursementsApprove, TokenReimbursementsUpdateStatus),
		CanReviewHires:          s.HasPermission(TokenHireReview),
	}
}

func (s *Store) enforceLocked(token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}
	obj, act := splitToken(token)
	ok, err := s.enforcer.Enforce(sessionSubject, obj, act)
	return err == nil && ok
}

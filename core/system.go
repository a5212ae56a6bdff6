package core

// System system info
type System struct {
	Version string
	Genesis int64
	Admins  []string
}

// IsAdmin check admin
func (s *System) IsAdmin(userID string) bool {
	for _, a := range s.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

package session

import (
	"Linkshelf/internal/cli/prefs"
	"Linkshelf/internal/cli/store"
)

// Restore applies remembered preferences. A user that no longer exists is skipped.
func (s *Session) Restore(p prefs.Prefs) {
	if m, ok := store.ParseViewMode(p.View); ok {
		s.store.SetViewMode(m)
	}
	if p.LastUser == "" {
		return
	}
	if err := s.selectUser([]string{p.LastUser}); err != nil {
		s.printf("• remembered user %q is gone, showing all users\n", p.LastUser)
	}
}

// Prefs captures what should be remembered for the next session.
func (s *Session) Prefs() prefs.Prefs {
	snap := s.store.Snapshot()
	p := prefs.Prefs{View: string(snap.View)}
	if snap.User != nil {
		p.LastUser = snap.User.Username
	}
	return p
}

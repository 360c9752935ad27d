package alerts

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("alert not found")

type Service struct {
	repo      Repository
	snap      Snapshot
	refresher Refresher
}

func NewService(repo Repository, snap Snapshot, refresher Refresher) *Service {
	return &Service{repo: repo, snap: snap, refresher: refresher}
}

func (s *Service) List() []Alert {
	return s.snap.Alerts()
}

func (s *Service) Unread() int {
	return CountUnread(s.snap.Alerts())
}

// MarkRead marca una alerta como leída y refresca. Si ya estaba leída no hace nada.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}

	var found *Alert
	for _, a := range s.snap.Alerts() {
		if a.ID == id {
			a := a
			found = &a
			break
		}
	}
	if found == nil {
		return ErrNotFound
	}
	if found.Read {
		return nil
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return err
	}
	s.refresher.Refresh(ctx)
	return nil
}

package editor

import (
	"context"
	"strings"
	"sync"
	"time"

	"collegeadmin/internal/logger"
	"collegeadmin/internal/models"
	"collegeadmin/internal/services"

	"go.uber.org/zap"
)

// SectionSource читает секцию через кэш и подписывает на её обновления.
type SectionSource interface {
	Saver
	Get(ctx context.Context, ref services.SectionRef) (*models.Section, error)
	Subscribe(ctx context.Context, ref services.SectionRef, fn func(*models.Section)) (unsubscribe func())
}

type draft struct {
	editor      *Editor
	unsubscribe func()
	lastUsed    time.Time
}

// Store хранит редакторы между запросами: ключом служат сессия и секция.
type Store struct {
	mu       sync.Mutex
	drafts   map[string]*draft
	sections SectionSource
	uploader Uploader
	now      func() time.Time
}

func NewStore(sections SectionSource, uploader Uploader) *Store {
	return &Store{
		drafts:   make(map[string]*draft),
		sections: sections,
		uploader: uploader,
		now:      time.Now,
	}
}

func draftKey(sessionID string, ref services.SectionRef) string {
	return sessionID + "|" + ref.Key()
}

// Open возвращает редактор секции для сессии, создавая его при первом
// обращении. Редактор в режиме просмотра подтягивает актуальную версию
// из кэша.
func (s *Store) Open(ctx context.Context, sessionID string, ref services.SectionRef) (*Editor, error) {
	sec, err := s.sections.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	key := draftKey(sessionID, ref)

	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.drafts[key]; ok {
		d.lastUsed = s.now()
		d.editor.Refresh(sec)
		return d.editor, nil
	}

	e := New(ref, sec, s.sections, s.uploader)
	s.drafts[key] = &draft{
		editor:      e,
		unsubscribe: s.sections.Subscribe(ctx, ref, e.Refresh),
		lastUsed:    s.now(),
	}
	return e, nil
}

// Close выбрасывает черновик секции.
func (s *Store) Close(sessionID string, ref services.SectionRef) {
	key := draftKey(sessionID, ref)
	s.mu.Lock()
	d, ok := s.drafts[key]
	delete(s.drafts, key)
	s.mu.Unlock()
	if ok {
		d.unsubscribe()
	}
}

// CloseSession выбрасывает все черновики сессии (logout).
func (s *Store) CloseSession(sessionID string) int {
	prefix := sessionID + "|"
	var closed []*draft

	s.mu.Lock()
	for key, d := range s.drafts {
		if strings.HasPrefix(key, prefix) {
			closed = append(closed, d)
			delete(s.drafts, key)
		}
	}
	s.mu.Unlock()

	for _, d := range closed {
		d.unsubscribe()
	}
	return len(closed)
}

// Sweep удаляет черновики, не использовавшиеся дольше idle.
func (s *Store) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)
	var stale []*draft

	s.mu.Lock()
	for key, d := range s.drafts {
		if d.lastUsed.Before(cutoff) && !d.editor.Snapshot().Saving {
			stale = append(stale, d)
			delete(s.drafts, key)
		}
	}
	s.mu.Unlock()

	for _, d := range stale {
		d.unsubscribe()
	}
	return len(stale)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// StartSweeper периодически чистит брошенные черновики до отмены ctx.
func (s *Store) StartSweeper(ctx context.Context, every, idle time.Duration) {
	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := s.Sweep(idle); n > 0 {
					logger.Log.Info("Редактор: удалены брошенные черновики", zap.Int("count", n))
				}
			}
		}
	}()
}

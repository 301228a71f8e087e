package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"collegeadmin/internal/models"
	"collegeadmin/internal/querycache"
	"collegeadmin/internal/services"
	"collegeadmin/internal/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type fakeSaver struct {
	mu    sync.Mutex
	calls []models.SectionUpdate
	err   error
	block chan struct{}
}

func (f *fakeSaver) Update(_ context.Context, _ services.SectionRef, in models.SectionUpdate) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, in)
	return f.err
}

type fakeUploader struct {
	fail map[string]bool
	seen []string
}

func (f *fakeUploader) Upload(_ context.Context, file upload.File, _ upload.Kind) (string, error) {
	f.seen = append(f.seen, file.Name)
	if f.fail[file.Name] {
		return "", errors.New(file.Name + ": upload failed")
	}
	return "https://cdn/" + file.Name, nil
}

var testRef = services.SectionRef{CollegeID: "c1", ParentID: "t1", SectionID: "s1"}

func newEditor(saver Saver, up Uploader) *Editor {
	return New(testRef, &models.Section{ID: "s1", Name: "About", Content: "hello"}, saver, up)
}

func TestEditor_ModeTransitions(t *testing.T) {
	e := newEditor(&fakeSaver{}, &fakeUploader{})
	assert.Equal(t, ModeViewing, e.Mode())

	assert.ErrorIs(t, e.Dispatch(SetContent{Content: "x"}), ErrNotEditing)

	e.Edit()
	require.NoError(t, e.Dispatch(SetContent{Content: "draft"}))
	assert.True(t, e.IsDirty())

	e.Cancel()
	assert.Equal(t, ModeViewing, e.Mode())
	assert.Equal(t, "hello", e.Snapshot().Form.Content)
	assert.False(t, e.IsDirty())
}

func TestEditor_SaveRefusedWhenPristine(t *testing.T) {
	saver := &fakeSaver{}
	e := newEditor(saver, &fakeUploader{})
	e.Edit()

	assert.False(t, e.Snapshot().CanSave)
	assert.ErrorIs(t, e.Save(context.Background()), ErrNothingToSave)

	// правка и откат снова делают форму нетронутой
	require.NoError(t, e.Dispatch(SetContent{Content: "x"}, SetContent{Content: "hello"}))
	assert.ErrorIs(t, e.Save(context.Background()), ErrNothingToSave)
	assert.Empty(t, saver.calls)
}

func TestEditor_SaveSuccessExitsEditMode(t *testing.T) {
	saver := &fakeSaver{}
	e := newEditor(saver, &fakeUploader{})
	e.Edit()
	require.NoError(t, e.Dispatch(SetContent{Content: "new"}, ChooseHorizontal{}))

	require.NoError(t, e.Save(context.Background()))

	st := e.Snapshot()
	assert.Equal(t, ModeViewing, st.Mode)
	assert.False(t, st.Dirty)
	assert.Equal(t, "new", st.Form.Content)
	require.Len(t, saver.calls, 1)
	assert.Equal(t, "new", saver.calls[0].Content)
	assert.True(t, saver.calls[0].HasMedia.Has(models.MediaCarousel))
}

func TestEditor_SaveFailureStaysEditing(t *testing.T) {
	saver := &fakeSaver{err: errors.New("validation failed")}
	e := newEditor(saver, &fakeUploader{})
	e.Edit()
	require.NoError(t, e.Dispatch(SetName{Name: "Renamed"}))

	require.Error(t, e.Save(context.Background()))

	st := e.Snapshot()
	assert.Equal(t, ModeEditing, st.Mode)
	assert.Equal(t, "Renamed", st.Form.Name)
	assert.True(t, st.CanSave)
}

func TestEditor_SaveInFlight(t *testing.T) {
	saver := &fakeSaver{block: make(chan struct{})}
	e := newEditor(saver, &fakeUploader{})
	e.Edit()
	require.NoError(t, e.Dispatch(SetContent{Content: "new"}))

	done := make(chan error, 1)
	go func() { done <- e.Save(context.Background()) }()

	require.Eventually(t, func() bool { return e.Snapshot().Saving }, time.Second, 5*time.Millisecond)
	assert.False(t, e.Snapshot().CanSave)
	assert.ErrorIs(t, e.Save(context.Background()), ErrSaveInFlight)
	assert.ErrorIs(t, e.Dispatch(SetContent{Content: "more"}), ErrSaveInFlight)

	close(saver.block)
	require.NoError(t, <-done)
	assert.Len(t, saver.calls, 1)
}

func TestEditor_UploadBatchPartialSuccess(t *testing.T) {
	up := &fakeUploader{fail: map[string]bool{"a.png": true}}
	e := newEditor(&fakeSaver{}, up)
	e.Edit()

	err := e.UploadImages(context.Background(), []upload.File{
		{Name: "a.png"}, {Name: "b.png"}, {Name: "c.png"},
	})

	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, up.seen)

	st := e.Snapshot()
	require.Len(t, st.Form.Images, 2)
	assert.Equal(t, "https://cdn/b.png", st.Form.Images[0].URL)
	assert.Equal(t, "https://cdn/c.png", st.Form.Images[1].URL)
}

func TestEditor_UploadPDFsUsesFileName(t *testing.T) {
	e := newEditor(&fakeSaver{}, &fakeUploader{})
	e.Edit()

	require.NoError(t, e.UploadPDFs(context.Background(), []upload.File{{Name: "fees.pdf"}}))
	pdfs := e.Snapshot().Form.PDFs
	require.Len(t, pdfs, 1)
	assert.Equal(t, models.PDF{Name: "fees.pdf", URL: "https://cdn/fees.pdf"}, pdfs[0])
}

func TestEditor_UploadRequiresEditing(t *testing.T) {
	e := newEditor(&fakeSaver{}, &fakeUploader{})
	assert.ErrorIs(t, e.UploadImages(context.Background(), []upload.File{{Name: "a.png"}}), ErrNotEditing)
}

func TestEditor_RefreshOnlyWhileViewing(t *testing.T) {
	e := newEditor(&fakeSaver{}, &fakeUploader{})

	e.Refresh(&models.Section{ID: "s1", Name: "About", Content: "server v2"})
	assert.Equal(t, "server v2", e.Snapshot().Form.Content)

	e.Edit()
	require.NoError(t, e.Dispatch(SetContent{Content: "my draft"}))
	e.Refresh(&models.Section{ID: "s1", Name: "About", Content: "server v3"})
	assert.Equal(t, "my draft", e.Snapshot().Form.Content)
}

// Мок секций поверх настоящего кэша: проверяет, что сохранение через
// Store доходит до редактора фоновым обновлением.
type memSections struct {
	mu    sync.Mutex
	sec   models.Section
	cache *querycache.Cache
	svc   *services.SectionService
}

func (m *memSections) ListSections(context.Context, string) ([]models.Section, error) {
	return nil, nil
}
func (m *memSections) GetSection(context.Context, string, string, string) (*models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sec
	return &s, nil
}
func (m *memSections) AddSection(context.Context, string, string, models.CreateSectionRequest) error {
	return nil
}
func (m *memSections) UpdateSection(_ context.Context, _, _ string, in models.SectionUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sec.Name = in.Name
	m.sec.Content = in.Content
	return nil
}
func (m *memSections) DeleteSection(context.Context, string, string, string) error { return nil }

func TestStore_OpenSaveRefresh(t *testing.T) {
	mem := &memSections{sec: models.Section{ID: "s1", Name: "About", Content: "v1"}}
	mem.cache = querycache.New(0)
	mem.svc = services.NewSectionService(mem, mem.cache)
	store := NewStore(mem.svc, &fakeUploader{})
	ctx := context.Background()

	e, err := store.Open(ctx, "sess-1", testRef)
	require.NoError(t, err)
	again, err := store.Open(ctx, "sess-1", testRef)
	require.NoError(t, err)
	assert.Same(t, e, again)

	other, err := store.Open(ctx, "sess-2", testRef)
	require.NoError(t, err)
	assert.NotSame(t, e, other)

	e.Edit()
	require.NoError(t, e.Dispatch(SetContent{Content: "v2"}))
	require.NoError(t, e.Save(ctx))
	mem.cache.Wait()

	// вторая сессия в режиме просмотра получила новую версию подпиской
	assert.Equal(t, "v2", other.Snapshot().Form.Content)

	assert.Equal(t, 1, store.CloseSession("sess-1"))
	assert.Equal(t, 1, store.Len())
}

func TestStore_Sweep(t *testing.T) {
	mem := &memSections{sec: models.Section{ID: "s1", Name: "About"}}
	mem.cache = querycache.New(0)
	mem.svc = services.NewSectionService(mem, mem.cache)
	store := NewStore(mem.svc, &fakeUploader{})

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_, err := store.Open(context.Background(), "sess-1", testRef)
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)
	assert.Equal(t, 0, store.Sweep(time.Hour))
	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, store.Sweep(time.Hour))
	assert.Equal(t, 0, store.Len())
}

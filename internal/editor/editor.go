// Package editor реализует редактор секции.
//
// Editor держит черновик формы и переключается между режимами просмотра и
// редактирования. Все изменения черновика идут через Reduce, поэтому любое
// наблюдаемое состояние согласовано. Save отправляет черновик бэкенду и при
// успехе возвращает редактор в режим просмотра; при ошибке режим и черновик
// сохраняются.
package editor

import (
	"context"
	"errors"
	"sync"

	"collegeadmin/internal/logger"
	"collegeadmin/internal/models"
	"collegeadmin/internal/services"
	"collegeadmin/internal/upload"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "viewing"
}

var (
	ErrNotEditing    = errors.New("section is not in edit mode")
	ErrNothingToSave = errors.New("no changes to save")
	ErrSaveInFlight  = errors.New("save already in progress")
)

type Saver interface {
	Update(ctx context.Context, ref services.SectionRef, in models.SectionUpdate) error
}

type Uploader interface {
	Upload(ctx context.Context, f upload.File, kind upload.Kind) (string, error)
}

// State хранит снимок редактора для отрисовки.
type State struct {
	Ref     services.SectionRef
	Mode    Mode
	Form    Form
	Section *models.Section
	Dirty   bool
	Saving  bool
	CanSave bool
}

type Editor struct {
	mu       sync.Mutex
	ref      services.SectionRef
	base     *models.Section
	pristine Form
	form     Form
	mode     Mode
	saving   bool

	saver    Saver
	uploader Uploader
}

func New(ref services.SectionRef, sec *models.Section, saver Saver, uploader Uploader) *Editor {
	f := FormFromSection(sec)
	return &Editor{
		ref:      ref,
		base:     sec,
		pristine: f,
		form:     f.clone(),
		saver:    saver,
		uploader: uploader,
	}
}

var formEqual = cmpopts.EquateEmpty()

func (e *Editor) dirtyLocked() bool {
	return !cmp.Equal(e.form, e.pristine, formEqual)
}

func (e *Editor) canSaveLocked() bool {
	return e.mode == ModeEditing && !e.saving && e.dirtyLocked()
}

func (e *Editor) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Ref:     e.ref,
		Mode:    e.mode,
		Form:    e.form.clone(),
		Section: e.form.Apply(e.base),
		Dirty:   e.dirtyLocked(),
		Saving:  e.saving,
		CanSave: e.canSaveLocked(),
	}
}

func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Editor) IsDirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirtyLocked()
}

// Edit: viewing -> editing. Черновик начинается с последнего серверного состояния.
func (e *Editor) Edit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode == ModeEditing {
		return
	}
	e.mode = ModeEditing
	e.form = e.pristine.clone()
}

// Cancel: editing -> viewing, черновик сбрасывается.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.saving {
		return
	}
	e.mode = ModeViewing
	e.form = e.pristine.clone()
}

func (e *Editor) Dispatch(actions ...Action) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != ModeEditing {
		return ErrNotEditing
	}
	if e.saving {
		return ErrSaveInFlight
	}
	for _, a := range actions {
		e.form = Reduce(e.form, a)
	}
	return nil
}

// Save отправляет черновик. Запрещён для нетронутой формы и во время
// другого сохранения.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	switch {
	case e.mode != ModeEditing:
		e.mu.Unlock()
		return ErrNotEditing
	case e.saving:
		e.mu.Unlock()
		return ErrSaveInFlight
	case !e.dirtyLocked():
		e.mu.Unlock()
		return ErrNothingToSave
	}
	e.saving = true
	submitted := e.form.clone()
	ref := e.ref
	e.mu.Unlock()

	err := e.saver.Update(ctx, ref, submitted.Update())

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if err != nil {
		logger.WithCtx(ctx).Warn("Редактор: сохранение секции не удалось",
			zap.String("section_id", ref.SectionID), zap.Error(err))
		return err
	}
	e.pristine = submitted
	e.base = submitted.Apply(e.base)
	e.form = submitted.clone()
	e.mode = ModeViewing
	logger.WithCtx(ctx).Info("Редактор: секция сохранена", zap.String("section_id", ref.SectionID))
	return nil
}

// Refresh принимает свежую серверную версию секции. В режиме просмотра она
// заменяет форму; черновик в режиме редактирования не трогается.
func (e *Editor) Refresh(sec *models.Section) {
	if sec == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.base = sec
	if e.mode == ModeEditing {
		return
	}
	e.pristine = FormFromSection(sec)
	e.form = e.pristine.clone()
}

// UploadImages загружает файлы по одному и добавляет каждое успешно
// загруженное изображение в конец списка. Ошибки не прерывают пачку и
// возвращаются объединённой ошибкой.
func (e *Editor) UploadImages(ctx context.Context, files []upload.File) error {
	return e.uploadEach(ctx, files, upload.KindImage, func(f upload.File, url string) Action {
		return AppendImage{Image: models.Image{URL: url}}
	})
}

// UploadPDFs делает то же для PDF; имя файла становится названием документа.
func (e *Editor) UploadPDFs(ctx context.Context, files []upload.File) error {
	return e.uploadEach(ctx, files, upload.KindPDF, func(f upload.File, url string) Action {
		return AppendPDF{PDF: models.PDF{Name: f.Name, URL: url}}
	})
}

func (e *Editor) uploadEach(ctx context.Context, files []upload.File, kind upload.Kind, toAction func(upload.File, string) Action) error {
	if e.Mode() != ModeEditing {
		return ErrNotEditing
	}
	var errs error
	for _, f := range files {
		url, err := e.uploader.Upload(ctx, f, kind)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := e.Dispatch(toAction(f, url)); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

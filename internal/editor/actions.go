package editor

import (
	"strings"

	"collegeadmin/internal/models"
)

// Action — именованное изменение формы. Каждое действие переводит форму
// из одного согласованного состояния в другое за один шаг.
type Action interface {
	apply(f *Form)
}

// Reduce не меняет исходную форму.
func Reduce(f Form, a Action) Form {
	next := f.clone()
	if a != nil {
		a.apply(&next)
	}
	return next
}

type SetName struct{ Name string }

func (a SetName) apply(f *Form) { f.Name = a.Name }

type SetContent struct{ Content string }

func (a SetContent) apply(f *Form) { f.Content = a.Content }

type SetHideHeading struct{ Hide bool }

func (a SetHideHeading) apply(f *Form) { f.HideHeading = a.Hide }

// ChooseHorizontal показывает изображения каруселью над контентом.
type ChooseHorizontal struct{}

func (ChooseHorizontal) apply(f *Form) {
	f.HasMedia[models.MediaCarousel] = true
	f.HasMedia[models.MediaImage] = false
	f.MediaPosition[models.MediaCarousel] = models.PositionBefore
	f.MediaPosition[models.MediaImage] = models.PositionUnset
}

// ChooseVertical показывает изображения столбиком над контентом.
type ChooseVertical struct{}

func (ChooseVertical) apply(f *Form) {
	f.HasMedia[models.MediaImage] = true
	f.HasMedia[models.MediaCarousel] = false
	f.MediaPosition[models.MediaImage] = models.PositionBefore
	f.MediaPosition[models.MediaCarousel] = models.PositionUnset
}

// SetImagePosition пишет одну позицию и карусели, и вертикальному виду:
// активный вид (он всегда один) её подхватывает. Флаги не меняются.
// Позиции вне before_content/after_content игнорируются.
type SetImagePosition struct{ Position models.MediaPosition }

func (a SetImagePosition) apply(f *Form) {
	if a.Position != models.PositionBefore && a.Position != models.PositionAfter {
		return
	}
	f.MediaPosition[models.MediaCarousel] = a.Position
	f.MediaPosition[models.MediaImage] = a.Position
}

// RemoveAllImages — кнопка "Remove Carousel": снимает оба флага,
// обе позиции и очищает список изображений.
type RemoveAllImages struct{}

func (RemoveAllImages) apply(f *Form) {
	f.HasMedia[models.MediaCarousel] = false
	f.HasMedia[models.MediaImage] = false
	f.MediaPosition[models.MediaCarousel] = models.PositionUnset
	f.MediaPosition[models.MediaImage] = models.PositionUnset
	f.Images = []models.Image{}
}

type AppendImage struct{ Image models.Image }

func (a AppendImage) apply(f *Form) {
	if strings.TrimSpace(a.Image.URL) == "" {
		return
	}
	f.Images = append(f.Images, a.Image)
}

type RemoveImage struct{ Index int }

func (a RemoveImage) apply(f *Form) {
	if a.Index < 0 || a.Index >= len(f.Images) {
		return
	}
	f.Images = append(f.Images[:a.Index], f.Images[a.Index+1:]...)
}

type SetImageDescription struct {
	Index       int
	Description string
}

func (a SetImageDescription) apply(f *Form) {
	if a.Index < 0 || a.Index >= len(f.Images) {
		return
	}
	f.Images[a.Index].Description = a.Description
}

// SetPDFPosition включает PDF и задаёт их позицию.
type SetPDFPosition struct{ Position models.MediaPosition }

func (a SetPDFPosition) apply(f *Form) {
	if a.Position != models.PositionBefore && a.Position != models.PositionAfter {
		return
	}
	f.HasMedia[models.MediaPDF] = true
	f.MediaPosition[models.MediaPDF] = a.Position
}

type AppendPDF struct{ PDF models.PDF }

func (a AppendPDF) apply(f *Form) {
	if strings.TrimSpace(a.PDF.URL) == "" {
		return
	}
	f.PDFs = append(f.PDFs, a.PDF)
}

type UpdatePDF struct {
	Index       int
	Name        string
	Description string
}

func (a UpdatePDF) apply(f *Form) {
	if a.Index < 0 || a.Index >= len(f.PDFs) {
		return
	}
	f.PDFs[a.Index].Name = a.Name
	f.PDFs[a.Index].Description = a.Description
}

type RemovePDF struct{ Index int }

func (a RemovePDF) apply(f *Form) {
	if a.Index < 0 || a.Index >= len(f.PDFs) {
		return
	}
	f.PDFs = append(f.PDFs[:a.Index], f.PDFs[a.Index+1:]...)
}

// RemoveAllPDFs снимает флаг и позицию PDF и очищает список.
type RemoveAllPDFs struct{}

func (RemoveAllPDFs) apply(f *Form) {
	f.HasMedia[models.MediaPDF] = false
	f.MediaPosition[models.MediaPDF] = models.PositionUnset
	f.PDFs = []models.PDF{}
}

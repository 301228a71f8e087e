package editor

import (
	"collegeadmin/internal/models"
)

// Form содержит редактируемую часть секции.
type Form struct {
	Name          string
	Content       string
	HideHeading   bool
	HasMedia      models.MediaFlags
	MediaPosition models.MediaPositions
	Images        []models.Image
	PDFs          []models.PDF
}

func FormFromSection(sec *models.Section) Form {
	if sec == nil {
		return Form{}
	}
	return Form{
		Name:          sec.Name,
		Content:       sec.Content,
		HideHeading:   sec.HideHeading,
		HasMedia:      sec.HasMedia,
		MediaPosition: sec.MediaPosition,
		Images:        append([]models.Image(nil), sec.Images...),
		PDFs:          append([]models.PDF(nil), sec.PDFs...),
	}
}

func (f Form) clone() Form {
	f.Images = append([]models.Image(nil), f.Images...)
	f.PDFs = append([]models.PDF(nil), f.PDFs...)
	return f
}

// Update собирает тело PATCH. Пустые списки отправляются как [], а не null.
func (f Form) Update() models.SectionUpdate {
	up := models.SectionUpdate{
		Name:          f.Name,
		Content:       f.Content,
		HideHeading:   f.HideHeading,
		HasMedia:      f.HasMedia,
		MediaPosition: f.MediaPosition,
		Images:        append([]models.Image{}, f.Images...),
		PDFs:          append([]models.PDF{}, f.PDFs...),
	}
	return up
}

// Apply накладывает форму на секцию для живого превью.
func (f Form) Apply(base *models.Section) *models.Section {
	var out models.Section
	if base != nil {
		out = *base
	}
	f = f.clone()
	out.Name = f.Name
	out.Content = f.Content
	out.HideHeading = f.HideHeading
	out.HasMedia = f.HasMedia
	out.MediaPosition = f.MediaPosition
	out.Images = f.Images
	out.PDFs = f.PDFs
	return &out
}

// ImageLayout возвращает выбранный вариант показа изображений.
func (f Form) ImageLayout() string {
	switch {
	case f.HasMedia.Has(models.MediaCarousel):
		return "horizontal"
	case f.HasMedia.Has(models.MediaImage):
		return "vertical"
	}
	return ""
}

// ImagePosition возвращает позицию активного вида изображений.
func (f Form) ImagePosition() models.MediaPosition {
	switch {
	case f.HasMedia.Has(models.MediaCarousel):
		return f.MediaPosition.At(models.MediaCarousel)
	case f.HasMedia.Has(models.MediaImage):
		return f.MediaPosition.At(models.MediaImage)
	}
	return models.PositionUnset
}

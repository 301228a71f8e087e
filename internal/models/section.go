package models

import (
	"encoding/json"
	"strings"
)

// MediaKind — вид медиа в секции. Набор закрыт.
type MediaKind int

const (
	MediaCarousel MediaKind = iota
	MediaImage
	MediaVideo
	MediaPDF
	MediaTable
	MediaPeopleCard

	mediaKindCount
)

var mediaKindNames = [mediaKindCount]string{
	MediaCarousel:   "carousel",
	MediaImage:      "image",
	MediaVideo:      "video",
	MediaPDF:        "pdf",
	MediaTable:      "table",
	MediaPeopleCard: "people_card",
}

func (k MediaKind) String() string {
	if k < 0 || k >= mediaKindCount {
		return "unknown"
	}
	return mediaKindNames[k]
}

func ParseMediaKind(s string) (MediaKind, bool) {
	s = strings.TrimSpace(s)
	for i, name := range mediaKindNames {
		if name == s {
			return MediaKind(i), true
		}
	}
	return 0, false
}

func MediaKinds() []MediaKind {
	out := make([]MediaKind, mediaKindCount)
	for i := range out {
		out[i] = MediaKind(i)
	}
	return out
}

// MediaPosition — место медиа относительно markdown-контента.
// Пустая строка означает "не задано". Незнакомые значения сохраняются как есть
// и не совпадают ни с одной константой.
type MediaPosition string

const (
	PositionUnset   MediaPosition = ""
	PositionBefore  MediaPosition = "before_content"
	PositionAfter   MediaPosition = "after_content"
	PositionDynamic MediaPosition = "dynamic_content"
)

func (p MediaPosition) Valid() bool {
	switch p {
	case PositionBefore, PositionAfter, PositionDynamic:
		return true
	}
	return false
}

func ParseMediaPosition(s string) (MediaPosition, bool) {
	p := MediaPosition(strings.TrimSpace(s))
	return p, p.Valid()
}

// MediaFlags — has_media, индексируется MediaKind.
type MediaFlags [mediaKindCount]bool

func (f MediaFlags) Has(k MediaKind) bool {
	if k < 0 || k >= mediaKindCount {
		return false
	}
	return f[k]
}

func (f MediaFlags) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, mediaKindCount)
	for i, name := range mediaKindNames {
		m[name] = f[i]
	}
	return json.Marshal(m)
}

func (f *MediaFlags) UnmarshalJSON(data []byte) error {
	var m map[string]*bool
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*f = MediaFlags{}
	for name, v := range m {
		if k, ok := ParseMediaKind(name); ok && v != nil {
			f[k] = *v
		}
	}
	return nil
}

// MediaPositions — media_position, индексируется MediaKind.
// Незаданные позиции в JSON не пишутся.
type MediaPositions [mediaKindCount]MediaPosition

func (p MediaPositions) At(k MediaKind) MediaPosition {
	if k < 0 || k >= mediaKindCount {
		return PositionUnset
	}
	return p[k]
}

func (p MediaPositions) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, mediaKindCount)
	for i, name := range mediaKindNames {
		if p[i] != PositionUnset {
			m[name] = string(p[i])
		}
	}
	return json.Marshal(m)
}

func (p *MediaPositions) UnmarshalJSON(data []byte) error {
	var m map[string]*string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*p = MediaPositions{}
	for name, v := range m {
		if k, ok := ParseMediaKind(name); ok && v != nil {
			p[k] = MediaPosition(*v)
		}
	}
	return nil
}

type Image struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

type PDF struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type Video struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

type PeopleCard struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

type DynamicVariable struct {
	ID      string `json:"_id,omitempty"`
	Key     string `json:"key"`
	Type    string `json:"type"`
	MediaID string `json:"media_id"`
}

// Section — блок контента вкладки или хайлайта.
// images обслуживает и carousel, и image; одновременно активен только один из них.
type Section struct {
	ID               string            `json:"_id"`
	Name             string            `json:"name"`
	Content          string            `json:"content"`
	HideHeading      bool              `json:"hide_heading"`
	HasMedia         MediaFlags        `json:"has_media"`
	MediaPosition    MediaPositions    `json:"media_position"`
	Images           []Image           `json:"images"`
	PDFs             []PDF             `json:"pdfs"`
	Videos           []Video           `json:"videos,omitempty"`
	Tables           []json.RawMessage `json:"tables,omitempty"`
	PeopleCards      []PeopleCard      `json:"peoples_card,omitempty"`
	DynamicVariables []DynamicVariable `json:"dynamic_variables,omitempty"`
}

// SectionUpdate — тело PATCH для секции. Таблицы, карточки и переменные
// дашборд не редактирует, поэтому они не отправляются.
type SectionUpdate struct {
	Name          string         `json:"name"`
	Content       string         `json:"content"`
	HideHeading   bool           `json:"hide_heading"`
	HasMedia      MediaFlags     `json:"has_media"`
	MediaPosition MediaPositions `json:"media_position"`
	Images        []Image        `json:"images"`
	PDFs          []PDF          `json:"pdfs"`
}

type CreateSectionRequest struct {
	Name string `json:"name"`
}

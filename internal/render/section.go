// Package render проецирует секцию в упорядоченный список блоков.
//
// Порядок фиксирован: PDF-ссылки, карусель, изображения, затем контент,
// затем те же три группы для after_content. Медиа без флага, с пустым
// списком или с незаданной/незнакомой позицией не выводятся.
// dynamic_content зарезервирована и не выводится нигде.
package render

import (
	"fmt"
	"html/template"

	"collegeadmin/internal/models"
)

type BlockKind int

const (
	BlockPDFLink BlockKind = iota
	BlockCarousel
	BlockImage
	BlockContent
)

func (k BlockKind) String() string {
	switch k {
	case BlockPDFLink:
		return "pdf"
	case BlockCarousel:
		return "carousel"
	case BlockImage:
		return "image"
	case BlockContent:
		return "content"
	}
	return "unknown"
}

// MarshalText пишет вид блока в JSON строкой.
func (k BlockKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Block struct {
	Kind BlockKind `json:"kind"`

	// BlockPDFLink
	Label string      `json:"label,omitempty"`
	PDF   *models.PDF `json:"pdf,omitempty"`

	// BlockCarousel: все изображения; BlockImage: ровно одно
	Images []models.Image `json:"images,omitempty"`

	// BlockContent
	Content template.HTML `json:"content,omitempty"`
}

type Layout []Block

// Kinds возвращает последовательность видов блоков для сравнения в тестах.
func (l Layout) Kinds() []BlockKind {
	out := make([]BlockKind, len(l))
	for i, b := range l {
		out[i] = b.Kind
	}
	return out
}

// ContentIndex возвращает позицию блока контента, -1 если его нет.
func (l Layout) ContentIndex() int {
	for i, b := range l {
		if b.Kind == BlockContent {
			return i
		}
	}
	return -1
}

// Section не имеет побочных эффектов: одинаковые входы дают одинаковый результат.
func Section(sec *models.Section, content template.HTML) Layout {
	var out Layout
	out = appendMedia(out, sec, models.PositionBefore)
	out = append(out, Block{Kind: BlockContent, Content: content})
	out = appendMedia(out, sec, models.PositionAfter)
	return out
}

func placed(sec *models.Section, k models.MediaKind, pos models.MediaPosition) bool {
	return sec.HasMedia.Has(k) && sec.MediaPosition.At(k) == pos
}

func appendMedia(out Layout, sec *models.Section, pos models.MediaPosition) Layout {
	if placed(sec, models.MediaPDF, pos) {
		n := len(sec.PDFs)
		for i := range sec.PDFs {
			pdf := sec.PDFs[i]
			out = append(out, Block{Kind: BlockPDFLink, Label: pdfLabel(i, n), PDF: &pdf})
		}
	}

	if placed(sec, models.MediaCarousel, pos) && len(sec.Images) > 0 {
		imgs := make([]models.Image, len(sec.Images))
		copy(imgs, sec.Images)
		out = append(out, Block{Kind: BlockCarousel, Images: imgs})
	}

	if placed(sec, models.MediaImage, pos) {
		for _, img := range sec.Images {
			out = append(out, Block{Kind: BlockImage, Images: []models.Image{img}})
		}
	}
	return out
}

func pdfLabel(i, n int) string {
	if n > 1 {
		return fmt.Sprintf("Download PDF %d", i+1)
	}
	return "Download PDF"
}

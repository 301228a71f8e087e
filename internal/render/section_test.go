package render

import (
	"strings"
	"testing"

	"collegeadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdfs(n int) []models.PDF {
	out := make([]models.PDF, n)
	for i := range out {
		out[i] = models.PDF{Name: "f.pdf", URL: "https://cdn/f.pdf"}
	}
	return out
}

func images(n int) []models.Image {
	out := make([]models.Image, n)
	for i := range out {
		out[i] = models.Image{URL: "https://cdn/i.png"}
	}
	return out
}

func withMedia(k models.MediaKind, pos models.MediaPosition) *models.Section {
	s := &models.Section{Name: "About"}
	s.HasMedia[k] = true
	s.MediaPosition[k] = pos
	return s
}

func TestSection_PDFsBeforeContent(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		sec := withMedia(models.MediaPDF, models.PositionBefore)
		sec.PDFs = pdfs(n)

		layout := Section(sec, "body")
		require.Equal(t, n, layout.ContentIndex(), "n=%d", n)

		for i := 0; i < n; i++ {
			assert.Equal(t, BlockPDFLink, layout[i].Kind)
			if n == 1 {
				assert.Equal(t, "Download PDF", layout[i].Label)
			} else {
				assert.Equal(t, "Download PDF "+string(rune('1'+i)), layout[i].Label)
			}
		}
		assert.Len(t, layout, n+1)
	}
}

func TestSection_CarouselAfterContent(t *testing.T) {
	sec := withMedia(models.MediaCarousel, models.PositionAfter)
	sec.Images = images(3)

	layout := Section(sec, "body")
	require.Equal(t, []BlockKind{BlockContent, BlockCarousel}, layout.Kinds())
	assert.Len(t, layout[1].Images, 3)
}

func TestSection_ImageBlocksPerImage(t *testing.T) {
	sec := withMedia(models.MediaImage, models.PositionBefore)
	sec.Images = images(2)

	layout := Section(sec, "body")
	assert.Equal(t, []BlockKind{BlockImage, BlockImage, BlockContent}, layout.Kinds())
}

func TestSection_FixedOrder(t *testing.T) {
	sec := &models.Section{Images: images(2), PDFs: pdfs(1)}
	sec.HasMedia[models.MediaPDF] = true
	sec.HasMedia[models.MediaCarousel] = true
	sec.HasMedia[models.MediaImage] = true
	sec.MediaPosition[models.MediaPDF] = models.PositionAfter
	sec.MediaPosition[models.MediaCarousel] = models.PositionAfter
	sec.MediaPosition[models.MediaImage] = models.PositionAfter

	layout := Section(sec, "body")
	assert.Equal(t, []BlockKind{BlockContent, BlockPDFLink, BlockCarousel, BlockImage, BlockImage}, layout.Kinds())
}

func TestSection_NothingRendered(t *testing.T) {
	cases := map[string]*models.Section{
		"flag off": func() *models.Section {
			s := withMedia(models.MediaCarousel, models.PositionBefore)
			s.HasMedia[models.MediaCarousel] = false
			s.Images = images(1)
			return s
		}(),
		"position unset": func() *models.Section {
			s := withMedia(models.MediaPDF, models.PositionUnset)
			s.PDFs = pdfs(2)
			return s
		}(),
		"malformed position": func() *models.Section {
			s := withMedia(models.MediaImage, models.MediaPosition("top"))
			s.Images = images(2)
			return s
		}(),
		"dynamic content": func() *models.Section {
			s := withMedia(models.MediaCarousel, models.PositionDynamic)
			s.Images = images(2)
			return s
		}(),
		"empty carousel": withMedia(models.MediaCarousel, models.PositionBefore),
		"empty pdfs":     withMedia(models.MediaPDF, models.PositionAfter),
	}

	for name, sec := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, []BlockKind{BlockContent}, Section(sec, "body").Kinds())
		})
	}
}

func TestSection_Pure(t *testing.T) {
	sec := withMedia(models.MediaCarousel, models.PositionBefore)
	sec.Images = images(2)

	a := Section(sec, "x")
	b := Section(sec, "x")
	assert.Equal(t, a, b)

	a[0].Images[0].URL = "changed"
	assert.Equal(t, "https://cdn/i.png", sec.Images[0].URL)
}

func TestMarkdown_Sanitized(t *testing.T) {
	out := string(Markdown("# Title\n\n<script>alert(1)</script>\n\n![logo](https://cdn/logo.png)"))
	assert.Contains(t, out, "<h1")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `src="https://cdn/logo.png"`)
}

func TestPreview(t *testing.T) {
	sec := withMedia(models.MediaPDF, models.PositionBefore)
	sec.Content = "hello"
	sec.PDFs = pdfs(2)

	html, err := Preview(sec)
	require.NoError(t, err)
	s := string(html)
	assert.Contains(t, s, "<h2>About</h2>")
	assert.Contains(t, s, "Download PDF 2")
	assert.Less(t, strings.Index(s, "Download PDF 1"), strings.Index(s, "hello"))

	sec.HideHeading = true
	html, err = Preview(sec)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<h2>")
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSection_DecodeBackendShape(t *testing.T) {
	raw := `{
		"_id": "s1",
		"name": "About",
		"content": "# Hello",
		"has_media": {"carousel": true, "image": false, "pdf": true, "people_card": true, "hologram": true},
		"media_position": {"carousel": "after_content", "pdf": "sideways", "image": null},
		"images": [{"url": "a.png", "description": "A"}],
		"pdfs": [{"name": "f.pdf", "url": "f", "description": ""}]
	}`

	var s Section
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.True(t, s.HasMedia.Has(MediaCarousel))
	assert.True(t, s.HasMedia.Has(MediaPDF))
	assert.True(t, s.HasMedia.Has(MediaPeopleCard))
	assert.False(t, s.HasMedia.Has(MediaImage))

	assert.Equal(t, PositionAfter, s.MediaPosition.At(MediaCarousel))
	assert.Equal(t, PositionUnset, s.MediaPosition.At(MediaImage))

	// незнакомая позиция сохраняется, но не валидна
	assert.Equal(t, MediaPosition("sideways"), s.MediaPosition.At(MediaPDF))
	assert.False(t, s.MediaPosition.At(MediaPDF).Valid())
}

func TestMediaPositions_OmitUnset(t *testing.T) {
	var p MediaPositions
	p[MediaImage] = PositionBefore

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"image":"before_content"}`, string(out))
}

func TestMediaFlags_AllKeys(t *testing.T) {
	var f MediaFlags
	f[MediaPeopleCard] = true

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"carousel":false,"image":false,"video":false,"pdf":false,"table":false,"people_card":true}`, string(out))
}

func TestParseMediaKind(t *testing.T) {
	for _, k := range MediaKinds() {
		got, ok := ParseMediaKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	_, ok := ParseMediaKind("audio")
	assert.False(t, ok)
	assert.Equal(t, "unknown", MediaKind(42).String())
}

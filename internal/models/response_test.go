package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRef_AcceptsIDOrPopulatedObject(t *testing.T) {
	var n struct {
		A Ref `json:"a"`
		B Ref `json:"b"`
		C Ref `json:"c"`
		D Ref `json:"d"`
	}
	raw := `{"a":"c1","b":{"_id":"c2","name":"Main"},"c":{"_id":"s1","title":"Fest"},"d":null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &n))

	assert.Equal(t, Ref{ID: "c1"}, n.A)
	assert.Equal(t, Ref{ID: "c2", Name: "Main"}, n.B)
	assert.Equal(t, Ref{ID: "s1", Name: "Fest"}, n.C)
	assert.Equal(t, Ref{}, n.D)

	out, err := json.Marshal(n.B)
	require.NoError(t, err)
	assert.Equal(t, `"c2"`, string(out))
}

func TestResponse_Envelope(t *testing.T) {
	var resp Response[[]Tab]
	raw := `{"message":"ok","success":true,"data":[{"_id":"t1","name":"Admissions","sections":["s1",{"_id":"s2","name":"Fees"}]}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	require.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, []Ref{{ID: "s1"}, {ID: "s2", Name: "Fees"}}, resp.Data[0].Sections)
}

package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDelta_KnownTypes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Delta
	}{
		{"id", `{"type":"id","data":"d1"}`, IDDelta{Data: "d1"}},
		{"title", `{"type":"title","data":"My Doc"}`, TitleDelta{Data: "My Doc"}},
		{"kind", `{"type":"kind","data":"text"}`, KindDelta{Data: "text"}},
		{"text", `{"type":"text-delta","data":"hello "}`, TextDelta{Data: "hello "}},
		{"clear", `{"type":"clear","data":null}`, ClearDelta{}},
		{"finish", `{"type":"finish"}`, FinishDelta{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeDelta([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeDelta_UnknownTypeIsNotAnError(t *testing.T) {
	got, err := DecodeDelta([]byte(`{"type":"tool-progress","data":{"step":3}}`))
	require.NoError(t, err)

	u, ok := got.(UnknownDelta)
	require.True(t, ok)
	assert.Equal(t, "tool-progress", u.Type)
	assert.JSONEq(t, `{"step":3}`, string(u.Data))
}

func TestDecodeDelta_BadPayloadForKnownType(t *testing.T) {
	_, err := DecodeDelta([]byte(`{"type":"id","data":42}`))
	require.Error(t, err)
}

func TestDecodeDelta_Garbage(t *testing.T) {
	_, err := DecodeDelta([]byte(`not json`))
	require.Error(t, err)
}

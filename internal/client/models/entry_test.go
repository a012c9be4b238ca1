package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoods_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]float64
	}{
		{"nil map", nil},
		{"empty map", map[string]float64{}},
		{"single label", map[string]float64{"joy": 0.82}},
		{"several labels", map[string]float64{"joy": 0.82, "calm": 0.4, "sadness": 0}},
		{"boundary scores", map[string]float64{"min": 0, "max": 1}},
		{"high precision", map[string]float64{"anxiety": 0.123456789012345}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := EncodeMoods(tc.in)
			require.NoError(t, err)

			got, err := DecodeMoods(b)
			require.NoError(t, err)

			want := tc.in
			if want == nil {
				want = map[string]float64{}
			}
			require.Equal(t, want, got, "mood mapping must survive store and read unchanged")
		})
	}
}

func TestDecodeMoods_EmptyColumn(t *testing.T) {
	got, err := DecodeMoods(nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestDecodeMoods_Malformed(t *testing.T) {
	_, err := DecodeMoods([]byte(`{"joy":`))
	require.Error(t, err)
}

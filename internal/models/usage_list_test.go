package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUsedAt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want UsageList
		ok   bool
	}{
		{
			name: "native array",
			raw:  `["home","about"]`,
			want: UsageList{"home", "about"},
			ok:   true,
		},
		{
			name: "json encoded array string",
			raw:  `"[\"home\",\"about\"]"`,
			want: UsageList{"home", "about"},
			ok:   true,
		},
		{
			name: "comma separated string",
			raw:  `"home, about,contact"`,
			want: UsageList{"home", "about", "contact"},
			ok:   true,
		},
		{
			name: "single plain string",
			raw:  `"home"`,
			want: UsageList{"home"},
			ok:   true,
		},
		{
			name: "empty array",
			raw:  `[]`,
			want: UsageList{},
			ok:   true,
		},
		{
			name: "null",
			raw:  `null`,
			want: nil,
			ok:   false,
		},
		{
			name: "drops empty segments",
			raw:  `"home,,  ,about"`,
			want: UsageList{"home", "about"},
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeUsedAt(json.RawMessage(tt.raw))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUsageListValueScan(t *testing.T) {
	list := UsageList{"home", "banner"}

	val, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, `["home","banner"]`, val)

	var scanned UsageList
	require.NoError(t, scanned.Scan(val))
	assert.Equal(t, list, scanned)
}

func TestUsageListScanLegacyShapes(t *testing.T) {
	var fromNil UsageList
	require.NoError(t, fromNil.Scan(nil))
	assert.Empty(t, fromNil)

	var fromEncoded UsageList
	require.NoError(t, fromEncoded.Scan(`"home"`))
	assert.Equal(t, UsageList{"home"}, fromEncoded)

	var fromRaw UsageList
	require.NoError(t, fromRaw.Scan([]byte("home")))
	assert.Equal(t, UsageList{"home"}, fromRaw)
}

func TestUsageListContains(t *testing.T) {
	list := UsageList{"home", "about"}
	assert.True(t, list.Contains("home"))
	assert.False(t, list.Contains("gallery"))
}

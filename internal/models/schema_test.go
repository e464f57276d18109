// internal/models/schema_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQuery_Valid(t *testing.T) {
	raw := []byte(`{
		"deviceType": "phone",
		"requirements": {"battery": true, "camera": false},
		"minBudget": 5000000,
		"maxBudget": 7000000,
		"brands": ["samsung", "xiaomi"],
		"freeText": "pin trâu chụp ảnh đẹp",
		"topK": 3
	}`)

	q, err := DecodeQuery(raw)

	require.NoError(t, err)
	assert.Equal(t, DeviceTypePhone, q.DeviceType)
	assert.True(t, q.Requirements["battery"])
	assert.False(t, q.Requirements["camera"])
	require.NotNil(t, q.MinBudget)
	assert.Equal(t, int64(5_000_000), *q.MinBudget)
	assert.Equal(t, []string{"samsung", "xiaomi"}, q.Brands)
	assert.Equal(t, 3, q.TopK)
}

func TestDecodeQuery_MinimalPayload(t *testing.T) {
	q, err := DecodeQuery([]byte(`{"deviceType": "laptop"}`))

	require.NoError(t, err)
	assert.Equal(t, DeviceTypeLaptop, q.DeviceType)
	assert.Nil(t, q.MinBudget)
	assert.Nil(t, q.MaxBudget)
	assert.Empty(t, q.Brands)
}

// Extractor versions often run ahead of this service; unknown fields must
// not break decoding.
func TestDecodeQuery_UnknownFieldsTolerated(t *testing.T) {
	q, err := DecodeQuery([]byte(`{"deviceType": "phone", "extractorVersion": "2.3"}`))

	require.NoError(t, err)
	assert.Equal(t, DeviceTypePhone, q.DeviceType)
}

func TestDecodeQuery_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed json", raw: `{"deviceType": `},
		{name: "wrong budget type", raw: `{"deviceType": "phone", "minBudget": "five million"}`},
		{name: "wrong requirements value type", raw: `{"deviceType": "phone", "requirements": {"battery": "yes"}}`},
		{name: "wrong brands type", raw: `{"deviceType": "phone", "brands": "apple"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeQuery([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

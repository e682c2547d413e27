package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "auth",
			objectType:  "revoked",
			identifier:  "123",
			paramsKey:   nil,
			expectedKey: "mobilityprofile:auth:revoked:123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "auth",
			objectType:  "revoked",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "mobilityprofile:auth:revoked:123",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "poll",
			objectType:  "question",
			identifier:  "7",
			paramsKey:   []string{"sub", "3"},
			expectedKey: "mobilityprofile:poll:question:7:sub_3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			assert.Equal(t, tt.expectedKey, actualKey)
		})
	}
}

func TestNamedKeys(t *testing.T) {
	assert.Equal(t, "mobilityprofile:auth:revoked:01J0000000000000000000000", RevokedTokenKey("01J0000000000000000000000"))
	assert.Equal(t, "mobilityprofile:poll:option_counts:all", OptionCountsKey())
}

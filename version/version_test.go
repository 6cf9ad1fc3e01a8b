package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_Short(t *testing.T) {
	tests := []struct {
		commit string
		want   string
	}{
		{"", "unknown"},
		{"abc", "abc"},
		{"0123456789abcdef", "0123456"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Info{CommitHash: tt.commit}.Short())
	}
}

func TestInfo_String(t *testing.T) {
	assert.Equal(t, "bindgen 1.2.0 (commit 0123456)", Info{Version: "1.2.0", CommitHash: "0123456789"}.String())
	assert.Equal(t, "bindgen dev (commit unknown) with local changes", Info{Version: "dev", Modified: true}.String())
}

func TestGet_LdflagsCommitWins(t *testing.T) {
	old := CommitHash
	CommitHash = "feedface"
	defer func() { CommitHash = old }()

	info := Get()
	assert.Equal(t, "feedface", info.CommitHash)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

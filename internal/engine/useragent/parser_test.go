package useragent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/polyfill/internal/engine/useragent"
)

func TestParseAgent(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want useragent.Agent
	}{
		{
			name: "internet explorer",
			ua:   "Mozilla/4.0 (compatible; MSIE 8.0; Windows NT 6.1; Trident/4.0)",
			want: useragent.Agent{Family: "IE", Version: useragent.Version{Major: 8}},
		},
		{
			name: "unrecognised",
			ua:   "definitely not a browser",
			want: useragent.Agent{Family: "Other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := useragent.ParseAgent(tt.ua)
			assert.Equal(t, tt.want.Family, got.Family)
			assert.Equal(t, tt.want.Version, got.Version)
		})
	}
}

func TestParseAgent_OperatingSystem(t *testing.T) {
	agent := useragent.ParseAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 9_2 like Mac OS X) AppleWebKit/601.1.46 " +
		"(KHTML, like Gecko) Mobile/13C75 [FBAN/FBIOS;FBAV/46.0.0.54.156;FBBV/18972819]")

	assert.Equal(t, "Facebook", agent.Family)
	assert.Equal(t, 46, agent.Version.Major)
	assert.Equal(t, useragent.OS{Family: "iOS", Major: 9, Minor: 2}, agent.OS)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Action", "action"},
		{"spaces collapse", "Action  Games", "action-games"},
		{"underscores become hyphens", "tower_defense", "tower-defense"},
		{"punctuation stripped", "Shoot'em & Run!", "shootem-run"},
		{"hyphens kept and collapsed", "co--op -- games", "co-op-games"},
		{"leading and trailing trimmed", "  -Racing- ", "racing"},
		{"cjk stripped", "动作 Games", "games"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestGenerateTitleSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"latin title", "Space Runner", "space-runner"},
		{"cjk preserved", "超级玛丽", "超级玛丽"},
		{"mixed cjk and latin", "超级 Mario 64", "超级-mario-64"},
		{"punctuation stripped", "Pac-Man: Deluxe!", "pac-man-deluxe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateTitleSlug(tt.input))
		})
	}
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bettermespace/backend/internal/config"
)

func TestChatRejectsEmptyMessage(t *testing.T) {
	s := NewChatService(&config.Config{
		AIAPIKey:  "test-key",
		AIModel:   "deepseek-chat",
		AITimeout: time.Second,
	})

	for _, message := range []string{"", "   ", "\n\t"} {
		if _, err := s.Chat(context.Background(), message); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Chat(%q) = %v, want ErrEmptyMessage", message, err)
		}
	}
}

func TestBuildAdvisoryPrompt(t *testing.T) {
	message := "最近总是睡不好，容易想太多"
	prompt := buildAdvisoryPrompt(message)

	if !strings.Contains(prompt, message) {
		t.Error("prompt does not embed the user message")
	}
	if !strings.Contains(prompt, "测评") {
		t.Error("prompt does not ask for an assessment recommendation")
	}
}

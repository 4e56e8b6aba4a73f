package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bettermespace/backend/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrEmptyMessage  = errors.New("message is empty")
	ErrAIUnavailable = errors.New("AI service unavailable")
)

const chatSystemPrompt = "你是一个专业的内在认知向导，名字叫\"小觅\"。你的回答应该温暖、客观、充满洞察力。严禁使用\"心理咨询\"、\"心理治疗\"等医疗词汇。字数控制在150字以内。"

// ChatService proxies user messages to an OpenAI-compatible chat endpoint.
// Single best-effort request, no retry.
type ChatService struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

func NewChatService(cfg *config.Config) *ChatService {
	clientConfig := openai.DefaultConfig(cfg.AIAPIKey)
	if cfg.AIBaseURL != "" {
		clientConfig.BaseURL = cfg.AIBaseURL
	}
	return &ChatService{
		api:     openai.NewClientWithConfig(clientConfig),
		model:   cfg.AIModel,
		timeout: cfg.AITimeout,
	}
}

func (s *ChatService) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildAdvisoryPrompt(message)},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrAIUnavailable
	}
	return resp.Choices[0].Message.Content, nil
}

func buildAdvisoryPrompt(message string) string {
	return fmt.Sprintf("作为一个性格行为学专家与内在认知向导，基于用户的描述：\"%s\"，推荐最适合TA的性格或状态测评（如：内耗分析、人生剧本探索、依恋风格等），并给出一段精炼且温暖的内在建议。", message)
}

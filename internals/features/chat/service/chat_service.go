package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"gorm.io/gorm"

	"specsnexus_backend/internals/configs"
	announcementModel "specsnexus_backend/internals/features/announcements/model"
	eventModel "specsnexus_backend/internals/features/events/model"
	clearanceModel "specsnexus_backend/internals/features/membership/clearances/model"
	officerModel "specsnexus_backend/internals/features/officers/model"
)

// ErrAssistantNotConfigured is returned when no OpenRouter API key is set.
var ErrAssistantNotConfigured = errors.New("assistant API key is not configured")

// ChatService answers member questions about the platform using an
// OpenRouter-hosted model, grounding each answer in current events,
// announcements, officers and the caller's own clearances.
type ChatService struct {
	DB     *gorm.DB
	cfg    configs.OpenRouterConfig
	client *openai.Client
	cache  *contextCache
}

func NewChatService(db *gorm.DB, cfg configs.OpenRouterConfig) *ChatService {
	s := &ChatService{DB: db, cfg: cfg, cache: newContextCache()}
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		clientCfg.BaseURL = cfg.BaseURL
		clientCfg.HTTPClient = &http.Client{
			Timeout:   60 * time.Second,
			Transport: &attributionTransport{referer: cfg.Referer, title: cfg.Title},
		}
		s.client = openai.NewClientWithConfig(clientCfg)
	}
	return s
}

// attributionTransport adds the OpenRouter app-attribution headers to
// every request.
type attributionTransport struct {
	referer string
	title   string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// Reply builds the grounded system prompt and asks the model.
func (s *ChatService) Reply(ctx context.Context, userID uint, message string) (string, error) {
	if s.client == nil {
		return "", ErrAssistantNotConfigured
	}

	now := time.Now()
	prompt := buildSystemPrompt(
		s.cache.getOrFetch(fmt.Sprintf("events:%d", userID), now, func() string { return s.fetchEvents(userID) }),
		s.cache.getOrFetch("announcements", now, s.fetchAnnouncements),
		s.cache.getOrFetch(fmt.Sprintf("clearances:%d", userID), now, func() string { return s.fetchClearances(userID) }),
		s.cache.getOrFetch("officers", now, s.fetchOfficers),
	)

	started := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   512,
		Temperature: 0.7,
	})
	if err != nil {
		log.Println("[ERROR] OpenRouter request failed:", err)
		return friendlyAPIError(err), nil
	}
	if len(resp.Choices) == 0 {
		return "I'm sorry, I do not have that information.", nil
	}

	log.Printf("[INFO] OpenRouter response in %.2fs, tokens: input=%d output=%d",
		time.Since(started).Seconds(), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// friendlyAPIError maps upstream failures to user-presentable text
// instead of surfacing raw API errors.
func friendlyAPIError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"):
		return "Error: Rate limit exceeded. Please try again later."
	case strings.Contains(msg, "quota"):
		return "Error: API quota exhausted. Please check your OpenRouter account."
	case strings.Contains(msg, "no endpoints found"):
		return "Error: Invalid model name. Please contact support."
	default:
		return "Error: Failed to get a response from the assistant. Please try again later."
	}
}

func (s *ChatService) fetchEvents(userID uint) string {
	var events []eventModel.EventModel
	if err := s.DB.Preload("Participants").
		Where("archived = ?", false).
		Order("date DESC").
		Find(&events).Error; err != nil {
		log.Println("[ERROR] Failed to fetch events for chat context:", err)
		return "Error fetching events"
	}
	return formatEvents(events, userID)
}

func (s *ChatService) fetchAnnouncements() string {
	var items []announcementModel.AnnouncementModel
	if err := s.DB.Where("archived = ?", false).
		Order("date DESC").
		Find(&items).Error; err != nil {
		log.Println("[ERROR] Failed to fetch announcements for chat context:", err)
		return "Error fetching announcements"
	}
	return formatAnnouncements(items)
}

func (s *ChatService) fetchClearances(userID uint) string {
	var items []clearanceModel.ClearanceModel
	if err := s.DB.Where("user_id = ? AND archived = ?", userID, false).
		Order("requirement").
		Find(&items).Error; err != nil {
		log.Println("[ERROR] Failed to fetch clearances for chat context:", err)
		return "Error fetching clearances"
	}
	return formatClearances(items)
}

func (s *ChatService) fetchOfficers() string {
	var items []officerModel.OfficerModel
	if err := s.DB.Where("archived = ?", false).
		Order("full_name").
		Find(&items).Error; err != nil {
		log.Println("[ERROR] Failed to fetch officers for chat context:", err)
		return "Error fetching officers"
	}
	return formatOfficers(items)
}

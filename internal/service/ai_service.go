package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	config "github.com/maheshrc27/gbpflow/configs"
	"google.golang.org/genai"
)

// AIService generates post and reply copy with Gemini. An empty string
// signals failure; callers must not rely on an error being returned.
type AIService interface {
	GeneratePostContent(ctx context.Context, businessName, category, topic, postType string) (string, error)
	GenerateReviewReply(ctx context.Context, businessName, reviewerName string, rating float64, comment, tone string) (string, error)
}

type aiService struct {
	cfg    config.Config
	client *genai.Client
}

func NewAIService(ctx context.Context, cfg config.Config) (AIService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &aiService{cfg: cfg, client: client}, nil
}

func (s *aiService) generate(ctx context.Context, systemInstruction, prompt string, maxTokens int32) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		MaxOutputTokens:   maxTokens,
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.cfg.GeminiModel, genai.Text(prompt), cfg)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	if resp == nil {
		return "", nil
	}

	return strings.TrimSpace(resp.Text()), nil
}

func (s *aiService) GeneratePostContent(ctx context.Context, businessName, category, topic, postType string) (string, error) {
	var prompt string
	if topic != "" {
		prompt = fmt.Sprintf(`Create a %s post for %s, a %s business, about: %s.

The post should be:
- Engaging and professional
- Between 100-300 characters
- Include a call to action
- Suitable for Google Business Profile

Generate only the post content, no additional text.`, strings.ToLower(postType), businessName, category, topic)
	} else {
		prompt = fmt.Sprintf(`Create a %s post for %s, a %s business.

The post should be:
- Engaging and professional
- Between 100-300 characters
- Include a call to action
- Suitable for Google Business Profile
- Relevant to the business type

Generate only the post content, no additional text.`, strings.ToLower(postType), businessName, category)
	}

	return s.generate(ctx,
		"You are a professional social media manager specializing in Google Business Profile posts.",
		prompt, 200)
}

func (s *aiService) GenerateReviewReply(ctx context.Context, businessName, reviewerName string, rating float64, comment, tone string) (string, error) {
	sentiment := "neutral"
	if rating >= 4 {
		sentiment = "positive"
	} else if rating <= 2 {
		sentiment = "negative"
	}

	if comment == "" {
		comment = "No comment provided"
	}

	closing := "Express gratitude"
	if sentiment == "negative" {
		closing = "Acknowledge and apologize for any issues"
	}

	prompt := fmt.Sprintf(`Generate a %s reply to a %s review for %s.

Reviewer: %s
Rating: %.0f/5 stars
Review: %s

The reply should:
- Be warm and %s
- Thank the customer
- Address their feedback appropriately
- Be between 50-150 words
- %s

Generate only the reply text, no additional formatting.`, tone, sentiment, businessName, reviewerName, rating, comment, tone, closing)

	return s.generate(ctx,
		"You are a professional customer service representative responding to online reviews.",
		prompt, 250)
}

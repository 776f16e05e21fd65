package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"google.golang.org/genai"
)

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	retryDelay time.Duration
}

func NewGeminiService(apiKey, modelName string, retryDelay time.Duration) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		retryDelay: retryDelay,
	}, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", classifyGenerationError(err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrEmptyResponse)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content in response", ErrEmptyResponse)
	}

	return text, nil
}

// GenerateTextWithRetry implements GeminiService.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return retryGenerate(ctx, maxRetries, g.retryDelay, func(ctx context.Context) (string, error) {
		return g.GenerateText(ctx, prompt, temperature)
	})
}

// retryGenerate runs generate up to maxRetries times with a linear backoff.
// Only rate-limit and network failures are retried; auth and empty-response
// failures are returned immediately.
func retryGenerate(ctx context.Context, maxRetries int, delay time.Duration, generate func(context.Context) (string, error)) (string, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := generate(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !errors.Is(err, ErrRateLimit) && !errors.Is(err, ErrNetwork) {
			return "", err
		}

		if attempt < maxRetries {
			log.Printf("⚠️  Attempt %d failed: %v. Retrying...\n", attempt, err)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrNetwork, ctx.Err())
			case <-time.After(delay * time.Duration(attempt)):
			}
		}
	}

	return "", lastErr
}

// classifyGenerationError folds transport and API failures into the error
// kinds the rest of the pipeline understands.
func classifyGenerationError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return fmt.Errorf("%w: %s", ErrAuth, apiErr.Message)
		case apiErr.Code == 429:
			return fmt.Errorf("%w: %s", ErrRateLimit, apiErr.Message)
		default:
			return fmt.Errorf("%w: %s (status %d)", ErrNetwork, apiErr.Message, apiErr.Code)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/prompts"
)

const defaultVisionPrompt = `Analiza la siguiente imagen. Determina si contiene comida.
Si es comida, responde únicamente con un objeto JSON con las claves 'name' (nombre del alimento en español), 'calories', 'protein' y 'fat' con valores numéricos estimados para una porción.
Si no es comida, responde únicamente con un objeto JSON con la clave 'message' y el valor '{{.NotFoodMessage}}'.
No incluyas ninguna otra explicación o texto fuera del objeto JSON.
Ejemplo si es comida: {"name": "Manzana", "calories": 95, "protein": 0, "fat": 0}
Ejemplo si no es comida: {"message": "{{.NotFoodMessage}}"}`

// VisionConfig is built once at start-up and handed to the analyzer.
type VisionConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	Temperature    float64
	MaxTokens      int
	Prompt         string // Go template; may reference {{.NotFoodMessage}}
	NotFoodMessage string
}

func (c VisionConfig) withDefaults() VisionConfig {
	if c.Prompt == "" {
		c.Prompt = defaultVisionPrompt
	}
	if c.NotFoodMessage == "" {
		c.NotFoodMessage = MsgNotFood
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 4096
	}
	return c
}

// contentGenerator is the part of llms.Model the analyzer calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// LLMAnalyzer asks a multimodal chat model (any OpenAI-compatible endpoint,
// e.g. OpenRouter serving Gemini) to describe the food in an image.
type LLMAnalyzer struct {
	llm    contentGenerator
	cfg    VisionConfig
	prompt string
}

func NewLLMAnalyzer(cfg VisionConfig) (*LLMAnalyzer, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating vision model client: %w", err)
	}
	return newLLMAnalyzer(llm, cfg)
}

func newLLMAnalyzer(llm contentGenerator, cfg VisionConfig) (*LLMAnalyzer, error) {
	cfg = cfg.withDefaults()
	prompt, err := prompts.NewPromptTemplate(cfg.Prompt, []string{"NotFoodMessage"}).
		Format(map[string]any{"NotFoodMessage": cfg.NotFoodMessage})
	if err != nil {
		return nil, fmt.Errorf("rendering vision prompt: %w", err)
	}
	return &LLMAnalyzer{llm: llm, cfg: cfg, prompt: prompt}, nil
}

func (a *LLMAnalyzer) Analyze(ctx context.Context, image []byte, mimeType string) (FoodAnalysis, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := a.llm.GenerateContent(ctx,
		[]llms.MessageContent{{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(a.prompt),
				llms.ImageURLPart(dataURL),
			},
		}},
		llms.WithTemperature(a.cfg.Temperature),
		llms.WithMaxTokens(a.cfg.MaxTokens),
	)
	if err != nil {
		return FoodAnalysis{}, fmt.Errorf("calling vision model: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return FoodAnalysis{}, fmt.Errorf("%w: empty model response", ErrMalformedAnalysis)
	}
	return ParseFoodAnalysis(resp.Choices[0].Content)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/rs/zerolog"
)

const (
	MsgNotFood           = "La imagen no parece ser comida."
	MsgMalformedAnalysis = "Error al procesar la respuesta del modelo."
	MsgAnalysisFailed    = "No se pudo analizar la imagen en este momento."
	DefaultFoodName      = "Alimento Desconocido"
)

var (
	ErrUnsupportedMedia = errors.New("unsupported media type: an image is required")
	ErrEmptyImage       = errors.New("image is empty")
	// ErrMalformedAnalysis marks analyzer output that is not the expected JSON.
	ErrMalformedAnalysis = errors.New("malformed food analysis")
)

// FoodAnalysis is both what analyzers produce and what clients receive.
type FoodAnalysis struct {
	IsFood   bool   `json:"is_food"`
	Name     string `json:"name,omitempty"`
	Calories *int   `json:"calories,omitempty"`
	Protein  *int   `json:"protein,omitempty"`
	Fat      *int   `json:"fat,omitempty"`
	Message  string `json:"message,omitempty"`
}

// FoodAnalyzer recognizes food in an image. Implementations call third-party
// services and are expected to fail or answer garbage now and then.
type FoodAnalyzer interface {
	Analyze(ctx context.Context, image []byte, mimeType string) (FoodAnalysis, error)
}

// ImageStore keeps a copy of analyzed images.
type ImageStore interface {
	Put(ctx context.Context, prefix string, data []byte, contentType string) (string, error)
}

type VisionService struct {
	analyzer FoodAnalyzer
	catalog  *CatalogService
	archive  ImageStore
	notify   Notifier
	log      zerolog.Logger
}

// NewVisionService wires the analyzer to the catalog. archive and notify may
// be nil.
func NewVisionService(analyzer FoodAnalyzer, catalog *CatalogService, archive ImageStore, notify Notifier, log zerolog.Logger) *VisionService {
	return &VisionService{analyzer: analyzer, catalog: catalog, archive: archive, notify: notify, log: log}
}

// AnalyzeFood validates the upload, runs the analyzer and registers newly
// seen foods in the catalog. Analyzer failures come back as a non-food
// result; only invalid input and storage failures are errors.
func (s *VisionService) AnalyzeFood(ctx context.Context, email, contentType string, image []byte) (*FoodAnalysis, error) {
	mimeType, ok := imageMediaType(contentType)
	if !ok {
		return nil, ErrUnsupportedMedia
	}
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	if s.archive != nil {
		if _, err := s.archive.Put(ctx, "vision/"+email, image, mimeType); err != nil {
			s.log.Warn().Err(err).Str("user", email).Msg("image archive failed")
		}
	}

	res, err := s.analyzer.Analyze(ctx, image, mimeType)
	if err != nil {
		msg := MsgAnalysisFailed
		if errors.Is(err, ErrMalformedAnalysis) {
			msg = MsgMalformedAnalysis
		}
		s.log.Error().Err(err).Str("user", email).Msg("food analysis failed")
		return &FoodAnalysis{IsFood: false, Message: msg}, nil
	}

	if !res.IsFood {
		msg := res.Message
		if msg == "" {
			msg = MsgNotFood
		}
		return &FoodAnalysis{IsFood: false, Message: msg}, nil
	}

	name := strings.TrimSpace(res.Name)
	if name == "" {
		name = DefaultFoodName
	}

	_, created, err := s.catalog.ResolveOrCreate(ctx, name, NutritionEstimate{
		Calories: res.Calories,
		Protein:  intToFloat(res.Protein),
		Fat:      intToFloat(res.Fat),
	})
	if err != nil {
		return nil, err
	}
	if created && s.notify != nil {
		s.notify.Emit(ctx, email, NotificationInfo, "Nuevo alimento",
			fmt.Sprintf("%s se añadió al catálogo.", name))
	}

	return &FoodAnalysis{
		IsFood:   true,
		Name:     name,
		Calories: res.Calories,
		Protein:  res.Protein,
		Fat:      res.Fat,
	}, nil
}

func imageMediaType(contentType string) (string, bool) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mt, "image/") {
		return "", false
	}
	return mt, true
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// ErrVisionDisabled is returned by DisabledAnalyzer.
var ErrVisionDisabled = errors.New("image analysis is disabled")

// DisabledAnalyzer stands in when no vision provider is configured. Every
// upload then comes back as a non-food result.
type DisabledAnalyzer struct{}

func (DisabledAnalyzer) Analyze(context.Context, []byte, string) (FoodAnalysis, error) {
	return FoodAnalysis{}, ErrVisionDisabled
}

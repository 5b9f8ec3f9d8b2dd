package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// LabelDetector is the slice of the Rekognition client the analyzer uses.
type LabelDetector interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// RekognitionAnalyzer names the food with AWS label detection. It gives no
// nutrition estimate.
type RekognitionAnalyzer struct {
	client         LabelDetector
	notFoodMessage string
}

func NewRekognitionAnalyzer(client LabelDetector, notFoodMessage string) *RekognitionAnalyzer {
	if notFoodMessage == "" {
		notFoodMessage = MsgNotFood
	}
	return &RekognitionAnalyzer{client: client, notFoodMessage: notFoodMessage}
}

// Analyze treats the image as food when any label is "Food" or descends from
// it; the most confident descendant becomes the name.
func (r *RekognitionAnalyzer) Analyze(ctx context.Context, image []byte, _ string) (FoodAnalysis, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return FoodAnalysis{}, fmt.Errorf("detecting labels: %w", err)
	}

	isFood := false
	name := ""
	for _, l := range out.Labels {
		label := aws.ToString(l.Name)
		if label == "Food" {
			isFood = true
			continue
		}
		if hasParent(l, "Food") {
			isFood = true
			if name == "" {
				name = label
			}
		}
	}

	if !isFood {
		return FoodAnalysis{IsFood: false, Message: r.notFoodMessage}, nil
	}
	return FoodAnalysis{IsFood: true, Name: name}, nil
}

func hasParent(l types.Label, parent string) bool {
	for _, p := range l.Parents {
		if aws.ToString(p.Name) == parent {
			return true
		}
	}
	return false
}

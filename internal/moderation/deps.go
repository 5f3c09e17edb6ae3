package moderation

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
)

type rekognitionClient interface {
	DetectModerationLabels(ctx context.Context, params *rekognition.DetectModerationLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectModerationLabelsOutput, error)
}

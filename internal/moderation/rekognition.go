package moderation

import (
	"context"
	"fmt"
	"log"

	"github.com/venueo/media-pipeline-go/internal/model"
	"github.com/venueo/media-pipeline-go/internal/port"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionModerator asks AWS Rekognition for moderation labels on raw
// image bytes. It reports every label at or above the confidence floor and
// leaves the safe/unsafe decision to the policy.
type RekognitionModerator struct {
	client rekognitionClient
}

// compile-time check: *RekognitionModerator must satisfy port.Moderator
var _ port.Moderator = (*RekognitionModerator)(nil)

// NewRekognitionModerator builds a Rekognition-backed moderator. Static
// credentials are optional; without them the SDK's default chain applies.
func NewRekognitionModerator(ctx context.Context, region, accessKey, secretKey string) (*RekognitionModerator, error) {
	log.Println("initialising rekognition client...")

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &RekognitionModerator{client: rekognition.NewFromConfig(awsCfg)}, nil
}

func (m *RekognitionModerator) DetectLabels(ctx context.Context, image []byte, minConfidence float64) ([]model.Detection, error) {
	out, err := m.client.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image:         &types.Image{Bytes: image},
		MinConfidence: aws.Float32(float32(minConfidence)),
	})
	if err != nil {
		return nil, fmt.Errorf("moderation: detect labels: %w", err)
	}

	detections := make([]model.Detection, 0, len(out.ModerationLabels))
	for _, l := range out.ModerationLabels {
		detections = append(detections, model.Detection{
			Label:       aws.ToString(l.Name),
			ParentLabel: aws.ToString(l.ParentName),
			Confidence:  float64(aws.ToFloat32(l.Confidence)),
		})
	}
	return detections, nil
}

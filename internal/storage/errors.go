package storage

import (
	"fmt"

	"github.com/venueo/media-pipeline-go/internal/usecase/ingest"

	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return ingest.ErrObjectNotFound
	case "NoSuchBucket":
		return ingest.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return ingest.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", ingest.ErrInternal, err)
	}
}

package ingest_context

import "context"

type ctxKey string

const (
	ObjectKeyKey ctxKey = "objectKey"
	BatchIDKey   ctxKey = "batchID"
)

// WithObjectKey tags the context with the object key currently being
// processed so every log line in the pipeline carries it.
func WithObjectKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ObjectKeyKey, key)
}

func ObjectKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(ObjectKeyKey).(string)
	return key, ok
}

func WithBatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, BatchIDKey, id)
}

func BatchIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(BatchIDKey).(string)
	return id, ok
}

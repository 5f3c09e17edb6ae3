package model

// UploadEvent is one "object created" notification emitted by the object
// store. Delivery is at-least-once: the same event may arrive more than once
// and events for different objects may arrive out of order.
type UploadEvent struct {
	Bucket string `json:"bucket" validate:"required"`
	Key    string `json:"key" validate:"required"`
}

// NotificationPayload is the raw bucket-notification body posted by the
// object store (S3-compatible shape). Object keys in it are URL-encoded and
// must be decoded before use.
type NotificationPayload struct {
	Records []NotificationRecord `json:"Records"`
}

type NotificationRecord struct {
	EventName string `json:"eventName"`
	S3        struct {
		Bucket struct {
			Name string `json:"name"`
		} `json:"bucket"`
		Object struct {
			Key  string `json:"key"`
			Size int64  `json:"size"`
		} `json:"object"`
	} `json:"s3"`
}

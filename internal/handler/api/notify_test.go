package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/venueo/media-pipeline-go/internal/mock"
)

func notifyBody(records ...[2]string) string {
	type obj struct {
		Key string `json:"key"`
	}
	type bkt struct {
		Name string `json:"name"`
	}
	type s3 struct {
		Bucket bkt `json:"bucket"`
		Object obj `json:"object"`
	}
	type rec struct {
		EventName string `json:"eventName"`
		S3        s3     `json:"s3"`
	}
	payload := struct {
		Records []rec `json:"Records"`
	}{}
	for _, r := range records {
		payload.Records = append(payload.Records, rec{
			EventName: "s3:ObjectCreated:Put",
			S3:        s3{Bucket: bkt{Name: r[0]}, Object: obj{Key: r[1]}},
		})
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func postNotify(t *testing.T, dispatcher *mock.Dispatcher, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/events/storage", strings.NewReader(body))
	rr := httptest.NewRecorder()
	StorageNotifyHandler(dispatcher)(rr, req)
	return rr
}

func TestStorageNotifyHandler_BadJSON(t *testing.T) {
	dispatcher := &mock.Dispatcher{}
	rr := postNotify(t, dispatcher, "{not json")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rr.Code)
	}
	if dispatcher.Called {
		t.Error("dispatcher should not be called on bad JSON")
	}
}

func TestStorageNotifyHandler_InvalidKeyEscape(t *testing.T) {
	dispatcher := &mock.Dispatcher{}
	rr := postNotify(t, dispatcher, notifyBody([2]string{"media", "uploads/bad%zz.png"}))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rr.Code)
	}
	if dispatcher.Called {
		t.Error("dispatcher should not be called on undecodable key")
	}
}

func TestStorageNotifyHandler_MissingBucket(t *testing.T) {
	dispatcher := &mock.Dispatcher{}
	rr := postNotify(t, dispatcher, notifyBody([2]string{"", "uploads/a.png"}))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rr.Code)
	}
}

func TestStorageNotifyHandler_EmptyRecords(t *testing.T) {
	dispatcher := &mock.Dispatcher{}
	rr := postNotify(t, dispatcher, `{"Records":[]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rr.Code)
	}
	var resp NotifyResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Queued != 0 || resp.Status != "empty" {
		t.Errorf("response = %+v", resp)
	}
	if dispatcher.Called {
		t.Error("nothing should be enqueued for an empty batch")
	}
}

func TestStorageNotifyHandler_QueuesBatch(t *testing.T) {
	dispatcher := &mock.Dispatcher{}
	rr := postNotify(t, dispatcher, notifyBody(
		[2]string{"media", "uploads/places/p1/cover/caf%C3%A9.jpg"},
		[2]string{"media", "uploads/venues/v1/logo.png"},
	))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d; want 202", rr.Code)
	}
	var resp NotifyResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Queued != 2 || resp.Status != "queued" {
		t.Errorf("response = %+v", resp)
	}
	if len(dispatcher.Events) != 2 {
		t.Fatalf("dispatcher got %d events; want 2", len(dispatcher.Events))
	}
	// keys arrive URL-encoded and must be decoded before dispatch
	if dispatcher.Events[0].Key != "uploads/places/p1/cover/café.jpg" {
		t.Errorf("first key = %q", dispatcher.Events[0].Key)
	}
	if dispatcher.Events[1].Bucket != "media" || dispatcher.Events[1].Key != "uploads/venues/v1/logo.png" {
		t.Errorf("second event = %+v", dispatcher.Events[1])
	}
}

func TestStorageNotifyHandler_EnqueueError(t *testing.T) {
	dispatcher := &mock.Dispatcher{Err: errors.New("redis down")}
	rr := postNotify(t, dispatcher, notifyBody([2]string{"media", "uploads/a.png"}))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d; want 500", rr.Code)
	}
}

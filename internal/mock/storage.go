package mock

import (
	"bytes"
	"context"
	"io"

	"github.com/venueo/media-pipeline-go/internal/port"
)

type nopReadSeekCloser struct{ io.ReadSeeker }

func (nopReadSeekCloser) Close() error { return nil }

// Storage implements the storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo
	GetOut      []byte

	// captured inputs
	GetKey       string
	SavedKey     string
	SavedBytes   []byte
	SavedOpts    map[string]string
	RemovedKeys  []string
	SavedBucket  string
	RemovedCalls int

	// errors
	InitBucketErr error
	StatErr       error
	RemoveErr     error
	GetErr        error
	SaveErr       error

	// call flags
	InitBucketCalled bool
	StatCalled       bool
	RemoveCalled     bool
	GetCalled        bool
	SaveCalled       bool
}

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveCalled = true
	m.RemovedCalls++
	m.RemovedKeys = append(m.RemovedKeys, fileKey)
	return m.RemoveErr
}

func (m *Storage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error) {
	m.GetCalled = true
	m.GetKey = fileKey
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return nopReadSeekCloser{bytes.NewReader(m.GetOut)}, nil
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalled = true
	m.SavedBucket = bucket
	m.SavedKey = fileKey
	m.SavedOpts = opts
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.SavedBytes = data
	return m.SaveErr
}

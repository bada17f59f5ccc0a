package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// TrackArchive stores finished tracking sessions (raw feed frames plus the
// status journal) in object storage.
type TrackArchive struct {
	minioClient *minio.Client
	bucketName  string
}

// NewTrackArchive creates a TrackArchive, making the bucket when missing.
func NewTrackArchive(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*TrackArchive, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	exists, err := minioClient.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := minioClient.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &TrackArchive{
		minioClient: minioClient,
		bucketName:  bucket,
	}, nil
}

// ArchiveSession writes one tracking session as a plain-text object and
// returns its key.
func (a *TrackArchive) ArchiveSession(ctx context.Context, sessionID uuid.UUID, rawFrames, statusLines []string) (string, error) {
	var b strings.Builder
	b.WriteString("# raw frames\n")
	for _, frame := range rawFrames {
		b.WriteString(frame)
		b.WriteByte('\n')
	}
	b.WriteString("# status log\n")
	for _, line := range statusLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	objectKey := fmt.Sprintf("sessions/%s/%s.log", time.Now().UTC().Format("2006-01-02"), sessionID)
	body := []byte(b.String())

	_, err := a.minioClient.PutObject(
		ctx,
		a.bucketName,
		objectKey,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{ContentType: "text/plain"},
	)
	if err != nil {
		return "", fmt.Errorf("failed to archive session %s: %w", sessionID, err)
	}

	return objectKey, nil
}

// GetSession reads an archived session back.
func (a *TrackArchive) GetSession(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	obj, err := a.minioClient.GetObject(ctx, a.bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get archived session: %w", err)
	}
	return obj, nil
}

// ListSessionKeys lists archived session keys, optionally under one day
// prefix ("2006-01-02"); an empty prefix lists everything.
func (a *TrackArchive) ListSessionKeys(ctx context.Context, dayPrefix string) ([]string, error) {
	prefix := "sessions/"
	if dayPrefix != "" {
		prefix += dayPrefix + "/"
	}

	var keys []string
	for obj := range a.minioClient.ListObjects(ctx, a.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

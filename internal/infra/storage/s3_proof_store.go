package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
)

// S3ProofStore keeps submitted evidence in an S3 bucket, one object per
// action.
type S3ProofStore struct {
	client     *s3.Client
	bucketName string
	logger     *slog.Logger
}

func NewS3ProofStore(cfg aws.Config, bucketName string, logger *slog.Logger) *S3ProofStore {
	return &S3ProofStore{
		client:     s3.NewFromConfig(cfg),
		bucketName: bucketName,
		logger:     logger,
	}
}

func (s *S3ProofStore) Put(ctx context.Context, actionID domain.ActionID, payload []byte, contentType string) (string, error) {
	ref := fmt.Sprintf("proofs/%s", actionID.String())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucketName,
		Key:         &ref,
		Body:        bytes.NewReader(payload),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to store proof for action %s: %v",
			apperrors.ErrStorageFailure, actionID, err)
	}

	return ref, nil
}

func (s *S3ProofStore) Get(ctx context.Context, ref string) ([]byte, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucketName,
		Key:    &ref,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get proof %s: %v", apperrors.ErrStorageFailure, ref, err)
	}
	defer func() {
		if err := output.Body.Close(); err != nil {
			s.logger.Error("failed to close S3 object body", "error", err)
		}
	}()

	payload, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read proof %s: %v", apperrors.ErrStorageFailure, ref, err)
	}
	return payload, nil
}

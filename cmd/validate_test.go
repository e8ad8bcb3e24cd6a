package cmd

import (
	"context"
	"testing"
	"time"

	"warehouse-sync/core/storage/mocks"
	"warehouse-sync/feature/reconcile"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArchiveCreatesBucketAndUploadsReport(t *testing.T) {
	client := new(mocks.Client)
	report := &reconcile.Report{
		RunID:       "0c6d3a1e-test",
		GeneratedAt: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		Passed:      true,
	}

	client.On("BucketExists", mock.Anything, "warehouse-reports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "warehouse-reports", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "warehouse-reports",
		"reports/validate-2026-09-01-0c6d3a1e-test.json",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	err := archive(context.Background(), client, "warehouse-reports", report)
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestArchiveSkipsBucketCreationWhenPresent(t *testing.T) {
	client := new(mocks.Client)
	report := &reconcile.Report{
		RunID:       "abc",
		GeneratedAt: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}

	client.On("BucketExists", mock.Anything, "warehouse-reports").Return(true, nil)
	client.On("PutObject", mock.Anything, "warehouse-reports",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	err := archive(context.Background(), client, "warehouse-reports", report)
	require.NoError(t, err)
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, "PASSED", verdict(true))
	assert.Equal(t, "FAILED", verdict(false))
}

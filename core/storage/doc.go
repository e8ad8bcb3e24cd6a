// Package storage provides the object storage client used to archive
// reconciliation reports.
//
// The validate command can upload its JSON report to a bucket so discrepancy
// history survives across runs and machines. The Client interface wraps the
// MinIO SDK (S3 compatible) and is narrow on purpose: archiving needs bucket
// checks, bucket creation and object upload, nothing else.
//
// # Mocks
//
// The mocks subpackage contains a testify mock of Client for tests that
// exercise archiving without a live endpoint.
package storage

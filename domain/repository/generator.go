package repository

import (
	"context"

	"social-manager/domain/dto"
)

// IVideoGenerator is the external generation service consumed over HTTP.
// Every call may fail at the network boundary and surfaces typed errors.
type IVideoGenerator interface {
	Submit(ctx context.Context, req *dto.GenerationRequest) (*dto.JobCreateResponse, error)
	GetStatus(ctx context.Context, jobID string) (*dto.JobStatusResponse, error)
	Download(ctx context.Context, jobID string) ([]byte, error)
	ListJobs(ctx context.Context, opts *dto.JobListOptions) (*dto.JobListResponse, error)
	Cancel(ctx context.Context, jobID string) error
}

// IVault encrypts and decrypts secrets at rest.
type IVault interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(blob string) (string, error)
}

package transfer

import (
	"context"
	"time"
)

// TransferRepository - interface for the transfer_requests table
type TransferRepository interface {
	Create(ctx context.Context, req TransferRequest) (TransferRequest, error)
	GetByID(ctx context.Context, id string) (TransferRequest, error)
	List(ctx context.Context, filter ListFilter) ([]TransferRequest, int64, error)
	// UpdateStatus only touches rows still in the expected prior status and
	// reports whether a row was changed.
	UpdateStatus(ctx context.Context, upd StatusUpdate) (bool, error)
}

type StatusUpdate struct {
	ID              string
	FromStatus      TransferStatus
	ToStatus        TransferStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CompletedAt     *time.Time
}

package onchain

import "context"

// Repository reads the on-chain ledger schema. All operations are read-only;
// the warehouse is populated by an external ingestion pipeline.
type Repository interface {
	GetRecentBlocks(ctx context.Context, limit int) ([]Block, error)
	GetBlockByHeight(ctx context.Context, height uint64) (*Block, error)
	GetBlockTransactions(ctx context.Context, height uint64, limit int) ([]Transaction, error)
	GetTransaction(ctx context.Context, hash string) (*Transaction, error)
	GetAddressSummary(ctx context.Context, address string) (*AddressSummary, error)
}

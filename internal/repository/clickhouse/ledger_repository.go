package clickhouse

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"chainboard/internal/domain/onchain"
	"chainboard/pkg/errors"
)

// Compile-time check
var _ onchain.Repository = (*LedgerRepository)(nil)

// LedgerRepository implements onchain.Repository over the ClickHouse ledger schema
type LedgerRepository struct {
	conn driver.Conn
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(conn driver.Conn) *LedgerRepository {
	return &LedgerRepository{conn: conn}
}

// GetRecentBlocks retrieves the newest blocks, highest first
func (r *LedgerRepository) GetRecentBlocks(ctx context.Context, limit int) ([]onchain.Block, error) {
	query := `
		SELECT height, hash, timestamp, tx_count, size_bytes, fees_sats, miner
		FROM blocks
		ORDER BY height DESC
		LIMIT ?`

	var blocks []onchain.Block
	err := r.conn.Select(ctx, &blocks, query, limit)
	observeQuery("recent_blocks", err)
	if err != nil {
		return nil, errors.Wrap(err, "select recent blocks")
	}

	return blocks, nil
}

// GetBlockByHeight retrieves a single block
func (r *LedgerRepository) GetBlockByHeight(ctx context.Context, height uint64) (*onchain.Block, error) {
	query := `
		SELECT height, hash, timestamp, tx_count, size_bytes, fees_sats, miner
		FROM blocks
		WHERE height = ?
		LIMIT 1`

	var blocks []onchain.Block
	err := r.conn.Select(ctx, &blocks, query, height)
	observeQuery("block_by_height", err)
	if err != nil {
		return nil, errors.Wrapf(err, "select block %d", height)
	}
	if len(blocks) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "block %d", height)
	}

	return &blocks[0], nil
}

// GetBlockTransactions retrieves transactions confirmed in a block
func (r *LedgerRepository) GetBlockTransactions(ctx context.Context, height uint64, limit int) ([]onchain.Transaction, error) {
	query := `
		SELECT hash, block_height, timestamp, input_count, output_count, value_sats, fee_sats
		FROM transactions
		WHERE block_height = ?
		ORDER BY fee_sats DESC
		LIMIT ?`

	var txs []onchain.Transaction
	err := r.conn.Select(ctx, &txs, query, height, limit)
	observeQuery("block_transactions", err)
	if err != nil {
		return nil, errors.Wrapf(err, "select transactions of block %d", height)
	}

	return txs, nil
}

// GetTransaction retrieves a transaction by hash
func (r *LedgerRepository) GetTransaction(ctx context.Context, hash string) (*onchain.Transaction, error) {
	query := `
		SELECT hash, block_height, timestamp, input_count, output_count, value_sats, fee_sats
		FROM transactions
		WHERE hash = ?
		LIMIT 1`

	var txs []onchain.Transaction
	err := r.conn.Select(ctx, &txs, query, hash)
	observeQuery("transaction", err)
	if err != nil {
		return nil, errors.Wrapf(err, "select transaction %s", hash)
	}
	if len(txs) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "transaction %s", hash)
	}

	return &txs[0], nil
}

// GetAddressSummary aggregates received/sent totals for one address from the
// outputs table. funding rows credit the address, spending rows debit it.
func (r *LedgerRepository) GetAddressSummary(ctx context.Context, address string) (*onchain.AddressSummary, error) {
	query := `
		SELECT
			address,
			sumIf(value_sats, NOT spent) AS balance_sats,
			sum(value_sats) AS received_sats,
			sumIf(value_sats, spent) AS sent_sats,
			uniqExact(tx_hash) AS tx_count,
			min(timestamp) AS first_seen,
			max(timestamp) AS last_seen
		FROM outputs
		WHERE address = ?
		GROUP BY address`

	var summaries []onchain.AddressSummary
	err := r.conn.Select(ctx, &summaries, query, address)
	observeQuery("address_summary", err)
	if err != nil {
		return nil, errors.Wrapf(err, "select address %s", address)
	}
	if len(summaries) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "address %s", address)
	}

	return &summaries[0], nil
}

package explorer

import (
	"context"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"chainboard/internal/domain/onchain"
	"chainboard/pkg/errors"
	"chainboard/pkg/logger"
)

const (
	defaultBlockLimit = 20
	maxBlockLimit     = 100
	blockTxLimit      = 50
)

// Service serves the block explorer views over the ledger schema
type Service struct {
	repo onchain.Repository
	log  *logger.Logger
}

// New creates a new explorer service
func New(repo onchain.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// BlockView is a block row with display-ready amounts
type BlockView struct {
	onchain.Block
	FeesBTC     string `json:"fees_btc"`
	SizeDisplay string `json:"size_display"`
}

// TransactionView is a transaction row with display-ready amounts
type TransactionView struct {
	onchain.Transaction
	ValueBTC string `json:"value_btc"`
	FeeBTC   string `json:"fee_btc"`
}

// BlockDetail is a block with its largest transactions
type BlockDetail struct {
	BlockView
	Transactions []TransactionView `json:"transactions"`
}

// AddressView is an address summary with display-ready amounts
type AddressView struct {
	onchain.AddressSummary
	BalanceBTC     string `json:"balance_btc"`
	ReceivedBTC    string `json:"received_btc"`
	SentBTC        string `json:"sent_btc"`
	TxCountDisplay string `json:"tx_count_display"`
}

// RecentBlocks returns the newest blocks. A non-positive limit falls back to
// the default; oversized limits are clamped.
func (s *Service) RecentBlocks(ctx context.Context, limit int) ([]BlockView, error) {
	if limit <= 0 {
		limit = defaultBlockLimit
	}
	if limit > maxBlockLimit {
		limit = maxBlockLimit
	}

	blocks, err := s.repo.GetRecentBlocks(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "recent blocks")
	}

	views := make([]BlockView, len(blocks))
	for i, b := range blocks {
		views[i] = newBlockView(b)
	}
	return views, nil
}

// Block returns one block with its largest transactions
func (s *Service) Block(ctx context.Context, height uint64) (*BlockDetail, error) {
	block, err := s.repo.GetBlockByHeight(ctx, height)
	if err != nil {
		return nil, err
	}

	txs, err := s.repo.GetBlockTransactions(ctx, height, blockTxLimit)
	if err != nil {
		// The block header still renders without its transaction list
		s.log.Warnf("transactions unavailable for block %d: %v", height, err)
		txs = nil
	}

	detail := &BlockDetail{
		BlockView:    newBlockView(*block),
		Transactions: make([]TransactionView, len(txs)),
	}
	for i, tx := range txs {
		detail.Transactions[i] = newTransactionView(tx)
	}
	return detail, nil
}

// Transaction returns one transaction by hash
func (s *Service) Transaction(ctx context.Context, hash string) (*TransactionView, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "empty transaction hash")
	}

	tx, err := s.repo.GetTransaction(ctx, hash)
	if err != nil {
		return nil, err
	}

	view := newTransactionView(*tx)
	return &view, nil
}

// Address returns the summary view for one address
func (s *Service) Address(ctx context.Context, address string) (*AddressView, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "empty address")
	}

	summary, err := s.repo.GetAddressSummary(ctx, address)
	if err != nil {
		return nil, err
	}

	return &AddressView{
		AddressSummary: *summary,
		BalanceBTC:     satsToBTC(summary.BalanceSats),
		ReceivedBTC:    satsToBTC(summary.ReceivedSats),
		SentBTC:        satsToBTC(summary.SentSats),
		TxCountDisplay: humanize.Comma(int64(summary.TxCount)),
	}, nil
}

func newBlockView(b onchain.Block) BlockView {
	return BlockView{
		Block:       b,
		FeesBTC:     satsToBTC(b.FeesSats),
		SizeDisplay: humanize.Bytes(b.SizeBytes),
	}
}

func newTransactionView(tx onchain.Transaction) TransactionView {
	return TransactionView{
		Transaction: tx,
		ValueBTC:    satsToBTC(tx.ValueSats),
		FeeBTC:      satsToBTC(tx.FeeSats),
	}
}

// satsToBTC formats satoshis as a BTC decimal string without float rounding
func satsToBTC(sats uint64) string {
	return decimal.NewFromUint64(sats).Shift(-8).StringFixed(8)
}

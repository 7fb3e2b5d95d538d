package onchain

import "time"

// Block is a row from the ledger schema's blocks table
type Block struct {
	Height    uint64    `ch:"height" json:"height"`
	Hash      string    `ch:"hash" json:"hash"`
	Timestamp time.Time `ch:"timestamp" json:"timestamp"`
	TxCount   uint64    `ch:"tx_count" json:"tx_count"`
	SizeBytes uint64    `ch:"size_bytes" json:"size_bytes"`
	FeesSats  uint64    `ch:"fees_sats" json:"fees_sats"`
	Miner     string    `ch:"miner" json:"miner,omitempty"`
}

// Transaction is a row from the ledger schema's transactions table
type Transaction struct {
	Hash        string    `ch:"hash" json:"hash"`
	BlockHeight uint64    `ch:"block_height" json:"block_height"`
	Timestamp   time.Time `ch:"timestamp" json:"timestamp"`
	InputCount  uint64    `ch:"input_count" json:"input_count"`
	OutputCount uint64    `ch:"output_count" json:"output_count"`
	ValueSats   uint64    `ch:"value_sats" json:"value_sats"`
	FeeSats     uint64    `ch:"fee_sats" json:"fee_sats"`
}

// AddressSummary aggregates the ledger rows touching a single address
type AddressSummary struct {
	Address      string    `ch:"address" json:"address"`
	BalanceSats  uint64    `ch:"balance_sats" json:"balance_sats"`
	ReceivedSats uint64    `ch:"received_sats" json:"received_sats"`
	SentSats     uint64    `ch:"sent_sats" json:"sent_sats"`
	TxCount      uint64    `ch:"tx_count" json:"tx_count"`
	FirstSeen    time.Time `ch:"first_seen" json:"first_seen"`
	LastSeen     time.Time `ch:"last_seen" json:"last_seen"`
}

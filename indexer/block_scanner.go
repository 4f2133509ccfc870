package indexer

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"storage-market-indexer/logger"
	"storage-market-indexer/metrics"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/schollz/progressbar/v3"
)

// ChainClient the subset of the Ethereum RPC used by the scanner
type ChainClient interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// DialChainClient initialises an EVM RPC client for the provided endpoint
func DialChainClient(endpoint string) (*ethclient.Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("rpc endpoint required")
	}
	return ethclient.Dial(trimmed)
}

// EventHandler applies one decoded event; an error aborts the current window
type EventHandler func(ctx context.Context, event Event) error

// ScannerOptions log scanner settings
type ScannerOptions struct {
	ChainName     string
	StartHeight   uint64        // First block to scan
	BatchSize     uint64        // Blocks per eth_getLogs window
	Confirmations uint64        // Blocks behind head considered final
	Interval      time.Duration // Sleep when caught up or after an RPC error
	ShowProgress  bool
}

// LogScanner pulls contract logs window by window and feeds decoded events to a handler in chain order
type LogScanner struct {
	client      ChainClient
	decoder     *LogDecoder
	opts        ScannerOptions
	progressBar *progressbar.ProgressBar
	blockTimes  map[uint64]int64
}

// NewLogScanner create log scanner
func NewLogScanner(client ChainClient, decoder *LogDecoder, opts ScannerOptions) *LogScanner {
	if opts.BatchSize == 0 {
		opts.BatchSize = 500
	}
	if opts.Interval <= 0 {
		opts.Interval = 10 * time.Second
	}
	if opts.ChainName == "" {
		opts.ChainName = "evm"
	}
	return &LogScanner{
		client:     client,
		decoder:    decoder,
		opts:       opts,
		blockTimes: make(map[uint64]int64),
	}
}

// SafeHead latest block with enough confirmations; ok is false while the chain is shorter than the confirmation depth
func (s *LogScanner) SafeHead(ctx context.Context) (uint64, bool, error) {
	head, err := s.client.BlockNumber(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("get block number: %w", err)
	}
	metrics.Indexer().SetHeadHeight(s.opts.ChainName, head)
	if head < s.opts.Confirmations {
		return 0, false, nil
	}
	return head - s.opts.Confirmations, true, nil
}

// ScanRange fetch, order, decode and apply every log of [from, to].
// Returns the number of events handed to handler.
func (s *LogScanner) ScanRange(ctx context.Context, from, to uint64, handler EventHandler) (int, error) {
	if from > to {
		return 0, nil
	}
	defer s.resetBlockTimes()

	queue := NewLogQueue()
	for _, spec := range s.decoder.Contracts() {
		if spec.StartBlock > to {
			continue
		}
		start := from
		if spec.StartBlock > start {
			start = spec.StartBlock
		}
		logs, err := s.client.FilterLogs(ctx, ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(start),
			ToBlock:   new(big.Int).SetUint64(to),
			Addresses: []common.Address{spec.Address},
		})
		if err != nil {
			return 0, fmt.Errorf("filter logs of %s [%d, %d]: %w", spec.Name, start, to, err)
		}
		for _, l := range logs {
			if l.Removed {
				continue
			}
			queue.PushLogs(l)
		}
	}

	applied := 0
	for _, l := range queue.Drain() {
		blockTime, err := s.blockTime(ctx, l.BlockNumber)
		if err != nil {
			return applied, err
		}
		event, err := s.decoder.Decode(l, blockTime)
		if err != nil {
			if errors.Is(err, ErrUnknownEvent) || errors.Is(err, ErrUnknownContract) {
				logger.Debugf("[%s] Skip log %s-%d: %v", s.opts.ChainName, l.TxHash.Hex(), l.Index, err)
				continue
			}
			return applied, fmt.Errorf("decode log %s-%d: %w", l.TxHash.Hex(), l.Index, err)
		}
		if err := handler(ctx, event); err != nil {
			return applied, fmt.Errorf("apply %s %s: %w", event.Meta().Name, event.Meta().EventID(), err)
		}
		applied++
	}
	return applied, nil
}

// blockTime header timestamp, cached for the current window
func (s *LogScanner) blockTime(ctx context.Context, number uint64) (int64, error) {
	if ts, ok := s.blockTimes[number]; ok {
		return ts, nil
	}
	header, err := s.client.HeaderByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return 0, fmt.Errorf("get header %d: %w", number, err)
	}
	ts := int64(header.Time)
	s.blockTimes[number] = ts
	return ts, nil
}

func (s *LogScanner) resetBlockTimes() {
	s.blockTimes = make(map[uint64]int64)
}

// Start scan from the start height until ctx is cancelled.
// onRangeComplete is called after each window is fully applied.
func (s *LogScanner) Start(ctx context.Context, handler EventHandler, onRangeComplete func(to uint64) error) error {
	current := s.opts.StartHeight
	logger.Infof("Log scanner started from height %d (chain: %s, contracts: %d)", current, s.opts.ChainName, len(s.decoder.Contracts()))

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		head, ok, err := s.SafeHead(ctx)
		if err != nil {
			logger.Warnf("[%s] Failed to get safe head: %v", s.opts.ChainName, err)
			if !sleepCtx(ctx, s.opts.Interval) {
				return ctx.Err()
			}
			continue
		}

		// if new blocks exist, start scan
		if ok && current <= head {
			blocksToScan := int64(head - current + 1)
			if s.opts.ShowProgress {
				s.progressBar = progressbar.NewOptions64(
					blocksToScan,
					progressbar.OptionSetDescription(fmt.Sprintf("[%s] Scanning logs", s.opts.ChainName)),
					progressbar.OptionSetWidth(50),
					progressbar.OptionShowCount(),
					progressbar.OptionShowIts(),
					progressbar.OptionSetItsString("blocks"),
					progressbar.OptionThrottle(100*time.Millisecond),
					progressbar.OptionShowElapsedTimeOnFinish(),
					progressbar.OptionSetPredictTime(true),
					progressbar.OptionFullWidth(),
					progressbar.OptionSetRenderBlankState(true),
				)
			}
			logger.Infof("[%s] Starting to scan %d blocks (from %d to %d)", s.opts.ChainName, blocksToScan, current, head)

			for current <= head {
				to := current + s.opts.BatchSize - 1
				if to > head {
					to = head
				}
				n, err := s.ScanRange(ctx, current, to, handler)
				if err != nil {
					if ctx.Err() != nil {
						s.finishProgress()
						return ctx.Err()
					}
					logger.Errorf("[%s] Failed to scan blocks [%d, %d]: %v", s.opts.ChainName, current, to, err)
					if !sleepCtx(ctx, s.opts.Interval) {
						s.finishProgress()
						return ctx.Err()
					}
					continue
				}
				if n > 0 {
					logger.Debugf("[%s] Applied %d events in blocks [%d, %d]", s.opts.ChainName, n, current, to)
				}

				// persist sync status
				if onRangeComplete != nil {
					if err := onRangeComplete(to); err != nil {
						logger.Errorf("[%s] Failed to update sync status for block %d: %v", s.opts.ChainName, to, err)
					}
				}

				if s.progressBar != nil {
					s.progressBar.Add64(int64(to - current + 1))
				}
				current = to + 1
			}

			s.finishProgress()
			logger.Infof("[%s] Completed scanning to block %d", s.opts.ChainName, head)
		}

		// wait for next scan
		if !sleepCtx(ctx, s.opts.Interval) {
			return ctx.Err()
		}
	}
}

func (s *LogScanner) finishProgress() {
	if s.progressBar != nil {
		s.progressBar.Finish()
		s.progressBar = nil
	}
}

// sleepCtx waits for d, false when ctx is cancelled first
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

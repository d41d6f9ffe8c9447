package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DefiantLabs/course-platform/config"
	"github.com/DefiantLabs/course-platform/db"
	"github.com/DefiantLabs/course-platform/platform"
	"github.com/DefiantLabs/course-platform/rpc"
	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// Options are the loop settings of an Indexer, usually taken from the index command config.
type Options struct {
	StartBlock        int64
	EndBlock          int64
	BatchSize         uint64
	RPCWorkers        int64
	BlockTimer        int64
	Throttling        float64
	WaitForChain      bool
	WaitForChainDelay int64
	ExitWhenCaughtUp  bool
	Dry               bool
}

// Indexer replays CoursePlatform events into the database in block order.
type Indexer struct {
	reader             rpc.ChainReader
	db                 *gorm.DB
	platform           *platform.Platform
	contract           string
	opts               Options
	pool               pond.Pool
	failedBlockHandler FailedBlockHandler

	blocksProcessed int64
	timeStart       time.Time
}

func NewIndexer(reader rpc.ChainReader, gormDB *gorm.DB, p *platform.Platform, opts Options, failedBlockHandler FailedBlockHandler) *Indexer {
	if opts.BatchSize == 0 {
		opts.BatchSize = 1
	}
	if opts.RPCWorkers < 1 {
		opts.RPCWorkers = 1
	}
	if failedBlockHandler == nil {
		failedBlockHandler = HandleFailedBlock
	}
	return &Indexer{
		reader:             reader,
		db:                 gormDB,
		platform:           p,
		contract:           platform.AddressID(p.Address),
		opts:               opts,
		pool:               pond.NewPool(int(opts.RPCWorkers)),
		failedBlockHandler: failedBlockHandler,
	}
}

// Stop releases the metadata worker pool.
func (idx *Indexer) Stop() {
	idx.pool.StopAndWait()
}

// Run indexes from the starting height until the end block, the chain head when exiting on catch up,
// or until ctx is cancelled.
func (idx *Indexer) Run(ctx context.Context) error {
	if idx.opts.WaitForChain || idx.opts.ExitWhenCaughtUp {
		if err := idx.waitForChain(ctx); err != nil {
			return err
		}
	}

	currBlock, err := idx.StartingHeight(ctx)
	if err != nil {
		return err
	}
	config.Log.Infof("Indexing contract %s from block %d", idx.contract, currBlock)

	idx.timeStart = time.Now()
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// Don't index past this block no matter what
		if idx.opts.EndBlock != -1 && currBlock > idx.opts.EndBlock {
			config.Log.Info("Hit the last block we're allowed to index, exiting.")
			return nil
		}

		latestBlock, err := idx.reader.GetLatestBlockHeight(ctx)
		if err != nil {
			return fmt.Errorf("getting latest block height: %w", err)
		}

		if currBlock > latestBlock {
			if idx.opts.ExitWhenCaughtUp {
				config.Log.Info("Caught up with the chain head, exiting.")
				return nil
			}
			// Already at the latest block, wait for the next block to be available.
			if err := sleep(ctx, idx.pollDelay()); err != nil {
				return err
			}
			continue
		}

		lastBlock := currBlock + int64(idx.opts.BatchSize) - 1
		if lastBlock > latestBlock {
			lastBlock = latestBlock
		}
		if idx.opts.EndBlock != -1 && lastBlock > idx.opts.EndBlock {
			lastBlock = idx.opts.EndBlock
		}

		if err := idx.IndexRange(ctx, currBlock, lastBlock); err != nil {
			return err
		}
		idx.trackProgress(lastBlock - currBlock + 1)
		currBlock = lastBlock + 1

		// Throttling in case of hitting public APIs
		if idx.opts.Throttling != 0 {
			if err := sleep(ctx, idx.throttle()); err != nil {
				return err
			}
		}
	}
}

// StartingHeight is the configured start block, or one past the checkpoint when resuming.
func (idx *Indexer) StartingHeight(ctx context.Context) (int64, error) {
	if idx.opts.StartBlock != -1 {
		return idx.opts.StartBlock, nil
	}

	highestIndexedBlock, err := db.GetHighestIndexedBlock(idx.db.WithContext(ctx), idx.contract)
	if err != nil {
		return 0, fmt.Errorf("reading checkpoint: %w", err)
	}
	return highestIndexedBlock + 1, nil
}

// IndexRange fetches, decodes and writes the contract events of the inclusive block range,
// then advances the checkpoint to the end of the range.
func (idx *Indexer) IndexRange(ctx context.Context, from, to int64) error {
	logs, err := idx.reader.GetLogs(ctx, from, to, idx.platform.Address, idx.platform.Topics())
	if err != nil {
		idx.failedBlockHandler(from, LogQueryError, err)
		return err
	}

	decoded, failed := ProcessLogs(idx.platform, idx.contract, logs, idx.failedBlockHandler)

	events, err := idx.attachMetadata(ctx, decoded)
	if err != nil {
		idx.failedBlockHandler(from, LogQueryError, err)
		return err
	}

	// While debugging we'll sometimes want to turn off INSERTS to the DB
	if idx.opts.Dry {
		for _, evt := range events {
			config.Log.Infof("Block %d: %s", evt.Meta.BlockHeight, evt.Event)
		}
		return nil
	}

	indexFailures, err := db.IndexEvents(idx.db.WithContext(ctx), idx.contract, to, events, failed, int(EventIndexError))
	if err != nil {
		return fmt.Errorf("indexing blocks %d-%d: %w", from, to, err)
	}
	for _, failure := range indexFailures {
		idx.failedBlockHandler(failure.BlockHeight, EventIndexError, errors.New(failure.Error))
	}

	if len(events) > 0 {
		config.Log.Infof("Indexed %d events in blocks %d-%d", len(events), from, to)
	}
	return nil
}

// attachMetadata resolves block timestamps and, where needed, transaction recipients on the worker pool.
func (idx *Indexer) attachMetadata(ctx context.Context, decoded []DecodedLog) ([]db.EventDBWrapper, error) {
	var heights []uint64
	var hashes []common.Hash
	seenHeights := map[uint64]bool{}
	seenHashes := map[common.Hash]bool{}
	for _, d := range decoded {
		if !seenHeights[d.Log.BlockNumber] {
			seenHeights[d.Log.BlockNumber] = true
			heights = append(heights, d.Log.BlockNumber)
		}
		if needsTxRecipient(d.Event) && !seenHashes[d.Log.TxHash] {
			seenHashes[d.Log.TxHash] = true
			hashes = append(hashes, d.Log.TxHash)
		}
	}

	timestamps := make(map[uint64]int64, len(heights))
	recipients := make(map[common.Hash]string, len(hashes))
	var mu sync.Mutex
	var firstErr error
	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	group := idx.pool.NewGroupContext(ctx)
	groupCtx := group.Context()
	for _, height := range heights {
		height := height
		group.Submit(func() {
			ts, err := idx.reader.GetBlockTimestamp(groupCtx, int64(height))
			if err != nil {
				setErr(fmt.Errorf("block %d timestamp: %w", height, err))
				return
			}
			mu.Lock()
			timestamps[height] = ts
			mu.Unlock()
		})
	}
	for _, hash := range hashes {
		hash := hash
		group.Submit(func() {
			to, err := idx.reader.GetTxRecipient(groupCtx, hash)
			if err != nil {
				setErr(fmt.Errorf("tx %s recipient: %w", hash.Hex(), err))
				return
			}
			if to != nil {
				mu.Lock()
				recipients[hash] = platform.AddressID(*to)
				mu.Unlock()
			}
		})
	}
	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	events := make([]db.EventDBWrapper, 0, len(decoded))
	for _, d := range decoded {
		events = append(events, db.EventDBWrapper{
			Meta: db.EventMeta{
				TxHash:      d.Log.TxHash.Hex(),
				LogIndex:    d.Log.Index,
				BlockHeight: int64(d.Log.BlockNumber),
				BlockTime:   timestamps[d.Log.BlockNumber],
				TxTo:        recipients[d.Log.TxHash],
			},
			Event: d.Event,
		})
	}
	return events, nil
}

func (idx *Indexer) waitForChain(ctx context.Context) error {
	delay := time.Duration(idx.opts.WaitForChainDelay) * time.Second
	for {
		catchingUp, err := idx.reader.IsCatchingUp(ctx)
		if err != nil {
			return fmt.Errorf("querying chain status: %w", err)
		}
		if !catchingUp {
			return nil
		}
		config.Log.Infof("Node is still syncing, checking again in %v", delay)
		// Wait between status checks, don't spam the node with requests
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// trackProgress measures how many blocks per second the indexer processes.
func (idx *Indexer) trackProgress(blocks int64) {
	if idx.opts.BlockTimer <= 0 {
		return
	}
	before := idx.blocksProcessed / idx.opts.BlockTimer
	idx.blocksProcessed += blocks
	if idx.blocksProcessed/idx.opts.BlockTimer > before {
		totalTime := time.Since(idx.timeStart)
		config.Log.Infof("Processing %d blocks took %f seconds. %d total blocks have been processed.", idx.opts.BlockTimer, totalTime.Seconds(), idx.blocksProcessed)
		idx.timeStart = time.Now()
	}
}

func (idx *Indexer) throttle() time.Duration {
	return time.Duration(idx.opts.Throttling * float64(time.Second))
}

func (idx *Indexer) pollDelay() time.Duration {
	if d := idx.throttle(); d > time.Second {
		return d
	}
	return time.Second
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

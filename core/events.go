package core

import (
	"sort"

	"github.com/DefiantLabs/course-platform/db"
	"github.com/DefiantLabs/course-platform/platform"
	"github.com/ethereum/go-ethereum/core/types"
)

// DecodedLog is a contract log paired with its decoded event.
type DecodedLog struct {
	Log   types.Log
	Event platform.PlatformEvent
}

// ProcessLogs decodes logs in block and log order. Logs that cannot be decoded are returned as failures
// with the undecodable code and are otherwise skipped. Logs removed by a reorg are dropped.
func ProcessLogs(p *platform.Platform, contract string, logs []types.Log, failedBlockHandler FailedBlockHandler) ([]DecodedLog, []db.FailedEvent) {
	sorted := make([]types.Log, 0, len(logs))
	for _, log := range logs {
		if !log.Removed {
			sorted = append(sorted, log)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].BlockNumber != sorted[j].BlockNumber {
			return sorted[i].BlockNumber < sorted[j].BlockNumber
		}
		return sorted[i].Index < sorted[j].Index
	})

	var decoded []DecodedLog
	var failed []db.FailedEvent
	for _, log := range sorted {
		evt, err := p.ParseLog(log)
		if err != nil {
			failedBlockHandler(int64(log.BlockNumber), UndecodableEventError, err)
			failed = append(failed, db.FailedEvent{
				Contract:    contract,
				BlockHeight: int64(log.BlockNumber),
				TxHash:      log.TxHash.Hex(),
				LogIndex:    log.Index,
				Code:        int(UndecodableEventError),
				Error:       err.Error(),
			})
			continue
		}
		decoded = append(decoded, DecodedLog{Log: log, Event: evt})
	}
	return decoded, failed
}

// needsTxRecipient reports whether indexing evt may need the transaction's `to` as the default treasury.
func needsTxRecipient(evt platform.PlatformEvent) bool {
	switch evt.(type) {
	case *platform.WrapperPlatformFeeCollected, *platform.WrapperPlatformFeeRateUpdated:
		return true
	}
	return false
}

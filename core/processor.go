package core

import (
	"fmt"

	"github.com/DefiantLabs/course-platform/config"
)

type BlockProcessingFailure int

const (
	LogQueryError BlockProcessingFailure = iota
	UndecodableEventError
	EventIndexError
)

type FailedBlockHandler func(height int64, code BlockProcessingFailure, err error)

// HandleFailedBlock logs a failure within a block. Event level failures are also kept in failed_events.
func HandleFailedBlock(height int64, code BlockProcessingFailure, err error) {
	reason := "{unknown error}"
	switch code {
	case LogQueryError:
		reason = "failed to query contract logs for block range"
	case UndecodableEventError:
		reason = "contract log could not be decoded"
	case EventIndexError:
		reason = "failed to index event"
	}

	config.Log.Error(fmt.Sprintf("Block %v failed. Reason: %v", height, reason), err)
}

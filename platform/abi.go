package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Event names emitted by the CoursePlatform contract that the indexer understands.
const (
	EventCourseCreated           = "CourseCreated"
	EventCoursePurchased         = "CoursePurchased"
	EventCourseDeleted           = "CourseDeleted"
	EventPlatformFeeCollected    = "PlatformFeeCollected"
	EventPlatformFeeRateUpdated  = "PlatformFeeRateUpdated"
	EventPlatformTreasuryUpdated = "PlatformTreasuryUpdated"
)

const coursePlatformEventsABI = `[
  {"type":"event","name":"CourseCreated","anonymous":false,"inputs":[
    {"name":"courseId","type":"uint256","indexed":true},
    {"name":"creator","type":"address","indexed":true},
    {"name":"priceInYd","type":"uint256","indexed":false}]},
  {"type":"event","name":"CoursePurchased","anonymous":false,"inputs":[
    {"name":"courseId","type":"uint256","indexed":true},
    {"name":"student","type":"address","indexed":true},
    {"name":"creator","type":"address","indexed":true}]},
  {"type":"event","name":"CourseDeleted","anonymous":false,"inputs":[
    {"name":"courseId","type":"uint256","indexed":true}]},
  {"type":"event","name":"PlatformFeeCollected","anonymous":false,"inputs":[
    {"name":"courseId","type":"uint256","indexed":true},
    {"name":"from","type":"address","indexed":true},
    {"name":"feeAmount","type":"uint256","indexed":false}]},
  {"type":"event","name":"PlatformFeeRateUpdated","anonymous":false,"inputs":[
    {"name":"oldRate","type":"uint256","indexed":false},
    {"name":"newRate","type":"uint256","indexed":false}]},
  {"type":"event","name":"PlatformTreasuryUpdated","anonymous":false,"inputs":[
    {"name":"oldTreasury","type":"address","indexed":true},
    {"name":"newTreasury","type":"address","indexed":true}]}
]`

// Platform binds the CoursePlatform event ABI to a deployed contract address.
type Platform struct {
	Address common.Address
	ABI     abi.ABI
}

// New builds a Platform for the contract at address. When abiFile is empty the built-in event ABI is used,
// otherwise abiFile may hold either a bare ABI array or a hardhat artifact with an "abi" key.
func New(address common.Address, abiFile string) (*Platform, error) {
	raw := []byte(coursePlatformEventsABI)
	if abiFile != "" {
		fileBytes, err := os.ReadFile(abiFile)
		if err != nil {
			return nil, fmt.Errorf("reading ABI file %s: %w", abiFile, err)
		}
		raw, err = extractABI(fileBytes)
		if err != nil {
			return nil, fmt.Errorf("reading ABI file %s: %w", abiFile, err)
		}
	}

	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing CoursePlatform ABI: %w", err)
	}

	return &Platform{Address: address, ABI: parsed}, nil
}

func extractABI(fileBytes []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(fileBytes)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed, nil
	}

	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if err := json.Unmarshal(trimmed, &artifact); err != nil {
		return nil, err
	}
	if len(artifact.ABI) == 0 {
		return nil, fmt.Errorf("artifact has no abi key")
	}
	return artifact.ABI, nil
}

// Topics returns the eth_getLogs topic filter matching every event the indexer has a handler for.
func (p *Platform) Topics() [][]common.Hash {
	var ids []common.Hash
	for _, name := range EventNames() {
		if ev, ok := p.ABI.Events[name]; ok {
			ids = append(ids, ev.ID)
		}
	}
	return [][]common.Hash{ids}
}

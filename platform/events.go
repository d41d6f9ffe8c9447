package platform

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var ErrNoTopics = errors.New("log has no topics")

type UnknownEventError struct {
	Topic string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("no handler for event with topic %s", e.Topic)
}

// PlatformEvent is a decoded CoursePlatform event.
type PlatformEvent interface {
	HandleEvent(eventName string, args map[string]interface{}) error
	GetType() string
	String() string
}

// Decode the arguments of a log into a particular type, keyed by event name.
var EventTypeHandlers = map[string]func() PlatformEvent{
	EventCourseCreated:           func() PlatformEvent { return &WrapperCourseCreated{} },
	EventCoursePurchased:         func() PlatformEvent { return &WrapperCoursePurchased{} },
	EventCourseDeleted:           func() PlatformEvent { return &WrapperCourseDeleted{} },
	EventPlatformFeeCollected:    func() PlatformEvent { return &WrapperPlatformFeeCollected{} },
	EventPlatformFeeRateUpdated:  func() PlatformEvent { return &WrapperPlatformFeeRateUpdated{} },
	EventPlatformTreasuryUpdated: func() PlatformEvent { return &WrapperPlatformTreasuryUpdated{} },
}

// EventNames lists the handled events in a stable order.
func EventNames() []string {
	return []string{
		EventCourseCreated,
		EventCoursePurchased,
		EventCourseDeleted,
		EventPlatformFeeCollected,
		EventPlatformFeeRateUpdated,
		EventPlatformTreasuryUpdated,
	}
}

// ParseLog finds the ABI event for the log's first topic, unpacks both indexed and data arguments
// and hands them to the matching wrapper.
func (p *Platform) ParseLog(log types.Log) (PlatformEvent, error) {
	if len(log.Topics) == 0 {
		return nil, ErrNoTopics
	}

	ev, err := p.ABI.EventByID(log.Topics[0])
	if err != nil {
		return nil, &UnknownEventError{Topic: log.Topics[0].Hex()}
	}

	handlerFunc, ok := EventTypeHandlers[ev.Name]
	if !ok {
		return nil, &UnknownEventError{Topic: log.Topics[0].Hex()}
	}

	args := map[string]interface{}{}
	if err := ev.Inputs.UnpackIntoMap(args, log.Data); err != nil {
		return nil, fmt.Errorf("unpacking %s data: %w", ev.Name, err)
	}

	var indexed abi.Arguments
	for _, input := range ev.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if err := abi.ParseTopicsIntoMap(args, indexed, log.Topics[1:]); err != nil {
		return nil, fmt.Errorf("unpacking %s topics: %w", ev.Name, err)
	}

	evt := handlerFunc()
	if err := evt.HandleEvent(ev.Name, args); err != nil {
		return nil, err
	}
	return evt, nil
}

// EncodeLog builds the log the contract would emit for eventName with values given in ABI input order.
func (p *Platform) EncodeLog(eventName string, values ...interface{}) (types.Log, error) {
	ev, ok := p.ABI.Events[eventName]
	if !ok {
		return types.Log{}, fmt.Errorf("event %s not in ABI", eventName)
	}
	if len(values) != len(ev.Inputs) {
		return types.Log{}, fmt.Errorf("event %s takes %d arguments, got %d", eventName, len(ev.Inputs), len(values))
	}

	topics := []common.Hash{ev.ID}
	var data []interface{}
	for i, input := range ev.Inputs {
		if !input.Indexed {
			data = append(data, values[i])
			continue
		}
		topic, err := abi.MakeTopics([]interface{}{values[i]})
		if err != nil {
			return types.Log{}, err
		}
		topics = append(topics, topic[0][0])
	}

	packed, err := ev.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		return types.Log{}, err
	}

	return types.Log{Address: p.Address, Topics: topics, Data: packed}, nil
}

func bigArg(args map[string]interface{}, name string) (*big.Int, error) {
	v, ok := args[name]
	if !ok {
		return nil, fmt.Errorf("missing argument %s", name)
	}
	i, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("argument %s is %T, expected uint256", name, v)
	}
	return i, nil
}

func addressArg(args map[string]interface{}, name string) (common.Address, error) {
	v, ok := args[name]
	if !ok {
		return common.Address{}, fmt.Errorf("missing argument %s", name)
	}
	a, ok := v.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("argument %s is %T, expected address", name, v)
	}
	return a, nil
}

// AddressID is how addresses are keyed in the indexed entities: lowercase 0x-prefixed hex.
func AddressID(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

type WrapperCourseCreated struct {
	CourseID  *big.Int
	Creator   common.Address
	PriceInYd *big.Int
}

func (w *WrapperCourseCreated) HandleEvent(eventName string, args map[string]interface{}) (err error) {
	if w.CourseID, err = bigArg(args, "courseId"); err != nil {
		return err
	}
	if w.Creator, err = addressArg(args, "creator"); err != nil {
		return err
	}
	w.PriceInYd, err = bigArg(args, "priceInYd")
	return err
}

func (w *WrapperCourseCreated) GetType() string { return EventCourseCreated }

func (w *WrapperCourseCreated) String() string {
	return fmt.Sprintf("%s: course %s created by %s for %s YD", EventCourseCreated, w.CourseID, AddressID(w.Creator), w.PriceInYd)
}

type WrapperCoursePurchased struct {
	CourseID *big.Int
	Student  common.Address
	Creator  common.Address
}

func (w *WrapperCoursePurchased) HandleEvent(eventName string, args map[string]interface{}) (err error) {
	if w.CourseID, err = bigArg(args, "courseId"); err != nil {
		return err
	}
	if w.Student, err = addressArg(args, "student"); err != nil {
		return err
	}
	w.Creator, err = addressArg(args, "creator")
	return err
}

func (w *WrapperCoursePurchased) GetType() string { return EventCoursePurchased }

func (w *WrapperCoursePurchased) String() string {
	return fmt.Sprintf("%s: course %s bought by %s", EventCoursePurchased, w.CourseID, AddressID(w.Student))
}

type WrapperCourseDeleted struct {
	CourseID *big.Int
}

func (w *WrapperCourseDeleted) HandleEvent(eventName string, args map[string]interface{}) (err error) {
	w.CourseID, err = bigArg(args, "courseId")
	return err
}

func (w *WrapperCourseDeleted) GetType() string { return EventCourseDeleted }

func (w *WrapperCourseDeleted) String() string {
	return fmt.Sprintf("%s: course %s", EventCourseDeleted, w.CourseID)
}

type WrapperPlatformFeeCollected struct {
	CourseID  *big.Int
	From      common.Address
	FeeAmount *big.Int
}

func (w *WrapperPlatformFeeCollected) HandleEvent(eventName string, args map[string]interface{}) (err error) {
	if w.CourseID, err = bigArg(args, "courseId"); err != nil {
		return err
	}
	if w.From, err = addressArg(args, "from"); err != nil {
		return err
	}
	w.FeeAmount, err = bigArg(args, "feeAmount")
	return err
}

func (w *WrapperPlatformFeeCollected) GetType() string { return EventPlatformFeeCollected }

func (w *WrapperPlatformFeeCollected) String() string {
	return fmt.Sprintf("%s: %s paid %s on course %s", EventPlatformFeeCollected, AddressID(w.From), w.FeeAmount, w.CourseID)
}

type WrapperPlatformFeeRateUpdated struct {
	OldRate *big.Int
	NewRate *big.Int
}

func (w *WrapperPlatformFeeRateUpdated) HandleEvent(eventName string, args map[string]interface{}) (err error) {
	// older deployments only emit the new rate
	if _, ok := args["oldRate"]; ok {
		if w.OldRate, err = bigArg(args, "oldRate"); err != nil {
			return err
		}
	}
	w.NewRate, err = bigArg(args, "newRate")
	return err
}

func (w *WrapperPlatformFeeRateUpdated) GetType() string { return EventPlatformFeeRateUpdated }

func (w *WrapperPlatformFeeRateUpdated) String() string {
	return fmt.Sprintf("%s: %s", EventPlatformFeeRateUpdated, w.NewRate)
}

type WrapperPlatformTreasuryUpdated struct {
	OldTreasury common.Address
	NewTreasury common.Address
}

func (w *WrapperPlatformTreasuryUpdated) HandleEvent(eventName string, args map[string]interface{}) (err error) {
	if _, ok := args["oldTreasury"]; ok {
		if w.OldTreasury, err = addressArg(args, "oldTreasury"); err != nil {
			return err
		}
	}
	w.NewTreasury, err = addressArg(args, "newTreasury")
	return err
}

func (w *WrapperPlatformTreasuryUpdated) GetType() string { return EventPlatformTreasuryUpdated }

func (w *WrapperPlatformTreasuryUpdated) String() string {
	return fmt.Sprintf("%s: %s", EventPlatformTreasuryUpdated, AddressID(w.NewTreasury))
}

package db_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/DefiantLabs/course-platform/db"
	"github.com/DefiantLabs/course-platform/db/dbtest"
	"github.com/DefiantLabs/course-platform/platform"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	contract     = "0x00000000000000000000000000000000000000c0"
	indexFailure = 1
)

var (
	creator  = common.HexToAddress("0xAAAA000000000000000000000000000000000001")
	student  = common.HexToAddress("0xBBBB000000000000000000000000000000000002")
	treasury = "0x00000000000000000000000000000000000000cc"
)

func meta(txHash string, logIndex uint, height int64) db.EventMeta {
	return db.EventMeta{TxHash: txHash, LogIndex: logIndex, BlockHeight: height, BlockTime: 1700000000 + height, TxTo: contract}
}

func created(id, price int64) platform.PlatformEvent {
	return &platform.WrapperCourseCreated{CourseID: big.NewInt(id), Creator: creator, PriceInYd: big.NewInt(price)}
}

func purchased(id int64) platform.PlatformEvent {
	return &platform.WrapperCoursePurchased{CourseID: big.NewInt(id), Student: student, Creator: creator}
}

func feeCollected(id, amount int64) platform.PlatformEvent {
	return &platform.WrapperPlatformFeeCollected{CourseID: big.NewInt(id), From: student, FeeAmount: big.NewInt(amount)}
}

func index(t *testing.T, gormDB *gorm.DB, height int64, events ...db.EventDBWrapper) []db.FailedEvent {
	t.Helper()
	failures, err := db.IndexEvents(gormDB, contract, height, events, nil, indexFailure)
	require.NoError(t, err)
	return failures
}

func TestCourseCreatedAndPurchased(t *testing.T) {
	gormDB := dbtest.New(t)

	index(t, gormDB, 10,
		db.EventDBWrapper{Meta: meta("0x01", 0, 10), Event: created(1, 100)},
		db.EventDBWrapper{Meta: meta("0x02", 3, 10), Event: purchased(1)},
	)

	course, err := db.GetChainCourse(gormDB, "1")
	require.NoError(t, err)
	assert.Equal(t, platform.AddressID(creator), course.Creator.ID)
	assert.Equal(t, "100", course.PriceInYd.String())
	assert.Equal(t, int64(1700000010), course.CreatedAtTimestamp)
	assert.Equal(t, int64(1), course.PurchaseCount)

	user, owned, err := db.GetChainUser(gormDB, platform.AddressID(student))
	require.NoError(t, err)
	assert.Equal(t, platform.AddressID(student), user.ID)
	assert.Equal(t, []string{"1"}, owned)

	height, err := db.GetHighestIndexedBlock(gormDB, contract)
	require.NoError(t, err)
	assert.Equal(t, int64(10), height)
}

func TestReplayedBatchDoesNotDoubleCount(t *testing.T) {
	gormDB := dbtest.New(t)

	batch := []db.EventDBWrapper{
		{Meta: meta("0x01", 0, 10), Event: created(1, 100)},
		{Meta: meta("0x02", 0, 11), Event: purchased(1)},
		{Meta: meta("0x02", 1, 11), Event: feeCollected(1, 5)},
	}
	index(t, gormDB, 11, batch...)
	index(t, gormDB, 11, batch...)

	course, err := db.GetChainCourse(gormDB, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), course.PurchaseCount)

	_, owned, err := db.GetChainUser(gormDB, platform.AddressID(student))
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, owned)

	stats, err := db.GetPlatformStats(gormDB)
	require.NoError(t, err)
	assert.Equal(t, "5", stats.TotalFees.String())

	fees, err := db.GetPlatformFees(gormDB, "1")
	require.NoError(t, err)
	require.Len(t, fees, 1)
	assert.Equal(t, "0x02-1", fees[0].ID)
}

func TestReplayedCreationKeepsLaterPurchases(t *testing.T) {
	gormDB := dbtest.New(t)

	index(t, gormDB, 10, db.EventDBWrapper{Meta: meta("0x01", 0, 10), Event: created(1, 100)})
	index(t, gormDB, 11, db.EventDBWrapper{Meta: meta("0x02", 0, 11), Event: purchased(1)})
	index(t, gormDB, 10, db.EventDBWrapper{Meta: meta("0x01", 0, 10), Event: created(1, 100)})

	course, err := db.GetChainCourse(gormDB, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), course.PurchaseCount)
}

func TestPurchaseOfUnknownCourse(t *testing.T) {
	gormDB := dbtest.New(t)

	failures := index(t, gormDB, 5, db.EventDBWrapper{Meta: meta("0x01", 0, 5), Event: purchased(9)})
	assert.Empty(t, failures)

	_, owned, err := db.GetChainUser(gormDB, platform.AddressID(student))
	require.NoError(t, err)
	assert.Empty(t, owned)

	_, err = db.GetChainCourse(gormDB, "9")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestCourseDeletedAndRecreated(t *testing.T) {
	gormDB := dbtest.New(t)

	index(t, gormDB, 1, db.EventDBWrapper{Meta: meta("0x01", 0, 1), Event: created(1, 100)})
	index(t, gormDB, 2, db.EventDBWrapper{Meta: meta("0x02", 0, 2), Event: &platform.WrapperCourseDeleted{CourseID: big.NewInt(1)}})

	courses, err := db.GetChainCourses(gormDB)
	require.NoError(t, err)
	assert.Empty(t, courses)

	index(t, gormDB, 3, db.EventDBWrapper{Meta: meta("0x03", 0, 3), Event: created(1, 250)})

	course, err := db.GetChainCourse(gormDB, "1")
	require.NoError(t, err)
	assert.Equal(t, "250", course.PriceInYd.String())
	assert.Equal(t, int64(0), course.PurchaseCount)
}

func TestPlatformStatsDefaults(t *testing.T) {
	gormDB := dbtest.New(t)

	_, err := db.GetPlatformStats(gormDB)
	assert.ErrorIs(t, err, db.ErrNotFound)

	noRecipient := meta("0x01", 0, 1)
	noRecipient.TxTo = ""
	index(t, gormDB, 1, db.EventDBWrapper{
		Meta:  noRecipient,
		Event: &platform.WrapperPlatformFeeRateUpdated{OldRate: big.NewInt(500), NewRate: big.NewInt(300)},
	})

	stats, err := db.GetPlatformStats(gormDB)
	require.NoError(t, err)
	assert.Equal(t, "300", stats.FeeRate.String())
	assert.Equal(t, "0", stats.TotalFees.String())
	assert.Equal(t, db.ZeroAddress, stats.Treasury)

	index(t, gormDB, 2, db.EventDBWrapper{
		Meta:  meta("0x02", 0, 2),
		Event: &platform.WrapperPlatformTreasuryUpdated{NewTreasury: common.HexToAddress(treasury)},
	})

	stats, err = db.GetPlatformStats(gormDB)
	require.NoError(t, err)
	assert.Equal(t, treasury, stats.Treasury)
	assert.Equal(t, "300", stats.FeeRate.String())
}

func TestFeeCollectedInitialisesStats(t *testing.T) {
	gormDB := dbtest.New(t)

	index(t, gormDB, 4,
		db.EventDBWrapper{Meta: meta("0x01", 0, 4), Event: feeCollected(1, 7)},
		db.EventDBWrapper{Meta: meta("0x01", 1, 4), Event: feeCollected(2, 3)},
	)

	stats, err := db.GetPlatformStats(gormDB)
	require.NoError(t, err)
	assert.Equal(t, "10", stats.TotalFees.String())
	assert.Equal(t, "500", stats.FeeRate.String())
	assert.Equal(t, contract, stats.Treasury)

	fees, err := db.GetPlatformFees(gormDB, "")
	require.NoError(t, err)
	assert.Len(t, fees, 2)

	_, _, err = db.GetChainUser(gormDB, platform.AddressID(student))
	assert.NoError(t, err)
}

type brokenEvent struct{}

func (brokenEvent) HandleEvent(string, map[string]interface{}) error { return errors.New("unused") }
func (brokenEvent) GetType() string                                  { return "Broken" }
func (brokenEvent) String() string                                   { return "Broken" }

func TestFailedEventDoesNotStopBatch(t *testing.T) {
	gormDB := dbtest.New(t)

	decodeFailure := db.FailedEvent{Contract: contract, BlockHeight: 8, TxHash: "0x09", LogIndex: 0, Code: 2, Error: "bad data"}
	failures, err := db.IndexEvents(gormDB, contract, 8, []db.EventDBWrapper{
		{Meta: meta("0x01", 0, 8), Event: brokenEvent{}},
		{Meta: meta("0x01", 1, 8), Event: created(1, 100)},
	}, []db.FailedEvent{decodeFailure}, indexFailure)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "Broken", failures[0].EventType)

	_, err = db.GetChainCourse(gormDB, "1")
	assert.NoError(t, err)

	recorded, err := db.GetFailedEvents(gormDB, contract)
	require.NoError(t, err)
	assert.Len(t, recorded, 2)
}

func TestCheckpointNeverMovesBack(t *testing.T) {
	gormDB := dbtest.New(t)

	height, err := db.GetHighestIndexedBlock(gormDB, contract)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), height)

	index(t, gormDB, 20)
	index(t, gormDB, 15)

	height, err = db.GetHighestIndexedBlock(gormDB, contract)
	require.NoError(t, err)
	assert.Equal(t, int64(20), height)
}

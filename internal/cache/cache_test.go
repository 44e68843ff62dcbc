package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitwallet/internal/calculator"
)

func sampleEntry() *Entry {
	return &Entry{CalculatedAt: 1700000000, Status: calculator.SettlementStatus{
		MemberBalances: []calculator.MemberStat{
			{MemberBalance: calculator.MemberBalance{UserID: "a", Name: "Alice", TotalPaid: 300, TotalOwed: 100, Balance: 200}, PaymentCount: 1, ParticipationCount: 1},
			{MemberBalance: calculator.MemberBalance{UserID: "b", Name: "Bob", TotalOwed: 200, Balance: -200}, ParticipationCount: 1},
		},
		SettlementTransactions: []calculator.SettlementTransaction{
			{From: calculator.Party{UserID: "b", Name: "Bob"}, To: calculator.Party{UserID: "a", Name: "Alice"}, Amount: 200},
		},
		NeedsSettlement: true,
		TotalExpenses:   300,
		TotalMembers:    2,
		TotalPayments:   1,
	}}
}

func encoded(t *testing.T, entry *Entry) string {
	t.Helper()
	raw, err := json.Marshal(entry)
	require.NoError(t, err)
	return string(raw)
}

func TestRedisStatusCacheGet(t *testing.T) {
	ctx := context.Background()
	keys := []string{"splitwallet:status:w1", "splitwallet:status-version:w1"}

	t.Run("hit", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		entry := sampleEntry()
		entry.Version = 2
		mock.ExpectMGet(keys...).SetVal([]interface{}{encoded(t, entry), "2"})

		got, version, err := NewRedisStatusCache(db, time.Minute).Get(ctx, "w1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), version)
		assert.Equal(t, entry, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hit before any invalidation", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectMGet(keys...).SetVal([]interface{}{encoded(t, sampleEntry()), nil})

		got, version, err := NewRedisStatusCache(db, time.Minute).Get(ctx, "w1")
		require.NoError(t, err)
		assert.Zero(t, version)
		assert.Equal(t, sampleEntry(), got)
	})

	t.Run("miss", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectMGet(keys...).SetVal([]interface{}{nil, "4"})

		got, version, err := NewRedisStatusCache(db, time.Minute).Get(ctx, "w1")
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, int64(4), version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("entry from an older version", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		entry := sampleEntry()
		entry.Version = 1
		mock.ExpectMGet(keys...).SetVal([]interface{}{encoded(t, entry), "2"})

		got, version, err := NewRedisStatusCache(db, time.Minute).Get(ctx, "w1")
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, int64(2), version)
	})

	t.Run("redis error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectMGet(keys...).SetErr(errors.New("connection refused"))

		got, _, err := NewRedisStatusCache(db, time.Minute).Get(ctx, "w1")
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("corrupt value", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectMGet(keys...).SetVal([]interface{}{"{not json", nil})

		got, _, err := NewRedisStatusCache(db, time.Minute).Get(ctx, "w1")
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("corrupt version", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectMGet(keys...).SetVal([]interface{}{nil, "abc"})

		_, _, err := NewRedisStatusCache(db, time.Minute).Get(ctx, "w1")
		assert.Error(t, err)
	})
}

func TestRedisStatusCacheSet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	raw, err := json.Marshal(sampleEntry())
	require.NoError(t, err)
	mock.ExpectSet("splitwallet:status:w1", raw, 5*time.Minute).SetVal("OK")

	err = NewRedisStatusCache(db, 5*time.Minute).Set(context.Background(), "w1", sampleEntry())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStatusCacheInvalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectIncr("splitwallet:status-version:w1").SetVal(3)
	mock.ExpectDel("splitwallet:status:w1").SetVal(1)

	err := NewRedisStatusCache(db, time.Minute).Invalidate(context.Background(), "w1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	db, mock = redismock.NewClientMock()
	mock.ExpectIncr("splitwallet:status-version:w1").SetErr(errors.New("connection refused"))
	assert.Error(t, NewRedisStatusCache(db, time.Minute).Invalidate(context.Background(), "w1"))
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c StatusCache = Noop{}

	require.NoError(t, c.Set(ctx, "w1", sampleEntry()))
	got, version, err := c.Get(ctx, "w1")
	assert.NoError(t, err)
	assert.Zero(t, version)
	assert.Nil(t, got)
	assert.NoError(t, c.Invalidate(ctx, "w1"))
}

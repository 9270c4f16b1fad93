package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/campuseats/gateway/internal/models"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
)

func testSession() Session {
	return Session{
		AccountID:    "user1",
		Name:         "Asha Rao",
		Email:        "asha@example.edu",
		MobileNumber: "9876543210",
		Role:         "customer",
		UserCategory: models.CategoryStudent,
	}
}

func TestFromProfile(t *testing.T) {
	p := models.Profile{
		ID:           "user1",
		Name:         "Asha Rao",
		Email:        "asha@example.edu",
		MobileNumber: "9876543210",
		Role:         "customer",
		UserCategory: models.CategoryStudent,
		Credits:      120,
	}
	sess := FromProfile(p)
	assert.Equal(t, testSession(), sess)
}

func TestStorePutGet(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	store := NewStore(db, 24*time.Hour)

	sess := testSession()
	payload, err := json.Marshal(sess)
	assert.NoError(t, err)

	key := sessionKey("token-abc")
	redisMock.ExpectSet(key, payload, 24*time.Hour).SetVal("OK")
	redisMock.ExpectGet(key).SetVal(string(payload))

	err = store.Put(context.Background(), "token-abc", sess)
	assert.NoError(t, err)

	got, err := store.Get(context.Background(), "token-abc")
	assert.NoError(t, err)
	assert.Equal(t, sess, got)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestStoreGetMissing(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	store := NewStore(db, 24*time.Hour)

	redisMock.ExpectGet(sessionKey("gone")).RedisNil()

	_, err := store.Get(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestStoreDelete(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	store := NewStore(db, 24*time.Hour)

	redisMock.ExpectDel(sessionKey("token-abc")).SetVal(1)

	err := store.Delete(context.Background(), "token-abc")
	assert.NoError(t, err)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestSessionKeyIsOpaque(t *testing.T) {
	key := sessionKey("token-abc")
	assert.NotContains(t, key, "token-abc")
	assert.NotEqual(t, sessionKey("token-abc"), sessionKey("token-abd"))
}

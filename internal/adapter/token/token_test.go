package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/core/domain"
)

var alice = domain.Identity{UserID: "65f1c0ffee0000000000a001", Email: "alice@example.com", Name: "alice"}

func TestJWTManager_IssueAndVerify(t *testing.T) {
	manager := NewJWTManager("secret", 0)

	raw, err := manager.Issue(alice)
	require.NoError(t, err)

	identity, err := manager.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, alice, identity)
}

func TestJWTManager_ExpiresAfterSevenDays(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := NewJWTManager("secret", DefaultTTL)
	manager.now = func() time.Time { return issued }

	raw, err := manager.Issue(alice)
	require.NoError(t, err)

	manager.now = func() time.Time { return issued.Add(DefaultTTL - time.Minute) }
	_, err = manager.Verify(raw)
	require.NoError(t, err)

	manager.now = func() time.Time { return issued.Add(DefaultTTL + time.Minute) }
	_, err = manager.Verify(raw)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_RejectsForeignSignatures(t *testing.T) {
	raw, err := NewJWTManager("other-secret", 0).Issue(alice)
	require.NoError(t, err)

	_, err = NewJWTManager("secret", 0).Verify(raw)
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = NewJWTManager("secret", 0).Verify("not.a.token")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_RejectsUnsignedAndSubjectless(t *testing.T) {
	manager := NewJWTManager("secret", 0)
	expires := jwt.NewNumericDate(time.Now().Add(time.Hour))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: alice.UserID, ExpiresAt: expires},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = manager.Verify(unsigned)
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	subjectless, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: expires},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = manager.Verify(subjectless)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	other, err := hasher.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes are salted")

	require.NoError(t, hasher.Compare(hash, "secret"))
	require.Error(t, hasher.Compare(hash, "wrong"))
}

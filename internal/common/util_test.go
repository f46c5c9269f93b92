package common

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	require.NoError(t, err)
	assert.Len(t, s, n*2)
	_, err = hex.DecodeString(s)
	assert.NoError(t, err)
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestMakeRandHexString_Distinct(t *testing.T) {
	a, err := MakeRandHexString(32)
	require.NoError(t, err)
	b, err := MakeRandHexString(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf)
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestError_KindAndMessage(t *testing.T) {
	err := error(ErrIncorrectCredentials)

	assert.Equal(t, "incorrect username or password", err.Error())
	assert.True(t, errors.Is(err, ErrorUnauthorized))
	assert.True(t, errors.Is(err, ErrIncorrectCredentials))
	assert.False(t, errors.Is(err, ErrorValidation))
}

func TestError_WrappedKeepsKind(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrNoPendingSecret)

	assert.True(t, errors.Is(wrapped, ErrorPrecondition))

	var e *Error
	require.True(t, errors.As(wrapped, &e))
	assert.Equal(t, ErrNoPendingSecret.Message, e.Message)
}

func TestError_TwoFactorRequiredMessage(t *testing.T) {
	assert.Equal(t, TwoFactorRequiredCode, ErrTwoFactorRequired.Error())
	assert.True(t, errors.Is(ErrTwoFactorRequired, ErrorTwoFactorRequired))
}

package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCheckPasswordWPHash(t *testing.T) {
	hash, err := hashPasswordCost("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$wp$2y$"), hash)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
}

func TestCheckPasswordLongPassword(t *testing.T) {
	long := strings.Repeat("p", 100)
	hash, err := hashPasswordCost(long, bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, long))
	assert.False(t, CheckPassword(hash, long[:72]))
}

func TestCheckPasswordPlainBcrypt(t *testing.T) {
	b, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	hash := string(b)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.True(t, CheckPassword("$2y$"+strings.TrimPrefix(hash, "$2a$"), "s3cret"))
	assert.False(t, CheckPassword(hash, "S3cret"))
}

func TestCheckPasswordUnknownFormats(t *testing.T) {
	assert.False(t, CheckPassword("$P$BZ7Rq3bTn0DLf.XQx6LXYTuSmoSg2m/", "password"))
	assert.False(t, CheckPassword("5f4dcc3b5aa765d61d8327deb882cf99", "password"))
	assert.False(t, CheckPassword("", ""))
}

package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/diasporahub/internal/app/models"
)

func TestRevokeQueryTargetsLiveTokensOfOneKind(t *testing.T) {
	r := NewTokenRepository(nil)

	sql, args, err := r.revokeQuery("tok-1", models.TokenKindRefresh)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE auth_tokens SET revoked = $1 WHERE kind = $2 AND revoked = $3 AND token = $4", sql)
	assert.Equal(t, []interface{}{true, models.TokenKindRefresh, false, "tok-1"}, args)
}

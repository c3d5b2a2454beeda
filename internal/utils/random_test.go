package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsernameFromFullName(t *testing.T) {
	username := GenerateUsernameFromFullName("João Conceição")

	assert.True(t, len(username) >= len("joaoconceicao")+1)
	assert.Contains(t, username, "joaoconceicao")
	for _, r := range username {
		assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'), "rune %q", r)
	}
}

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp := GenerateRandomOTP()
		require.Len(t, otp, 6)
		for _, r := range otp {
			require.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	assert.Len(t, GenerateRandomPassword(16), 16)
	assert.NotEqual(t, GenerateRandomPassword(32), GenerateRandomPassword(32))
}

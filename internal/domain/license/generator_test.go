//go:build unit

package license_test

import (
	"encoding/base64"
	"regexp"
	"testing"

	"templatehub/internal/domain/license"
	"templatehub/internal/domain/sale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keyFormat = regexp.MustCompile(`^[A-Z]{3}-[0-9A-F]{8}-[0-9A-F]{8}-[0-9A-F]{8}$`)

func TestGenerateKey(t *testing.T) {
	gen := license.NewGenerator()

	t.Run("key format per tier", func(t *testing.T) {
		cases := []struct {
			tier   sale.PackageTier
			prefix string
		}{
			{sale.TierBasic, "BAS"},
			{sale.TierPro, "PRO"},
			{sale.TierEnterprise, "ENT"},
		}
		for _, c := range cases {
			key := gen.GenerateKey(c.tier)
			assert.Regexp(t, keyFormat, key)
			assert.Equal(t, c.prefix, key[:3])
		}
	})

	t.Run("10k keys are unique", func(t *testing.T) {
		seen := make(map[string]struct{}, 10000)
		for range 10000 {
			key := gen.GenerateKey(sale.TierPro)
			_, dup := seen[key]
			require.False(t, dup, "duplicate key generated: %s", key)
			seen[key] = struct{}{}
		}
	})
}

func TestGenerateDownloadToken(t *testing.T) {
	gen := license.NewGenerator()

	t.Run("URL-safe without padding", func(t *testing.T) {
		token := gen.GenerateDownloadToken()
		assert.NotContains(t, token, "=")
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")

		decoded, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		assert.Len(t, decoded, 32)
	})

	t.Run("tokens differ between calls", func(t *testing.T) {
		assert.NotEqual(t, gen.GenerateDownloadToken(), gen.GenerateDownloadToken())
	})
}

func TestGenerate(t *testing.T) {
	gen := license.NewGenerator()

	creds := gen.Generate(sale.TierEnterprise)
	assert.Regexp(t, keyFormat, creds.LicenseKey)
	assert.NotEmpty(t, creds.DownloadToken)
}

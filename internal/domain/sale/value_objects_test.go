//go:build unit

package sale_test

import (
	"strings"
	"testing"

	"templatehub/internal/domain/sale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGithubUsername(t *testing.T) {
	t.Run("normalization", func(t *testing.T) {
		cases := []struct {
			name  string
			input string
			want  string
			errIs error
		}{
			{name: "plain username", input: "octocat", want: "octocat"},
			{name: "leading @ stripped", input: "@octocat", want: "octocat"},
			{name: "case folded", input: "OctoCat", want: "octocat"},
			{name: "surrounding whitespace trimmed", input: "  octocat  ", want: "octocat"},
			{name: "interior hyphen allowed", input: "octo-cat", want: "octo-cat"},
			{name: "empty", input: "", errIs: sale.ErrInvalidGithubUsername},
			{name: "only @", input: "@", errIs: sale.ErrInvalidGithubUsername},
			{name: "leading hyphen", input: "-octocat", errIs: sale.ErrInvalidGithubUsername},
			{name: "trailing hyphen", input: "octocat-", errIs: sale.ErrInvalidGithubUsername},
			{name: "double hyphen", input: "octo--cat", errIs: sale.ErrInvalidGithubUsername},
			{name: "illegal characters", input: "octo_cat", errIs: sale.ErrInvalidGithubUsername},
			{name: "40 chars too long", input: strings.Repeat("a", 40), errIs: sale.ErrInvalidGithubUsername},
			{name: "39 chars ok", input: strings.Repeat("a", 39), want: strings.Repeat("a", 39)},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				u, err := sale.NewGithubUsername(c.input)
				if c.errIs != nil {
					require.ErrorIs(t, err, c.errIs)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, c.want, u.Value())
			})
		}
	})

	t.Run("NormalizeGithubUsername is lenient", func(t *testing.T) {
		valid := "@OctoCat"
		got := sale.NormalizeGithubUsername(&valid)
		require.NotNil(t, got)
		assert.Equal(t, "octocat", *got)

		invalid := "not a username"
		assert.Nil(t, sale.NormalizeGithubUsername(&invalid))
		assert.Nil(t, sale.NormalizeGithubUsername(nil))
	})
}

func TestEmail(t *testing.T) {
	cases := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "valid email", input: "buyer@example.com"},
		{name: "plus addressing", input: "buyer+tag@example.com"},
		{name: "empty", input: "", errIs: sale.ErrInvalidEmail},
		{name: "no @", input: "buyerexample.com", errIs: sale.ErrInvalidEmail},
		{name: "no tld", input: "buyer@example", errIs: sale.ErrInvalidEmail},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := sale.NewEmail(c.input)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
		})
	}
}

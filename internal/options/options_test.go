package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type config struct {
	strict bool
	limit  int
}

func withStrict() Option[*config] {
	return NoError(func(c *config) { c.strict = true })
}

func withLimit(n int) Option[*config] {
	return New(func(c *config) error {
		if n < 0 {
			return errors.New("limit must be non-negative")
		}
		c.limit = n

		return nil
	})
}

func TestApply_Order(t *testing.T) {
	cfg := &config{}
	err := Apply(cfg, withStrict(), withLimit(8))
	require.NoError(t, err)
	require.True(t, cfg.strict)
	require.Equal(t, 8, cfg.limit)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &config{}
	err := Apply(cfg, withLimit(-1), withStrict())
	require.Error(t, err)
	require.False(t, cfg.strict, "options after a failing one must not apply")
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &config{}
	require.NoError(t, Apply(cfg))
}

package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"bumpbot/internal/config"
)

func TestScheduler(t *testing.T) {
	cfg := config.NewMockConfig(map[string]interface{}{
		"log_dir": t.TempDir(),
	})

	s := NewScheduler(cfg)
	require.NotNil(t, s)

	require.NoError(t, s.RegisterFunc("@hourly", "log-rotation", cfg.RotateAndPruneLogs))
	require.NoError(t, s.RegisterFunc("*/5 * * * *", "noop", func() error { return errors.New("ignored") }))
	require.Equal(t, 2, s.Len())

	err := s.RegisterFunc("not a spec", "broken", func() error { return nil })
	require.Error(t, err)
	require.Equal(t, 2, s.Len())

	s.Start()
	s.Stop()
}

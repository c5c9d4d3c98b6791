package cli_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/spacetask/internal/cli"
)

func TestSignalContext(t *testing.T) {
	t.Run("Interrupt cancels and is remembered", func(t *testing.T) {
		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Stop()

		self, err := os.FindProcess(os.Getpid())
		require.NoError(t, err)
		require.NoError(t, self.Signal(os.Interrupt))

		select {
		case <-ctx.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("context was not cancelled by the interrupt")
		}
		assert.Eventually(t, func() bool { return ctx.Signal() == os.Interrupt }, time.Second, 10*time.Millisecond)
		assert.Equal(t, os.Interrupt, cli.ReceivedSignal(ctx))
	})

	t.Run("Stop cancels without a signal", func(t *testing.T) {
		ctx := cli.NewSignalContext(context.Background())
		ctx.Stop()

		<-ctx.Done()
		assert.Nil(t, ctx.Signal())
	})

	t.Run("Plain contexts carry no signal", func(t *testing.T) {
		assert.Nil(t, cli.ReceivedSignal(context.Background()))
	})
}

package generation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type echoModel struct{}

func (m *echoModel) Summarize(ctx context.Context, text string, bounds Bounds) (string, error) {
	return "summary of " + text, nil
}

func TestBoundsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		bounds  Bounds
		wantErr bool
	}{
		{"defaults", DefaultBounds(), false},
		{"equal bounds", Bounds{MaxLength: 50, MinLength: 50}, false},
		{"zero max", Bounds{MaxLength: 0}, true},
		{"negative min", Bounds{MaxLength: 10, MinLength: -1}, true},
		{"min above max", Bounds{MaxLength: 10, MinLength: 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bounds.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.False(t, DefaultBounds().Sampling, "default decoding must be deterministic")
	assert.Equal(t, 130, DefaultBounds().MaxLength)
	assert.Equal(t, 30, DefaultBounds().MinLength)
}

func TestHandle_LoadsOnce(t *testing.T) {
	t.Parallel()

	var loads atomic.Int32
	handle := NewHandle("fake", "fake-model", DeviceCPU, func(ctx context.Context) (Model, error) {
		loads.Add(1)
		return &echoModel{}, nil
	}, setupTestLogger())

	assert.False(t, handle.Info().Loaded, "handle must not load eagerly")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := handle.Summarize(context.Background(), "x", DefaultBounds())
			assert.NoError(t, err)
			assert.Equal(t, "summary of x", out)
		}()
	}
	wg.Wait()

	first, err := handle.Get(context.Background())
	require.NoError(t, err)
	second, err := handle.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), loads.Load())
	assert.Same(t, first, second)

	info := handle.Info()
	assert.True(t, info.Loaded)
	assert.Equal(t, "fake", info.Provider)
	assert.Equal(t, "fake-model", info.ModelName)
	assert.Equal(t, DeviceCPU, info.Device)
}

func TestHandle_FailedLoadIsRetried(t *testing.T) {
	t.Parallel()

	var loads atomic.Int32
	handle := NewHandle("fake", "m", DeviceCPU, func(ctx context.Context) (Model, error) {
		if loads.Add(1) == 1 {
			return nil, errors.New("weights not found")
		}
		return &echoModel{}, nil
	}, setupTestLogger())

	_, err := handle.Get(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.False(t, handle.Info().Loaded)

	_, err = handle.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), loads.Load())
}

func TestHandle_NilLoader(t *testing.T) {
	t.Parallel()

	handle := NewHandle("fake", "m", DeviceCPU, nil, nil)
	_, err := handle.Get(context.Background())
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestParseDevice(t *testing.T) {
	t.Parallel()

	tests := map[string]Device{
		"":            DeviceAuto,
		"auto":        DeviceAuto,
		"GPU":         DeviceAccelerator,
		"cuda":        DeviceAccelerator,
		"accelerator": DeviceAccelerator,
		" cpu ":       DeviceCPU,
	}
	for in, want := range tests {
		got, err := ParseDevice(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDevice("tpu-v9")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestResolveDevice(t *testing.T) {
	t.Parallel()

	yes := func() bool { return true }
	no := func() bool { return false }

	assert.Equal(t, DeviceAccelerator, ResolveDevice(DeviceAuto, yes))
	assert.Equal(t, DeviceCPU, ResolveDevice(DeviceAuto, no))
	assert.Equal(t, DeviceCPU, ResolveDevice(DeviceCPU, yes))
	assert.Equal(t, DeviceAccelerator, ResolveDevice(DeviceAccelerator, no))
}

func TestDetectAccelerator_Env(t *testing.T) {
	t.Setenv("CUDA_VISIBLE_DEVICES", "0")
	assert.True(t, DetectAccelerator())

	t.Setenv("CUDA_VISIBLE_DEVICES", "-1")
	assert.False(t, DetectAccelerator())

	t.Setenv("CUDA_VISIBLE_DEVICES", "")
	assert.False(t, DetectAccelerator())
}

func TestRetry(t *testing.T) {
	t.Parallel()

	policy := RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		var calls int
		out, err := Retry(context.Background(), setupTestLogger(), policy, func(ctx context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", ErrTransientFailure
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls int
		_, err := Retry(context.Background(), setupTestLogger(), policy, func(ctx context.Context) (string, error) {
			calls++
			return "", ErrTransientFailure
		})
		assert.ErrorIs(t, err, ErrTransientFailure)
		assert.Contains(t, err.Error(), "exceeded maximum retry attempts (2)")
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		var calls int
		_, err := Retry(context.Background(), setupTestLogger(), policy, func(ctx context.Context) (string, error) {
			calls++
			return "", ErrContentBlocked
		})
		assert.ErrorIs(t, err, ErrContentBlocked)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		slow := RetryPolicy{MaxRetries: 5, BaseDelay: time.Hour}
		var calls int
		_, err := Retry(ctx, setupTestLogger(), slow, func(ctx context.Context) (string, error) {
			calls++
			cancel()
			return "", ErrTransientFailure
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestClassifyStatus(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	assert.ErrorIs(t, ClassifyStatus(503, base), ErrTransientFailure)
	assert.ErrorIs(t, ClassifyStatus(429, base), ErrTransientFailure)
	assert.ErrorIs(t, ClassifyStatus(401, base), ErrInvalidConfig)
	assert.ErrorIs(t, ClassifyStatus(400, base), ErrSummarizationFailed)
}

func TestPromptTemplate(t *testing.T) {
	t.Parallel()

	tmpl, err := LoadPromptTemplate("")
	require.NoError(t, err)

	prompt, err := RenderPrompt(tmpl, "Mitochondria make ATP.", Bounds{MaxLength: 60, MinLength: 10})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Mitochondria make ATP.")
	assert.Contains(t, prompt, "between 10 and 60 tokens")

	_, err = RenderPrompt(tmpl, "  ", DefaultBounds())
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestPromptTemplate_FromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("TL;DR ({{.MaxLength}}): {{.Text}}"), 0o600))

	tmpl, err := LoadPromptTemplate(path)
	require.NoError(t, err)

	prompt, err := RenderPrompt(tmpl, "notes", DefaultBounds())
	require.NoError(t, err)
	assert.Equal(t, "TL;DR (130): notes", prompt)

	_, err = LoadPromptTemplate(filepath.Join(dir, "missing.tmpl"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	bad := filepath.Join(dir, "bad.tmpl")
	require.NoError(t, os.WriteFile(bad, []byte("{{.Text"), 0o600))
	_, err = LoadPromptTemplate(bad)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

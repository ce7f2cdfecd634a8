package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AppliesAFullSelectionSpec(t *testing.T) {
	e := New()

	source := "x = 1;\n"
	spec := "x = 1;\tx = 2;\n"

	count := 1
	result, err := e.Run(context.Background(), source, spec, Config{Count: &count})

	require.NoError(t, err)
	assert.Equal(t, "x = 2;\n", result.Output)
	require.Len(t, result.Selected, 1)
	assert.True(t, result.Warnings.Empty())
}

func TestRun_EmptySpecIsFatal(t *testing.T) {
	e := New()

	_, err := e.Run(context.Background(), "x = 1;\n", "# comment only\n", Config{})

	require.Error(t, err)
}

func TestRun_ClampedCountRecordsFreeTextWarning(t *testing.T) {
	e := New()

	source := "x = 1;\n"
	spec := "x = 1;\tx = 2;\n"

	count := 50
	result, err := e.Run(context.Background(), source, spec, Config{Count: &count})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Warnings.FreeTextNotices())
}

func TestRun_NoMatchingPatternRecordsWarning(t *testing.T) {
	e := New()

	source := "unrelated source\n"
	spec := "x = 1;\tx = 2;\n"

	count := 1
	result, err := e.Run(context.Background(), source, spec, Config{Count: &count})

	require.NoError(t, err)
	assert.Equal(t, []int{1}, result.Warnings.NoMatchLines())
}

func TestRun_StripCommentsAppliesBeforeReplace(t *testing.T) {
	e := New()

	source := "x = 1; // drop me\n"
	spec := "x = 1;\tx = 2;\n"

	count := 1
	result, err := e.Run(context.Background(), source, spec, Config{Count: &count, StripComments: true})

	require.NoError(t, err)
	assert.Equal(t, "x = 2;\n", result.Output)
}

func TestRun_RespectsCanceledContext(t *testing.T) {
	e := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx, "x = 1;\n", "x = 1;\tx = 2;\n", Config{})

	require.Error(t, err)
}

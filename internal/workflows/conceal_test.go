package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/stegano/internal/audit"
	serrors "github.com/PolarWolf314/stegano/internal/errors"
	"github.com/PolarWolf314/stegano/internal/stego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcealReveal_NoPassword(t *testing.T) {
	dir := setupWorkflowEnv(t)
	cover := filepath.Join(dir, "cover.png")
	out := filepath.Join(dir, "out.png")
	textFile := filepath.Join(dir, "text.txt")
	writeCover(t, cover, 40, 40)
	writeText(t, textFile, "meet at the old mill")

	concealed, err := Conceal(context.Background(), ConcealOptions{
		InputImage:  cover,
		OutputImage: out,
		TextFile:    textFile,
	})
	require.NoError(t, err)
	assert.False(t, concealed.Encrypted)
	assert.False(t, concealed.InsufficientCapacity)
	assert.Equal(t, len("meet at the old mill"), concealed.PayloadBytes)

	// Without a password the text is embedded as-is.
	raw, err := stego.Extract(out)
	require.NoError(t, err)
	assert.Equal(t, "meet at the old mill", raw)

	revealed, err := Reveal(context.Background(), RevealOptions{InputImage: out})
	require.NoError(t, err)
	assert.Equal(t, "meet at the old mill", revealed.Text)
	assert.False(t, revealed.Decrypted)
	assert.Nil(t, revealed.Envelope)
	assert.Empty(t, revealed.OutputPath)
}

func TestConcealReveal_WithPassword(t *testing.T) {
	dir := setupWorkflowEnv(t)
	cover := filepath.Join(dir, "cover.png")
	out := filepath.Join(dir, "out.bmp")
	textFile := filepath.Join(dir, "text.txt")
	secretFile := filepath.Join(dir, "recovered", "secret.txt")
	writeCover(t, cover, 64, 64)
	writeText(t, textFile, "héllo wörld")

	concealed, err := Conceal(context.Background(), ConcealOptions{
		InputImage:  cover,
		OutputImage: out,
		TextFile:    textFile,
		Password:    []byte("secret123"),
	})
	require.NoError(t, err)
	assert.True(t, concealed.Encrypted)
	assert.Greater(t, concealed.PayloadBytes, concealed.TextBytes)

	raw, err := stego.Extract(out)
	require.NoError(t, err)
	assert.NotContains(t, raw, "wörld")

	revealed, err := Reveal(context.Background(), RevealOptions{
		InputImage: out,
		OutputPath: secretFile,
		Password:   []byte("secret123"),
	})
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", revealed.Text)
	assert.True(t, revealed.Decrypted)
	require.NotNil(t, revealed.Envelope)
	assert.True(t, revealed.Envelope.Aligned)
	assert.Equal(t, secretFile, revealed.OutputPath)

	written, err := os.ReadFile(secretFile)
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", string(written))
}

func TestConcealReveal_CustomIterations(t *testing.T) {
	dir := setupWorkflowEnv(t)
	cover := filepath.Join(dir, "cover.png")
	out := filepath.Join(dir, "out.png")
	textFile := filepath.Join(dir, "text.txt")
	writeCover(t, cover, 40, 40)
	writeText(t, textFile, "iterations matter")

	_, err := Conceal(context.Background(), ConcealOptions{
		InputImage:  cover,
		OutputImage: out,
		TextFile:    textFile,
		Password:    []byte("pw"),
		Iterations:  2000,
	})
	require.NoError(t, err)

	revealed, err := Reveal(context.Background(), RevealOptions{
		InputImage: out,
		Password:   []byte("pw"),
		Iterations: 2000,
	})
	require.NoError(t, err)
	assert.Equal(t, "iterations matter", revealed.Text)
}

func TestConceal_InsufficientCapacity(t *testing.T) {
	dir := setupWorkflowEnv(t)
	cover := filepath.Join(dir, "tiny.png")
	out := filepath.Join(dir, "out.png")
	textFile := filepath.Join(dir, "text.txt")
	writeCover(t, cover, 4, 4)
	writeText(t, textFile, strings.Repeat("too long for this image ", 4))

	result, err := Conceal(context.Background(), ConcealOptions{
		InputImage:  cover,
		OutputImage: out,
		TextFile:    textFile,
		Audit:       true,
	})
	require.NoError(t, err)
	assert.True(t, result.InsufficientCapacity)
	assert.Equal(t, 4*4*3, result.CapacityBits)
	assert.Greater(t, result.RequiredBits, result.CapacityBits)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output image should be written")

	entries, err := audit.ReadEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.OutcomeInsufficientCapacity, entries[0].Outcome)
}

func TestConceal_DryRun(t *testing.T) {
	dir := setupWorkflowEnv(t)
	cover := filepath.Join(dir, "cover.png")
	out := filepath.Join(dir, "out.png")
	textFile := filepath.Join(dir, "text.txt")
	writeCover(t, cover, 20, 20)
	writeText(t, textFile, "dry")

	result, err := Conceal(context.Background(), ConcealOptions{
		InputImage:  cover,
		OutputImage: out,
		TextFile:    textFile,
		DryRun:      true,
		Audit:       true,
	})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.False(t, result.InsufficientCapacity)
	assert.Equal(t, 20*20*3, result.CapacityBits)
	assert.Equal(t, stego.RequiredBits(3), result.RequiredBits)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))

	entries, err := audit.ReadEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConceal_Errors(t *testing.T) {
	dir := setupWorkflowEnv(t)
	cover := filepath.Join(dir, "cover.png")
	textFile := filepath.Join(dir, "text.txt")
	badText := filepath.Join(dir, "bad.txt")
	writeCover(t, cover, 20, 20)
	writeText(t, textFile, "ok")
	require.NoError(t, os.WriteFile(badText, []byte{0xff, 0xfe, 0x00}, 0600))

	tests := []struct {
		name string
		opts ConcealOptions
		want error
	}{
		{
			name: "missing image",
			opts: ConcealOptions{InputImage: filepath.Join(dir, "nope.png"), OutputImage: filepath.Join(dir, "o.png"), TextFile: textFile},
			want: serrors.ErrFileNotFound,
		},
		{
			name: "missing text file",
			opts: ConcealOptions{InputImage: cover, OutputImage: filepath.Join(dir, "o.png"), TextFile: filepath.Join(dir, "nope.txt")},
			want: serrors.ErrFileNotFound,
		},
		{
			name: "invalid utf-8",
			opts: ConcealOptions{InputImage: cover, OutputImage: filepath.Join(dir, "o.png"), TextFile: badText},
			want: serrors.ErrEncoding,
		},
		{
			name: "lossy output",
			opts: ConcealOptions{InputImage: cover, OutputImage: filepath.Join(dir, "o.jpg"), TextFile: textFile},
			want: serrors.ErrUnsupportedFormat,
		},
		{
			name: "output overwrites input",
			opts: ConcealOptions{InputImage: cover, OutputImage: cover, TextFile: textFile},
			want: serrors.ErrSameFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Conceal(context.Background(), tt.opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConceal_AuditRecordsError(t *testing.T) {
	dir := setupWorkflowEnv(t)
	textFile := filepath.Join(dir, "text.txt")
	writeText(t, textFile, "ok")

	_, err := Conceal(context.Background(), ConcealOptions{
		InputImage:  filepath.Join(dir, "missing.png"),
		OutputImage: filepath.Join(dir, "out.png"),
		TextFile:    textFile,
		Password:    []byte("hunter2"),
		Audit:       true,
	})
	require.Error(t, err)

	entries, err := audit.ReadEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "conceal", entries[0].Operation)
	assert.Equal(t, audit.OutcomeError, entries[0].Outcome)
	assert.True(t, entries[0].Encrypted)

	data, err := os.ReadFile(audit.LogPath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hunter2")
}

func TestConceal_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Conceal(ctx, ConcealOptions{})
	assert.True(t, errors.Is(err, context.Canceled))
}

package workflows

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/stegano/internal/configs"
	"github.com/stretchr/testify/require"
)

// setupWorkflowEnv points user settings at a temp directory so audit
// entries never touch the real data directory.
func setupWorkflowEnv(t *testing.T) string {
	t.Helper()

	original := configs.UserStegoSettings
	dir := t.TempDir()
	configs.UserStegoSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(dir, "config"),
		UserDataPath:    filepath.Join(dir, "data"),
	}
	t.Cleanup(func() {
		configs.UserStegoSettings = original
	})

	return dir
}

func writeCover(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: uint8(x + y), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
}

func writeText(t *testing.T, path, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
}

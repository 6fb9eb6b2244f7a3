package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// CreateInstall lays out a fake game installation at root/dir with the master
// file under Data/ and returns the install path. An empty master creates only
// the directory.
func CreateInstall(t *testing.T, root, dir, master string) string {
	t.Helper()

	installPath := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(filepath.Join(installPath, "Data"), 0755))
	if master != "" {
		require.NoError(t, os.WriteFile(filepath.Join(installPath, "Data", master), []byte("TES4"), 0644))
	}
	return installPath
}

// RemoveInstall deletes a fake installation created by CreateInstall.
func RemoveInstall(t *testing.T, installPath string) {
	t.Helper()
	require.NoError(t, os.RemoveAll(installPath))
}

// WriteSettings writes a settings file named name into dir and returns its path.
func WriteSettings(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Eventually polls cond until it returns true or timeout expires.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

// RandomString returns a random hex string of the given length.
func RandomString(length int) string {
	b := make([]byte, (length+1)/2)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)[:length]
}

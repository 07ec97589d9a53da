//go:build unit
// +build unit

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/rsa"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := &cobra.Command{Use: "boundless-rsa-cli", SilenceUsage: true, SilenceErrors: true}
	require.NoError(t, InitRSACommands(rootCmd))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// generateKeys returns the public and private key paths printed by generate-keys.
func generateKeys(t *testing.T, keyDir string, extra ...string) (string, string) {
	t.Helper()

	args := append([]string{"generate-keys", "--key-dir", keyDir, "--min-digits", "20", "--max-digits", "22"}, extra...)
	out, err := execute(t, args...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	return lines[0], lines[1]
}

func TestGenerateKeysCmd(t *testing.T) {
	keyDir := filepath.Join(t.TempDir(), "keys")

	publicKeyPath, privateKeyPath := generateKeys(t, keyDir)
	assert.True(t, strings.HasSuffix(publicKeyPath, "-public-key.pem"))
	assert.True(t, strings.HasSuffix(privateKeyPath, "-private-key.pem"))

	info, err := os.Stat(privateKeyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(keyDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestGenerateKeysCmd_InvalidOptions(t *testing.T) {
	tests := [][]string{
		{"--exponent", "4"},
		{"--min-digits", "30", "--max-digits", "20"},
		{"--exponent", "abc"},
	}

	for _, extra := range tests {
		t.Run(strings.Join(extra, " "), func(t *testing.T) {
			args := append([]string{"generate-keys", "--key-dir", t.TempDir()}, extra...)
			_, err := execute(t, args...)
			assert.Error(t, err)
		})
	}

	_, err := execute(t, "generate-keys", "--key-dir", t.TempDir(), "--exponent", "4")
	assert.ErrorIs(t, err, rsa.ErrInvalidOptions)
}

func TestGenerateKeysCmd_Timeout(t *testing.T) {
	_, err := execute(t, "generate-keys", "--key-dir", t.TempDir(), "--min-digits", "400", "--max-digits", "400", "--timeout", "1ns")
	assert.Error(t, err)
}

func TestGenerateKeysCmd_MissingKeyDir(t *testing.T) {
	_, err := execute(t, "generate-keys")
	assert.ErrorContains(t, err, "key-dir")
}

func TestEncryptDecryptCmd(t *testing.T) {
	dir := t.TempDir()
	publicKeyPath, privateKeyPath := generateKeys(t, dir, "--workers", "2")

	tests := []struct {
		name    string
		content []byte
	}{
		{"hello world", []byte("Hello World!")},
		{"empty", []byte{}},
		{"leading zeros", []byte{0, 0, 0, 7}},
		{"multiple blocks", bytes.Repeat([]byte("boundless "), 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputFile := filepath.Join(dir, "input.txt")
			encryptedFile := filepath.Join(dir, "input.enc")
			decryptedFile := filepath.Join(dir, "input.dec")
			require.NoError(t, testutil.CreateTestFile(inputFile, tt.content))

			_, err := execute(t, "encrypt", "--input-file", inputFile, "--output-file", encryptedFile, "--public-key", publicKeyPath)
			require.NoError(t, err)

			_, err = execute(t, "decrypt", "--input-file", encryptedFile, "--output-file", decryptedFile, "--private-key", privateKeyPath)
			require.NoError(t, err)

			decrypted, err := os.ReadFile(decryptedFile)
			require.NoError(t, err)
			assert.Equal(t, tt.content, decrypted)
		})
	}
}

func TestEncryptCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	publicKeyPath, privateKeyPath := generateKeys(t, dir)
	inputFile := filepath.Join(dir, "input.txt")
	require.NoError(t, testutil.CreateTestFile(inputFile, []byte("data")))

	_, err := execute(t, "encrypt", "--input-file", inputFile, "--output-file", filepath.Join(dir, "out"), "--public-key", privateKeyPath)
	assert.Error(t, err, "a private key file is not a public key")

	_, err = execute(t, "encrypt", "--input-file", filepath.Join(dir, "missing"), "--output-file", filepath.Join(dir, "out"), "--public-key", publicKeyPath)
	assert.Error(t, err)

	_, err = execute(t, "encrypt", "--input-file", inputFile)
	assert.Error(t, err)
}

func TestDecryptCmd_MalformedInput(t *testing.T) {
	dir := t.TempDir()
	_, privateKeyPath := generateKeys(t, dir)
	inputFile := filepath.Join(dir, "garbage.enc")
	require.NoError(t, testutil.CreateTestFile(inputFile, []byte("short")))

	_, err := execute(t, "decrypt", "--input-file", inputFile, "--output-file", filepath.Join(dir, "out"), "--private-key", privateKeyPath)
	assert.Error(t, err)
}

func TestInspectKeyCmd(t *testing.T) {
	dir := t.TempDir()
	publicKeyPath, privateKeyPath := generateKeys(t, dir, "--exponent", "17")

	out, err := execute(t, "inspect-key", "--key-file", publicKeyPath)
	require.NoError(t, err)
	assert.Contains(t, out, "type: public")
	assert.Contains(t, out, "public exponent: 17")
	assert.Contains(t, out, "modulus digits:")

	out, err = execute(t, "inspect-key", "--key-file", privateKeyPath)
	require.NoError(t, err)
	assert.Contains(t, out, "type: private")
	assert.Contains(t, out, "prime digits:")

	garbage := filepath.Join(dir, "garbage.pem")
	require.NoError(t, testutil.CreateTestFile(garbage, []byte("not a key")))
	_, err = execute(t, "inspect-key", "--key-file", garbage)
	assert.Error(t, err)
}

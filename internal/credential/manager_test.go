package credential_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultkit/go-pin-vault/internal/credential"
	"github.com/vaultkit/go-pin-vault/internal/crypto"
)

func newTestManager(t *testing.T) (credential.Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credential.json")
	m, err := credential.NewFileManager(path, crypto.NewKeyChainWithParams(1, 16, 1))
	require.NoError(t, err)
	return m, path
}

func TestValidatePin(t *testing.T) {
	tests := []struct {
		name    string
		pin     string
		wantErr bool
	}{
		{name: "four digits", pin: "1234"},
		{name: "eight digits", pin: "12345678"},
		{name: "too short", pin: "123", wantErr: true},
		{name: "too long", pin: "123456789", wantErr: true},
		{name: "empty", pin: "", wantErr: true},
		{name: "letters", pin: "12ab", wantErr: true},
		{name: "unicode digits rejected", pin: "١٢٣٤", wantErr: true},
		{name: "spaces", pin: "12 4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := credential.ValidatePin(tt.pin)
			if tt.wantErr {
				assert.ErrorIs(t, err, credential.ErrInvalidPin)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetup_ThenVerify(t *testing.T) {
	m, _ := newTestManager(t)

	assert.False(t, m.HasCredential())

	require.NoError(t, m.Setup("1234"))
	assert.True(t, m.HasCredential())

	ok, err := m.Verify("1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Verify("4321")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetup_RejectsMalformedPinBeforeHashing(t *testing.T) {
	m, path := newTestManager(t)

	require.ErrorIs(t, m.Setup("12x4"), credential.ErrInvalidPin)
	assert.False(t, m.HasCredential())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no credential file must be written for a rejected PIN")
}

func TestSetup_SecondSetupRefused(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.Setup("1234"))
	require.ErrorIs(t, m.Setup("5678"), credential.ErrCredentialExists)

	// The original PIN still verifies.
	ok, err := m.Verify("1234")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_NoCredential(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Verify("1234")
	assert.ErrorIs(t, err, credential.ErrNoCredential)
}

func TestCredential_SurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credential.json")
	keys := crypto.NewKeyChainWithParams(1, 16, 1)

	m1, err := credential.NewFileManager(path, keys)
	require.NoError(t, err)
	require.NoError(t, m1.Setup("123456"))

	// Fresh manager over the same file sees the stored hash.
	m2, err := credential.NewFileManager(path, keys)
	require.NoError(t, err)
	assert.True(t, m2.HasCredential())

	ok, err := m2.Verify("123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCredentialFile_NeverHoldsRawPin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential.json")
	m, err := credential.NewFileManager(path, crypto.NewKeyChainWithParams(1, 16, 1))
	require.NoError(t, err)
	require.NoError(t, m.Setup("87654321"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "87654321")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNewFileManager_CorruptFileFailsEagerly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := credential.NewFileManager(path, crypto.NewKeyChainWithParams(1, 16, 1))
	assert.Error(t, err)
}

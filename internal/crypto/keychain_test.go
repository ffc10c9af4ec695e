package crypto

import (
	"bytes"
	"errors"
	"testing"
)

// test keychain with cheap Argon2id parameters so the suite stays fast.
func testKeyChain() KeyChain {
	return NewKeyChainWithParams(1, 16, 1)
}

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	svc := testKeyChain()

	s1, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	s2, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}

	if len(s1) != 16 {
		t.Fatalf("salt length = %d, want 16", len(s1))
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestDeriveKey_DeterministicForSamePINAndSalt(t *testing.T) {
	svc := testKeyChain()

	salt := bytes.Repeat([]byte{0xAB}, 16)

	k1 := svc.DeriveKey("1234", salt)
	k2 := svc.DeriveKey("1234", salt)

	if len(k1) != 32 {
		t.Fatalf("key length = %d, want 32", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected keys to match for same pin+salt")
	}
}

func TestDeriveKey_DifferentSaltProducesUnlinkableKeys(t *testing.T) {
	svc := testKeyChain()

	salt1 := bytes.Repeat([]byte{0x01}, 16)
	salt2 := bytes.Repeat([]byte{0x02}, 16)

	k1 := svc.DeriveKey("1234", salt1)
	k2 := svc.DeriveKey("1234", salt2)

	if bytes.Equal(k1, k2) {
		t.Fatalf("expected different keys for different salts")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	svc := testKeyChain()

	key := svc.DeriveKey("1234", bytes.Repeat([]byte{0x03}, 16))
	plaintext := []byte("hunter2")

	ct, iv, err := svc.Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if len(iv) != 12 {
		t.Fatalf("iv length = %d, want 12", len(iv))
	}
	if bytes.Contains(ct, plaintext) {
		t.Fatalf("ciphertext contains plaintext")
	}

	got, err := svc.Decrypt(ct, key, iv)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round-trip mismatch: got %q, want %q", got, plaintext)
	}
}

func TestEncrypt_FreshNonceEveryCall(t *testing.T) {
	svc := testKeyChain()
	key := svc.DeriveKey("1234", bytes.Repeat([]byte{0x04}, 16))

	seen := make(map[string]struct{})
	for i := 0; i < 64; i++ {
		_, iv, err := svc.Encrypt([]byte("same plaintext"), key)
		if err != nil {
			t.Fatalf("Encrypt error: %v", err)
		}
		if _, dup := seen[string(iv)]; dup {
			t.Fatalf("nonce repeated after %d encryptions", i)
		}
		seen[string(iv)] = struct{}{}
	}
}

func TestDecrypt_WrongKeyFailsClosed(t *testing.T) {
	svc := testKeyChain()

	salt := bytes.Repeat([]byte{0x05}, 16)
	key := svc.DeriveKey("1234", salt)
	wrongKey := svc.DeriveKey("4321", salt)

	ct, iv, err := svc.Encrypt([]byte("secret"), key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if _, err := svc.Decrypt(ct, wrongKey, iv); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestDecrypt_MismatchedIVFailsClosed(t *testing.T) {
	svc := testKeyChain()
	key := svc.DeriveKey("1234", bytes.Repeat([]byte{0x06}, 16))

	ct, _, err := svc.Encrypt([]byte("secret"), key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	otherIV := bytes.Repeat([]byte{0x07}, 12)
	if _, err := svc.Decrypt(ct, key, otherIV); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed for foreign iv, got %v", err)
	}
}

func TestDecrypt_TamperedCiphertextFailsClosed(t *testing.T) {
	svc := testKeyChain()
	key := svc.DeriveKey("1234", bytes.Repeat([]byte{0x08}, 16))

	ct, iv, err := svc.Encrypt([]byte("secret"), key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	ct[0] ^= 0xFF

	if _, err := svc.Decrypt(ct, key, iv); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed for tampered data, got %v", err)
	}
}

func TestEncrypt_InvalidKeyLength(t *testing.T) {
	svc := testKeyChain()

	if _, _, err := svc.Encrypt([]byte("x"), []byte("short")); !errors.Is(err, ErrEncryptionFailed) {
		t.Fatalf("expected ErrEncryptionFailed, got %v", err)
	}
}

func TestHashPin_DeterministicAndSeparatedFromKey(t *testing.T) {
	svc := testKeyChain()

	h1 := svc.HashPin("1234")
	h2 := svc.HashPin("1234")
	if !bytes.Equal(h1, h2) {
		t.Fatalf("expected HashPin to be deterministic")
	}

	if bytes.Equal(h1, svc.HashPin("4321")) {
		t.Fatalf("expected different hashes for different PINs")
	}

	// The verification hash must not coincide with any derived key.
	key := svc.DeriveKey("1234", h1[:16])
	if bytes.Equal(h1, key) {
		t.Fatalf("pin hash equals derived key")
	}
}

package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Initialize creates an empty store at path under a freshly generated
// master key and returns both. The caller is responsible for keeping the
// key safe; the vault never stores it. An existing file at path is
// rejected, never overwritten.
func Initialize(path string) (*Store, []byte, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrAlreadyInitialized, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, err
	}

	key, err := GenerateKey()
	if err != nil {
		return nil, nil, err
	}

	store := NewStore()
	if err := Write(store, path, key); err != nil {
		return nil, nil, err
	}
	return store, key, nil
}

// Read loads and decrypts the store at path. A missing file, a failed
// decryption and a document that does not parse as a supported store are
// distinct errors; the on-disk file is never touched.
func Read(path string, key []byte) (*Store, error) {
	ciphertext, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDoesNotExist, path)
	}
	if err != nil {
		return nil, err
	}

	plaintext, err := decrypt(key, ciphertext)
	if err != nil {
		return nil, err
	}

	store, err := ImportJSON(plaintext)
	if err != nil {
		return nil, errors.Join(ErrCorruption, err)
	}
	return store, nil
}

// Write serializes and encrypts the store, then replaces the file at path
// atomically: the ciphertext goes to a temporary file in the same
// directory which is renamed over the target, so a crash mid-write cannot
// leave a truncated store.
func Write(store *Store, path string, key []byte) error {
	plaintext, err := store.ExportJSON()
	if err != nil {
		return err
	}

	ciphertext, err := encrypt(key, plaintext)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(ciphertext); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Package auth keeps the local session token for the external
// authentication service and knows how to drop it again.
package auth

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrNoSession is returned by Token when nobody is signed in.
var ErrNoSession = errors.New("auth: no session")

// SignOuter ends the current session with the authentication service.
type SignOuter interface {
	SignOut(ctx context.Context) error
}

// Authenticator is a sign-out collaborator that can also tell whether
// anyone is signed in.
type Authenticator interface {
	SignOuter
	SignedIn() bool
}

// Session is a token persisted in a 0600 file, sealed with AES-GCM.
// Not a replacement for OS keychains but avoids a plain-text token on disk.
type Session struct {
	path string
}

type sessionFile struct {
	Token string `json:"token"` // base64(ciphertext)
}

func NewSession(path string) *Session { return &Session{path: path} }

// Save stores token, replacing any previous one.
func (s *Session) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("auth: token required")
	}
	ct, err := encrypt([]byte(token))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sessionFile{Token: base64.StdEncoding.EncodeToString(ct)}, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Token returns the stored token or ErrNoSession.
func (s *Session) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoSession
		}
		return "", err
	}
	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return "", fmt.Errorf("auth: decode session: %w", err)
	}
	if sf.Token == "" {
		return "", ErrNoSession
	}
	raw, err := base64.StdEncoding.DecodeString(sf.Token)
	if err != nil {
		return "", err
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// SignedIn reports whether a token is stored.
func (s *Session) SignedIn() bool {
	_, err := s.Token()
	return err == nil
}

// SignOut removes the stored token. Signing out without a session is a no-op.
func (s *Session) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("auth: remove session: %w", err)
	}
	return nil
}

// SignOutQuietly signs out and logs any failure instead of returning it.
// It reports whether the sign-out succeeded.
func SignOutQuietly(ctx context.Context, so SignOuter, log logrus.FieldLogger) bool {
	if so == nil {
		return false
	}
	if err := so.SignOut(ctx); err != nil {
		log.WithError(err).Warn("sign out failed")
		return false
	}
	log.Info("signed out")
	return true
}

func masterKey() []byte {
	base := fmt.Sprintf("stillpoint-%s-%s", runtime.GOOS, os.Getenv("USER"))
	hash := sha256.Sum256([]byte(base))
	return hash[:]
}

func newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encrypt(plain []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}

// Package qr produces the scannable artifact attached to every coupon.
// Tokens are random UUIDs, so collisions are practically impossible; the
// generator still checks for an existing file and retries rather than
// silently overwriting one.
package qr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// maxAttempts bounds the collision-retry loop.
const maxAttempts = 3

// Generator writes QR PNG files into a directory served statically.
type Generator struct {
	dir        string
	publicPath string
}

// NewGenerator creates the artifact directory if needed and returns a Generator.
// publicPath is the URL prefix under which dir is served (e.g. "/qrcodes").
func NewGenerator(dir, publicPath string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create qr directory %s: %w", dir, err)
	}
	return &Generator{dir: dir, publicPath: strings.TrimSuffix(publicPath, "/")}, nil
}

// Generate produces a fresh token, writes the PNG encoding it and returns the
// token together with the public URL of the artifact. The file exists before
// this returns; callers that fail afterwards must call Remove.
func (g *Generator) Generate() (token, url string, err error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		token = uuid.NewString()
		path := g.filePath(token)

		if _, statErr := os.Stat(path); statErr == nil {
			continue // token already taken, try again
		}

		if err = qrcode.WriteFile(token, qrcode.Medium, 256, path); err != nil {
			return "", "", fmt.Errorf("write qr artifact: %w", err)
		}
		return token, g.publicPath + "/" + token + ".png", nil
	}
	return "", "", fmt.Errorf("generate qr token: exhausted %d attempts", maxAttempts)
}

// Remove deletes the artifact for a token. Used to clean up when the
// enclosing coupon creation fails after the artifact was written.
func (g *Generator) Remove(token string) error {
	if err := os.Remove(g.filePath(token)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove qr artifact %s: %w", token, err)
	}
	return nil
}

func (g *Generator) filePath(token string) string {
	return filepath.Join(g.dir, token+".png")
}

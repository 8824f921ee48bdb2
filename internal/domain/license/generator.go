package license

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"templatehub/internal/domain/sale"

	"github.com/google/uuid"
)

// Credentials are the artifacts handed to a customer on fulfillment. They
// are ephemeral here; the orchestrator persists them onto the customer
// record.
type Credentials struct {
	LicenseKey    string
	DownloadToken string
}

// Generator produces license keys and download tokens. Pure except for the
// entropy source; entropy exhaustion is treated as fatal.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(tier sale.PackageTier) Credentials {
	return Credentials{
		LicenseKey:    g.GenerateKey(tier),
		DownloadToken: g.GenerateDownloadToken(),
	}
}

// GenerateKey returns a key of the form {PREFIX}-{SEGMENT}-{SEGMENT}-{CHECKSUM}:
// a 3-letter tier prefix, two 8-hex-char random segments, and an 8-hex-char
// fragment of sha256(prefix + timestamp + uuid). The checksum fragment is a
// formatting flourish, not a verifiable integrity check.
func (g *Generator) GenerateKey(tier sale.PackageTier) string {
	prefix := tier.KeyPrefix()
	checksumInput := fmt.Sprintf("%s%d%s", prefix, time.Now().UnixNano(), uuid.NewString())
	sum := sha256.Sum256([]byte(checksumInput))
	checksum := strings.ToUpper(hex.EncodeToString(sum[:4]))

	return fmt.Sprintf("%s-%s-%s-%s", prefix, randomSegment(), randomSegment(), checksum)
}

// GenerateDownloadToken returns 32 bytes of cryptographically secure
// randomness in URL-safe base64 without padding, safe to embed directly in a
// query string.
func (g *Generator) GenerateDownloadToken() string {
	buf := make([]byte, 32)
	mustRead(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

func randomSegment() string {
	buf := make([]byte, 4)
	mustRead(buf)
	return strings.ToUpper(hex.EncodeToString(buf))
}

func mustRead(buf []byte) {
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; if it does the
		// process cannot safely issue credentials.
		panic(fmt.Sprintf("license: entropy source unavailable: %v", err))
	}
}

package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOTP returns a 6-digit one-time code.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// UploadFilename builds a unique name for a stored upload, keeping the
// original extension: <unix-millis>-<hex>.<ext>
func UploadFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex, ext)
}

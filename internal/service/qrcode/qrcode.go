// Package qrcode renders per-student check-in codes. The encoded payload is
// the student id, which the front desk scanner posts back to the check-in
// endpoint.
package qrcode

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 256

// GenerateStudentCode writes the student's QR image under dir and returns
// the file path. An existing image is reused, the payload never changes.
func GenerateStudentCode(dir string, studentID int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating qrcode dir: %w", err)
	}

	filePath := filepath.Join(dir, fmt.Sprintf("student_%d.png", studentID))
	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	content := fmt.Sprintf("gaon:student:%d", studentID)
	if err := qrcode.WriteFile(content, qrcode.Medium, imageSize, filePath); err != nil {
		return "", fmt.Errorf("writing qrcode: %w", err)
	}

	return filePath, nil
}

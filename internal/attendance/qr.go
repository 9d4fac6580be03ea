package attendance

import (
	"encoding/base64"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"campusintelli/internal/api"
)

// Payload is the text a student scans: code_data|course_id|lecture_id.
func Payload(code api.QRCode) string {
	return strings.Join([]string{code.CodeData, string(code.CourseID), code.LectureID}, "|")
}

// Image returns the backend-rendered image, or encodes the payload locally
// as a PNG data URL when the backend sent none.
func Image(g api.GeneratedQR) (string, error) {
	if g.QRImage != "" {
		return g.QRImage, nil
	}
	if g.QRCode.CodeData == "" {
		return "", fmt.Errorf("attendance: qr response has neither image nor code")
	}
	png, err := qrcode.Encode(Payload(g.QRCode), qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("attendance: encode qr: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// ExpiresInMinutes converts the validity window to whole minutes, rounding down.
func ExpiresInMinutes(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return seconds / 60
}

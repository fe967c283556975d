// services/qrcode_service.go
package services

import (
	"fmt"
	"os"

	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder matches qrcode.Encode so tests can inject a failing
// encoder.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// GenerateFlightQRCode creates a QR code pointing at a flight's detail
// page, for sharing around the table at a tasting.
func GenerateFlightQRCode(flightID, size int, encode QRCodeEncoder) ([]byte, error) {
	applicationURL := os.Getenv("APPLICATION_URL")
	if applicationURL == "" {
		applicationURL = "http://localhost:8090" // Default for local testing
	}

	target := fmt.Sprintf("%s/flights/%d", applicationURL, flightID)
	png, err := encode(target, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}

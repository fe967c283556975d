// file: services/qrcode_service_test.go
package services_test

import (
	"errors"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"

	"github.com/tanzeelak/tea-rater-frontend/services"
)

func TestGenerateFlightQRCode_Success(t *testing.T) {
	png, err := services.GenerateFlightQRCode(7, 300, qrcode.Encode)
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestGenerateFlightQRCode_EncodesFlightURL(t *testing.T) {
	t.Setenv("APPLICATION_URL", "https://tea.example.com")

	var encoded string
	fakeEncode := func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error) {
		encoded = content
		return []byte("png"), nil
	}

	_, err := services.GenerateFlightQRCode(7, 300, fakeEncode)
	assert.NoError(t, err)
	assert.Equal(t, "https://tea.example.com/flights/7", encoded)
}

func TestGenerateFlightQRCode_EncoderFailure(t *testing.T) {
	failing := func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error) {
		return nil, errors.New("boom")
	}

	png, err := services.GenerateFlightQRCode(7, 300, failing)
	assert.Error(t, err)
	assert.Nil(t, png)
}

package services

import (
	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the PNG edge length in pixels.
const DefaultQRSize = 256

// ContactQR renders a PNG QR code that opens a WhatsApp chat with phone.
func ContactQR(phone string, size int) ([]byte, error) {
	url, err := WhatsAppURL(phone)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	return qrcode.Encode(url, qrcode.Medium, size)
}

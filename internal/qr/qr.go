package qr

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

var ErrEmptyPayload = errors.New("empty QR payload")

// PNG renders a QRIS payload for the POS terminal display. Medium recovery
// level matches what e-wallet scanners expect for printed/on-screen codes.
func PNG(payload string, size int) ([]byte, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}

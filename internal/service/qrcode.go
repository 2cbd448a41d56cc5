package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(reference string) ([]byte, error)
}

// TrackingQRGenerator encodes a link to the order tracking page.
type TrackingQRGenerator struct {
	BaseURL string
}

func (g TrackingQRGenerator) Generate(reference string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/track.html?order=%s", g.BaseURL, reference)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

package services

import (
	"fmt"
	"strings"
	"unicode"
)

// BarcodeService validates and normalizes scanner input. The scanner
// hardware itself is external; this service only deals with the codes.
type BarcodeService struct{}

// NewBarcodeService creates a BarcodeService.
func NewBarcodeService() *BarcodeService {
	return &BarcodeService{}
}

// Normalize strips whitespace and control characters a scanner may append.
func (s *BarcodeService) Normalize(raw string) string {
	return strings.TrimFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

// ValidateEAN13 checks length, digits, and the EAN-13 check digit.
func (s *BarcodeService) ValidateEAN13(code string) error {
	code = s.Normalize(code)
	if len(code) != 13 {
		return fmt.Errorf("barcode: EAN-13 must have 13 digits, got %d", len(code))
	}
	sum := 0
	for i, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("barcode: non-digit character %q", r)
		}
		digit := int(r - '0')
		if i == 12 {
			check := (10 - sum%10) % 10
			if digit != check {
				return fmt.Errorf("barcode: check digit %d, want %d", digit, check)
			}
			return nil
		}
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return nil
}

package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dstanziola/copypoint/services"
)

func TestBarcodeService_Normalize(t *testing.T) {
	svc := services.NewBarcodeService()

	// Scanners commonly append CR/LF after the code.
	require.Equal(t, "4006381333931", svc.Normalize("4006381333931\r\n"))
	require.Equal(t, "4006381333931", svc.Normalize("  4006381333931\t"))
}

func TestBarcodeService_ValidateEAN13(t *testing.T) {
	svc := services.NewBarcodeService()

	require.NoError(t, svc.ValidateEAN13("4006381333931"))
	require.NoError(t, svc.ValidateEAN13("4006381333931\n"), "normalizes before validating")

	require.Error(t, svc.ValidateEAN13("4006381333930"), "wrong check digit")
	require.Error(t, svc.ValidateEAN13("400638133393"), "too short")
	require.Error(t, svc.ValidateEAN13("40063813339311"), "too long")
	require.Error(t, svc.ValidateEAN13("40063813339a1"), "non-digit")
}

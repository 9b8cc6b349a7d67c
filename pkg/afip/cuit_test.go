package afip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfarias/comercial-api/pkg/afip"
)

// TestValidateCUIT_Valido verifica un CUIT con dígito verificador correcto,
// en sus distintas formas de escritura (con guiones, con puntos, plano).
func TestValidateCUIT_Valido(t *testing.T) {
	assert.NoError(t, afip.ValidateCUIT("20-12345678-6"))
	assert.NoError(t, afip.ValidateCUIT("20.12345678.6"))
	assert.NoError(t, afip.ValidateCUIT("20123456786"))
}

func TestValidateCUIT_DigitoIncorrecto(t *testing.T) {
	err := afip.ValidateCUIT("20-12345678-5")
	assert.Error(t, err, "un dígito verificador incorrecto debe rechazarse")
}

func TestValidateCUIT_LongitudInvalida(t *testing.T) {
	assert.Error(t, afip.ValidateCUIT("20-1234567-6"), "menos de 11 dígitos")
	assert.Error(t, afip.ValidateCUIT("20-123456789-6"), "más de 11 dígitos")
	assert.Error(t, afip.ValidateCUIT(""), "vacío")
}

func TestComputeCUITVerificationDigit(t *testing.T) {
	d, err := afip.ComputeCUITVerificationDigit("2012345678")
	require.NoError(t, err)
	assert.Equal(t, byte('6'), d)

	d, err = afip.ComputeCUITVerificationDigit("3050001091")
	require.NoError(t, err)
	assert.Equal(t, byte('2'), d)
}

// TestComputeCUITVerificationDigit_RestoUno cubre el caso módulo 11 == 1,
// que se normaliza a 9 como en los formularios oficiales.
func TestComputeCUITVerificationDigit_RestoUno(t *testing.T) {
	d, err := afip.ComputeCUITVerificationDigit("2012345676")
	require.NoError(t, err)
	assert.Equal(t, byte('9'), d)
}

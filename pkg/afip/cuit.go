package afip

import (
	"fmt"
	"unicode"
)

// pesos para el cálculo del dígito verificador del CUIT/CUIL (módulo 11, AFIP).
// Se aplican a los 10 primeros dígitos, de izquierda a derecha.
var cuitWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// ValidateCUIT valida que el CUIT (con o sin guiones) tenga 11 dígitos y un
// dígito verificador correcto según el algoritmo módulo 11 de AFIP.
// taxID puede ser "20-12345678-6", "20123456786" o "20.12345678.6".
func ValidateCUIT(taxID string) error {
	digits := extractDigits(taxID)
	if len(digits) != 11 {
		return fmt.Errorf("afip: CUIT debe tener 11 dígitos, se encontraron %d", len(digits))
	}
	expected, err := ComputeCUITVerificationDigit(taxID)
	if err != nil {
		return err
	}
	if digits[10] != expected {
		return fmt.Errorf("afip: dígito verificador del CUIT inválido: esperado %c, recibido %c", expected, digits[10])
	}
	return nil
}

// ComputeCUITVerificationDigit calcula el dígito verificador para los 10 primeros
// dígitos del CUIT. Útil para completar el CUIT antes de enviar a AFIP.
func ComputeCUITVerificationDigit(taxID string) (byte, error) {
	digits := extractDigits(taxID)
	if len(digits) < 10 {
		return 0, fmt.Errorf("afip: se requieren al menos 10 dígitos para calcular el dígito verificador, se encontraron %d", len(digits))
	}
	base := digits[:10]
	var sum int
	for i, d := range base {
		sum += int(d-'0') * cuitWeights[i]
	}
	check := 11 - sum%11
	switch check {
	case 11:
		return '0', nil
	case 10:
		// Por convención AFIP un resto 1 no produce CUIT válido con ese prefijo;
		// se normaliza a 9 igual que hacen los formularios oficiales.
		return '9', nil
	default:
		return byte('0' + check), nil
	}
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}

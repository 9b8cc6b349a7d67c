package afip

import (
	"crypto/tls"
	"fmt"
)

// LoadCertFromPEM carga el certificado X.509 y la llave privada desde archivos PEM.
// Si certPath está vacío retorna cert vacío y err nil (modo dev: no se firma nada).
func LoadCertFromPEM(certPath, keyPath string) (tls.Certificate, error) {
	if certPath == "" {
		return tls.Certificate{}, nil
	}
	if keyPath == "" {
		// Un solo archivo puede contener cert+key en PEM
		keyPath = certPath
	}
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("cargar certificado AFIP: %w", err)
	}
	return cert, nil
}

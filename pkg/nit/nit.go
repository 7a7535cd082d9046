// Package nit valida y normaliza el NIT colombiano de proveedores (módulo 11 DIAN).
package nit

import (
	"errors"
	"fmt"
	"unicode"
)

// pesos de los 9 dígitos base, de izquierda a derecha.
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

var (
	ErrLength = errors.New("nit: debe tener 9 dígitos más el dígito de verificación")
	ErrDigit  = errors.New("nit: dígito de verificación inválido")
)

// CheckDigit calcula el dígito de verificación de un NIT base de 9 dígitos.
func CheckDigit(base string) (byte, error) {
	digits := onlyDigits(base)
	if len(digits) != 9 {
		return 0, ErrLength
	}
	return checkDigit(digits), nil
}

// Normalize acepta "800197268-4", "800.197.268-4", "8001972684" o el NIT base sin
// dígito ("800197268") y devuelve la forma canónica "800197268-4".
// Si viene el dígito de verificación, debe ser correcto.
func Normalize(taxID string) (string, error) {
	digits := onlyDigits(taxID)
	switch len(digits) {
	case 9:
		return fmt.Sprintf("%s-%c", digits, checkDigit(digits)), nil
	case 10:
		want := checkDigit(digits[:9])
		if digits[9] != want {
			return "", fmt.Errorf("%w: se esperaba %c", ErrDigit, want)
		}
		return fmt.Sprintf("%s-%c", digits[:9], want), nil
	}
	return "", ErrLength
}

func checkDigit(digits []byte) byte {
	var sum int
	for i, d := range digits[:9] {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return byte('0' + r)
	}
	return byte('0' + (11 - r))
}

func onlyDigits(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			out = append(out, byte(r))
		}
	}
	return out
}

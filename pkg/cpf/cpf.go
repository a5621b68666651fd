package cpf

import (
	"errors"
	"fmt"
	"unicode"
)

// Errores de validación del CPF.
var (
	ErrLength        = errors.New("cpf: debe tener 11 dígitos")
	ErrRepeated      = errors.New("cpf: todos los dígitos son iguales")
	ErrCheckDigit    = errors.New("cpf: dígitos verificadores incorrectos")
	ErrInvalidSymbol = errors.New("cpf: caracteres no permitidos")
)

// Validate verifica el CPF (con o sin puntos/guion) con el algoritmo módulo 11.
// Acepta "529.982.247-25" o "52998224725".
func Validate(s string) error {
	digits, err := extractDigits(s)
	if err != nil {
		return err
	}
	if len(digits) != 11 {
		return fmt.Errorf("%w: se encontraron %d", ErrLength, len(digits))
	}
	if allEqual(digits) {
		return ErrRepeated
	}
	if checkDigit(digits, 9) != digits[9] || checkDigit(digits, 10) != digits[10] {
		return ErrCheckDigit
	}
	return nil
}

// Format valida el CPF y lo devuelve en forma canónica 000.000.000-00.
func Format(s string) (string, error) {
	if err := Validate(s); err != nil {
		return "", err
	}
	d, _ := extractDigits(s)
	return fmt.Sprintf("%d%d%d.%d%d%d.%d%d%d-%d%d", d[0], d[1], d[2], d[3], d[4], d[5], d[6], d[7], d[8], d[9], d[10]), nil
}

// checkDigit calcula el dígito en la posición n (9 o 10) sobre los n dígitos anteriores,
// con pesos n+1 .. 2: ((suma * 10) mod 11) mod 10.
func checkDigit(d []int, n int) int {
	var sum int
	for i := 0; i < n; i++ {
		sum += d[i] * (n + 1 - i)
	}
	return (sum * 10) % 11 % 10
}

func allEqual(d []int) bool {
	for _, v := range d[1:] {
		if v != d[0] {
			return false
		}
	}
	return true
}

// extractDigits descarta la puntuación habitual ('.', '-', espacios) y rechaza el resto.
// Solo cuentan los dígitos ASCII 0-9; otros dígitos Unicode son símbolos inválidos.
func extractDigits(s string) ([]int, error) {
	out := make([]int, 0, 11)
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			out = append(out, int(r-'0'))
		case r == '.' || r == '-' || unicode.IsSpace(r):
		default:
			return nil, ErrInvalidSymbol
		}
	}
	return out, nil
}

package cpf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Biblioteca-api/pkg/cpf"
)

func TestValidate_CPFValidoFormateado(t *testing.T) {
	assert.NoError(t, cpf.Validate("529.982.247-25"))
}

func TestValidate_CPFValidoSoloDigitos(t *testing.T) {
	assert.NoError(t, cpf.Validate("52998224725"))
}

func TestValidate_DigitosRepetidos(t *testing.T) {
	for _, s := range []string{"111.111.111-11", "000.000.000-00", "99999999999"} {
		assert.ErrorIs(t, cpf.Validate(s), cpf.ErrRepeated, s)
	}
}

func TestValidate_DigitoVerificadorIncorrecto(t *testing.T) {
	assert.ErrorIs(t, cpf.Validate("529.982.247-24"), cpf.ErrCheckDigit)
	assert.ErrorIs(t, cpf.Validate("529.982.247-15"), cpf.ErrCheckDigit)
}

func TestValidate_LongitudIncorrecta(t *testing.T) {
	assert.ErrorIs(t, cpf.Validate("529.982.247-2"), cpf.ErrLength)
	assert.ErrorIs(t, cpf.Validate(""), cpf.ErrLength)
}

func TestValidate_CaracteresNoPermitidos(t *testing.T) {
	assert.ErrorIs(t, cpf.Validate("529.982.247-2X"), cpf.ErrInvalidSymbol)
}

func TestValidate_DigitosNoASCII(t *testing.T) {
	// '９' (U+FF19) y '٥' (U+0665) son dígitos Unicode pero no forman parte de un CPF.
	for _, s := range []string{"\uff1929.982.247-25", "529.982.247-2\u0665", "\uff15\uff12\uff19\uff19\uff18\uff12\uff12\uff14\uff17\uff12\uff15"} {
		assert.ErrorIs(t, cpf.Validate(s), cpf.ErrInvalidSymbol, s)
		_, err := cpf.Format(s)
		assert.ErrorIs(t, err, cpf.ErrInvalidSymbol, s)
	}
}

func TestFormat_Canonico(t *testing.T) {
	out, err := cpf.Format("52998224725")
	require.NoError(t, err)
	assert.Equal(t, "529.982.247-25", out)

	out, err = cpf.Format(" 529.982.247-25 ")
	require.NoError(t, err)
	assert.Equal(t, "529.982.247-25", out)
}

func TestFormat_Invalido(t *testing.T) {
	_, err := cpf.Format("111.111.111-11")
	assert.Error(t, err)
}

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("anna@example.com"))
	assert.True(t, ValidateEmail("anna.ivanova+test@mail.co"))
	assert.False(t, ValidateEmail("anna@example"))
	assert.False(t, ValidateEmail("@example.com"))
	assert.False(t, ValidateEmail("anna example@mail.com"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+33612345678"))
	assert.True(t, ValidatePhone("+7 (912) 345-67-89"))
	assert.False(t, ValidatePhone("12345"))
	assert.False(t, ValidatePhone("не телефон"))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+79123456789", NormalizePhone("+7 (912) 345-67-89"))
	assert.Equal(t, "33612345678", NormalizePhone("33 6 12 34 56 78"))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("secret1"))
	assert.False(t, ValidatePassword("short"))
	assert.False(t, ValidatePassword("with space"))
}

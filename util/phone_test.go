package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	// Already E.164 passes through.
	phone, err := NormalizePhone("+14155552671", "AE")
	assert.Nil(t, err)
	assert.Equal(t, "+14155552671", phone)

	// National format resolves via the default region.
	phone, err = NormalizePhone("050 123 4567", "AE")
	assert.Nil(t, err)
	assert.Equal(t, "+971501234567", phone)

	// Formatting noise is tolerated.
	phone, err = NormalizePhone(" +1 (415) 555-2671 ", "AE")
	assert.Nil(t, err)
	assert.Equal(t, "+14155552671", phone)

	_, err = NormalizePhone("", "AE")
	assert.Equal(t, ErrInvalidPhone, err)

	_, err = NormalizePhone("12", "AE")
	assert.Equal(t, ErrInvalidPhone, err)

	_, err = NormalizePhone("not a phone", "AE")
	assert.Equal(t, ErrInvalidPhone, err)
}

func TestPhoneDigits(t *testing.T) {
	assert.Equal(t, "971501234567", PhoneDigits("+971501234567"))
	assert.Equal(t, "971501234567", PhoneDigits("971501234567"))
}

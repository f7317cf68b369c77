package nip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ksefkit/pkg/nip"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		wantCode string
	}{
		{"valid identifier", "5261040828", ""},
		{"valid identifier with separators", "526-104-08-28", ""},
		{"valid identifier with spaces", "526 104 08 28", ""},
		{"checksum mismatch on last digit", "5261040829", nip.CodeInvalidChecksum},
		{"too short", "123", nip.CodeInvalidLength},
		{"too long", "52610408281", nip.CodeInvalidLength},
		{"empty", "", nip.CodeEmpty},
		{"separators only", "- -", nip.CodeEmpty},
		{"letters", "52610408ab", nip.CodeInvalidCharacters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := nip.Validate(tt.value)
			if tt.wantCode == "" {
				assert.True(t, res.IsValid(), "expected %q to be valid: %s", tt.value, res.Error())
				assert.Empty(t, res.Warnings)
				return
			}
			require.Len(t, res.Errors, 1, "at most one error per call")
			assert.Equal(t, tt.wantCode, res.Errors[0].Code)
		})
	}
}

// Any first-nine-digit prefix whose weighted sum mod 11 is 10 has no valid
// check digit at all; every candidate must fail.
func TestValidate_RemainderTenIsCategoricallyInvalid(t *testing.T) {
	t.Parallel()

	weights := []int{6, 5, 7, 2, 3, 4, 5, 6, 7}
	prefix := ""
	for p := 100000000; p < 100000100; p++ {
		candidate := itoa9(p)
		sum := 0
		for i, w := range weights {
			sum += w * int(candidate[i]-'0')
		}
		if sum%11 == 10 {
			prefix = candidate
			break
		}
	}
	require.NotEmpty(t, prefix, "no remainder-10 prefix found in range")

	for d := 0; d <= 9; d++ {
		value := prefix + string(rune('0'+d))
		res := nip.Validate(value)
		require.False(t, res.IsValid(), "%s must be invalid", value)
		assert.Equal(t, nip.CodeInvalidChecksum, res.Errors[0].Code)
	}
}

func itoa9(n int) string {
	buf := [9]byte{}
	for i := 8; i >= 0; i-- {
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[:])
}

func TestValidate_Idempotent(t *testing.T) {
	t.Parallel()

	first := nip.Validate("5261040829")
	second := nip.Validate("5261040829")
	assert.Equal(t, first, second)
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, nip.IsValid("5261040828"))
	assert.False(t, nip.IsValid("5261040829"))
	assert.False(t, nip.IsValid(""))
}

func TestValidateField_AttachesPath(t *testing.T) {
	t.Parallel()

	res := nip.ValidateField("", "Seller.TaxId")
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Seller.TaxId", res.Errors[0].Field)
}

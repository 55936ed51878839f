package provisioning

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	passwordLength = 12

	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	symbols   = "!@#$%&*+=?"
)

// generatePassword builds a 12-character temporary password guaranteed to
// contain at least one character from each class, shuffled so class positions
// are not predictable.
func generatePassword() (string, error) {
	classes := []string{uppercase, lowercase, digits, symbols}

	var password strings.Builder
	for _, class := range classes {
		c, err := randomByte(class)
		if err != nil {
			return "", err
		}
		password.WriteByte(c)
	}

	all := lowercase + uppercase + digits + symbols
	for password.Len() < passwordLength {
		c, err := randomByte(all)
		if err != nil {
			return "", err
		}
		password.WriteByte(c)
	}

	chars := []byte(password.String())
	for i := len(chars) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}
	return string(chars), nil
}

func randomByte(charset string) (byte, error) {
	i, err := randomIndex(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[i], nil
}

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

package isbn

import (
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestValidate_KnownVectors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Kind
		wantErr error
	}{
		{"合法ISBN-10", "0306406152", KindISBN10, nil},
		{"ISBN-10校验位为X", "080442957X", KindISBN10, nil},
		{"ISBN-10校验位错误", "0306406153", 0, ErrInvalidChecksum},
		{"合法ISBN-13", "9780306406157", KindISBN13, nil},
		{"ISBN-13校验位错误", "9780306406158", 0, ErrInvalidChecksum},
		{"小写x不允许", "080442957x", 0, ErrInvalidCharacter},
		{"X只能出现在最后一位", "08044295X7", 0, ErrInvalidCharacter},
		{"ISBN-13不允许X", "978030640615X", 0, ErrInvalidCharacter},
		{"带连字符长度不对", "978-0-306-40615-7", 0, ErrInvalidLength},
		{"空字符串", "", 0, ErrInvalidLength},
		{"多字节字符", "03064061５2", 0, ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := Validate(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestValidate_SingleDigitFlip(t *testing.T) {
	const valid = "9780306406157"
	for i := 0; i < len(valid); i++ {
		b := []byte(valid)
		b[i] = '0' + (b[i]-'0'+1)%10

		_, err := Validate(string(b))
		assert.ErrorIs(t, err, ErrInvalidChecksum, "flip at %d: %s", i, string(b))
	}
}

func TestValidate_LengthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Filter(func(s string) bool {
			n := utf8.RuneCountInString(s)
			return n != 10 && n != 13
		}).Draw(t, "s")

		_, err := Validate(s)
		if err != ErrInvalidLength {
			t.Fatalf("Validate(%q) = %v, want ErrInvalidLength", s, err)
		}
	})
}

func TestValidate_GeneratedISBN13(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		digits := rapid.SliceOfN(rapid.IntRange(0, 9), 12, 12).Draw(t, "digits")

		sum := 0
		var sb strings.Builder
		for i, d := range digits {
			if i%2 == 0 {
				sum += d
			} else {
				sum += 3 * d
			}
			sb.WriteString(strconv.Itoa(d))
		}
		sb.WriteString(strconv.Itoa((10 - sum%10) % 10))

		kind, err := Validate(sb.String())
		if err != nil || kind != KindISBN13 {
			t.Fatalf("Validate(%q) = %v, %v", sb.String(), kind, err)
		}
	})
}

func TestValidate_GeneratedISBN10(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		digits := rapid.SliceOfN(rapid.IntRange(0, 9), 9, 9).Draw(t, "digits")

		sum := 0
		var sb strings.Builder
		for i, d := range digits {
			sum += d * (10 - i)
			sb.WriteString(strconv.Itoa(d))
		}
		check := (11 - sum%11) % 11
		if check == 10 {
			sb.WriteByte('X')
		} else {
			sb.WriteString(strconv.Itoa(check))
		}

		kind, err := Validate(sb.String())
		if err != nil || kind != KindISBN10 {
			t.Fatalf("Validate(%q) = %v, %v", sb.String(), kind, err)
		}
	})
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "9780306406157", Normalize("978-0-306-40615-7"))
	assert.Equal(t, "0306406152", Normalize("0 306 40615 2"))
	assert.True(t, Valid(Normalize("978-0-306-40615-7")))
}

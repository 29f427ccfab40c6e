// Package isbn 校验ISBN-10与ISBN-13的长度、字符和校验位
//
// Validate是纯函数，不做任何规范化处理：调用方传入的字符串必须恰好是10或13个字符。
// HTTP层如需接受带连字符的输入，先调用Normalize。
package isbn

import (
	"strings"
	"unicode/utf8"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Kind ISBN类型
type Kind int

const (
	KindISBN10 Kind = 10
	KindISBN13 Kind = 13
)

func (k Kind) String() string {
	switch k {
	case KindISBN10:
		return "ISBN-10"
	case KindISBN13:
		return "ISBN-13"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidLength 长度既不是10也不是13
	ErrInvalidLength = apperrors.New(apperrors.ErrCodeInvalidLength, "ISBN长度必须为10位或13位")

	// ErrInvalidCharacter 含有不允许的字符
	ErrInvalidCharacter = apperrors.New(apperrors.ErrCodeInvalidCharacter, "ISBN包含非法字符")

	// ErrInvalidChecksum 校验位不匹配
	ErrInvalidChecksum = apperrors.New(apperrors.ErrCodeInvalidChecksum, "ISBN校验位错误")
)

// Validate 校验ISBN并返回其类型
//
// ISBN-10: 前9位为数字，第10位为数字或大写X(代表10)，
// 按权重10..1加权求和后须被11整除。
// ISBN-13: 13位全为数字，前12位按1、3交替加权，
// (10 - sum%10) % 10 须等于最后一位。
func Validate(s string) (Kind, error) {
	n := utf8.RuneCountInString(s)
	if n != 10 && n != 13 {
		return 0, ErrInvalidLength
	}
	// 长度按字符计算，多字节字符一定不是合法的ISBN字符
	if n != len(s) {
		return 0, ErrInvalidCharacter
	}

	kind, check := KindISBN10, validate10
	if n == 13 {
		kind, check = KindISBN13, validate13
	}
	if err := check(s); err != nil {
		return 0, err
	}
	return kind, nil
}

// Valid 便捷函数
func Valid(s string) bool {
	_, err := Validate(s)
	return err == nil
}

// Normalize 去掉连字符和空格（978-7-115-42802-8 → 9787115428028）
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, s)
}

func validate10(s string) error {
	sum := 0
	for i := 0; i < 9; i++ {
		d, ok := digit(s[i])
		if !ok {
			return ErrInvalidCharacter
		}
		sum += d * (10 - i)
	}

	check, ok := digit(s[9])
	if !ok {
		if s[9] != 'X' {
			return ErrInvalidCharacter
		}
		check = 10
	}
	sum += check

	if sum%11 != 0 {
		return ErrInvalidChecksum
	}
	return nil
}

func validate13(s string) error {
	sum := 0
	for i := 0; i < 13; i++ {
		d, ok := digit(s[i])
		if !ok {
			return ErrInvalidCharacter
		}
		if i == 12 {
			break
		}
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}

	checksum := (10 - sum%10) % 10
	last, _ := digit(s[12])
	if checksum != last {
		return ErrInvalidChecksum
	}
	return nil
}

func digit(b byte) (int, bool) {
	if b < '0' || b > '9' {
		return 0, false
	}
	return int(b - '0'), true
}

package parser

import "strings"

// validNumber checks a NUMBER token. The lexer scans numbers loosely, so
// "1abc", "0x" or "1__0" arrive here as one token.
func validNumber(text string) bool {
	if text == "" {
		return false
	}
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			return digitRun(text[2:], isHex, true)
		case 'o', 'O':
			return digitRun(text[2:], isOct, true)
		case 'b', 'B':
			return digitRun(text[2:], isBin, true)
		}
	}

	body := text
	imaginary := false
	if last := body[len(body)-1]; last == 'j' || last == 'J' {
		body, imaginary = body[:len(body)-1], true
	}

	mantissa, exponent, hasExp := cutExponent(body)
	if hasExp {
		if exponent != "" && (exponent[0] == '+' || exponent[0] == '-') {
			exponent = exponent[1:]
		}
		if !digitRun(exponent, isDec, false) {
			return false
		}
	}

	intPart, frac, hasDot := strings.Cut(mantissa, ".")
	switch {
	case hasDot:
		if intPart == "" && frac == "" {
			return false
		}
		return (intPart == "" || digitRun(intPart, isDec, false)) &&
			(frac == "" || digitRun(frac, isDec, false))
	case intPart == "":
		return false
	case !digitRun(intPart, isDec, false):
		return false
	case hasExp || imaginary:
		return true
	default:
		// 0777 в Python 3 недопустимо, 000 и 0_0 - можно
		return intPart[0] != '0' || strings.Trim(intPart, "0_") == ""
	}
}

func cutExponent(s string) (mantissa, exponent string, ok bool) {
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

// digitRun: непустая последовательность цифр, '_' только между цифрами.
// leadingUnderscore разрешает '_' сразу после префикса (0x_ff).
func digitRun(s string, digit func(byte) bool, leadingUnderscore bool) bool {
	if s == "" {
		return false
	}
	prevDigit := leadingUnderscore
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '_':
			if !prevDigit {
				return false
			}
			prevDigit = false
		case digit(c):
			prevDigit = true
		default:
			return false
		}
	}
	return prevDigit
}

func isDec(c byte) bool { return c >= '0' && c <= '9' }
func isOct(c byte) bool { return c >= '0' && c <= '7' }
func isBin(c byte) bool { return c == '0' || c == '1' }
func isHex(c byte) bool {
	return isDec(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

package lexer

import "unicode"

// ===== Классификаторы =====

// ASCII fast-path для идентификаторов; Unicode - через isIdentStartRune/Continue.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}
func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)
}

// isControlByte: управляющие ASCII байты, не являющиеся пробельными для Python.
func isControlByte(b byte) bool {
	switch b {
	case '\t', '\n', '\f':
		return false
	}
	return b < 0x20 || b == 0x7f
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// Проверка для кейса ".5": текущая точка, дальше цифра?
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}

package source

import (
	"bytes"
	"fmt"
	"path/filepath"

	"fortio.org/safecast"
)

// normalizeNewlines переводит \r\n и одиночный \r в \n (universal newlines).
// Возвращает новый слайс и флаг: были ли замены.
func normalizeNewlines(content []byte) ([]byte, bool) {
	// Быстрый путь: если нет \r, возвращаем как есть.
	if bytes.IndexByte(content, '\r') < 0 {
		return content, false
	}

	out := make([]byte, 0, len(content))
	i := 0
	for i < len(content) {
		if content[i] != '\r' {
			out = append(out, content[i])
			i++
			continue
		}
		out = append(out, '\n')
		i++
		if i < len(content) && content[i] == '\n' {
			i++
		}
	}
	return out, true
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b != '\n' {
			continue
		}
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("line offset overflow: %w", err))
		}
		out = append(out, off)
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Если LineIdx пустой, то весь файл - одна строка
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: находим наибольший lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi // индекс предыдущего \n, -1 если его нет

	if line < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	startOff := lineIdx[line] + 1
	lineNo, err := safecast.Conv[uint32](line + 2)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: lineNo, Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

package diagfmt

import (
	"bufio"
	"io"
	"strconv"

	"pycheck/internal/driver"
)

// Plain печатает четыре строки: вид ошибки, номер строки, сообщение и
// обрезанный текст строки. Для успешной проверки ничего не выводится.
func Plain(w io.Writer, result *driver.CheckResult) error {
	if result == nil || result.Failure == nil {
		return nil
	}
	f := result.Failure
	bw := bufio.NewWriter(w)
	for _, line := range []string{
		f.Kind.Text(),
		strconv.Itoa(f.LineNumber()),
		f.Message,
		f.SourceLine(),
	} {
		// ошибка записи всплывёт в Flush
		_, _ = bw.WriteString(line)
		_ = bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Package fuzztests houses Go fuzz harnesses that exercise the pycheck
// pipeline (source -> decode -> tokenizer -> grammar). Its goal is to smoke
// test robustness and guard against panics or hangs on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через декодер и лексер, проверять
// инварианты спанов и то, что полная проверка всегда завершается вердиктом.
//
// Не делает: генерацию корпусов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/driver, internal/diag,
// internal/testkit.
package fuzztests

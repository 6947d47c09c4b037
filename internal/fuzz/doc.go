// Package fuzztests houses Go fuzz harnesses for the early pipeline
// (fileset -> scanner -> calc lexer -> generic parser -> evaluator). They
// guard against panics, hangs and broken span invariants on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через сканер и парсер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests

// Package email содержит проверку синтаксиса адреса электронной почты
// по фиксированному шаблону.
package email

import "regexp"

// Шаблон унаследован от первой версии сервиса: точки перед доменной зоной
// не экранированы, поэтому вместо точки принимается любой символ.
// Менять шаблон нельзя без изменения контракта подписки.
var pattern = regexp.MustCompile(`^\w+@\w+.(com|org|edu|co.in)`)

// IsValid возвращает true, если адрес соответствует шаблону.
// Чистая функция без побочных эффектов.
func IsValid(s string) bool {
	return pattern.MatchString(s)
}

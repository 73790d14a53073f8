// Package mailtemplate рендерит HTML-тело письма рассылки.
// Шаблон вшит в бинарник, переменные подставляются при каждом запуске рассылки.
package mailtemplate

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed email_template.html
var campaignTemplate string

var tmpl = template.Must(template.New("email_template.html").Parse(campaignTemplate))

// Vars — значения, подставляемые в шаблон письма.
type Vars struct {
	PublishedDate string
	ArticleURL    string
}

// Render возвращает HTML-тело письма с подставленными значениями.
func Render(vars Vars) (string, error) {
	const op = "mailtemplate.Render"

	var sb strings.Builder
	if err := tmpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return sb.String(), nil
}

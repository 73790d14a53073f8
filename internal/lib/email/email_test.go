package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/campaign-manager/internal/lib/email"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "обычный адрес com", email: "alice@example.com", want: true},
		{name: "обычный адрес org", email: "bob@example.org", want: true},
		{name: "адрес edu", email: "student@university.edu", want: true},
		{name: "адрес co.in", email: "user@company.co.in", want: true},
		{name: "произвольный символ вместо точки", email: "a@bXcom", want: true},
		{name: "лишний хвост после зоны допустим", email: "a@b.com.evil", want: true},
		{name: "неподдерживаемая зона", email: "a@b.net", want: false},
		{name: "без собачки", email: "alice.example.com", want: false},
		{name: "пустая строка", email: "", want: false},
		{name: "мусор перед адресом", email: "!a@b.com", want: false},
		{name: "без локальной части", email: "@b.com", want: false},
		{name: "без домена", email: "a@.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, email.IsValid(tt.email))
		})
	}
}

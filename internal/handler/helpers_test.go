package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"escola/internal/middleware"

	"github.com/lib/pq"
)

var (
	pqErrUnique = pq.Error{Code: "23505"}
	errNoRows   = sql.ErrNoRows
)

func novaAuthDeTeste() *middleware.Auth {
	return middleware.NewAuth([]byte("chave-de-teste"), "admin")
}

func postForm(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func requestComPrincipal(method, path string, p middleware.Principal) *http.Request {
	r := httptest.NewRequest(method, path, nil)
	return r.WithContext(middleware.ContextWithPrincipal(r.Context(), p))
}

func colunasUsuarioTeste() []string {
	return []string{"id", "nome", "usuario", "senha", "tipo", "turma", "ano_letivo", "foto_perfil"}
}

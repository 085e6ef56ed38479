package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"escola/internal/entity"
	"escola/internal/middleware"
	"escola/internal/repository"
	"escola/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoAdminHandler(t *testing.T) (*AdminHandler, sqlmock.Sqlmock, string) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dir := t.TempDir()
	photos, err := storage.NewPhotoStore(dir)
	require.NoError(t, err)

	h := NewAdminHandler(repository.NewUserRepository(db), photos, novaAuthDeTeste())
	return h, mock, dir
}

func submitAdmin(h *AdminHandler, form url.Values) *httptest.ResponseRecorder {
	r := postForm("/admin/dashboard", form)
	r = r.WithContext(middleware.ContextWithPrincipal(r.Context(), middleware.Principal{
		UserID: 1, Usuario: "admin", Nome: "Administrador Master",
		Tipo: entity.RoleProfessor, Admin: true,
	}))
	w := httptest.NewRecorder()
	h.Submit(w, r)
	return w
}

func TestAdminAdicionaUsuario(t *testing.T) {
	h, mock, _ := novoAdminHandler(t)

	mock.ExpectQuery(`(?s)INSERT INTO usuarios .+RETURNING id`).
		WithArgs("Novo Aluno", "novo", "789", "aluno", "C", "2026").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	w := submitAdmin(h, url.Values{
		"acao":       {"adicionar"},
		"nome":       {"Novo Aluno"},
		"usuario":    {"novo"},
		"senha":      {"789"},
		"tipo":       {"aluno"},
		"turma":      {"C"},
		"ano_letivo": {"2026"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Login duplicado não deixa linha parcial: a violação vira mensagem de erro
// e o fluxo volta para o dashboard.
func TestAdminAdicionaUsuarioDuplicado(t *testing.T) {
	h, mock, _ := novoAdminHandler(t)

	mock.ExpectQuery(`(?s)INSERT INTO usuarios .+RETURNING id`).
		WithArgs("Outro Admin", "admin", "123", "professor", "", "").
		WillReturnError(&pqErrUnique)

	w := submitAdmin(h, url.Values{
		"acao":    {"adicionar"},
		"nome":    {"Outro Admin"},
		"usuario": {"admin"},
		"senha":   {"123"},
		"tipo":    {"professor"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminAdicionaUsuarioSemCamposObrigatorios(t *testing.T) {
	h, mock, _ := novoAdminHandler(t)

	w := submitAdmin(h, url.Values{
		"acao": {"adicionar"},
		"nome": {"Sem Login"},
	})

	// nenhum INSERT esperado
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Remover um professor com lições e ocorrências: tudo some numa única
// transação e a foto não-default sai do disco depois do commit.
func TestAdminRemoveUsuario(t *testing.T) {
	h, mock, dir := novoAdminHandler(t)

	fotoPath := filepath.Join(dir, "2_prof.png")
	require.NoError(t, os.WriteFile(fotoPath, []byte("x"), 0o644))

	mock.ExpectQuery(`(?s)SELECT .+ FROM usuarios\s+WHERE id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(colunasUsuarioTeste()).
			AddRow(2, "Professor Teste", "prof", "123", "professor", "", "", "2_prof.png"))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM ocorrencias WHERE aluno_id = \$1 OR professor_id = \$1`).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM licoes WHERE professor_id = \$1`).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM usuarios WHERE id = \$1`).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := submitAdmin(h, url.Values{
		"acao":       {"remover"},
		"usuario_id": {"2"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	_, err := os.Stat(fotoPath)
	assert.True(t, os.IsNotExist(err), "foto do usuário removido deveria sair do disco")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRemoveUsuarioInexistente(t *testing.T) {
	h, mock, _ := novoAdminHandler(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM usuarios\s+WHERE id = \$1`).
		WithArgs(99).
		WillReturnError(errNoRows)

	w := submitAdmin(h, url.Values{
		"acao":       {"remover"},
		"usuario_id": {"99"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminDashboardListaAlunosEProfessores(t *testing.T) {
	h, mock, _ := novoAdminHandler(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM usuarios\s+WHERE tipo = \$1\s+ORDER BY nome`).
		WithArgs("aluno").
		WillReturnRows(sqlmock.NewRows(colunasUsuarioTeste()).
			AddRow(3, "João da Silva", "joao", "456", "aluno", "A", "2025", "default_user.png"))

	mock.ExpectQuery(`(?s)SELECT .+ FROM usuarios\s+WHERE tipo = \$1\s+ORDER BY nome`).
		WithArgs("professor").
		WillReturnRows(sqlmock.NewRows(colunasUsuarioTeste()).
			AddRow(1, "Administrador Master", "admin", "123", "professor", "", "", "default_user.png"))

	r := requestComPrincipal(http.MethodGet, "/admin/dashboard", middleware.Principal{
		UserID: 1, Usuario: "admin", Tipo: entity.RoleProfessor, Admin: true,
	})
	w := httptest.NewRecorder()
	h.Dashboard(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "João da Silva")
	assert.Contains(t, w.Body.String(), "Administrador Master")
	assert.NoError(t, mock.ExpectationsWereMet())
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"escola/internal/entity"
	"escola/internal/middleware"
	"escola/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// O dashboard do aluno consulta ocorrências apenas pelo id do próprio
// aluno logado e mostra todas as lições do sistema.
func TestAlunoDashboard(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewAlunoHandler(
		repository.NewUserRepository(db),
		repository.NewOccurrenceRepository(db),
		repository.NewLessonRepository(db),
	)

	mock.ExpectQuery(`(?s)SELECT .+ FROM usuarios\s+WHERE id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(colunasUsuarioTeste()).
			AddRow(3, "João da Silva", "joao", "456", "aluno", "A", "2025", "default_user.png"))

	mock.ExpectQuery(`(?s)SELECT .+ FROM ocorrencias\s+WHERE aluno_id = \$1\s+ORDER BY data DESC`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "aluno_id", "professor_id", "descricao", "data"}).
			AddRow(1, 3, 2, "Chegou atrasado", "2025-01-10"))

	mock.ExpectQuery(`(?s)SELECT .+ FROM licoes\s+ORDER BY prazo`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "professor_id", "descricao", "prazo"}).
			AddRow(1, 2, "Ler cap. 3", "2025-01-10"))

	w := httptest.NewRecorder()
	h.Dashboard(w, requestComPrincipal(http.MethodGet, "/aluno/dashboard", middleware.Principal{
		UserID: 3, Usuario: "joao", Nome: "João da Silva", Tipo: entity.RoleAluno,
	}))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "João da Silva")
	assert.Contains(t, body, "Chegou atrasado")
	assert.Contains(t, body, "Ler cap. 3")

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Toda lição aparece para qualquer aluno logado, não só para alunos do
// professor que a criou.
func TestAlunoDashboardLicoesSaoGlobais(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewAlunoHandler(
		repository.NewUserRepository(db),
		repository.NewOccurrenceRepository(db),
		repository.NewLessonRepository(db),
	)

	for _, aluno := range []struct {
		id   int
		nome string
	}{
		{3, "João da Silva"},
		{4, "Maria de Souza"},
	} {
		mock.ExpectQuery(`(?s)SELECT .+ FROM usuarios\s+WHERE id = \$1`).
			WithArgs(aluno.id).
			WillReturnRows(sqlmock.NewRows(colunasUsuarioTeste()).
				AddRow(aluno.id, aluno.nome, "u", "456", "aluno", "A", "2025", "default_user.png"))

		mock.ExpectQuery(`(?s)SELECT .+ FROM ocorrencias\s+WHERE aluno_id = \$1`).
			WithArgs(aluno.id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "aluno_id", "professor_id", "descricao", "data"}))

		mock.ExpectQuery(`(?s)SELECT .+ FROM licoes\s+ORDER BY prazo`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "professor_id", "descricao", "prazo"}).
				AddRow(1, 2, "Ler cap. 3", "2025-01-10"))

		w := httptest.NewRecorder()
		h.Dashboard(w, requestComPrincipal(http.MethodGet, "/aluno/dashboard", middleware.Principal{
			UserID: aluno.id, Nome: aluno.nome, Tipo: entity.RoleAluno,
		}))

		assert.Contains(t, w.Body.String(), "Ler cap. 3", "aluno %d deveria ver a lição", aluno.id)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"database/sql"

	"escola/internal/entity"
)

type OccurrenceRepository struct {
	db *sql.DB
}

func NewOccurrenceRepository(db *sql.DB) *OccurrenceRepository {
	return &OccurrenceRepository{db: db}
}

// Create registra uma ocorrência carimbada com a data do dia.
func (r *OccurrenceRepository) Create(alunoID, professorID int, descricao, data string) error {
	_, err := r.db.Exec(`
		INSERT INTO ocorrencias (aluno_id, professor_id, descricao, data)
		VALUES ($1, $2, $3, $4)
	`, alunoID, professorID, descricao, data)
	return err
}

// ListByAluno devolve apenas as ocorrências do próprio aluno, da mais
// recente para a mais antiga.
func (r *OccurrenceRepository) ListByAluno(alunoID int) ([]entity.Ocorrencia, error) {
	rows, err := r.db.Query(`
		SELECT id, aluno_id, professor_id, descricao, data
		FROM ocorrencias
		WHERE aluno_id = $1
		ORDER BY data DESC
	`, alunoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ocorrencias []entity.Ocorrencia
	for rows.Next() {
		var o entity.Ocorrencia
		if err := rows.Scan(&o.ID, &o.AlunoID, &o.ProfessorID, &o.Descricao, &o.Data); err != nil {
			return nil, err
		}
		ocorrencias = append(ocorrencias, o)
	}

	return ocorrencias, rows.Err()
}

package repository

import (
	"database/sql"

	"escola/internal/entity"
)

type LessonRepository struct {
	db *sql.DB
}

func NewLessonRepository(db *sql.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

func (r *LessonRepository) Create(professorID int, descricao, prazo string) error {
	_, err := r.db.Exec(`
		INSERT INTO licoes (professor_id, descricao, prazo)
		VALUES ($1, $2, $3)
	`, professorID, descricao, prazo)
	return err
}

// ListAll devolve todas as lições do sistema, do prazo mais próximo para o
// mais distante. Lições não pertencem a um aluno específico.
func (r *LessonRepository) ListAll() ([]entity.Licao, error) {
	rows, err := r.db.Query(`
		SELECT id, professor_id, descricao, prazo
		FROM licoes
		ORDER BY prazo
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var licoes []entity.Licao
	for rows.Next() {
		var l entity.Licao
		if err := rows.Scan(&l.ID, &l.ProfessorID, &l.Descricao, &l.Prazo); err != nil {
			return nil, err
		}
		licoes = append(licoes, l)
	}

	return licoes, rows.Err()
}

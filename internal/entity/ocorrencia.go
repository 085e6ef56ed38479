package entity

// Ocorrencia é um registro disciplinar feito por um professor sobre um aluno.
type Ocorrencia struct {
	ID          int    `json:"id"`
	AlunoID     int    `json:"aluno_id"`
	ProfessorID int    `json:"professor_id"`
	Descricao   string `json:"descricao"`
	Data        string `json:"data"`
}

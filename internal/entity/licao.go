package entity

// Licao é uma lição de casa visível para todos os alunos.
type Licao struct {
	ID          int    `json:"id"`
	ProfessorID int    `json:"professor_id"`
	Descricao   string `json:"descricao"`
	Prazo       string `json:"prazo"`
}

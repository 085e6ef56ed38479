package entity

const (
	RoleProfessor = "professor"
	RoleAluno     = "aluno"
)

type Usuario struct {
	ID         int    `json:"id"`
	Nome       string `json:"nome"`
	Usuario    string `json:"usuario"`
	Senha      string `json:"-"`
	Tipo       string `json:"tipo"`
	Turma      string `json:"turma,omitempty"`
	AnoLetivo  string `json:"ano_letivo,omitempty"`
	FotoPerfil string `json:"foto_perfil"`
}

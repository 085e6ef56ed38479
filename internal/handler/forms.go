package handler

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type loginForm struct {
	Usuario string `validate:"required"`
	Senha   string `validate:"required"`
}

type ocorrenciaForm struct {
	AlunoID   int    `validate:"required,gt=0"`
	Descricao string `validate:"required"`
}

type licaoForm struct {
	Descricao string `validate:"required"`
	Prazo     string `validate:"required"`
}

type novoUsuarioForm struct {
	Nome      string `validate:"required"`
	Usuario   string `validate:"required"`
	Senha     string `validate:"required"`
	Tipo      string `validate:"required,oneof=professor aluno"`
	Turma     string
	AnoLetivo string
}

// No formulário de edição a senha é opcional: vazia significa manter a atual.
type editarUsuarioForm struct {
	Nome      string `validate:"required"`
	Usuario   string `validate:"required"`
	Senha     string
	Tipo      string `validate:"required,oneof=professor aluno"`
	Turma     string
	AnoLetivo string
}

package repository

import (
	"database/sql"
	"errors"

	"escola/internal/entity"

	"github.com/lib/pq"
)

var (
	ErrCredenciaisInvalidas = errors.New("usuário ou senha incorretos")
	ErrUsuarioExiste        = errors.New("nome de usuário já existe")
	ErrUsuarioNaoEncontrado = errors.New("usuário não encontrado")
)

const colunasUsuario = `id, nome, usuario, senha, tipo,
		COALESCE(turma, ''), COALESCE(ano_letivo, ''), foto_perfil`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Authenticate procura um usuário cujo login e senha batem exatamente.
// Usuário desconhecido e senha errada produzem o mesmo erro.
func (r *UserRepository) Authenticate(usuario, senha string) (entity.Usuario, error) {
	var u entity.Usuario
	err := r.db.QueryRow(`
		SELECT `+colunasUsuario+`
		FROM usuarios
		WHERE usuario = $1 AND senha = $2
	`, usuario, senha).Scan(
		&u.ID, &u.Nome, &u.Usuario, &u.Senha, &u.Tipo,
		&u.Turma, &u.AnoLetivo, &u.FotoPerfil,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Usuario{}, ErrCredenciaisInvalidas
	}
	return u, err
}

func (r *UserRepository) GetByID(id int) (entity.Usuario, error) {
	var u entity.Usuario
	err := r.db.QueryRow(`
		SELECT `+colunasUsuario+`
		FROM usuarios
		WHERE id = $1
	`, id).Scan(
		&u.ID, &u.Nome, &u.Usuario, &u.Senha, &u.Tipo,
		&u.Turma, &u.AnoLetivo, &u.FotoPerfil,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Usuario{}, ErrUsuarioNaoEncontrado
	}
	return u, err
}

// ListByTipo devolve os usuários de um tipo ordenados por nome.
func (r *UserRepository) ListByTipo(tipo string) ([]entity.Usuario, error) {
	rows, err := r.db.Query(`
		SELECT `+colunasUsuario+`
		FROM usuarios
		WHERE tipo = $1
		ORDER BY nome
	`, tipo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usuarios []entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		if err := rows.Scan(
			&u.ID, &u.Nome, &u.Usuario, &u.Senha, &u.Tipo,
			&u.Turma, &u.AnoLetivo, &u.FotoPerfil,
		); err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}

	return usuarios, rows.Err()
}

// Create insere um usuário novo. Violação de unicidade do login devolve
// ErrUsuarioExiste sem deixar linha parcial.
func (r *UserRepository) Create(u entity.Usuario) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO usuarios (nome, usuario, senha, tipo, turma, ano_letivo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, u.Nome, u.Usuario, u.Senha, u.Tipo, u.Turma, u.AnoLetivo).Scan(&id)
	if isUniqueViolation(err) {
		return 0, ErrUsuarioExiste
	}
	return id, err
}

// Update sobrescreve os dados do usuário. A senha só é trocada quando
// atualizarSenha é true (campo vazio no formulário = manter a atual).
func (r *UserRepository) Update(u entity.Usuario, atualizarSenha bool) error {
	var err error
	if atualizarSenha {
		_, err = r.db.Exec(`
			UPDATE usuarios
			SET nome = $1, usuario = $2, senha = $3, tipo = $4,
				turma = $5, ano_letivo = $6, foto_perfil = $7
			WHERE id = $8
		`, u.Nome, u.Usuario, u.Senha, u.Tipo, u.Turma, u.AnoLetivo, u.FotoPerfil, u.ID)
	} else {
		_, err = r.db.Exec(`
			UPDATE usuarios
			SET nome = $1, usuario = $2, tipo = $3,
				turma = $4, ano_letivo = $5, foto_perfil = $6
			WHERE id = $7
		`, u.Nome, u.Usuario, u.Tipo, u.Turma, u.AnoLetivo, u.FotoPerfil, u.ID)
	}
	if isUniqueViolation(err) {
		return ErrUsuarioExiste
	}
	return err
}

// Delete remove o usuário e tudo que depende dele numa única transação:
// ocorrências onde ele é aluno ou professor, lições de sua autoria e por
// fim a própria linha. A ordem importa, o banco não tem cascade.
func (r *UserRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
		DELETE FROM ocorrencias WHERE aluno_id = $1 OR professor_id = $1
	`, id); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`
		DELETE FROM licoes WHERE professor_id = $1
	`, id); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`
		DELETE FROM usuarios WHERE id = $1
	`, id); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// SeedDefaults cria as contas iniciais, somente quando a tabela está vazia.
func (r *UserRepository) SeedDefaults() error {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM usuarios`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	seeds := []entity.Usuario{
		{Nome: "Administrador Master", Usuario: "admin", Senha: "123", Tipo: entity.RoleProfessor},
		{Nome: "Professor Teste", Usuario: "prof", Senha: "123", Tipo: entity.RoleProfessor},
		{Nome: "João da Silva", Usuario: "joao", Senha: "456", Tipo: entity.RoleAluno, Turma: "A", AnoLetivo: "2025"},
		{Nome: "Maria de Souza", Usuario: "maria", Senha: "456", Tipo: entity.RoleAluno, Turma: "B", AnoLetivo: "2026"},
	}

	for _, u := range seeds {
		if _, err := tx.Exec(`
			INSERT INTO usuarios (nome, usuario, senha, tipo, turma, ano_letivo)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, u.Nome, u.Usuario, u.Senha, u.Tipo, u.Turma, u.AnoLetivo); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

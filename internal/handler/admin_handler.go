package handler

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"escola/internal/entity"
	"escola/internal/middleware"
	"escola/internal/repository"
	"escola/internal/storage"
	"escola/internal/templates"
)

type AdminHandler struct {
	userRepo *repository.UserRepository
	photos   *storage.PhotoStore
	auth     *middleware.Auth
	tmpl     *template.Template
}

func NewAdminHandler(
	userRepo *repository.UserRepository,
	photos *storage.PhotoStore,
	auth *middleware.Auth,
) *AdminHandler {
	tmpl := template.Must(template.ParseFS(templates.FS, "admin_dashboard.html"))
	return &AdminHandler{
		userRepo: userRepo,
		photos:   photos,
		auth:     auth,
		tmpl:     tmpl,
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	alunos, err := h.userRepo.ListByTipo(entity.RoleAluno)
	if err != nil {
		log.Printf("erro ao listar alunos: %v", err)
		http.Error(w, "Erro ao carregar usuários", http.StatusInternalServerError)
		return
	}

	professores, err := h.userRepo.ListByTipo(entity.RoleProfessor)
	if err != nil {
		log.Printf("erro ao listar professores: %v", err)
		http.Error(w, "Erro ao carregar usuários", http.StatusInternalServerError)
		return
	}

	msgs, erros := h.auth.PopFlashes(w, r)

	data := map[string]interface{}{
		"Alunos":      alunos,
		"Professores": professores,
		"Mensagens":   msgs,
		"Erros":       erros,
	}

	if err := h.tmpl.Execute(w, data); err != nil {
		log.Printf("erro ao renderizar dashboard do admin: %v", err)
	}
}

func (h *AdminHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Erro ao processar formulário", http.StatusBadRequest)
		return
	}

	switch r.FormValue("acao") {
	case "adicionar":
		h.adicionarUsuario(w, r)
	case "remover":
		h.removerUsuario(w, r)
	default:
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
	}
}

func (h *AdminHandler) adicionarUsuario(w http.ResponseWriter, r *http.Request) {
	form := novoUsuarioForm{
		Nome:      strings.TrimSpace(r.FormValue("nome")),
		Usuario:   strings.TrimSpace(r.FormValue("usuario")),
		Senha:     r.FormValue("senha"),
		Tipo:      r.FormValue("tipo"),
		Turma:     strings.TrimSpace(r.FormValue("turma")),
		AnoLetivo: strings.TrimSpace(r.FormValue("ano_letivo")),
	}

	if err := validate.Struct(form); err != nil {
		h.auth.FlashError(w, r, "Preencha nome, usuário, senha e tipo.")
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	_, err := h.userRepo.Create(entity.Usuario{
		Nome:      form.Nome,
		Usuario:   form.Usuario,
		Senha:     form.Senha,
		Tipo:      form.Tipo,
		Turma:     form.Turma,
		AnoLetivo: form.AnoLetivo,
	})
	if errors.Is(err, repository.ErrUsuarioExiste) {
		h.auth.FlashError(w, r, "Erro: Nome de usuário já existe.")
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	if err != nil {
		log.Printf("erro ao adicionar usuário: %v", err)
		http.Error(w, "Erro ao adicionar usuário", http.StatusInternalServerError)
		return
	}

	h.auth.Flash(w, r, "Usuário adicionado com sucesso!")
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// removerUsuario apaga o usuário e seus dependentes numa única transação e
// depois a foto no disco, em melhor esforço.
func (h *AdminHandler) removerUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.FormValue("usuario_id"))
	if err != nil {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	usuario, err := h.userRepo.GetByID(id)
	if errors.Is(err, repository.ErrUsuarioNaoEncontrado) {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	if err != nil {
		log.Printf("erro ao carregar usuário %d: %v", id, err)
		http.Error(w, "Erro ao remover usuário", http.StatusInternalServerError)
		return
	}

	if err := h.userRepo.Delete(id); err != nil {
		log.Printf("erro ao remover usuário %d: %v", id, err)
		http.Error(w, "Erro ao remover usuário", http.StatusInternalServerError)
		return
	}

	h.photos.Remove(usuario.FotoPerfil)

	h.auth.Flash(w, r, "Usuário removido com sucesso!")
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

package handler

import (
	"errors"
	"fmt"
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

const maxFotoBytes = 10 << 20

type EditUserHandler struct {
	userRepo *repository.UserRepository
	photos   *storage.PhotoStore
	auth     *middleware.Auth
	tmpl     *template.Template
}

func NewEditUserHandler(
	userRepo *repository.UserRepository,
	photos *storage.PhotoStore,
	auth *middleware.Auth,
) *EditUserHandler {
	tmpl := template.Must(template.ParseFS(templates.FS, "admin_editar_usuario.html"))
	return &EditUserHandler{
		userRepo: userRepo,
		photos:   photos,
		auth:     auth,
		tmpl:     tmpl,
	}
}

func (h *EditUserHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	usuario, ok := h.loadUsuario(w, r)
	if !ok {
		return
	}
	h.render(w, usuario, "")
}

func (h *EditUserHandler) Save(w http.ResponseWriter, r *http.Request) {
	usuario, ok := h.loadUsuario(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxFotoBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "Erro ao processar formulário", http.StatusBadRequest)
		return
	}

	// Troca de foto é opcional e só acontece com extensão permitida. A foto
	// antiga sai do disco antes da nova ser gravada, em melhor esforço.
	if file, header, err := r.FormFile("foto_upload"); err == nil {
		defer file.Close()
		if storage.Allowed(header.Filename) {
			h.photos.Remove(usuario.FotoPerfil)
			stored, err := h.photos.Save(usuario.ID, header.Filename, file)
			if err != nil {
				log.Printf("erro ao salvar foto do usuário %d: %v", usuario.ID, err)
				http.Error(w, "Erro ao salvar foto", http.StatusInternalServerError)
				return
			}
			usuario.FotoPerfil = stored
		}
	}

	form := editarUsuarioForm{
		Nome:      strings.TrimSpace(r.FormValue("nome")),
		Usuario:   strings.TrimSpace(r.FormValue("usuario")),
		Senha:     r.FormValue("senha"),
		Tipo:      r.FormValue("tipo"),
		Turma:     strings.TrimSpace(r.FormValue("turma")),
		AnoLetivo: strings.TrimSpace(r.FormValue("ano_letivo")),
	}

	if err := validate.Struct(form); err != nil {
		h.render(w, usuario, "Preencha nome, usuário e tipo.")
		return
	}

	usuario.Nome = form.Nome
	usuario.Usuario = form.Usuario
	usuario.Tipo = form.Tipo
	usuario.Turma = form.Turma
	usuario.AnoLetivo = form.AnoLetivo

	atualizarSenha := form.Senha != ""
	if atualizarSenha {
		usuario.Senha = form.Senha
	}

	err := h.userRepo.Update(usuario, atualizarSenha)
	if errors.Is(err, repository.ErrUsuarioExiste) {
		// Diferente do resto do admin: o conflito re-renderiza o formulário
		// com erro inline, sem redirecionar.
		h.render(w, usuario, "Erro: Nome de usuário já existe.")
		return
	}
	if err != nil {
		log.Printf("erro ao atualizar usuário %d: %v", usuario.ID, err)
		http.Error(w, "Erro ao atualizar usuário", http.StatusInternalServerError)
		return
	}

	h.auth.Flash(w, r, fmt.Sprintf("Perfil de %s atualizado com sucesso!", usuario.Nome))
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (h *EditUserHandler) loadUsuario(w http.ResponseWriter, r *http.Request) (u entity.Usuario, ok bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return u, false
	}

	usuario, err := h.userRepo.GetByID(id)
	if errors.Is(err, repository.ErrUsuarioNaoEncontrado) {
		http.NotFound(w, r)
		return u, false
	}
	if err != nil {
		log.Printf("erro ao carregar usuário %d: %v", id, err)
		http.Error(w, "Erro ao carregar usuário", http.StatusInternalServerError)
		return u, false
	}

	return usuario, true
}

func (h *EditUserHandler) render(w http.ResponseWriter, usuario entity.Usuario, erro string) {
	data := map[string]interface{}{
		"Usuario": usuario,
		"Erro":    erro,
	}
	if err := h.tmpl.Execute(w, data); err != nil {
		log.Printf("erro ao renderizar edição de usuário: %v", err)
	}
}

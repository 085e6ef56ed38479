package handler

import (
	"html/template"
	"log"
	"net/http"
	"strings"

	"escola/internal/entity"
	"escola/internal/middleware"
	"escola/internal/repository"
	"escola/internal/templates"
)

const msgCredenciaisInvalidas = "Usuário ou senha incorretos."

type LoginHandler struct {
	userRepo *repository.UserRepository
	auth     *middleware.Auth
	tmpl     *template.Template
}

func NewLoginHandler(userRepo *repository.UserRepository, auth *middleware.Auth) *LoginHandler {
	tmpl := template.Must(template.ParseFS(templates.FS, "login.html"))
	return &LoginHandler{
		userRepo: userRepo,
		auth:     auth,
		tmpl:     tmpl,
	}
}

func (h *LoginHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if p, ok := middleware.FromContext(r.Context()); ok {
		redirectByPrincipal(w, r, p)
		return
	}

	h.render(w, "", "")
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Erro ao processar formulário", http.StatusBadRequest)
		return
	}

	form := loginForm{
		Usuario: strings.TrimSpace(r.FormValue("usuario")),
		Senha:   r.FormValue("senha"),
	}

	// Campo vazio recebe a mesma mensagem genérica de credenciais ruins:
	// a resposta não distingue usuário desconhecido de senha errada.
	if err := validate.Struct(form); err != nil {
		h.render(w, msgCredenciaisInvalidas, form.Usuario)
		return
	}

	user, err := h.userRepo.Authenticate(form.Usuario, form.Senha)
	if err != nil {
		if err != repository.ErrCredenciaisInvalidas {
			log.Printf("erro ao autenticar %q: %v", form.Usuario, err)
		}
		h.render(w, msgCredenciaisInvalidas, form.Usuario)
		return
	}

	if err := h.auth.SignIn(w, r, user); err != nil {
		log.Printf("erro ao salvar sessão de %q: %v", user.Usuario, err)
		http.Error(w, "Erro ao iniciar sessão", http.StatusInternalServerError)
		return
	}

	redirectByUser(w, r, h.auth.AdminUsername(), user)
}

// Logout expira a sessão. Chamar sem sessão ativa não é erro.
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.SignOut(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *LoginHandler) render(w http.ResponseWriter, erro, usuario string) {
	data := map[string]interface{}{
		"Erro":    erro,
		"Usuario": usuario,
	}
	if err := h.tmpl.Execute(w, data); err != nil {
		log.Printf("erro ao renderizar login: %v", err)
	}
}

func redirectByPrincipal(w http.ResponseWriter, r *http.Request, p middleware.Principal) {
	switch {
	case p.Admin:
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
	case p.Tipo == entity.RoleProfessor:
		http.Redirect(w, r, "/professor/dashboard", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/aluno/dashboard", http.StatusSeeOther)
	}
}

func redirectByUser(w http.ResponseWriter, r *http.Request, adminUsername string, u entity.Usuario) {
	switch {
	case u.Usuario == adminUsername:
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
	case u.Tipo == entity.RoleProfessor:
		http.Redirect(w, r, "/professor/dashboard", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/aluno/dashboard", http.StatusSeeOther)
	}
}

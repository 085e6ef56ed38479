package handler

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"escola/internal/entity"
	"escola/internal/middleware"
	"escola/internal/repository"
	"escola/internal/templates"
)

type ProfessorHandler struct {
	userRepo   *repository.UserRepository
	occRepo    *repository.OccurrenceRepository
	lessonRepo *repository.LessonRepository
	auth       *middleware.Auth
	tmpl       *template.Template
}

func NewProfessorHandler(
	userRepo *repository.UserRepository,
	occRepo *repository.OccurrenceRepository,
	lessonRepo *repository.LessonRepository,
	auth *middleware.Auth,
) *ProfessorHandler {
	tmpl := template.Must(template.ParseFS(templates.FS, "professor_dashboard.html"))
	return &ProfessorHandler{
		userRepo:   userRepo,
		occRepo:    occRepo,
		lessonRepo: lessonRepo,
		auth:       auth,
		tmpl:       tmpl,
	}
}

func (h *ProfessorHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.FromContext(r.Context())

	alunos, err := h.userRepo.ListByTipo(entity.RoleAluno)
	if err != nil {
		log.Printf("erro ao listar alunos: %v", err)
		http.Error(w, "Erro ao carregar alunos", http.StatusInternalServerError)
		return
	}

	msgs, erros := h.auth.PopFlashes(w, r)

	data := map[string]interface{}{
		"NomeProfessor": p.Nome,
		"Alunos":        alunos,
		"Mensagens":     msgs,
		"Erros":         erros,
	}

	if err := h.tmpl.Execute(w, data); err != nil {
		log.Printf("erro ao renderizar dashboard do professor: %v", err)
	}
}

// Submit trata os dois formulários do painel, distinguidos pelo campo acao.
func (h *ProfessorHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Erro ao processar formulário", http.StatusBadRequest)
		return
	}

	switch r.FormValue("acao") {
	case "ocorrencia":
		h.criarOcorrencia(w, r, p)
	case "licao":
		h.criarLicao(w, r, p)
	default:
		http.Redirect(w, r, "/professor/dashboard", http.StatusSeeOther)
	}
}

func (h *ProfessorHandler) criarOcorrencia(w http.ResponseWriter, r *http.Request, p middleware.Principal) {
	alunoID, _ := strconv.Atoi(r.FormValue("aluno_ocorrencia"))
	form := ocorrenciaForm{
		AlunoID:   alunoID,
		Descricao: strings.TrimSpace(r.FormValue("descricao_ocorrencia")),
	}

	if err := validate.Struct(form); err != nil {
		h.auth.FlashError(w, r, "Selecione o aluno e descreva a ocorrência.")
		http.Redirect(w, r, "/professor/dashboard", http.StatusSeeOther)
		return
	}

	data := time.Now().Format("2006-01-02")
	if err := h.occRepo.Create(form.AlunoID, p.UserID, form.Descricao, data); err != nil {
		log.Printf("erro ao registrar ocorrência: %v", err)
		http.Error(w, "Erro ao registrar ocorrência", http.StatusInternalServerError)
		return
	}

	h.auth.Flash(w, r, "Ocorrência registrada!")
	http.Redirect(w, r, "/professor/dashboard", http.StatusSeeOther)
}

func (h *ProfessorHandler) criarLicao(w http.ResponseWriter, r *http.Request, p middleware.Principal) {
	form := licaoForm{
		Descricao: strings.TrimSpace(r.FormValue("licao_descricao")),
		Prazo:     strings.TrimSpace(r.FormValue("licao_prazo")),
	}

	if err := validate.Struct(form); err != nil {
		h.auth.FlashError(w, r, "Preencha a descrição e o prazo da lição.")
		http.Redirect(w, r, "/professor/dashboard", http.StatusSeeOther)
		return
	}

	if err := h.lessonRepo.Create(p.UserID, form.Descricao, form.Prazo); err != nil {
		log.Printf("erro ao adicionar lição: %v", err)
		http.Error(w, "Erro ao adicionar lição", http.StatusInternalServerError)
		return
	}

	h.auth.Flash(w, r, "Lição de casa adicionada!")
	http.Redirect(w, r, "/professor/dashboard", http.StatusSeeOther)
}

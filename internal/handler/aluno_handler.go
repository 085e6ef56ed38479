package handler

import (
	"html/template"
	"log"
	"net/http"

	"escola/internal/middleware"
	"escola/internal/repository"
	"escola/internal/templates"
)

type AlunoHandler struct {
	userRepo   *repository.UserRepository
	occRepo    *repository.OccurrenceRepository
	lessonRepo *repository.LessonRepository
	tmpl       *template.Template
}

func NewAlunoHandler(
	userRepo *repository.UserRepository,
	occRepo *repository.OccurrenceRepository,
	lessonRepo *repository.LessonRepository,
) *AlunoHandler {
	tmpl := template.Must(template.ParseFS(templates.FS, "aluno_dashboard.html"))
	return &AlunoHandler{
		userRepo:   userRepo,
		occRepo:    occRepo,
		lessonRepo: lessonRepo,
		tmpl:       tmpl,
	}
}

// Dashboard é somente leitura: o perfil do próprio aluno, as ocorrências
// dele (mais recentes primeiro) e todas as lições do sistema (prazo mais
// próximo primeiro).
func (h *AlunoHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.FromContext(r.Context())

	aluno, err := h.userRepo.GetByID(p.UserID)
	if err != nil {
		log.Printf("erro ao carregar aluno %d: %v", p.UserID, err)
		http.Error(w, "Erro ao carregar perfil", http.StatusInternalServerError)
		return
	}

	ocorrencias, err := h.occRepo.ListByAluno(p.UserID)
	if err != nil {
		log.Printf("erro ao listar ocorrências do aluno %d: %v", p.UserID, err)
		http.Error(w, "Erro ao carregar ocorrências", http.StatusInternalServerError)
		return
	}

	licoes, err := h.lessonRepo.ListAll()
	if err != nil {
		log.Printf("erro ao listar lições: %v", err)
		http.Error(w, "Erro ao carregar lições", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Aluno":       aluno,
		"Ocorrencias": ocorrencias,
		"Licoes":      licoes,
	}

	if err := h.tmpl.Execute(w, data); err != nil {
		log.Printf("erro ao renderizar dashboard do aluno: %v", err)
	}
}

package handler

import (
	"html/template"
	"net/http"

	"escola/internal/templates"
)

type IndexHandler struct {
	tmpl *template.Template
}

func NewIndexHandler() *IndexHandler {
	tmpl := template.Must(template.ParseFS(templates.FS, "index.html"))
	return &IndexHandler{tmpl: tmpl}
}

func (h *IndexHandler) IndexPage(w http.ResponseWriter, r *http.Request) {
	h.tmpl.Execute(w, nil)
}

package main

import (
	"log"
	"net/http"

	"escola/internal/config"
	"escola/internal/database"
	"escola/internal/entity"
	"escola/internal/handler"
	"escola/internal/middleware"
	"escola/internal/repository"
	"escola/internal/storage"

	"github.com/gorilla/securecookie"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("erro ao inicializar banco: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("erro ao migrar banco: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	occRepo := repository.NewOccurrenceRepository(db)
	lessonRepo := repository.NewLessonRepository(db)

	if err := userRepo.SeedDefaults(); err != nil {
		log.Fatalf("erro ao criar usuários iniciais: %v", err)
	}

	photos, err := storage.NewPhotoStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("erro ao preparar diretório de fotos: %v", err)
	}

	sessionKey := []byte(cfg.SessionKey)
	if len(sessionKey) == 0 {
		// Sem SESSION_KEY as sessões não sobrevivem a um restart.
		sessionKey = securecookie.GenerateRandomKey(32)
	}
	auth := middleware.NewAuth(sessionKey, cfg.AdminUsername)

	indexHandler := handler.NewIndexHandler()
	loginHandler := handler.NewLoginHandler(userRepo, auth)
	professorHandler := handler.NewProfessorHandler(userRepo, occRepo, lessonRepo, auth)
	alunoHandler := handler.NewAlunoHandler(userRepo, occRepo, lessonRepo)
	adminHandler := handler.NewAdminHandler(userRepo, photos, auth)
	editHandler := handler.NewEditUserHandler(userRepo, photos, auth)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", indexHandler.IndexPage)
	mux.HandleFunc("GET /login", loginHandler.LoginPage)
	mux.HandleFunc("POST /login", loginHandler.Login)
	mux.HandleFunc("GET /logout", loginHandler.Logout)

	mux.HandleFunc("GET /professor/dashboard",
		auth.RequireTipo(entity.RoleProfessor, professorHandler.Dashboard))
	mux.HandleFunc("POST /professor/dashboard",
		auth.RequireTipo(entity.RoleProfessor, professorHandler.Submit))

	mux.HandleFunc("GET /aluno/dashboard",
		auth.RequireTipo(entity.RoleAluno, alunoHandler.Dashboard))

	mux.HandleFunc("GET /admin/dashboard", auth.RequireAdmin(adminHandler.Dashboard))
	mux.HandleFunc("POST /admin/dashboard", auth.RequireAdmin(adminHandler.Submit))
	mux.HandleFunc("GET /admin/editar_usuario/{id}", auth.RequireAdmin(editHandler.EditPage))
	mux.HandleFunc("POST /admin/editar_usuario/{id}", auth.RequireAdmin(editHandler.Save))

	mux.Handle("GET /static/",
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	log.Printf("Servidor escutando na porta %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, auth.WithPrincipal(mux)); err != nil {
		log.Fatalf("erro ao iniciar servidor: %v", err)
	}
}

package middleware

import (
	"context"
	"net/http"

	"escola/internal/entity"

	"github.com/gorilla/sessions"
)

const sessionName = "app-session"

const flashErrorKey = "_erro"

// Principal é a identidade autenticada da requisição, resolvida uma única
// vez a partir da sessão e carregada no context.
type Principal struct {
	UserID  int
	Usuario string
	Nome    string
	Tipo    string
	// Admin é uma capacidade derivada do login configurado, independente
	// do campo tipo (a conta admin tem tipo professor).
	Admin bool
}

type ctxKey int

const principalKey ctxKey = iota

type Auth struct {
	store         *sessions.CookieStore
	adminUsername string
}

func NewAuth(sessionKey []byte, adminUsername string) *Auth {
	store := sessions.NewCookieStore(sessionKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Auth{store: store, adminUsername: adminUsername}
}

func (a *Auth) AdminUsername() string {
	return a.adminUsername
}

// WithPrincipal resolve a sessão e injeta o Principal no context da
// requisição. Sem sessão válida a requisição segue sem Principal; os gates
// de rota decidem o que fazer.
func (a *Auth) WithPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := a.store.Get(r, sessionName)

		userID, idOk := session.Values["user_id"].(int)
		usuario, _ := session.Values["usuario"].(string)
		nome, _ := session.Values["nome"].(string)
		tipo, _ := session.Values["tipo"].(string)

		if idOk && userID > 0 {
			p := Principal{
				UserID:  userID,
				Usuario: usuario,
				Nome:    nome,
				Tipo:    tipo,
				Admin:   usuario == a.adminUsername,
			}
			r = r.WithContext(ContextWithPrincipal(r.Context(), p))
		}

		next.ServeHTTP(w, r)
	})
}

func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// RequireTipo exige sessão com o tipo dado; sem sessão ou tipo errado
// redireciona para o login.
func (a *Auth) RequireTipo(tipo string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := FromContext(r.Context())
		if !ok || p.Tipo != tipo {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// RequireAdmin exige a capacidade de admin. Professor sem a capacidade vai
// para o próprio dashboard (tem sessão, só não tem o privilégio); qualquer
// outro caso vai para o login.
func (a *Auth) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := FromContext(r.Context())
		if !ok || !p.Admin {
			if ok && p.Tipo == entity.RoleProfessor {
				http.Redirect(w, r, "/professor/dashboard", http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// SignIn grava a identidade na sessão.
func (a *Auth) SignIn(w http.ResponseWriter, r *http.Request, u entity.Usuario) error {
	session, _ := a.store.Get(r, sessionName)
	session.Values["user_id"] = u.ID
	session.Values["usuario"] = u.Usuario
	session.Values["nome"] = u.Nome
	session.Values["tipo"] = u.Tipo
	return session.Save(r, w)
}

// SignOut expira a sessão. Idempotente: sem sessão ativa não é erro.
func (a *Auth) SignOut(w http.ResponseWriter, r *http.Request) {
	session, _ := a.store.Get(r, sessionName)
	session.Options.MaxAge = -1
	session.Save(r, w)
}

// Flash guarda uma mensagem de uso único na sessão, lida e descartada na
// próxima renderização. Substitui mensagens em query string, que vazavam
// estado em URLs compartilháveis.
func (a *Auth) Flash(w http.ResponseWriter, r *http.Request, msg string) {
	session, _ := a.store.Get(r, sessionName)
	session.AddFlash(msg)
	session.Save(r, w)
}

func (a *Auth) FlashError(w http.ResponseWriter, r *http.Request, msg string) {
	session, _ := a.store.Get(r, sessionName)
	session.AddFlash(msg, flashErrorKey)
	session.Save(r, w)
}

// PopFlashes consome as mensagens pendentes (sucesso e erro).
func (a *Auth) PopFlashes(w http.ResponseWriter, r *http.Request) (msgs, erros []string) {
	session, _ := a.store.Get(r, sessionName)
	for _, f := range session.Flashes() {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	for _, f := range session.Flashes(flashErrorKey) {
		if s, ok := f.(string); ok {
			erros = append(erros, s)
		}
	}
	session.Save(r, w)
	return msgs, erros
}

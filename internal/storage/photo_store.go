package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultPhoto é a foto sentinela: nunca é apagada do disco.
const DefaultPhoto = "default_user.png"

var ErrInvalidPhoto = errors.New("arquivo de foto inválido")

var allowedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// PhotoStore guarda as fotos de perfil num diretório fixo no disco,
// referenciadas no banco apenas pelo nome do arquivo.
type PhotoStore struct {
	dir string
}

func NewPhotoStore(dir string) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de uploads: %w", err)
	}
	return &PhotoStore{dir: dir}, nil
}

// Allowed verifica a extensão do arquivo (png/jpg/jpeg/gif, sem diferenciar
// maiúsculas de minúsculas).
func Allowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedExts[ext]
}

// Sanitize descarta qualquer componente de caminho e troca caracteres
// inseguros por "_".
func Sanitize(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = unsafeChars.ReplaceAllString(filename, "_")
	filename = strings.TrimLeft(filename, "._")
	return filename
}

// Save grava a foto como "<id>_<nome sanitizado>" e devolve o nome gravado.
func (s *PhotoStore) Save(userID int, filename string, r io.Reader) (string, error) {
	name := Sanitize(filename)
	if name == "" || !Allowed(name) {
		return "", ErrInvalidPhoto
	}

	stored := fmt.Sprintf("%d_%s", userID, name)

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("erro ao salvar foto: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("erro ao salvar foto: %w", err)
	}

	return stored, nil
}

// Remove apaga a foto antiga. Melhor esforço: arquivo inexistente não é erro,
// e a foto default nunca é removida.
func (s *PhotoStore) Remove(name string) {
	if name == "" || name == DefaultPhoto {
		return
	}
	_ = os.Remove(filepath.Join(s.dir, name))
}

package profiles

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"asthmacare/internal/platform/apperrors"
	"asthmacare/internal/platform/logger"
	"asthmacare/internal/ports/files"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const avatarURLExpiry = 15 * time.Minute

type Service struct {
	repo  Repository
	files files.Store
	log   logger.Logger
	now   func() time.Time
}

func NewService(repo Repository, fileStore files.Store, log logger.Logger) *Service {
	return &Service{
		repo:  repo,
		files: fileStore,
		log:   log,
		now:   time.Now,
	}
}

// EnsureProfile crea el profile si no existe. Duplicado => apperrors.ErrConflict
// (el caller de sign-up lo ignora).
func (s *Service) EnsureProfile(ctx context.Context, userID, email string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidInput
	}

	now := s.now()
	p := Profile{
		ID:          uuid.NewString(),
		OwnerUserID: userID,
		Email:       strings.TrimSpace(email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return apperrors.Wrap(apperrors.CodeConflict, err)
		}
		return err
	}
	return nil
}

func (s *Service) GetByOwner(ctx context.Context, ownerUserID string) (Profile, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.repo.GetByOwner(ctx, ownerUserID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	FullName       *string
	DateOfBirth    *time.Time
	AsthmaSeverity *string
}

func (s *Service) Update(ctx context.Context, ownerUserID string, in UpdateInput) (Profile, error) {
	p, err := s.repo.GetByOwner(ctx, ownerUserID)
	if err != nil {
		return Profile{}, err
	}

	if in.FullName != nil {
		p.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = in.DateOfBirth
	}
	if in.AsthmaSeverity != nil {
		p.AsthmaSeverity = strings.TrimSpace(strings.ToLower(*in.AsthmaSeverity))
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// UploadAvatar sube el binario y recién después actualiza el row.
// Si la actualización del row falla, borra el archivo best-effort:
// no hay transacción entre object storage y la base (gap asumido).
func (s *Service) UploadAvatar(ctx context.Context, ownerUserID, filename, contentType string, data []byte) (Profile, error) {
	if strings.TrimSpace(ownerUserID) == "" || len(data) == 0 {
		return Profile{}, ErrInvalidInput
	}
	if s.files == nil {
		return Profile{}, apperrors.New(apperrors.CodeTransportFailure)
	}

	p, err := s.repo.GetByOwner(ctx, ownerUserID)
	if err != nil {
		return Profile{}, err
	}

	filename = path.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." {
		filename = "avatar"
	}
	newPath := fmt.Sprintf("avatars/%s/%s-%s", ownerUserID, uuid.NewString(), filename)

	if err := s.files.Upload(ctx, files.Object{
		Path:        newPath,
		ContentType: contentType,
		Data:        data,
	}); err != nil {
		return Profile{}, apperrors.Wrap(apperrors.CodeTransportFailure, err)
	}

	oldPath := p.AvatarPath
	p.AvatarPath = newPath
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		// Compensación best-effort del archivo ya subido.
		if delErr := s.files.Delete(ctx, newPath); delErr != nil {
			s.log.Error("profiles: compensating avatar delete failed", map[string]any{
				"path": newPath,
				"err":  delErr.Error(),
			})
		}
		return Profile{}, err
	}

	// El avatar anterior se borra después del swap; un fallo solo deja
	// un archivo huérfano.
	if oldPath != "" {
		if err := s.files.Delete(ctx, oldPath); err != nil {
			s.log.Warn("profiles: old avatar delete failed", map[string]any{
				"path": oldPath,
				"err":  err.Error(),
			})
		}
	}

	return p, nil
}

func (s *Service) AvatarURL(ctx context.Context, ownerUserID string) (string, error) {
	p, err := s.repo.GetByOwner(ctx, ownerUserID)
	if err != nil {
		return "", err
	}
	if p.AvatarPath == "" {
		return "", ErrNotFound
	}
	if s.files == nil {
		return "", apperrors.New(apperrors.CodeTransportFailure)
	}
	return s.files.SignedURL(ctx, p.AvatarPath, avatarURLExpiry)
}

// Delete borra primero el archivo asociado y después el row.
// Si el file-delete falla se loguea y el row se borra igual:
// comportamiento observado, no transaccional.
func (s *Service) Delete(ctx context.Context, ownerUserID string) error {
	p, err := s.repo.GetByOwner(ctx, ownerUserID)
	if err != nil {
		return err
	}

	if p.AvatarPath != "" && s.files != nil {
		if err := s.files.Delete(ctx, p.AvatarPath); err != nil {
			s.log.Warn("profiles: avatar delete failed, deleting row anyway", map[string]any{
				"path": p.AvatarPath,
				"err":  err.Error(),
			})
		}
	}

	return s.repo.Delete(ctx, ownerUserID)
}

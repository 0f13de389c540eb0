package documents

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctajus/lexhub/internal/app/system/apperr"
	"github.com/doctajus/lexhub/internal/app/system/identity"
	"github.com/doctajus/lexhub/internal/domain/models"
)

// grantLevel returns the permission level the actor holds on the document,
// or "" when no grant exists. Global admins hold administrador everywhere.
func (s *Service) grantLevel(ctx context.Context, actor identity.Actor, docID primitive.ObjectID) (string, error) {
	if actor.IsAdmin {
		return models.PermisoAdministrador, nil
	}
	perm, err := s.permissions.Get(ctx, docID, actor.UserID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load grant: %w", err)
	}
	return perm.TipoPermiso, nil
}

// requireRead rejects actors without any grant on a non-public document.
// The level a grant carries does not matter for reading; existence does.
func (s *Service) requireRead(ctx context.Context, actor identity.Actor, doc models.Document) error {
	if doc.EsPublico {
		return nil
	}
	level, err := s.grantLevel(ctx, actor, doc.ID)
	if err != nil {
		return err
	}
	if level == "" {
		return apperr.Forbidden("no tiene permiso para ver este documento")
	}
	return nil
}

// requireWrite demands escritura or administrador.
func (s *Service) requireWrite(ctx context.Context, actor identity.Actor, doc models.Document) error {
	level, err := s.grantLevel(ctx, actor, doc.ID)
	if err != nil {
		return err
	}
	if level != models.PermisoEscritura && level != models.PermisoAdministrador {
		return apperr.Forbidden("no tiene permiso para modificar este documento")
	}
	return nil
}

// requireAdmin demands the administrador level.
func (s *Service) requireAdmin(ctx context.Context, actor identity.Actor, doc models.Document) error {
	level, err := s.grantLevel(ctx, actor, doc.ID)
	if err != nil {
		return err
	}
	if level != models.PermisoAdministrador {
		return apperr.Forbidden("se requiere permiso de administrador sobre este documento")
	}
	return nil
}

// Permissions returns every grant on a document. Administrador only.
func (s *Service) Permissions(ctx context.Context, actor identity.Actor, docID primitive.ObjectID) ([]models.DocumentPermission, error) {
	doc, err := s.loadDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAdmin(ctx, actor, doc); err != nil {
		return nil, err
	}
	perms, err := s.permissions.ListByDocumento(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	return perms, nil
}

// Grant gives a user a permission level on a document, replacing any
// existing grant. Administrador only.
func (s *Service) Grant(ctx context.Context, actor identity.Actor, docID, targetUserID primitive.ObjectID, tipo string) error {
	if !models.IsValidPermiso(tipo) {
		return apperr.Validation("tipo de permiso inválido")
	}

	doc, err := s.loadDocument(ctx, docID)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(ctx, actor, doc); err != nil {
		return err
	}

	if _, err := s.users.GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.Reference("el usuario indicado no existe")
		}
		return fmt.Errorf("load target user: %w", err)
	}

	err = s.permissions.Upsert(ctx, models.DocumentPermission{
		DocumentoID:   docID,
		UsuarioID:     targetUserID,
		TipoPermiso:   tipo,
		OtorgadoPorID: actor.UserID,
	})
	if err != nil {
		return fmt.Errorf("save grant: %w", err)
	}

	s.audit.PermissionsChanged(ctx, actor, docID, targetUserID, tipo, "otorgado")
	return nil
}

// Revoke removes a user's grant. The creator's grant cannot be revoked;
// a document always keeps at least its creator with administrador.
func (s *Service) Revoke(ctx context.Context, actor identity.Actor, docID, targetUserID primitive.ObjectID) error {
	doc, err := s.loadDocument(ctx, docID)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(ctx, actor, doc); err != nil {
		return err
	}
	if doc.CreadoPorID == targetUserID {
		return apperr.Validation("no se puede quitar el permiso del creador del documento")
	}

	found, err := s.permissions.Delete(ctx, docID, targetUserID)
	if err != nil {
		return fmt.Errorf("delete grant: %w", err)
	}
	if !found {
		return apperr.NotFound("el usuario no tiene permiso sobre este documento")
	}

	s.audit.PermissionsChanged(ctx, actor, docID, targetUserID, "", "revocado")
	return nil
}

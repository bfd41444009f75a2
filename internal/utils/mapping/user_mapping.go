package mapping

import (
	"database/sql"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	watchHistory := d.WatchHistory
	if watchHistory == nil {
		watchHistory = []string{}
	}
	return models.User{
		UserID:           d.UserID,
		Username:         d.Username,
		Email:            d.Email,
		PasswordHash:     d.PasswordHash,
		FullName:         d.FullName,
		Avatar:           d.Avatar,
		CoverImage:       toNullString(d.CoverImage),
		WatchHistory:     watchHistory,
		AuditFields:      ToModelAuditFields(d.AuditFields),
		RefreshTokenHash: toNullString(d.RefreshTokenHash),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	watchHistory := m.WatchHistory
	if watchHistory == nil {
		watchHistory = []string{}
	}
	return domain.User{
		UserID:           m.UserID,
		Username:         m.Username,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		FullName:         m.FullName,
		Avatar:           m.Avatar,
		CoverImage:       fromNullString(m.CoverImage),
		WatchHistory:     watchHistory,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
		RefreshTokenHash: fromNullString(m.RefreshTokenHash),
	}
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

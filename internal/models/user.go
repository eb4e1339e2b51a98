package models

import "time"

// User is an application operator. PasswordHash is a bcrypt hash.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	NomeCompleto string
	CriadoEm     time.Time
}

// DisplayName is used for audit stamping (criado_por / concluido_por).
func (u User) DisplayName() string {
	if u.NomeCompleto != "" {
		return u.NomeCompleto
	}
	return u.Username
}

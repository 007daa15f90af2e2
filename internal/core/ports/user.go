package ports

import (
	"context"

	"taskflow/internal/core/domain"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
}

type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (domain.AuthResult, error)
	Login(ctx context.Context, input domain.LoginInput) (domain.AuthResult, error)
}

// Pinger is anything the health report can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

package middleware

import (
	"context"
	"strings"
)

type userKey struct{}

// User is the Orbit account a request acts for.
type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

// devUser fills the blanks of a configured mock user so /api/auth/me always
// has something to render.
func devUser(id, email, name, avatar string) User {
	user := User{
		ID:        strings.TrimSpace(id),
		Email:     strings.TrimSpace(email),
		Name:      strings.TrimSpace(name),
		AvatarURL: strings.TrimSpace(avatar),
	}
	if user.ID == "" {
		return user
	}
	if user.Email == "" {
		user.Email = "dev+" + user.ID + "@orbit.local"
	}
	if user.Name == "" {
		user.Name = "Orbit Dev"
	}
	return user
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey{}).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	user, ok := UserFromContext(ctx)
	return user.ID, ok
}

package auth

import (
	"context"

	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/storage"
)

// realm is the slice of a credential store that serves one principal type
type realm struct {
	typ      model.PrincipalType
	notFound error

	// lookupByEmail returns the principal and its stored credential
	lookupByEmail func(ctx context.Context, email string) (model.Principal, string, error)
	lookupByID    func(ctx context.Context, id model.PrincipalID) (model.Principal, error)
	setPassword   func(ctx context.Context, id model.PrincipalID, hash string) error
}

func newRealms(store storage.CredentialStore) map[model.PrincipalType]realm {
	return map[model.PrincipalType]realm{
		model.PrincipalAdmin: {
			typ:      model.PrincipalAdmin,
			notFound: model.ErrAdminNotFound,
			lookupByEmail: func(ctx context.Context, email string) (model.Principal, string, error) {
				a, err := store.GetAdminByEmail(ctx, email)
				if err != nil {
					return nil, "", err
				}
				return a, a.Password, nil
			},
			lookupByID: func(ctx context.Context, id model.PrincipalID) (model.Principal, error) {
				a, err := store.GetAdmin(ctx, id)
				if err != nil {
					return nil, err
				}
				return a, nil
			},
			setPassword: store.UpdateAdminPassword,
		},
		model.PrincipalUser: {
			typ:      model.PrincipalUser,
			notFound: model.ErrUserNotFound,
			lookupByEmail: func(ctx context.Context, email string) (model.Principal, string, error) {
				u, err := store.GetUserByEmail(ctx, email)
				if err != nil {
					return nil, "", err
				}
				return u, u.Password, nil
			},
			lookupByID: func(ctx context.Context, id model.PrincipalID) (model.Principal, error) {
				u, err := store.GetUser(ctx, id)
				if err != nil {
					return nil, err
				}
				return u, nil
			},
			setPassword: store.UpdateUserPassword,
		},
	}
}

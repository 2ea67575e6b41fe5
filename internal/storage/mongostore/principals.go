package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mcoot/blogadmin/internal/model"
)

// Admins

func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	oid, err := idOrNew(string(admin.ID))
	if err != nil {
		return fmt.Errorf("mongostore: admin id: %w", err)
	}
	if err := insertOne(ctx, s.col(ColAdmins), adminFromModel(oid, admin), model.ErrEmailExists); err != nil {
		return err
	}
	admin.ID = model.PrincipalID(oid.Hex())
	return nil
}

func (s *Store) GetAdmin(ctx context.Context, id model.PrincipalID) (*model.Admin, error) {
	oid, err := parseID(string(id), model.ErrAdminNotFound)
	if err != nil {
		return nil, err
	}
	doc, err := findOne[adminDoc](ctx, s.col(ColAdmins), bson.D{{Key: "_id", Value: oid}}, model.ErrAdminNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	doc, err := findOne[adminDoc](ctx, s.col(ColAdmins), bson.D{{Key: "email", Value: email}}, model.ErrAdminNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) UpdateAdminPassword(ctx context.Context, id model.PrincipalID, password string) error {
	oid, err := parseID(string(id), model.ErrAdminNotFound)
	if err != nil {
		return err
	}
	return updateFields(ctx, s.col(ColAdmins), oid, bson.D{{Key: "password", Value: password}}, model.ErrAdminNotFound)
}

func (s *Store) DeleteAdmin(ctx context.Context, id model.PrincipalID) error {
	oid, err := parseID(string(id), model.ErrAdminNotFound)
	if err != nil {
		return err
	}
	return deleteByID(ctx, s.col(ColAdmins), oid, model.ErrAdminNotFound)
}

func (s *Store) CountAdmins(ctx context.Context) (int64, error) {
	return s.col(ColAdmins).CountDocuments(ctx, bson.D{})
}

// Users

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	oid, err := idOrNew(string(user.ID))
	if err != nil {
		return fmt.Errorf("mongostore: user id: %w", err)
	}
	doc := &userDoc{
		ID:        oid,
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		CreatedAt: user.CreatedAt,
	}
	if err := insertOne(ctx, s.col(ColUsers), doc, model.ErrEmailExists); err != nil {
		return err
	}
	user.ID = model.PrincipalID(oid.Hex())
	return nil
}

func (s *Store) GetUser(ctx context.Context, id model.PrincipalID) (*model.User, error) {
	oid, err := parseID(string(id), model.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	doc, err := findOne[userDoc](ctx, s.col(ColUsers), bson.D{{Key: "_id", Value: oid}}, model.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	doc, err := findOne[userDoc](ctx, s.col(ColUsers), bson.D{{Key: "email", Value: email}}, model.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id model.PrincipalID, password string) error {
	oid, err := parseID(string(id), model.ErrUserNotFound)
	if err != nil {
		return err
	}
	return updateFields(ctx, s.col(ColUsers), oid, bson.D{{Key: "password", Value: password}}, model.ErrUserNotFound)
}

func (s *Store) DeleteUser(ctx context.Context, id model.PrincipalID) error {
	oid, err := parseID(string(id), model.ErrUserNotFound)
	if err != nil {
		return err
	}
	return deleteByID(ctx, s.col(ColUsers), oid, model.ErrUserNotFound)
}

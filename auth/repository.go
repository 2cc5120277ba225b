package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrUserNotFound signals that the user does not exist.
	ErrUserNotFound = errors.New("auth: user not found")
	// ErrDuplicateEmail signals that the email is already registered.
	ErrDuplicateEmail = errors.New("auth: email already exists")
)

// Repository handles data access for authentication.
type Repository interface {
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// CreateUserParams contains write parameters for creating users.
type CreateUserParams struct {
	Email        string
	Name         string
	PasswordHash string
	Phone        *string
}

// MongoRepository implements Repository backed by the users collection.
type MongoRepository struct {
	users *mongo.Collection
}

// NewRepository creates a Mongo-backed auth repository.
func NewRepository(users *mongo.Collection) *MongoRepository {
	return &MongoRepository{users: users}
}

// CreateUser inserts a new user with hashed password. The unique index on
// email rejects duplicates atomically, so there is no lookup-then-insert gap.
func (r *MongoRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	user := User{
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: params.PasswordHash,
		Phone:        params.Phone,
		CreatedAt:    time.Now().UTC(),
	}

	res, err := r.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrDuplicateEmail
		}
		return User{}, fmt.Errorf("auth: create user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *MongoRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := r.users.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("auth: get user by email: %w", err)
	}
	return user, nil
}

// DeleteByEmail removes a user record. Not routed over HTTP; kept as the
// account-removal extension point.
func (r *MongoRepository) DeleteByEmail(ctx context.Context, email string) error {
	res, err := r.users.DeleteOne(ctx, bson.D{{Key: "email", Value: email}})
	if err != nil {
		return fmt.Errorf("auth: delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"planhub-backend-go/internal/models"
)

const usersCollection = "users"

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// Create adds a new user document, using the auth subject id as the document
// ID. Firestore's conditional create gives the at-most-once guarantee:
// exactly one of any concurrent writers for an id wins, the rest observe
// codes.AlreadyExists and the stored document matches the winner's payload.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == "" {
		return errors.New("user ID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user with ID '%s' already exists: %w", user.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user with ID '%s': %w", user.ID, err)
	}
	return nil
}

// GetByID retrieves a user document from Firestore by its ID.
func (r *firestoreUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with ID '%s': %w", userID, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for ID '%s': %w", userID, err)
	}
	user.ID = docSnap.Ref.ID

	return &user, nil
}

// Update applies only the supplied top-level fields, leaving everything else
// untouched. lastLogin is refreshed on every call; a caller-supplied value
// takes precedence over the implicit touch. Firestore's Update (unlike Set
// with merge) fails on a missing document, which keeps update and create
// semantics strictly separate.
func (r *firestoreUserRepository) Update(ctx context.Context, userID string, fields map[string]interface{}) error {
	if userID == "" {
		return errors.New("userID cannot be empty for Update operation")
	}

	updates := make([]firestore.Update, 0, len(fields)+1)
	lastLoginSupplied := false
	for path, value := range fields {
		if path == "lastLogin" {
			lastLoginSupplied = true
		}
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	if !lastLoginSupplied {
		updates = append(updates, firestore.Update{Path: "lastLogin", Value: time.Now().UTC()})
	}

	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("failed to update user with ID '%s': %w", userID, err)
	}
	return nil
}

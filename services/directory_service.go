package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kriyaConnectAPI/internal/types/directory"
)

type DirectoryService struct {
	db *pgxpool.Pool
}

func NewDirectoryService(db *pgxpool.Pool) *DirectoryService {
	return &DirectoryService{db: db}
}

// CreateListing adds the caller's business to the community directory.
func (s *DirectoryService) CreateListing(ctx context.Context, clerkID string, req *directory.CreateListingRequest) (*directory.Listing, error) {
	if req.BusinessName == "" || req.Category == "" {
		return nil, fmt.Errorf("%w: business name and category are required", ErrInvalidInput)
	}

	var ownerID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	listing := &directory.Listing{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		BusinessName: req.BusinessName,
		Category:     req.Category,
		Description:  req.Description,
		Phone:        req.Phone,
		Website:      req.Website,
		City:         req.City,
		ImageURL:     req.ImageURL,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	query := `
	INSERT INTO directory_listings (id, owner_id, business_name, category, description, phone, website, city, image_url, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = s.db.Exec(ctx, query,
		listing.ID,
		listing.OwnerID,
		listing.BusinessName,
		listing.Category,
		listing.Description,
		listing.Phone,
		listing.Website,
		listing.City,
		listing.ImageURL,
		listing.IsActive,
		listing.CreatedAt,
		listing.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	return listing, nil
}

// BrowseListings returns active listings, optionally filtered by category
// and a case-insensitive name search.
func (s *DirectoryService) BrowseListings(ctx context.Context, category, search string) ([]*directory.Listing, error) {
	query := `
	SELECT id, owner_id, business_name, category, COALESCE(description, ''), COALESCE(phone, ''), COALESCE(website, ''), COALESCE(city, ''), COALESCE(image_url, ''), is_active, created_at, updated_at
	FROM directory_listings
	WHERE is_active = TRUE
	  AND ($1 = '' OR category = $1)
	  AND ($2 = '' OR business_name ILIKE '%' || $2 || '%')
	ORDER BY business_name
	`

	rows, err := s.db.Query(ctx, query, category, search)
	if err != nil {
		return nil, fmt.Errorf("failed to browse listings: %w", err)
	}
	defer rows.Close()

	listings := make([]*directory.Listing, 0)
	for rows.Next() {
		l := &directory.Listing{}
		err := rows.Scan(
			&l.ID,
			&l.OwnerID,
			&l.BusinessName,
			&l.Category,
			&l.Description,
			&l.Phone,
			&l.Website,
			&l.City,
			&l.ImageURL,
			&l.IsActive,
			&l.CreatedAt,
			&l.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}

// RemoveListing soft-deletes a listing. Only the owner can remove it.
func (s *DirectoryService) RemoveListing(ctx context.Context, clerkID string, listingID string) error {
	listingUUID, err := uuid.Parse(listingID)
	if err != nil {
		return fmt.Errorf("%w: invalid listing id", ErrInvalidInput)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE directory_listings
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND owner_id = (SELECT id FROM users WHERE clerk_id = $2)
	`, listingUUID, clerkID)
	if err != nil {
		return fmt.Errorf("failed to remove listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listing not found or not owned by the caller")
	}
	return nil
}

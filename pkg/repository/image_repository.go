package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"github.com/finddreams/find-dreams/pkg/domain"
)

const communityPageSize = 50

type imageRepository struct {
	db *bun.DB
}

func NewImageRepository(db *bun.DB) *imageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Save(ctx context.Context, image *domain.GalleryImage) error {
	_, err := r.db.NewInsert().
		Model(image).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("saving gallery image: %w", err)
	}
	return nil
}

func (r *imageRepository) GetByID(ctx context.Context, id string) (*domain.GalleryImage, error) {
	var image domain.GalleryImage

	err := r.db.NewSelect().
		Model(&image).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching gallery image: %w", err)
	}

	if err := r.loadLikers(ctx, []*domain.GalleryImage{&image}); err != nil {
		return nil, err
	}
	return &image, nil
}

// ListCommunity returns the newest records, capped at one page.
func (r *imageRepository) ListCommunity(ctx context.Context) ([]*domain.GalleryImage, error) {
	var images []*domain.GalleryImage

	err := r.db.NewSelect().
		Model(&images).
		Order("created_at DESC").
		Limit(communityPageSize).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing community images: %w", err)
	}

	if err := r.loadLikers(ctx, images); err != nil {
		return nil, err
	}
	return images, nil
}

// ListByOwner returns all records owned by ownerID, newest first.
func (r *imageRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.GalleryImage, error) {
	var images []*domain.GalleryImage

	err := r.db.NewSelect().
		Model(&images).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing images for owner %s: %w", ownerID, err)
	}

	if err := r.loadLikers(ctx, images); err != nil {
		return nil, err
	}
	return images, nil
}

// ToggleLike adds or removes userID in the record's liker set inside one
// transaction and re-derives the like counter from the set size, so the
// counter cannot drift from the set under concurrent togglers.
func (r *imageRepository) ToggleLike(ctx context.Context, imageID, userID string) (liked bool, likes int, err error) {
	err = r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*domain.GalleryImage)(nil)).
			Where("id = ?", imageID).
			For("UPDATE").
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("locking gallery image: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}

		alreadyLiked, err := tx.NewSelect().
			Model((*domain.ImageLike)(nil)).
			Where("image_id = ?", imageID).
			Where("user_id = ?", userID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("checking liker membership: %w", err)
		}

		if alreadyLiked {
			_, err = tx.NewDelete().
				Model((*domain.ImageLike)(nil)).
				Where("image_id = ?", imageID).
				Where("user_id = ?", userID).
				Exec(ctx)
		} else {
			_, err = tx.NewInsert().
				Model(&domain.ImageLike{ImageID: imageID, UserID: userID}).
				Exec(ctx)
		}
		if err != nil {
			return fmt.Errorf("updating liker set: %w", err)
		}
		liked = !alreadyLiked

		_, err = tx.NewUpdate().
			Model((*domain.GalleryImage)(nil)).
			Set("likes = (SELECT count(*) FROM image_likes WHERE image_id = ?)", imageID).
			Where("id = ?", imageID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("updating like counter: %w", err)
		}

		err = tx.NewSelect().
			Model((*domain.GalleryImage)(nil)).
			Column("likes").
			Where("id = ?", imageID).
			Scan(ctx, &likes)
		if err != nil {
			return fmt.Errorf("reading like counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return liked, likes, nil
}

func (r *imageRepository) loadLikers(ctx context.Context, images []*domain.GalleryImage) error {
	if len(images) == 0 {
		return nil
	}

	ids := lo.Map(images, func(img *domain.GalleryImage, _ int) string { return img.ID })

	var likes []domain.ImageLike
	err := r.db.NewSelect().
		Model(&likes).
		Where("image_id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("loading liker sets: %w", err)
	}

	byImage := lo.GroupBy(likes, func(l domain.ImageLike) string { return l.ImageID })
	for _, img := range images {
		img.LikedBy = lo.Map(byImage[img.ID], func(l domain.ImageLike, _ int) string { return l.UserID })
	}
	return nil
}

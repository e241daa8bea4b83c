package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

const settingsCollection = "header_settings"

type SettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{coll: db.Collection(settingsCollection)}
}

type mongoSettings struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	SiteTitle             string             `bson:"site_title"`
	SiteSubtitle          string             `bson:"site_subtitle,omitempty"`
	HeaderLogoURL         string             `bson:"header_logo_url,omitempty"`
	HeaderBackgroundColor string             `bson:"header_background_color"`
	HeaderTextColor       string             `bson:"header_text_color"`
	ShowHeader            bool               `bson:"show_header"`
	CreatedAt             int64              `bson:"created_at"`
	UpdatedAt             int64              `bson:"updated_at"`
}

func (r *SettingsRepository) Create(ctx context.Context, settings *domain.HeaderSettings) (*domain.HeaderSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSettings{
		SiteTitle:             settings.SiteTitle,
		SiteSubtitle:          settings.SiteSubtitle,
		HeaderLogoURL:         settings.HeaderLogoURL,
		HeaderBackgroundColor: settings.HeaderBackgroundColor,
		HeaderTextColor:       settings.HeaderTextColor,
		ShowHeader:            settings.ShowHeader,
		CreatedAt:             settings.CreatedAt.Unix(),
		UpdatedAt:             settings.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert header settings: %w", err)
	}

	created := *settings
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *SettingsRepository) FindByID(ctx context.Context, id string) (*domain.HeaderSettings, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSettingsNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, nil)
}

// FindFirst returns the oldest settings document, mirroring "the one active
// settings row" reads.
func (r *SettingsRepository) FindFirst(ctx context.Context) (*domain.HeaderSettings, error) {
	return r.findOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (r *SettingsRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.HeaderSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSettings
	var err error
	if opts != nil {
		err = r.coll.FindOne(ctx, filter, opts).Decode(&ms)
	} else {
		err = r.coll.FindOne(ctx, filter).Decode(&ms)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("find header settings: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SettingsRepository) List(ctx context.Context) ([]domain.HeaderSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list header settings: %w", err)
	}
	defer cursor.Close(ctx)

	var all []domain.HeaderSettings
	for cursor.Next(ctx) {
		var ms mongoSettings
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode header settings: %w", err)
		}
		all = append(all, *ms.toDomain())
	}
	return all, cursor.Err()
}

func (r *SettingsRepository) Update(ctx context.Context, id string, patch ports.HeaderSettingsPatch) (*domain.HeaderSettings, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSettingsNotFound
	}

	set := bson.M{"updated_at": nowUnix()}
	if patch.SiteTitle != nil {
		set["site_title"] = *patch.SiteTitle
	}
	if patch.SiteSubtitle != nil {
		set["site_subtitle"] = *patch.SiteSubtitle
	}
	if patch.HeaderLogoURL != nil {
		set["header_logo_url"] = *patch.HeaderLogoURL
	}
	if patch.HeaderBackgroundColor != nil {
		set["header_background_color"] = *patch.HeaderBackgroundColor
	}
	if patch.HeaderTextColor != nil {
		set["header_text_color"] = *patch.HeaderTextColor
	}
	if patch.ShowHeader != nil {
		set["show_header"] = *patch.ShowHeader
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSettings
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ms)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("update header settings: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SettingsRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSettingsNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete header settings: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSettingsNotFound
	}
	return nil
}

func (ms *mongoSettings) toDomain() *domain.HeaderSettings {
	return &domain.HeaderSettings{
		ID:                    ms.ID.Hex(),
		SiteTitle:             ms.SiteTitle,
		SiteSubtitle:          ms.SiteSubtitle,
		HeaderLogoURL:         ms.HeaderLogoURL,
		HeaderBackgroundColor: ms.HeaderBackgroundColor,
		HeaderTextColor:       ms.HeaderTextColor,
		ShowHeader:            ms.ShowHeader,
		CreatedAt:             unixToTime(ms.CreatedAt),
		UpdatedAt:             unixToTime(ms.UpdatedAt),
	}
}

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

const articlesCollection = "articles"

type ArticleRepository struct {
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{coll: db.Collection(articlesCollection)}
}

type mongoArticle struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	Content    string             `bson:"content"`
	AuthorID   string             `bson:"author_id,omitempty"`
	AuthorName string             `bson:"author_name,omitempty"`
	Date       string             `bson:"date,omitempty"`
	ImageURL   string             `bson:"image_url,omitempty"`
	URL        string             `bson:"url"`
	Published  bool               `bson:"published"`
	Slug       string             `bson:"slug"`
	CreatedAt  int64              `bson:"created_at"`
	UpdatedAt  int64              `bson:"updated_at"`
}

func ensureArticleIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := db.Collection(articlesCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoArticle{
		Title:      article.Title,
		Content:    article.Content,
		AuthorID:   article.AuthorID,
		AuthorName: article.AuthorName,
		Date:       article.Date,
		ImageURL:   article.ImageURL,
		URL:        article.URL,
		Published:  article.Published,
		Slug:       article.Slug,
		CreatedAt:  article.CreatedAt.Unix(),
		UpdatedAt:  article.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("insert article: %w", err)
	}

	created := *article
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *ArticleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoArticle
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *ArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count slug: %w", err)
	}
	return n > 0, nil
}

// List returns articles newest first, optionally restricted to published ones.
func (r *ArticleRepository) List(ctx context.Context, q ports.ArticleQuery) ([]domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if q.PublishedOnly {
		filter["published"] = true
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []domain.Article
	for cursor.Next(ctx) {
		var ma mongoArticle
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, *ma.toDomain())
	}
	return articles, cursor.Err()
}

func (r *ArticleRepository) Update(ctx context.Context, id string, patch ports.ArticlePatch) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}

	set := bson.M{"updated_at": nowUnix()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.AuthorName != nil {
		set["author_name"] = *patch.AuthorName
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.ImageURL != nil {
		set["image_url"] = *patch.ImageURL
	}
	if patch.Published != nil {
		set["published"] = *patch.Published
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoArticle
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ma)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (ma *mongoArticle) toDomain() *domain.Article {
	return &domain.Article{
		ID:         ma.ID.Hex(),
		Title:      ma.Title,
		Content:    ma.Content,
		AuthorID:   ma.AuthorID,
		AuthorName: ma.AuthorName,
		Date:       ma.Date,
		ImageURL:   ma.ImageURL,
		URL:        ma.URL,
		Published:  ma.Published,
		Slug:       ma.Slug,
		CreatedAt:  unixToTime(ma.CreatedAt),
		UpdatedAt:  unixToTime(ma.UpdatedAt),
	}
}

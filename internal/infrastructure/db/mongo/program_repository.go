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

const programsCollection = "programs"

type ProgramRepository struct {
	coll *mongo.Collection
}

func NewProgramRepository(db *mongo.Database) *ProgramRepository {
	return &ProgramRepository{coll: db.Collection(programsCollection)}
}

type mongoProgram struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Order       int                `bson:"order"`
	Active      bool               `bson:"active"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func ensureProgramIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "order", Value: 1}}},
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "category", Value: "text"},
		}},
	}
	_, err := db.Collection(programsCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ProgramRepository) Create(ctx context.Context, program *domain.Program) (*domain.Program, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProgram{
		Title:       program.Title,
		Description: program.Description,
		Category:    program.Category,
		Order:       program.Order,
		Active:      program.Active,
		CreatedAt:   program.CreatedAt.Unix(),
		UpdatedAt:   program.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert program: %w", err)
	}

	created := *program
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProgramRepository) FindByID(ctx context.Context, id string) (*domain.Program, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProgramNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProgram
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProgramNotFound
		}
		return nil, fmt.Errorf("find program: %w", err)
	}
	return mp.toDomain(), nil
}

// List applies the optional search filter (case-insensitive substring match on
// title, description and category) and sorts by the requested field.
func (r *ProgramRepository) List(ctx context.Context, q ports.ProgramQuery) ([]domain.Program, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if q.Search != "" {
		regex := bson.M{"$regex": q.Search, "$options": "i"}
		filter["$or"] = []bson.M{
			{"title": regex},
			{"description": regex},
			{"category": regex},
		}
	}

	sortField := q.OrderBy
	if sortField == "" {
		sortField = "order"
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: sortField, Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer cursor.Close(ctx)

	var programs []domain.Program
	for cursor.Next(ctx) {
		var mp mongoProgram
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode program: %w", err)
		}
		programs = append(programs, *mp.toDomain())
	}
	return programs, cursor.Err()
}

func (r *ProgramRepository) Update(ctx context.Context, id string, patch ports.ProgramPatch) (*domain.Program, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProgramNotFound
	}

	set := bson.M{"updated_at": nowUnix()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Order != nil {
		set["order"] = *patch.Order
	}
	if patch.Active != nil {
		set["active"] = *patch.Active
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProgram
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProgramNotFound
		}
		return nil, fmt.Errorf("update program: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ProgramRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProgramNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProgramNotFound
	}
	return nil
}

func (mp *mongoProgram) toDomain() *domain.Program {
	return &domain.Program{
		ID:          mp.ID.Hex(),
		Title:       mp.Title,
		Description: mp.Description,
		Category:    mp.Category,
		Order:       mp.Order,
		Active:      mp.Active,
		CreatedAt:   unixToTime(mp.CreatedAt),
		UpdatedAt:   unixToTime(mp.UpdatedAt),
	}
}

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

const teamCollection = "team_members"

type TeamRepository struct {
	coll *mongo.Collection
}

func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{coll: db.Collection(teamCollection)}
}

type mongoTeamMember struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Role     string             `bson:"role"`
	Photo    string             `bson:"photo,omitempty"`
	Email    string             `bson:"email,omitempty"`
	Phone    string             `bson:"phone,omitempty"`
	Facebook string             `bson:"facebook,omitempty"`
	Twitter  string             `bson:"twitter,omitempty"`
	LinkedIn string             `bson:"linkedin,omitempty"`
	Order    int                `bson:"order"`
	Active   bool               `bson:"active"`
}

func (r *TeamRepository) Create(ctx context.Context, member *domain.TeamMember) (*domain.TeamMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTeamMember{
		Name:     member.Name,
		Role:     member.Role,
		Photo:    member.Photo,
		Email:    member.Email,
		Phone:    member.Phone,
		Facebook: member.Facebook,
		Twitter:  member.Twitter,
		LinkedIn: member.LinkedIn,
		Order:    member.Order,
		Active:   member.Active,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert team member: %w", err)
	}

	created := *member
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoTeamMember
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find team member: %w", err)
	}
	return mm.toDomain(), nil
}

// List returns members in display order, lowest first.
func (r *TeamRepository) List(ctx context.Context) ([]domain.TeamMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []domain.TeamMember
	for cursor.Next(ctx) {
		var mm mongoTeamMember
		if err := cursor.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode team member: %w", err)
		}
		members = append(members, *mm.toDomain())
	}
	return members, cursor.Err()
}

func (r *TeamRepository) Update(ctx context.Context, id string, patch ports.TeamMemberPatch) (*domain.TeamMember, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.Photo != nil {
		set["photo"] = *patch.Photo
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Facebook != nil {
		set["facebook"] = *patch.Facebook
	}
	if patch.Twitter != nil {
		set["twitter"] = *patch.Twitter
	}
	if patch.LinkedIn != nil {
		set["linkedin"] = *patch.LinkedIn
	}
	if patch.Order != nil {
		set["order"] = *patch.Order
	}
	if patch.Active != nil {
		set["active"] = *patch.Active
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoTeamMember
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mm)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("update team member: %w", err)
	}
	return mm.toDomain(), nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMemberNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (mm *mongoTeamMember) toDomain() *domain.TeamMember {
	return &domain.TeamMember{
		ID:       mm.ID.Hex(),
		Name:     mm.Name,
		Role:     mm.Role,
		Photo:    mm.Photo,
		Email:    mm.Email,
		Phone:    mm.Phone,
		Facebook: mm.Facebook,
		Twitter:  mm.Twitter,
		LinkedIn: mm.LinkedIn,
		Order:    mm.Order,
		Active:   mm.Active,
	}
}

package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mcoot/blogadmin/internal/model"
)

type adminDoc struct {
	ID            bson.ObjectID `bson:"_id"`
	FirstName     string        `bson:"firstName"`
	LastName      string        `bson:"lastName"`
	Email         string        `bson:"email"`
	Password      string        `bson:"password"`
	ContactNumber string        `bson:"contactNumber,omitempty"`
	Gender        string        `bson:"gender,omitempty"`
	Hobby         []string      `bson:"hobby,omitempty"`
	Description   string        `bson:"description,omitempty"`
	ProfileImage  string        `bson:"profileImage,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt"`
}

func (d *adminDoc) toModel() *model.Admin {
	return &model.Admin{
		ID:            model.PrincipalID(d.ID.Hex()),
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		Password:      d.Password,
		ContactNumber: d.ContactNumber,
		Gender:        d.Gender,
		Hobby:         d.Hobby,
		Description:   d.Description,
		ProfileImage:  d.ProfileImage,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func adminFromModel(id bson.ObjectID, a *model.Admin) *adminDoc {
	return &adminDoc{
		ID:            id,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Email:         a.Email,
		Password:      a.Password,
		ContactNumber: a.ContactNumber,
		Gender:        a.Gender,
		Hobby:         a.Hobby,
		Description:   a.Description,
		ProfileImage:  a.ProfileImage,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

type userDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d *userDoc) toModel() *model.User {
	return &model.User{
		ID:        model.PrincipalID(d.ID.Hex()),
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
	}
}

type categoryDoc struct {
	ID           bson.ObjectID `bson:"_id"`
	Name         string        `bson:"name"`
	ProfileImage string        `bson:"profileImage"`
	CreatedAt    time.Time     `bson:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"`
}

func (d *categoryDoc) toModel() *model.Category {
	return &model.Category{
		ID:           model.CategoryID(d.ID.Hex()),
		Name:         d.Name,
		ProfileImage: d.ProfileImage,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type blogDoc struct {
	ID          bson.ObjectID  `bson:"_id"`
	Title       string         `bson:"title"`
	Content     string         `bson:"content"`
	Category    *bson.ObjectID `bson:"category"`
	Author      *bson.ObjectID `bson:"author,omitempty"`
	AuthorName  string         `bson:"authorName,omitempty"`
	Status      string         `bson:"status"`
	PublishDate *time.Time     `bson:"publishDate"`
	Featured    bool           `bson:"featured"`
	Tags        []string       `bson:"tags,omitempty"`
	BlogImage   string         `bson:"blogImage,omitempty"`
	CreatedAt   time.Time      `bson:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt"`
}

// optionalID parses a possibly empty hex reference. Empty or malformed
// references are stored as null.
func optionalID(id string) *bson.ObjectID {
	if id == "" {
		return nil
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	return &oid
}

func hexOrEmpty(oid *bson.ObjectID) string {
	if oid == nil {
		return ""
	}
	return oid.Hex()
}

func (d *blogDoc) toModel() *model.Blog {
	return &model.Blog{
		ID:          model.BlogID(d.ID.Hex()),
		Title:       d.Title,
		Content:     d.Content,
		CategoryID:  model.CategoryID(hexOrEmpty(d.Category)),
		AuthorID:    model.PrincipalID(hexOrEmpty(d.Author)),
		AuthorName:  d.AuthorName,
		Status:      model.BlogStatus(d.Status),
		PublishDate: d.PublishDate,
		Featured:    d.Featured,
		Tags:        d.Tags,
		BlogImage:   d.BlogImage,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func blogFromModel(id bson.ObjectID, b *model.Blog) *blogDoc {
	return &blogDoc{
		ID:          id,
		Title:       b.Title,
		Content:     b.Content,
		Category:    optionalID(string(b.CategoryID)),
		Author:      optionalID(string(b.AuthorID)),
		AuthorName:  b.AuthorName,
		Status:      string(b.Status),
		PublishDate: b.PublishDate,
		Featured:    b.Featured,
		Tags:        b.Tags,
		BlogImage:   b.BlogImage,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

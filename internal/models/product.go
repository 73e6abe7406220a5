package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the lifecycle flag of a product. Any value may move to any other.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// NormalizeStatus trims and lowercases a client supplied status.
func NormalizeStatus(s string) Status {
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Product is a catalog record as stored and as returned by the API.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Status      Status             `json:"status" bson:"status"`
	Date        time.Time          `json:"date" bson:"date"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductInput is the full payload accepted on create.
type ProductInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Status      string `json:"status" validate:"required,oneof=active inactive"`
	Date        string `json:"date" validate:"required"`
}

// Normalize trims the text fields and lowercases the status.
func (in *ProductInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Status = string(NormalizeStatus(in.Status))
	in.Date = strings.TrimSpace(in.Date)
}

// NewProduct validates in and builds a product stamped with now. The ID is
// left for the store to assign.
func NewProduct(in ProductInput, now time.Time) (*Product, error) {
	in.Normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: err.Error()}
	}

	return &Product{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Status:      Status(in.Status),
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ProductUpdate holds the fields a client may change on a product.
// Fields outside this list (id, timestamps, unknown keys) are never written.
type ProductUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Status      *string `json:"status,omitempty"`
	Date        *string `json:"date,omitempty"`
}

// Empty reports whether no field was supplied.
func (u ProductUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.ImageURL == nil && u.Status == nil && u.Date == nil
}

// Changes validates the supplied fields and returns them in their stored
// form, keyed by document field name.
func (u ProductUpdate) Changes() (bson.M, error) {
	set := bson.M{}

	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return nil, &ValidationError{Field: "title", Message: "title is required"}
		}
		set["title"] = title
	}
	if u.Description != nil {
		set["description"] = strings.TrimSpace(*u.Description)
	}
	if u.ImageURL != nil {
		set["imageUrl"] = strings.TrimSpace(*u.ImageURL)
	}
	if u.Status != nil {
		status := NormalizeStatus(*u.Status)
		if !status.Valid() {
			return nil, &ValidationError{Field: "status", Message: "status must be one of: active inactive"}
		}
		set["status"] = status
	}
	if u.Date != nil {
		date, err := ParseDate(*u.Date)
		if err != nil {
			return nil, &ValidationError{Field: "date", Message: err.Error()}
		}
		set["date"] = date
	}

	return set, nil
}

// Apply validates u and merges it onto p, stamping UpdatedAt with now.
func (u ProductUpdate) Apply(p *Product, now time.Time) error {
	if u.Empty() {
		p.UpdatedAt = now
		return nil
	}

	set, err := u.Changes()
	if err != nil {
		return err
	}

	for field, value := range set {
		switch field {
		case "title":
			p.Title = value.(string)
		case "description":
			p.Description = value.(string)
		case "imageUrl":
			p.ImageURL = value.(string)
		case "status":
			p.Status = value.(Status)
		case "date":
			p.Date = value.(time.Time)
		}
	}
	p.UpdatedAt = now
	return nil
}

package sdocument

import (
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/dbtime"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlc/gen"
)

// ConvertToDBDocument converts model to DB representation
func ConvertToDBDocument(doc mdocument.Document) gen.Document {
	return gen.Document{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		CreatedBy: doc.CreatedBy,
		CreatedAt: doc.CreatedAt.Unix(),
		UpdatedAt: doc.UpdatedAt.Unix(),
	}
}

// ConvertToModelDocument converts DB to model representation
func ConvertToModelDocument(doc gen.Document) *mdocument.Document {
	return &mdocument.Document{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		CreatedBy: doc.CreatedBy,
		CreatedAt: dbtime.FromUnix(doc.CreatedAt),
		UpdatedAt: dbtime.FromUnix(doc.UpdatedAt),
	}
}

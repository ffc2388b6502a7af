package hydrate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/hydrex/internal/domain"
	"github.com/kailas-cloud/hydrex/internal/domain/mapping"
)

// todoDTO copies fields verbatim from the payload.
type todoDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func todoFactory(data map[string]any) (any, error) {
	id, ok := data["id"].(string)
	if !ok {
		return nil, errors.New("id must be a string")
	}
	title, _ := data["title"].(string)
	return todoDTO{ID: id, Title: title}, nil
}

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	reg := mapping.NewRegistry(
		mapping.Entry{Index: "todo", DomainKey: `App\Todo`},
		mapping.Entry{Index: "todo-archive", DomainKey: `\App\Todo`},
		mapping.Entry{Index: "orphans", DomainKey: `App\Orphan`},
	)
	f := NewFactories()
	f.Register(`App\Todo`, todoFactory)
	return NewBuilder(reg, f)
}

func todoHit(id string, score float64) domain.Hit {
	return domain.Hit{
		Document: domain.RawDocument{
			ID:    id,
			Index: "todo",
			Data:  map[string]any{"id": id, "title": fmt.Sprintf("todo %s", id)},
		},
		Score: score,
	}
}
